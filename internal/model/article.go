package model

import "time"

type Article struct {
	ID              int64
	Slug            string
	Title           string
	Summary         string
	Content         string
	ImageURL        string
	AgentID         string
	ConfidenceScore float64
	Tags            string
	CreatedAt       time.Time
}

type Agent struct {
	Name string
}

type Tag struct {
	Name string
}
