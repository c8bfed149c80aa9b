package handler

type ArticleResponse struct {
	ID              int64   `json:"id"`
	Slug            string  `json:"slug"`
	Title           string  `json:"title"`
	Summary         string  `json:"summary"`
	Content         string  `json:"content"`
	ImageURL        string  `json:"image_url"`
	AgentID         string  `json:"agent_id"`
	ConfidenceScore float64 `json:"confidence_score"`
	Tags            string  `json:"tags"`
	CreatedAt       string  `json:"created_at"`
}

type ArticleListResponse struct {
	Data []ArticleResponse `json:"data"`
}

type CreateArticleRequest struct {
	Title           string   `json:"title" binding:"required"`
	Summary         string   `json:"summary" binding:"required"`
	Content         string   `json:"content" binding:"required"`
	ImageURL        string   `json:"image_url"`
	Tags            string   `json:"tags"`
	AgentID         string   `json:"agent_id" binding:"required"`
	Slug            string   `json:"slug" binding:"required"`
	ConfidenceScore *float64 `json:"confidence_score" binding:"required"`
}

type RegistryResponse struct {
	Data []string `json:"data"`
}

type UploadResponse struct {
	ImageURL string `json:"imageUrl"`
}
