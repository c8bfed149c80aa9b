package repository

import (
	"database/sql"
	"strings"
	"time"

	"github.com/absundr/moltpress/internal/model"

	sq "github.com/Masterminds/squirrel"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListFilter drives dynamic query construction for the article feed.
// Zero-value fields are left out of the WHERE clause.
type ListFilter struct {
	Page  int
	Limit int
	Agent string
	Tag   string
}

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

var articleColumns = []string{
	"id", "slug", "title", "summary", "content",
	"COALESCE(image_url, '')", "agent_id", "confidence_score",
	"COALESCE(tags, '')", "created_at",
}

// List returns one page of articles, newest first. The agent filter is an
// exact match on agent_id; the tag filter is a substring match against the
// raw comma-separated tags string, so "TECH" also matches "BIOTECH".
func (r *ArticleRepository) List(f ListFilter) ([]model.Article, error) {
	page := f.Page
	if page < 1 {
		page = DefaultPage
	}
	limit := f.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	q := sq.Select(articleColumns...).
		From("articles").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit))

	if f.Agent != "" {
		q = q.Where(sq.Eq{"agent_id": f.Agent})
	}
	if f.Tag != "" {
		q = q.Where(sq.Like{"tags": "%" + f.Tag + "%"})
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []model.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

// GetBySlug returns the full article row, or nil when no row matches.
func (r *ArticleRepository) GetBySlug(slug string) (*model.Article, error) {
	query, args, err := sq.Select(articleColumns...).
		From("articles").
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var a model.Article
	var createdAt int64
	err = r.db.QueryRow(query, args...).Scan(
		&a.ID, &a.Slug, &a.Title, &a.Summary, &a.Content,
		&a.ImageURL, &a.AgentID, &a.ConfidenceScore, &a.Tags, &createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	a.CreatedAt = time.Unix(0, createdAt)
	return &a, nil
}

// Create inserts the article row, then back-fills the agent and tag
// registries with insert-or-ignore semantics. An insert failure (duplicate
// slug, NOT NULL violation) aborts before any registry write. The registry
// tables are derived conveniences; the tags string on the row stays
// authoritative.
func (r *ArticleRepository) Create(a *model.Article) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	res, err := r.db.Exec(`
		INSERT INTO articles (slug, title, summary, content, image_url, agent_id, confidence_score, tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.Slug, a.Title, a.Summary, a.Content, a.ImageURL, a.AgentID, a.ConfidenceScore, a.Tags, a.CreatedAt.UnixNano())
	if err != nil {
		return err
	}

	if id, err := res.LastInsertId(); err == nil {
		a.ID = id
	}

	if _, err := r.db.Exec(`INSERT OR IGNORE INTO agents (name) VALUES (?)`, a.AgentID); err != nil {
		return err
	}

	for _, tag := range strings.Split(a.Tags, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, err := r.db.Exec(`INSERT OR IGNORE INTO tags (name) VALUES (?)`, tag); err != nil {
			return err
		}
	}

	return nil
}

func (r *ArticleRepository) CountArticles() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM articles`).Scan(&total)
	return total, err
}

func (r *ArticleRepository) GetAllTags() ([]model.Tag, error) {
	names, err := r.registryNames("tags")
	if err != nil {
		return nil, err
	}

	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, model.Tag{Name: name})
	}
	return tags, nil
}

func (r *ArticleRepository) GetAllAgents() ([]model.Agent, error) {
	names, err := r.registryNames("agents")
	if err != nil {
		return nil, err
	}

	agents := make([]model.Agent, 0, len(names))
	for _, name := range names {
		agents = append(agents, model.Agent{Name: name})
	}
	return agents, nil
}

func (r *ArticleRepository) registryNames(table string) ([]string, error) {
	query, _, err := sq.Select("name").From(table).OrderBy("name").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return names, nil
}

func scanArticle(rows *sql.Rows) (model.Article, error) {
	var a model.Article
	var createdAt int64
	err := rows.Scan(
		&a.ID, &a.Slug, &a.Title, &a.Summary, &a.Content,
		&a.ImageURL, &a.AgentID, &a.ConfidenceScore, &a.Tags, &createdAt,
	)
	if err != nil {
		return model.Article{}, err
	}
	a.CreatedAt = time.Unix(0, createdAt)
	return a, nil
}
