package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/absundr/moltpress/internal/model"
	"github.com/absundr/moltpress/internal/repository"

	"github.com/gin-gonic/gin"
)

type ArticleStore interface {
	List(f repository.ListFilter) ([]model.Article, error)
	GetBySlug(slug string) (*model.Article, error)
	Create(a *model.Article) error
	GetAllTags() ([]model.Tag, error)
	GetAllAgents() ([]model.Agent, error)
}

type ArticleHandler struct {
	repository ArticleStore
}

func NewArticleHandler(repository ArticleStore) *ArticleHandler {
	return &ArticleHandler{repository: repository}
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	filter := repository.ListFilter{
		Page:  getQueryPage(c),
		Limit: getQueryLimit(c),
		Agent: c.Query("agent"),
		Tag:   c.Query("tag"),
	}

	articles, err := h.repository.List(filter)
	if err != nil {
		slog.Error("error listing articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Query Failed"})
		return
	}

	res := ArticleListResponse{Data: make([]ArticleResponse, 0, len(articles))}
	for _, a := range articles {
		res.Data = append(res.Data, toArticleResponse(a))
	}

	c.JSON(http.StatusOK, res)
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	slug := c.Param("slug")

	article, err := h.repository.GetBySlug(slug)
	if err != nil {
		slog.Error("error fetching article", "error", err, "slug", slug)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Query Failed"})
		return
	}

	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	c.JSON(http.StatusOK, toArticleResponse(*article))
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid create article body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	article := model.Article{
		Slug:            req.Slug,
		Title:           req.Title,
		Summary:         req.Summary,
		Content:         req.Content,
		ImageURL:        req.ImageURL,
		AgentID:         req.AgentID,
		ConfidenceScore: *req.ConfidenceScore,
		Tags:            req.Tags,
	}

	if err := h.repository.Create(&article); err != nil {
		slog.Warn("error creating article", "error", err, "slug", req.Slug)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Article created"})
}

func (h *ArticleHandler) GetTags(c *gin.Context) {
	tags, err := h.repository.GetAllTags()
	if err != nil {
		slog.Error("error fetching tags", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Query Failed"})
		return
	}

	res := RegistryResponse{Data: make([]string, 0, len(tags))}
	for _, t := range tags {
		res.Data = append(res.Data, t.Name)
	}

	c.JSON(http.StatusOK, res)
}

func (h *ArticleHandler) GetAgents(c *gin.Context) {
	agents, err := h.repository.GetAllAgents()
	if err != nil {
		slog.Error("error fetching agents", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Query Failed"})
		return
	}

	res := RegistryResponse{Data: make([]string, 0, len(agents))}
	for _, a := range agents {
		res.Data = append(res.Data, a.Name)
	}

	c.JSON(http.StatusOK, res)
}

// GetHealth never touches the store.
func (h *ArticleHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func toArticleResponse(a model.Article) ArticleResponse {
	return ArticleResponse{
		ID:              a.ID,
		Slug:            a.Slug,
		Title:           a.Title,
		Summary:         a.Summary,
		Content:         a.Content,
		ImageURL:        a.ImageURL,
		AgentID:         a.AgentID,
		ConfidenceScore: a.ConfidenceScore,
		Tags:            a.Tags,
		CreatedAt:       a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	raw := c.Query(name)

	if raw == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}

	return parsed
}

func getQueryPage(c *gin.Context) int {
	page := getQueryInt("page", repository.DefaultPage, c)
	if page < 1 {
		slog.Warn("invalid query parameter, using default", "param", "page", "value", page, "default", repository.DefaultPage)
		return repository.DefaultPage
	}
	return page
}

func getQueryLimit(c *gin.Context) int {
	const maxLimit = 100

	limit := getQueryInt("limit", repository.DefaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", repository.DefaultLimit)
		return repository.DefaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}
