package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"

	"powerball-news/internal/apperrors"
	"powerball-news/internal/models"
)

// Fixed response texts.
const (
	HealthMessage   = "API server is running fine!"
	NotFoundMessage = "No article was created/found!"
)

// ArticleGenerator produces one article per call.
type ArticleGenerator interface {
	GenerateArticle(ctx context.Context, useGeneratedText bool) (*models.ArticleResult, error)
}

// problem is the error body returned by the API.
type problem struct {
	Detail string `json:"detail"`
	Status int    `json:"status"`
	Title  string `json:"title"`
	Type   string `json:"type"`
}

func newProblem(status int, detail string) problem {
	return problem{
		Detail: detail,
		Status: status,
		Title:  http.StatusText(status),
		Type:   "about:blank",
	}
}

// HTTPHandler holds the dependencies for the HTTP handlers.
type HTTPHandler struct {
	articles ArticleGenerator
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(articles ArticleGenerator) *HTTPHandler {
	return &HTTPHandler{articles: articles}
}

// RegisterRoutes registers the API routes.
func (h *HTTPHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/powerball-article", h.GetArticle)
}

// Health reports that the server is up.
func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": HealthMessage})
}

// GetArticle scrapes the latest drawing and returns an article about it.
// use_ai selects generated text and defaults to true. Every pipeline
// failure is answered with 404 and the same message.
func (h *HTTPHandler) GetArticle(c *gin.Context) {
	useAI, err := strconv.ParseBool(c.DefaultQuery("use_ai", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, newProblem(http.StatusBadRequest, "use_ai must be a boolean"))
		return
	}

	article, err := h.articles.GenerateArticle(c.Request.Context(), useAI)
	if err != nil {
		status := statusFor(err)
		kind, _ := apperrors.KindOf(err)
		logger.Errorf("[%s] Error: article generation failed (use_ai=%t, kind=%s): %v", RequestID(c), useAI, kind, err)
		_ = c.Error(err)
		c.JSON(status, newProblem(status, NotFoundMessage))
		return
	}

	c.JSON(http.StatusOK, article)
}

// statusFor maps a pipeline error to a response status. Clients only ever
// see "no article": every kind, and any untyped error, is a 404.
func statusFor(err error) int {
	kind, ok := apperrors.KindOf(err)
	if !ok {
		return http.StatusNotFound
	}
	switch kind {
	case apperrors.KindFetch:
		return http.StatusNotFound
	case apperrors.KindExtraction:
		return http.StatusNotFound
	case apperrors.KindGeneration:
		return http.StatusNotFound
	default:
		return http.StatusNotFound
	}
}
