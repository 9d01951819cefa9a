package services

import (
	"context"
	"errors"

	"github.com/google/logger"

	"powerball-news/internal/apperrors"
	"powerball-news/internal/models"
	"powerball-news/internal/scraper"
)

// ArticleWriter renders a snapshot into an article.
type ArticleWriter interface {
	Write(ctx context.Context, snapshot *models.DrawingSnapshot, useGeneratedText bool) (*models.ArticleResult, error)
}

// ArticleService runs the scrape and render steps for one article.
// It holds no per-request state.
type ArticleService struct {
	source scraper.Source
	writer ArticleWriter
}

// NewArticleService creates a new ArticleService.
func NewArticleService(source scraper.Source, writer ArticleWriter) *ArticleService {
	return &ArticleService{
		source: source,
		writer: writer,
	}
}

// GenerateArticle scrapes the current drawing and writes an article about it.
// Errors carry an apperrors kind; no partial result is ever returned.
func (s *ArticleService) GenerateArticle(ctx context.Context, useGeneratedText bool) (*models.ArticleResult, error) {
	snapshot, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		return nil, apperrors.New(apperrors.KindExtraction, "snapshot", errors.New("source returned no snapshot"))
	}
	logger.V(1).Infof("Scraped drawing of %s with numbers %q", snapshot.DrawingDates.LastDrawDate, snapshot.WinningNumbers)

	article, err := s.writer.Write(ctx, snapshot, useGeneratedText)
	if err != nil {
		return nil, err
	}
	return article, nil
}
