// Package scraper turns the powerball.com results page into a DrawingSnapshot.
package scraper

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/logger"

	"powerball-news/internal/apperrors"
	"powerball-news/internal/models"
)

// Source produces the current drawing data. The article pipeline only
// depends on this interface, so the page scrape can be replaced by another
// data source without touching rendering.
type Source interface {
	Snapshot(ctx context.Context) (*models.DrawingSnapshot, error)
}

// Assemble runs all extractions against one document. Any failure fails the
// whole snapshot.
func Assemble(doc *goquery.Document) (*models.DrawingSnapshot, error) {
	numbers, err := ExtractWinningNumbers(doc)
	if err != nil {
		return nil, err
	}
	winners, err := ExtractWinners(doc)
	if err != nil {
		return nil, err
	}
	jackpot, err := ExtractJackpot(doc)
	if err != nil {
		return nil, err
	}
	dates, err := ExtractDrawingDates(doc)
	if err != nil {
		return nil, err
	}

	return &models.DrawingSnapshot{
		WinningNumbers:   numbers,
		DrawingDates:     dates,
		Winners:          winners,
		EstimatedJackpot: jackpot,
	}, nil
}

// ParseHTML parses a rendered page and assembles its snapshot.
func ParseHTML(html string) (*models.DrawingSnapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, apperrors.New(apperrors.KindExtraction, "parse html", err)
	}
	return Assemble(doc)
}

// PowerballScraper is the Source backed by the live results page.
type PowerballScraper struct {
	fetcher Fetcher
	url     string
}

// NewPowerballScraper creates a scraper for the page at url.
func NewPowerballScraper(fetcher Fetcher, url string) *PowerballScraper {
	return &PowerballScraper{fetcher: fetcher, url: url}
}

// Snapshot fetches the page and assembles the drawing data from it.
func (s *PowerballScraper) Snapshot(ctx context.Context) (*models.DrawingSnapshot, error) {
	html, err := s.fetcher.Fetch(ctx, s.url)
	if err != nil {
		if _, ok := apperrors.KindOf(err); !ok {
			err = apperrors.New(apperrors.KindFetch, "fetch "+s.url, err)
		}
		return nil, err
	}
	logger.V(1).Infof("Fetched %d bytes from %s", len(html), s.url)

	return ParseHTML(html)
}
