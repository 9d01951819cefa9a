// Package writer renders a drawing snapshot into a news article, either from
// a fixed template or through a text generation service.
package writer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/google/logger"

	"powerball-news/internal/apperrors"
	"powerball-news/internal/models"
)

// StaticHeadline is the headline of every template article.
const StaticHeadline = "No One Wins Powerball Jackpot at Last Drawing"

// The template article always reports no jackpot winner, whatever the
// winners section says. Generated articles do look at the winners.
const staticBody = `No one won the Powerball jackpot at the last drawing on {{.DrawingDates.LastDrawDate}}.` +
	`The winning numbers for the draw were {{.WinningNumbers}}, ` +
	`but no one was able to match them all correctly. ` + "\n\n" +
	`The next Powerball drawing will be on {{.DrawingDates.NextDrawDate}}, ` +
	`and the estimated jackpot is {{.EstimatedJackpot}}.` +
	`Players have a chance to win big if they can correctly match all five numbers plus the Powerball number.`

var staticTmpl = template.Must(template.New("static").Parse(staticBody))

var headlinePattern = regexp.MustCompile(`(?m)^Headline: (.+)\n\n`)

// Generator turns a prompt into text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Writer renders articles.
type Writer struct {
	generator Generator
}

// New creates a Writer. generator may be nil, in which case generated
// articles fail and template articles still work.
func New(generator Generator) *Writer {
	return &Writer{generator: generator}
}

// Write renders an article for snapshot. With useGeneratedText the text
// comes from the generator, otherwise from the fixed template. A failed
// generation never falls back to the template.
func (w *Writer) Write(ctx context.Context, snapshot *models.DrawingSnapshot, useGeneratedText bool) (*models.ArticleResult, error) {
	if useGeneratedText {
		return w.WriteGenerated(ctx, snapshot)
	}
	return WriteStatic(snapshot)
}

// WriteStatic fills the fixed template with the snapshot's fields.
func WriteStatic(snapshot *models.DrawingSnapshot) (*models.ArticleResult, error) {
	var body strings.Builder
	if err := staticTmpl.Execute(&body, snapshot); err != nil {
		return nil, fmt.Errorf("execute static template: %w", err)
	}
	return &models.ArticleResult{
		Headline: StaticHeadline,
		Body:     body.String(),
	}, nil
}

// WriteGenerated asks the generator for an article and splits the reply
// into headline and body.
func (w *Writer) WriteGenerated(ctx context.Context, snapshot *models.DrawingSnapshot) (*models.ArticleResult, error) {
	if w.generator == nil {
		return nil, apperrors.New(apperrors.KindGeneration, "generate", errors.New("no text generator configured"))
	}

	prompt, err := BuildPrompt(snapshot)
	if err != nil {
		return nil, apperrors.New(apperrors.KindGeneration, "build prompt", err)
	}

	text, err := w.generator.Generate(ctx, prompt)
	if err != nil {
		if _, ok := apperrors.KindOf(err); !ok {
			err = apperrors.New(apperrors.KindGeneration, "generate", err)
		}
		return nil, err
	}
	logger.V(1).Infof("Generated %d characters of article text", len(text))

	return ParseGenerated(text)
}

// ParseGenerated splits generated text into a leading "Headline: ..." line
// and the remaining body. Text without such a line is an error.
func ParseGenerated(text string) (*models.ArticleResult, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	match := headlinePattern.FindStringSubmatch(text)
	if match == nil {
		return nil, apperrors.New(apperrors.KindGeneration, "parse headline",
			fmt.Errorf("no %q line in generated text", "Headline: "))
	}
	headline := strings.TrimSpace(match[1])
	if headline == "" {
		return nil, apperrors.New(apperrors.KindGeneration, "parse headline", errors.New("empty headline"))
	}

	body := strings.TrimSpace(headlinePattern.ReplaceAllString(text, ""))
	return &models.ArticleResult{Headline: headline, Body: body}, nil
}
