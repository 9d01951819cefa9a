package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/logger"

	"powerball-news/internal/apperrors"
	"powerball-news/internal/models"
)

// Selectors for the powerball.com results page.
const (
	latestDrawingSelector = "div#numbers"
	nextDrawingSelector   = "div#next-drawing"
	winnersSelector       = "div#winners"

	numberItemSelector     = "div.item-powerball"
	drawDateSelector       = "h5.title-date"
	winnersGroupSelector   = "div.winners-group"
	gameNameSelector       = "span.game-name"
	winnerTypeSelector     = "span.winner-type"
	winnerLocationSelector = "span.winner-location"
	jackpotSelector        = "span.game-jackpot-number"
)

// ExtractWinningNumbers joins the latest drawing's number balls with single
// spaces, in page order.
func ExtractWinningNumbers(doc *goquery.Document) (string, error) {
	card, err := container(doc, latestDrawingSelector, "winning numbers")
	if err != nil {
		return "", err
	}

	items := card.Find(numberItemSelector)
	if items.Length() == 0 {
		return "", missing("winning numbers", numberItemSelector)
	}

	numbers := make([]string, 0, items.Length())
	items.Each(func(_ int, s *goquery.Selection) {
		numbers = append(numbers, strings.TrimSpace(s.Text()))
	})
	return strings.Join(numbers, " "), nil
}

// ExtractDrawingDates reads the date labels of the latest and the next
// drawing. The two live in separate containers.
func ExtractDrawingDates(doc *goquery.Document) (models.DrawingDates, error) {
	latest, err := container(doc, latestDrawingSelector, "last draw date")
	if err != nil {
		return models.DrawingDates{}, err
	}
	last, err := label(latest, drawDateSelector, "last draw date")
	if err != nil {
		return models.DrawingDates{}, err
	}

	next, err := container(doc, nextDrawingSelector, "next draw date")
	if err != nil {
		return models.DrawingDates{}, err
	}
	nextDate, err := label(next, drawDateSelector, "next draw date")
	if err != nil {
		return models.DrawingDates{}, err
	}

	return models.DrawingDates{LastDrawDate: last, NextDrawDate: nextDate}, nil
}

// ExtractWinners reads every winners group in display order. A game name
// seen twice keeps its first position and takes the later values.
func ExtractWinners(doc *goquery.Document) ([]models.WinnerRecord, error) {
	card, err := container(doc, winnersSelector, "winners")
	if err != nil {
		return nil, err
	}

	groups := card.Find(winnersGroupSelector)
	if groups.Length() == 0 {
		return nil, missing("winners", winnersGroupSelector)
	}

	winners := make([]models.WinnerRecord, 0, groups.Length())
	index := make(map[string]int, groups.Length())

	var extractErr error
	groups.EachWithBreak(func(_ int, group *goquery.Selection) bool {
		var record models.WinnerRecord
		if record.GameName, extractErr = label(group, gameNameSelector, "winners"); extractErr != nil {
			return false
		}
		if record.WinnerType, extractErr = label(group, winnerTypeSelector, "winners"); extractErr != nil {
			return false
		}
		if record.WinnerLocation, extractErr = label(group, winnerLocationSelector, "winners"); extractErr != nil {
			return false
		}

		if i, seen := index[record.GameName]; seen {
			logger.Warningf("Duplicate winners entry for game %q, keeping the later one", record.GameName)
			winners[i] = record
			return true
		}
		index[record.GameName] = len(winners)
		winners = append(winners, record)
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}
	return winners, nil
}

// ExtractJackpot returns the next drawing's estimated jackpot as displayed.
func ExtractJackpot(doc *goquery.Document) (string, error) {
	next, err := container(doc, nextDrawingSelector, "estimated jackpot")
	if err != nil {
		return "", err
	}
	return label(next, jackpotSelector, "estimated jackpot")
}

func container(doc *goquery.Document, selector, field string) (*goquery.Selection, error) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, missing(field, selector)
	}
	return sel, nil
}

func label(parent *goquery.Selection, selector, field string) (string, error) {
	sel := parent.Find(selector).First()
	if sel.Length() == 0 {
		return "", missing(field, selector)
	}
	return strings.TrimSpace(sel.Text()), nil
}

func missing(field, selector string) error {
	return apperrors.Newf(apperrors.KindExtraction, field, "element %q not found", selector)
}
