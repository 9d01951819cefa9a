package scraper

import (
	"strings"
	"testing"

	_ "embed"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powerball-news/internal/apperrors"
	"powerball-news/internal/models"
)

//go:embed testdata/powerball.html
var powerballPage string

func loadFixture(t *testing.T) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(powerballPage))
	require.NoError(t, err)
	return doc
}

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

var goldenSnapshot = &models.DrawingSnapshot{
	WinningNumbers: "11 23 35 49 62 7",
	DrawingDates: models.DrawingDates{
		LastDrawDate: "Mon, Oct 13, 2025",
		NextDrawDate: "Wed, Oct 15, 2025",
	},
	Winners: []models.WinnerRecord{
		{GameName: "Powerball", WinnerType: "Jackpot Winners", WinnerLocation: "None"},
		{GameName: "Match 5 + Power Play", WinnerType: "$2 Million Winners", WinnerLocation: "CA, TX"},
		{GameName: "Match 5", WinnerType: "$1 Million Winners", WinnerLocation: "FL"},
	},
	EstimatedJackpot: "$610 Million",
}

func TestAssembleGoldenDocument(t *testing.T) {
	snapshot, err := Assemble(loadFixture(t))
	require.NoError(t, err)
	assert.Equal(t, goldenSnapshot, snapshot)
}

func TestAssembleMissingSection(t *testing.T) {
	tests := []struct {
		name   string
		remove string
	}{
		{name: "winning numbers", remove: "div#numbers div.item-powerball"},
		{name: "drawing dates", remove: "div#next-drawing h5.title-date"},
		{name: "winners", remove: "div#winners"},
		{name: "jackpot", remove: "div#next-drawing span.game-jackpot-number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := loadFixture(t)
			doc.Find(tt.remove).Remove()

			snapshot, err := Assemble(doc)
			require.Error(t, err)
			assert.Nil(t, snapshot)
			assert.ErrorIs(t, err, apperrors.ErrExtraction)
		})
	}
}

func TestExtractWinningNumbersMissingContainer(t *testing.T) {
	_, err := ExtractWinningNumbers(docFromHTML(t, `<div id="next-drawing"></div>`))
	assert.ErrorIs(t, err, apperrors.ErrExtraction)
}

func TestExtractDrawingDatesUsesSeparateContainers(t *testing.T) {
	doc := docFromHTML(t, `
		<div id="numbers"><h5 class="title-date">Sat, Oct 11</h5></div>
		<section><div id="next-drawing"><h5 class="title-date">Mon, Oct 13</h5></div></section>`)

	dates, err := ExtractDrawingDates(doc)
	require.NoError(t, err)
	assert.Equal(t, models.DrawingDates{LastDrawDate: "Sat, Oct 11", NextDrawDate: "Mon, Oct 13"}, dates)

	_, err = ExtractDrawingDates(docFromHTML(t, `<div id="numbers"><h5 class="title-date">Sat</h5></div>`))
	assert.ErrorIs(t, err, apperrors.ErrExtraction)
}

func TestExtractWinnersDuplicateGameLastWriteWins(t *testing.T) {
	doc := docFromHTML(t, `
		<div id="winners">
			<div class="winners-group"><span class="game-name">Powerball</span><span class="winner-type">Jackpot</span><span class="winner-location">None</span></div>
			<div class="winners-group"><span class="game-name">Match 5</span><span class="winner-type">$1 Million</span><span class="winner-location">NY</span></div>
			<div class="winners-group"><span class="game-name">Powerball</span><span class="winner-type">Jackpot</span><span class="winner-location">OH</span></div>
		</div>`)

	winners, err := ExtractWinners(doc)
	require.NoError(t, err)
	assert.Equal(t, []models.WinnerRecord{
		{GameName: "Powerball", WinnerType: "Jackpot", WinnerLocation: "OH"},
		{GameName: "Match 5", WinnerType: "$1 Million", WinnerLocation: "NY"},
	}, winners)
}

func TestExtractWinnersMissingLabel(t *testing.T) {
	doc := docFromHTML(t, `
		<div id="winners">
			<div class="winners-group"><span class="game-name">Powerball</span><span class="winner-type">Jackpot</span></div>
		</div>`)

	winners, err := ExtractWinners(doc)
	assert.Nil(t, winners)
	assert.ErrorIs(t, err, apperrors.ErrExtraction)
}

func TestExtractJackpotKeepsDisplayText(t *testing.T) {
	doc := docFromHTML(t, `<div id="next-drawing"><span class="game-jackpot-number">€1.2 Billion*</span></div>`)

	jackpot, err := ExtractJackpot(doc)
	require.NoError(t, err)
	assert.Equal(t, "€1.2 Billion*", jackpot)
}
