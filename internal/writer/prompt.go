package writer

import (
	"strings"
	"text/template"

	"powerball-news/internal/models"
)

// jackpotGame is the winners entry that decides the jackpot line.
const jackpotGame = "Powerball"

const promptText = `I want you to act as a News Article Writer about Powerball lottery for a national news outlet.
Write an engaging article within 300 words based on the information given below from the latest drawing of the Powerball:

Last Draw Date: {{.DrawingDates.LastDrawDate}}
Winning Numbers: {{.WinningNumbers}}
Jackpot Winner: {{jackpotWinner .}}
Next Draw Date: {{.DrawingDates.NextDrawDate}}
Estimated Jackpot: {{.EstimatedJackpot}}

Start with a line of the form "Headline: <headline>" followed by a blank line, then the article body.
The headline's title should indicate if there was a Powerball winner at the last drawing.
The article body should indicate if there was a winning number at the last drawing.
If there was a winner at the last drawing, the article body should include which state the winner was from.
The article body should indicate when the next drawing will be.
The article body should indicate how much the potential prize for the next drawing would be.`

var promptTmpl = template.Must(template.New("prompt").
	Funcs(template.FuncMap{"jackpotWinner": JackpotWinner}).
	Parse(promptText))

// BuildPrompt renders the generation prompt for a snapshot.
func BuildPrompt(snapshot *models.DrawingSnapshot) (string, error) {
	var sb strings.Builder
	if err := promptTmpl.Execute(&sb, snapshot); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// JackpotWinner describes the jackpot winner of the last drawing: "No One"
// when the Powerball entry lists no location, otherwise the winning state.
func JackpotWinner(snapshot *models.DrawingSnapshot) string {
	w, ok := snapshot.Winner(jackpotGame)
	if !ok || w.WinnerLocation == "" || w.WinnerLocation == "None" {
		return "No One"
	}
	return "From the State " + w.WinnerLocation
}
