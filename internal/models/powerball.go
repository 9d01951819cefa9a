package models

// DrawingDates holds the display labels of the last and the upcoming drawing.
type DrawingDates struct {
	LastDrawDate string `json:"lastDrawDate"`
	NextDrawDate string `json:"nextDrawDate"`
}

// WinnerRecord is one row of the winners section: the game it belongs to,
// the kind of winner announced, and where the winning ticket was sold.
type WinnerRecord struct {
	GameName       string `json:"gameName"`
	WinnerType     string `json:"winnerType"`
	WinnerLocation string `json:"winnerLocation"`
}

// DrawingSnapshot is the assembled data of one scrape.
// Winners keeps the display order of the page; game names are unique.
type DrawingSnapshot struct {
	WinningNumbers   string         `json:"winningNumbers"`
	DrawingDates     DrawingDates   `json:"drawingDates"`
	Winners          []WinnerRecord `json:"winners"`
	EstimatedJackpot string         `json:"estimatedJackpot"`
}

// Winner looks up the winner record for a game by name.
func (s *DrawingSnapshot) Winner(gameName string) (WinnerRecord, bool) {
	for _, w := range s.Winners {
		if w.GameName == gameName {
			return w, true
		}
	}
	return WinnerRecord{}, false
}

// ArticleResult is the rendered news article.
type ArticleResult struct {
	Headline string `json:"headline"`
	Body     string `json:"body"`
}
