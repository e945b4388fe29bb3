package model

import (
	"time"

	"github.com/google/uuid"
)

// AlgorithmScore is the weighted score one algorithm's result received.
type AlgorithmScore struct {
	Algorithm Algorithm `json:"algorithm"`
	Score     float64   `json:"score"`
}

// Report bundles a result with the inputs and scoring metadata that produced it.
type Report struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Stocks    []StockPiece     `json:"stocks"`
	Cuts      []CutPiece       `json:"cuts"`
	Mode      StockMode        `json:"mode"`
	Best      Algorithm        `json:"best"`
	Winners   []Algorithm      `json:"winners"`
	Scores    []AlgorithmScore `json:"scores"`
	Result    Result           `json:"result"`
}

// NewReport builds a report for a finished optimization. In unlimited stock
// mode the unused stock list is meaningless and is cleared.
func NewReport(stocks []StockPiece, cuts []CutPiece, mode StockMode, best Algorithm, winners []Algorithm, scores []AlgorithmScore, result Result) Report {
	if mode.Unlimited {
		result.UnplacedStocks = []float64{}
	}
	return Report{
		ID:        uuid.New().String()[:8],
		CreatedAt: time.Now().UTC(),
		Stocks:    stocks,
		Cuts:      cuts,
		Mode:      mode,
		Best:      best,
		Winners:   winners,
		Scores:    scores,
		Result:    result,
	}
}

// UsagePercent returns the usage rate formatted as a percentage value.
func (r Report) UsagePercent() float64 {
	return r.Result.UsageRate * 100.0
}

// ScoreFor returns the recorded score of an algorithm and whether it ran.
func (r Report) ScoreFor(a Algorithm) (float64, bool) {
	for _, s := range r.Scores {
		if s.Algorithm == a {
			return s.Score, true
		}
	}
	return 0, false
}
