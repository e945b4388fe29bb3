package engine

import (
	"io"
	"log/slog"
	"math/rand"

	"github.com/piwi3910/BarCut/internal/model"
)

// Score weights used to rank algorithm results.
const (
	weightUnplaced = 0.5
	weightUsage    = 0.3
	weightStocks   = 0.2
)

// scoreTolerance absorbs rounding between results that differ only in the
// order their lengths were summed.
const scoreTolerance = 1e-9

// Optimizer runs several cutting algorithms over the same input and keeps
// the best-scoring result.
type Optimizer struct {
	Algorithms []CuttingAlgorithm
	Logger     *slog.Logger
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithAlgorithms replaces the default algorithm set.
func WithAlgorithms(algorithms ...CuttingAlgorithm) Option {
	return func(o *Optimizer) {
		o.Algorithms = algorithms
	}
}

// WithLogger sets the logger that receives the scoring summary.
func WithLogger(l *slog.Logger) Option {
	return func(o *Optimizer) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithGeneticConfig applies config to every genetic algorithm in the set.
func WithGeneticConfig(config GeneticConfig) Option {
	return func(o *Optimizer) {
		for i, a := range o.Algorithms {
			if g, ok := a.(Genetic); ok {
				g.Config = config
				o.Algorithms[i] = g
			}
		}
	}
}

// WithRand injects the random source of the genetic algorithm. Used to make
// runs reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(o *Optimizer) {
		for i, a := range o.Algorithms {
			if g, ok := a.(Genetic); ok {
				g.Rand = rng
				o.Algorithms[i] = g
			}
		}
	}
}

// New returns an Optimizer running FFD, BFD and the genetic search. Options
// are applied in order, so WithAlgorithms should precede options that tune
// the algorithm set.
func New(opts ...Option) *Optimizer {
	o := &Optimizer{
		Algorithms: DefaultAlgorithms(),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Outcome is the winning result plus the scoring that selected it.
type Outcome struct {
	Result  model.Result
	Best    model.Algorithm
	Winners []model.Algorithm // Every algorithm that reached the top score
	Scores  []model.AlgorithmScore
}

// Score rates a result: fewer unplaced cuttings, higher usage and fewer
// stocks score higher. Zero unplaced cuttings contributes the full 0.5.
func Score(r model.Result) float64 {
	unplacedScore := weightUnplaced * (1 / (1 + float64(len(r.UnplacedCuttings))))
	usageScore := weightUsage * r.UsageRate
	stocksPenalty := weightStocks * float64(len(r.CuttingPlans))
	return unplacedScore + usageScore - stocksPenalty
}

// Optimize runs every algorithm, scores the results and returns the best.
// Equal scores are resolved Genetic, then BFD, then FFD.
func (o *Optimizer) Optimize(stocks, cuttings []float64) Outcome {
	compared := o.Compare(stocks, cuttings)
	if len(compared) == 0 {
		return Outcome{Result: model.NewResult(nil, cloneLengths(cuttings), cloneLengths(stocks))}
	}

	maxScore := compared[0].Score
	for _, c := range compared[1:] {
		if c.Score > maxScore {
			maxScore = c.Score
		}
	}

	outcome := Outcome{Scores: make([]model.AlgorithmScore, 0, len(compared))}
	bestIdx := -1
	for i, c := range compared {
		outcome.Scores = append(outcome.Scores, model.AlgorithmScore{Algorithm: c.Algorithm, Score: c.Score})
		if maxScore-c.Score > scoreTolerance {
			continue
		}
		outcome.Winners = append(outcome.Winners, c.Algorithm)
		if bestIdx < 0 || tiePriority(c.Algorithm) > tiePriority(compared[bestIdx].Algorithm) {
			bestIdx = i
		}
	}

	outcome.Best = compared[bestIdx].Algorithm
	outcome.Result = compared[bestIdx].Result

	attrs := []any{
		slog.String("best", outcome.Best.String()),
		slog.Any("winners", outcome.Winners),
		slog.Int("stocks", len(stocks)),
		slog.Int("cuttings", len(cuttings)),
	}
	for _, s := range outcome.Scores {
		attrs = append(attrs, slog.Float64("score_"+string(s.Algorithm), s.Score))
	}
	o.Logger.Info("cutting plan selected", attrs...)

	return outcome
}

// Optimize runs the default optimizer without logging.
func Optimize(stocks, cuttings []float64) Outcome {
	return New().Optimize(stocks, cuttings)
}

func cloneLengths(lengths []float64) []float64 {
	out := make([]float64, len(lengths))
	copy(out, lengths)
	return out
}
