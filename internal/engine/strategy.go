package engine

import (
	"math/rand"

	"github.com/piwi3910/BarCut/internal/model"
)

// CuttingAlgorithm is one way of turning stock and cutting lengths into a
// Result. Implementations must not retain or modify their inputs.
type CuttingAlgorithm interface {
	Name() model.Algorithm
	Run(stocks, cuttings []float64) model.Result
}

// FFD is the First-Fit-Decreasing algorithm.
type FFD struct{}

func (FFD) Name() model.Algorithm { return model.AlgorithmFFD }

func (FFD) Run(stocks, cuttings []float64) model.Result {
	return FirstFitDecreasing(stocks, cuttings)
}

// BFD is the Best-Fit-Decreasing algorithm.
type BFD struct{}

func (BFD) Name() model.Algorithm { return model.AlgorithmBFD }

func (BFD) Run(stocks, cuttings []float64) model.Result {
	return BestFitDecreasing(stocks, cuttings)
}

// Genetic is the genetic search. A nil Rand gives a fresh time-seeded
// generator per run. A non-nil Rand must not be shared with another
// concurrently running Genetic.
type Genetic struct {
	Config GeneticConfig
	Rand   *rand.Rand
}

func (Genetic) Name() model.Algorithm { return model.AlgorithmGenetic }

func (g Genetic) Run(stocks, cuttings []float64) model.Result {
	return OptimizeGenetic(stocks, cuttings, g.Config, g.Rand)
}

// DefaultAlgorithms returns FFD, BFD and a default-configured genetic search.
func DefaultAlgorithms() []CuttingAlgorithm {
	return []CuttingAlgorithm{
		FFD{},
		BFD{},
		Genetic{Config: DefaultGeneticConfig()},
	}
}

// tiePriority orders algorithms whose scores are equal; higher wins.
func tiePriority(a model.Algorithm) int {
	switch a {
	case model.AlgorithmGenetic:
		return 3
	case model.AlgorithmBFD:
		return 2
	case model.AlgorithmFFD:
		return 1
	default:
		return 0
	}
}

// AlgorithmByName builds the algorithm registered under name.
func AlgorithmByName(name model.Algorithm, config GeneticConfig, rng *rand.Rand) (CuttingAlgorithm, bool) {
	switch name {
	case model.AlgorithmFFD:
		return FFD{}, true
	case model.AlgorithmBFD:
		return BFD{}, true
	case model.AlgorithmGenetic:
		return Genetic{Config: config, Rand: rng}, true
	}
	return nil, false
}
