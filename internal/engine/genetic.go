package engine

import (
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/BarCut/internal/model"
)

// GeneticConfig holds parameters for the genetic search.
type GeneticConfig struct {
	PopulationSize int     `json:"population_size" mapstructure:"population_size"`
	Generations    int     `json:"generations" mapstructure:"generations"`
	MutationRate   float64 `json:"mutation_rate" mapstructure:"mutation_rate"`
	// Workers bounds how many individuals are evaluated in parallel.
	// It has no effect on the outcome.
	Workers int `json:"workers" mapstructure:"workers"`
}

// DefaultGeneticConfig returns the stock parameters of the search.
func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.1,
		Workers:        runtime.NumCPU(),
	}
}

// Validate reports the first out-of-range parameter.
func (c GeneticConfig) Validate() error {
	if c.PopulationSize < 1 {
		return fmt.Errorf("population size must be positive, got %d", c.PopulationSize)
	}
	if c.Generations < 1 {
		return fmt.Errorf("generations must be positive, got %d", c.Generations)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("mutation rate must be within [0, 1], got %g", c.MutationRate)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// normalized replaces unusable values with defaults so a run never fails.
func (c GeneticConfig) normalized() GeneticConfig {
	def := DefaultGeneticConfig()
	if c.PopulationSize < 1 {
		c.PopulationSize = def.PopulationSize
	}
	if c.Generations < 1 {
		c.Generations = def.Generations
	}
	if c.MutationRate < 0 {
		c.MutationRate = 0
	}
	if c.MutationRate > 1 {
		c.MutationRate = 1
	}
	if c.Workers < 1 {
		c.Workers = def.Workers
	}
	return c
}

// survivorFraction is the share of each generation kept as parents.
const survivorFraction = 0.2

// Fitness weights.
const (
	placedWeight    = 1000.0
	usageWeight     = 100.0
	stockUsePenalty = 5.0
)

// chromosome is one candidate assignment: genes[i] is the index of the stock
// that cutting i is taken from.
type chromosome struct {
	genes   []int
	fitness float64
}

// geneticOptimizer implements the genetic search for one input set.
type geneticOptimizer struct {
	config   GeneticConfig
	stocks   []float64
	cuttings []float64
	rng      *rand.Rand
}

func newGeneticOptimizer(config GeneticConfig, stocks, cuttings []float64, rng *rand.Rand) *geneticOptimizer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &geneticOptimizer{
		config:   config.normalized(),
		stocks:   stocks,
		cuttings: cuttings,
		rng:      rng,
	}
}

// optimize runs the fixed number of generations and decodes the best
// individual ever seen.
func (g *geneticOptimizer) optimize() model.Result {
	if len(g.stocks) == 0 {
		unplaced := make([]float64, len(g.cuttings))
		copy(unplaced, g.cuttings)
		return model.NewResult(nil, unplaced, nil)
	}
	if len(g.cuttings) == 0 {
		return buildResult(newUsageArena(g.stocks), nil)
	}

	population := g.initPopulation()
	var best chromosome
	haveBest := false

	for gen := 0; gen < g.config.Generations; gen++ {
		g.evaluateAll(population)

		sort.SliceStable(population, func(i, j int) bool {
			return population[i].fitness > population[j].fitness
		})

		if !haveBest || population[0].fitness > best.fitness {
			best = copyChromosome(population[0])
			haveBest = true
		}

		survivors := g.selectSurvivors(population, best)

		next := make([]chromosome, 0, g.config.PopulationSize)
		for _, s := range survivors {
			next = append(next, copyChromosome(s))
		}
		for len(next) < g.config.PopulationSize {
			parent1 := survivors[g.rng.Intn(len(survivors))]
			parent2 := survivors[g.rng.Intn(len(survivors))]

			child := g.crossover(parent1, parent2)
			g.mutate(&child)
			next = append(next, child)
		}

		population = next
	}

	return g.decode(best.genes)
}

// initPopulation draws every gene uniformly from the stock indices.
func (g *geneticOptimizer) initPopulation() []chromosome {
	population := make([]chromosome, g.config.PopulationSize)
	for i := range population {
		genes := make([]int, len(g.cuttings))
		for j := range genes {
			genes[j] = g.rng.Intn(len(g.stocks))
		}
		population[i] = chromosome{genes: genes}
	}
	return population
}

// evaluateAll scores every individual. Each evaluation replays into its own
// arena, so individuals are scored concurrently.
func (g *geneticOptimizer) evaluateAll(population []chromosome) {
	var eg errgroup.Group
	eg.SetLimit(g.config.Workers)
	for i := range population {
		eg.Go(func() error {
			population[i].fitness = g.evaluate(population[i].genes)
			return nil
		})
	}
	_ = eg.Wait()
}

// selectSurvivors keeps the top share of a ranked population, making sure the
// best individual ever seen is among them.
func (g *geneticOptimizer) selectSurvivors(ranked []chromosome, best chromosome) []chromosome {
	count := int(float64(g.config.PopulationSize) * survivorFraction)
	if count < 1 {
		count = 1
	}
	if count > len(ranked) {
		count = len(ranked)
	}

	survivors := make([]chromosome, 0, count)
	if best.fitness > ranked[0].fitness {
		survivors = append(survivors, best)
		count--
	}
	return append(survivors, ranked[:count]...)
}

// replay assigns each cutting, in input order, to the stock its gene names.
// A cutting that does not fit is unplaced; there is no reassignment.
func (g *geneticOptimizer) replay(genes []int) ([]stockUsage, []float64) {
	arena := newUsageArena(g.stocks)
	unplaced := []float64{}
	for i, stockIdx := range genes {
		cutting := g.cuttings[i]
		if !arena[stockIdx].assign(cutting) {
			unplaced = append(unplaced, cutting)
		}
	}
	return arena, unplaced
}

// evaluate rewards placed cuttings first, then usage rate, and lightly
// penalizes every stock that is cut into.
func (g *geneticOptimizer) evaluate(genes []int) float64 {
	arena, unplaced := g.replay(genes)

	var usedLength, cutLength float64
	usedStocks := 0
	for i := range arena {
		if !arena[i].used() {
			continue
		}
		usedStocks++
		usedLength += arena[i].original
		cutLength += arena[i].original - arena[i].remaining
	}

	usage := 0.0
	if usedLength > 0 {
		usage = cutLength / usedLength
	}

	placed := len(genes) - len(unplaced)
	return placedWeight*float64(placed) + usageWeight*usage - stockUsePenalty*float64(usedStocks)
}

// decode replays an individual once and builds the result from that replay.
func (g *geneticOptimizer) decode(genes []int) model.Result {
	arena, unplaced := g.replay(genes)
	return buildResult(arena, unplaced)
}

// crossover joins the prefix of parent1 with the suffix of parent2 at a
// random cut index.
func (g *geneticOptimizer) crossover(parent1, parent2 chromosome) chromosome {
	n := len(parent1.genes)
	point := g.rng.Intn(n)

	genes := make([]int, n)
	copy(genes[:point], parent1.genes[:point])
	copy(genes[point:], parent2.genes[point:])
	return chromosome{genes: genes}
}

// mutate reassigns each gene to a random stock with probability MutationRate.
func (g *geneticOptimizer) mutate(c *chromosome) {
	for i := range c.genes {
		if g.rng.Float64() < g.config.MutationRate {
			c.genes[i] = g.rng.Intn(len(g.stocks))
		}
	}
}

// copyChromosome creates a deep copy of a chromosome.
func copyChromosome(c chromosome) chromosome {
	genes := make([]int, len(c.genes))
	copy(genes, c.genes)
	return chromosome{genes: genes, fitness: c.fitness}
}

// OptimizeGenetic runs the genetic search. A nil rng selects a time-seeded
// generator, so repeated runs may return different plans.
func OptimizeGenetic(stocks, cuttings []float64, config GeneticConfig, rng *rand.Rand) model.Result {
	ga := newGeneticOptimizer(config, stocks, cuttings, rng)
	return ga.optimize()
}
