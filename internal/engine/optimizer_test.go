package engine

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/rand"
	"sort"
	"testing"

	"github.com/piwi3910/BarCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertConserved checks that every cutting and every stock of the input
// appears exactly once in the result, and that no stock is over-allocated.
func assertConserved(t *testing.T, stocks, cuttings []float64, r model.Result) {
	t.Helper()

	var gotCuttings, gotStocks []float64
	for _, p := range r.CuttingPlans {
		require.NotEmpty(t, p.Cutting, "plans must carry at least one cutting")
		used := 0.0
		for _, c := range p.Cutting {
			used += c
		}
		assert.GreaterOrEqual(t, p.Remaining, 0.0)
		assert.InDelta(t, p.Stock-used, p.Remaining, 1e-9)

		gotCuttings = append(gotCuttings, p.Cutting...)
		gotStocks = append(gotStocks, p.Stock)
	}
	gotCuttings = append(gotCuttings, r.UnplacedCuttings...)
	gotStocks = append(gotStocks, r.UnplacedStocks...)

	assert.ElementsMatch(t, sortedCopy(cuttings), sortedCopy(gotCuttings), "cuttings must be conserved")
	assert.ElementsMatch(t, sortedCopy(stocks), sortedCopy(gotStocks), "stocks must be conserved")
	assert.GreaterOrEqual(t, r.UsageRate, 0.0)
	assert.LessOrEqual(t, r.UsageRate, 1.0)
}

func sortedCopy(v []float64) []float64 {
	out := append([]float64{}, v...)
	sort.Float64s(out)
	return out
}

func TestFirstFitDecreasing_AllPlaced(t *testing.T) {
	stocks := []float64{10, 8}
	cuttings := []float64{5, 4, 3, 2}

	r := FirstFitDecreasing(stocks, cuttings)

	require.Len(t, r.CuttingPlans, 2)
	assert.Equal(t, model.CuttingPlan{Stock: 10, Cutting: []float64{5, 4}, Remaining: 1}, r.CuttingPlans[0])
	assert.Equal(t, model.CuttingPlan{Stock: 8, Cutting: []float64{3, 2}, Remaining: 3}, r.CuttingPlans[1])
	assert.Empty(t, r.UnplacedCuttings)
	assert.Empty(t, r.UnplacedStocks)
	assert.InDelta(t, 14.0/18.0, r.UsageRate, 1e-9)
	assertConserved(t, stocks, cuttings, r)
}

func TestFirstFitDecreasing_UnplacedCutting(t *testing.T) {
	stocks := []float64{5, 3}
	cuttings := []float64{4, 4, 2}

	r := FirstFitDecreasing(stocks, cuttings)

	require.Len(t, r.CuttingPlans, 2)
	assert.Equal(t, model.CuttingPlan{Stock: 5, Cutting: []float64{4}, Remaining: 1}, r.CuttingPlans[0])
	assert.Equal(t, model.CuttingPlan{Stock: 3, Cutting: []float64{2}, Remaining: 1}, r.CuttingPlans[1])
	assert.Equal(t, []float64{4}, r.UnplacedCuttings)
	assert.InDelta(t, 0.75, r.UsageRate, 1e-9)
	assertConserved(t, stocks, cuttings, r)
}

func TestBestFitDecreasing_TightestFitOnSimpleInput(t *testing.T) {
	stocks := []float64{10, 8}
	cuttings := []float64{5, 4, 3, 2}

	r := BestFitDecreasing(stocks, cuttings)

	// The 5 leaves 3 on the 8 and 5 on the 10, so it goes on the 8. The 4
	// then only fits the 10, the 3 closes the 8 exactly and the 2 joins the 4.
	require.Len(t, r.CuttingPlans, 2)
	assert.Equal(t, model.CuttingPlan{Stock: 10, Cutting: []float64{4, 2}, Remaining: 4}, r.CuttingPlans[0])
	assert.Equal(t, model.CuttingPlan{Stock: 8, Cutting: []float64{5, 3}, Remaining: 0}, r.CuttingPlans[1])
	assert.Empty(t, r.UnplacedCuttings)
	assert.InDelta(t, 14.0/18.0, r.UsageRate, 1e-9)
	assertConserved(t, stocks, cuttings, r)
}

func TestBestFitDecreasing_PrefersTightestStock(t *testing.T) {
	stocks := []float64{10, 7}
	cuttings := []float64{6, 4, 3}

	ffd := FirstFitDecreasing(stocks, cuttings)
	bfd := BestFitDecreasing(stocks, cuttings)

	// FFD fills the longest stock first.
	require.Len(t, ffd.CuttingPlans, 2)
	assert.Equal(t, []float64{6, 4}, ffd.CuttingPlans[0].Cutting)
	assert.Equal(t, []float64{3}, ffd.CuttingPlans[1].Cutting)

	// BFD puts the 6 on the 7, leaving 1.
	require.Len(t, bfd.CuttingPlans, 2)
	assert.Equal(t, model.CuttingPlan{Stock: 10, Cutting: []float64{4, 3}, Remaining: 3}, bfd.CuttingPlans[0])
	assert.Equal(t, model.CuttingPlan{Stock: 7, Cutting: []float64{6}, Remaining: 1}, bfd.CuttingPlans[1])
	assertConserved(t, stocks, cuttings, bfd)
}

func TestBestFitDecreasing_TieGoesToEarliestStock(t *testing.T) {
	// After the 8 is cut, both stocks have 2 left and the 1 leaves a residual
	// of 1 on either.
	stocks := []float64{10, 2}
	cuttings := []float64{8, 1}

	r := BestFitDecreasing(stocks, cuttings)

	require.Len(t, r.CuttingPlans, 1)
	assert.Equal(t, model.CuttingPlan{Stock: 10, Cutting: []float64{8, 1}, Remaining: 1}, r.CuttingPlans[0])
	assert.Equal(t, []float64{2}, r.UnplacedStocks)
}

func TestGreedy_EmptyInputs(t *testing.T) {
	for name, run := range map[string]func([]float64, []float64) model.Result{
		"ffd": FirstFitDecreasing,
		"bfd": BestFitDecreasing,
	} {
		t.Run(name, func(t *testing.T) {
			noStock := run(nil, []float64{3, 2})
			assert.NotNil(t, noStock.CuttingPlans)
			assert.Empty(t, noStock.CuttingPlans)
			assert.Equal(t, []float64{3, 2}, noStock.UnplacedCuttings)
			assert.NotNil(t, noStock.UnplacedStocks)
			assert.Equal(t, 0.0, noStock.UsageRate)

			noCuts := run([]float64{10}, nil)
			assert.Empty(t, noCuts.CuttingPlans)
			assert.NotNil(t, noCuts.UnplacedCuttings)
			assert.Equal(t, []float64{10}, noCuts.UnplacedStocks)
			assert.Equal(t, 0.0, noCuts.UsageRate)
		})
	}
}

func TestGreedy_DoesNotModifyInputs(t *testing.T) {
	stocks := []float64{3, 10, 8}
	cuttings := []float64{2, 5, 3, 4}

	FirstFitDecreasing(stocks, cuttings)
	BestFitDecreasing(stocks, cuttings)

	assert.Equal(t, []float64{3, 10, 8}, stocks)
	assert.Equal(t, []float64{2, 5, 3, 4}, cuttings)
}

func TestGreedy_SameMultisetSameResult(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		stocks := make([]float64, 1+rng.Intn(6))
		for j := range stocks {
			stocks[j] = float64(5 + rng.Intn(20))
		}
		cuttings := make([]float64, rng.Intn(12))
		for j := range cuttings {
			cuttings[j] = float64(1 + rng.Intn(15))
		}

		shuffledStocks := append([]float64{}, stocks...)
		shuffledCuttings := append([]float64{}, cuttings...)
		rng.Shuffle(len(shuffledStocks), func(a, b int) {
			shuffledStocks[a], shuffledStocks[b] = shuffledStocks[b], shuffledStocks[a]
		})
		rng.Shuffle(len(shuffledCuttings), func(a, b int) {
			shuffledCuttings[a], shuffledCuttings[b] = shuffledCuttings[b], shuffledCuttings[a]
		})

		assert.Equal(t, FirstFitDecreasing(stocks, cuttings), FirstFitDecreasing(shuffledStocks, shuffledCuttings))
		assert.Equal(t, BestFitDecreasing(stocks, cuttings), BestFitDecreasing(shuffledStocks, shuffledCuttings))
	}
}

func TestGreedy_ExactFitLeavesZeroRemaining(t *testing.T) {
	r := FirstFitDecreasing([]float64{6}, []float64{3, 3})

	require.Len(t, r.CuttingPlans, 1)
	assert.Equal(t, 0.0, r.CuttingPlans[0].Remaining)
	assert.Equal(t, 1.0, r.UsageRate)
}

func TestResult_JSONUsesEmptyArrays(t *testing.T) {
	r := FirstFitDecreasing(nil, nil)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cuttingPlans":[],"unplacedCuttings":[],"unplacedStocks":[],"usageRate":0}`, string(data))
}

func TestScore(t *testing.T) {
	r := model.NewResult([]model.CuttingPlan{
		{Stock: 10, Cutting: []float64{5, 4}, Remaining: 1},
	}, []float64{3}, nil)

	// 0.5/(1+1) + 0.3*0.9 - 0.2*1
	assert.InDelta(t, 0.25+0.27-0.2, Score(r), 1e-9)
	assert.InDelta(t, 0.5, Score(model.NewResult(nil, nil, nil)), 1e-9)
}

func TestOptimize_TieListsAllWinnersAndPrefersBFD(t *testing.T) {
	opt := New(WithAlgorithms(FFD{}, BFD{}))

	out := opt.Optimize([]float64{10, 8}, []float64{5, 4, 3, 2})

	assert.Equal(t, model.AlgorithmBFD, out.Best)
	assert.Equal(t, []model.Algorithm{model.AlgorithmFFD, model.AlgorithmBFD}, out.Winners)
	require.Len(t, out.Scores, 2)
	assert.Equal(t, out.Scores[0].Score, out.Scores[1].Score)
	assert.Empty(t, out.Result.UnplacedCuttings)
}

func TestOptimize_HigherScoreWins(t *testing.T) {
	// FFD cuts from the 10, BFD from the 7.
	stocks := []float64{10, 7}
	cuttings := []float64{6, 1}
	opt := New(WithAlgorithms(FFD{}, BFD{}))

	out := opt.Optimize(stocks, cuttings)

	ffd := FirstFitDecreasing(stocks, cuttings)
	bfd := BestFitDecreasing(stocks, cuttings)
	require.Len(t, ffd.CuttingPlans, 1)
	require.Len(t, bfd.CuttingPlans, 1)

	// Both use a single stock: FFD uses 10 (usage 0.7), BFD uses 7 (usage 1).
	assert.Equal(t, model.AlgorithmBFD, out.Best)
	assert.Equal(t, []model.Algorithm{model.AlgorithmBFD}, out.Winners)
	assert.Equal(t, bfd, out.Result)
	assert.Greater(t, Score(bfd), Score(ffd))
}

// fixedAlgorithm returns a canned result, for driving the tie-break.
type fixedAlgorithm struct {
	name   model.Algorithm
	result model.Result
}

func (f fixedAlgorithm) Name() model.Algorithm           { return f.name }
func (f fixedAlgorithm) Run(_, _ []float64) model.Result { return f.result }

func TestOptimize_NearEqualScoresStillTie(t *testing.T) {
	plan := model.CuttingPlan{Stock: 1, Cutting: []float64{0.1, 0.2, 0.3}, Remaining: 0.4}
	greedy := model.NewResult([]model.CuttingPlan{plan}, nil, nil)
	genetic := greedy
	// Same plans summed in another order can drift in the last bits.
	genetic.UsageRate = greedy.UsageRate - 1e-13
	require.NotEqual(t, Score(greedy), Score(genetic))

	o := New(WithAlgorithms(
		fixedAlgorithm{model.AlgorithmFFD, greedy},
		fixedAlgorithm{model.AlgorithmGenetic, genetic},
	))
	outcome := o.Optimize([]float64{1}, []float64{0.1, 0.2, 0.3})

	assert.Equal(t, model.AlgorithmGenetic, outcome.Best)
	assert.Equal(t, []model.Algorithm{model.AlgorithmFFD, model.AlgorithmGenetic}, outcome.Winners)
}

func TestOptimize_DefaultAlgorithms(t *testing.T) {
	stocks := []float64{10, 8}
	cuttings := []float64{5, 4, 3, 2}
	opt := New(WithRand(rand.New(rand.NewSource(7))))

	out := opt.Optimize(stocks, cuttings)

	require.Len(t, out.Scores, 3)
	assert.Equal(t, model.AlgorithmFFD, out.Scores[0].Algorithm)
	assert.Equal(t, model.AlgorithmBFD, out.Scores[1].Algorithm)
	assert.Equal(t, model.AlgorithmGenetic, out.Scores[2].Algorithm)
	assert.Contains(t, out.Winners, out.Best)
	assertConserved(t, stocks, cuttings, out.Result)

	best, ok := scoreOf(out.Scores, out.Best)
	require.True(t, ok)
	for _, s := range out.Scores {
		assert.LessOrEqual(t, s.Score, best)
	}
}

func TestOptimize_EmptyInputs(t *testing.T) {
	out := New(WithAlgorithms(FFD{}, BFD{})).Optimize(nil, []float64{3, 2})
	assert.Empty(t, out.Result.CuttingPlans)
	assert.Equal(t, []float64{3, 2}, out.Result.UnplacedCuttings)
	assert.Equal(t, 0.0, out.Result.UsageRate)

	out = New(WithAlgorithms(FFD{}, BFD{})).Optimize([]float64{10}, nil)
	assert.Empty(t, out.Result.CuttingPlans)
	assert.Equal(t, []float64{10}, out.Result.UnplacedStocks)
}

func TestOptimize_NoAlgorithms(t *testing.T) {
	out := New(WithAlgorithms()).Optimize([]float64{10}, []float64{4})

	assert.Empty(t, out.Winners)
	assert.Empty(t, out.Result.CuttingPlans)
	assert.Equal(t, []float64{4}, out.Result.UnplacedCuttings)
	assert.Equal(t, []float64{10}, out.Result.UnplacedStocks)
}

func TestOptimize_LogsSelection(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opt := New(WithAlgorithms(FFD{}, BFD{}), WithLogger(logger))

	opt.Optimize([]float64{10, 8}, []float64{5, 4, 3, 2})

	out := buf.String()
	assert.Contains(t, out, `"msg":"algorithm finished"`)
	assert.Contains(t, out, `"msg":"cutting plan selected"`)
	assert.Contains(t, out, `"best":"BFD"`)
	assert.Contains(t, out, `"score_ffd"`)
}

func TestWithGeneticConfig_AppliesToGeneticOnly(t *testing.T) {
	cfg := GeneticConfig{PopulationSize: 10, Generations: 5, MutationRate: 0.2, Workers: 1}
	opt := New(WithGeneticConfig(cfg))

	require.Len(t, opt.Algorithms, 3)
	g, ok := opt.Algorithms[2].(Genetic)
	require.True(t, ok)
	assert.Equal(t, cfg, g.Config)
	assert.Equal(t, FFD{}, opt.Algorithms[0])
}

func TestCompareAlgorithms(t *testing.T) {
	results := CompareAlgorithms([]float64{5, 3}, []float64{4, 4, 2}, FFD{}, BFD{})

	require.Len(t, results, 2)
	for _, c := range results {
		assert.Equal(t, 2, c.PlansUsed)
		assert.Equal(t, 2, c.CutsPlaced)
		assert.Equal(t, 1, c.UnplacedCount)
		assert.InDelta(t, 25.0, c.WastePercent, 1e-9)
		assert.InDelta(t, Score(c.Result), c.Score, 1e-12)
	}
	assert.Equal(t, model.AlgorithmFFD, results[0].Algorithm)
	assert.Equal(t, model.AlgorithmBFD, results[1].Algorithm)
}

func TestAlgorithmByName(t *testing.T) {
	a, ok := AlgorithmByName(model.AlgorithmBFD, DefaultGeneticConfig(), nil)
	require.True(t, ok)
	assert.Equal(t, model.AlgorithmBFD, a.Name())

	_, ok = AlgorithmByName("simplex", DefaultGeneticConfig(), nil)
	assert.False(t, ok)
}

func scoreOf(scores []model.AlgorithmScore, a model.Algorithm) (float64, bool) {
	for _, s := range scores {
		if s.Algorithm == a {
			return s.Score, true
		}
	}
	return 0, false
}
