package search

import (
	"strconv"

	"github.com/klauern/vita-go/internal/csvutil"
	"github.com/klauern/vita-go/internal/storage"
	"github.com/klauern/vita-go/pkg/gp/arl"
	"github.com/klauern/vita-go/pkg/gp/evolution"
	"github.com/klauern/vita-go/pkg/gp/population"
)

// GenerationPoint is one row of the --stat-dynamic trace: the best
// fitness known at the start of that generation (evolution.ALPS.Run's
// PreGeneration hook fires before that generation's offspring are
// scored, so the value recorded is "best found through generation-1").
type GenerationPoint struct {
	Generation int
	Value      float64
	Accuracy   float64
}

// LayerSnapshot is one row of the --stat-layers report: how full a
// layer is relative to its configured capacity.
type LayerSnapshot struct {
	Layer       int `json:"layer"`
	Individuals int `json:"individuals"`
	Allowed     int `json:"allowed"`
}

// IndividualSnapshot is one row of the --stat-population report.
type IndividualSnapshot struct {
	Layer    int     `json:"layer"`
	Age      int     `json:"age"`
	Value    float64 `json:"fitness"`
	Accuracy float64 `json:"accuracy"`
}

// LayerSnapshots walks every layer of pop and reports its current
// occupancy, grounded on population.Population's Layers/Individuals/Allowed
// accessors.
func LayerSnapshots(pop *population.Population) []LayerSnapshot {
	snaps := make([]LayerSnapshot, 0, pop.Layers())
	for k := 0; k < pop.Layers(); k++ {
		snaps = append(snaps, LayerSnapshot{
			Layer:       k,
			Individuals: pop.Individuals(k),
			Allowed:     pop.Allowed(k),
		})
	}
	return snaps
}

// IndividualSnapshots walks every individual across every layer of pop.
func IndividualSnapshots(pop *population.Population) []IndividualSnapshot {
	var snaps []IndividualSnapshot
	for k := 0; k < pop.Layers(); k++ {
		for i := 0; i < pop.Individuals(k); i++ {
			ind, ok := pop.At(population.Coord{Layer: k, Offset: i})
			if !ok {
				continue
			}
			snaps = append(snaps, IndividualSnapshot{
				Layer:    k,
				Age:      ind.Genome.Age(),
				Value:    ind.Fitness.Value,
				Accuracy: ind.Fitness.Accuracy,
			})
		}
	}
	return snaps
}

// WriteLayerStats writes pop's per-layer occupancy to path as JSON.
func WriteLayerStats(path string, pop *population.Population) error {
	return storage.WriteJSON(path, LayerSnapshots(pop))
}

// WritePopulationStats writes every individual in pop to path as JSON.
func WritePopulationStats(path string, pop *population.Population) error {
	return storage.WriteJSON(path, IndividualSnapshots(pop))
}

// WriteDynamicTrace writes a generation-by-generation best-fitness trace
// to path as CSV.
func WriteDynamicTrace(path string, trace []GenerationPoint) error {
	rows := make([][]string, 0, len(trace))
	for _, p := range trace {
		rows = append(rows, []string{
			strconv.Itoa(p.Generation),
			strconv.FormatFloat(p.Value, 'g', -1, 64),
			strconv.FormatFloat(p.Accuracy, 'g', -1, 64),
		})
	}
	return csvutil.Write(path, []string{"generation", "fitness", "accuracy"}, rows)
}

// WriteARLStats writes a run's ARL candidates to path as JSON.
func WriteARLStats(path string, findings []arl.Candidate) error {
	return storage.WriteJSON(path, findings)
}

// DynamicTraceHook builds a PreGeneration-compatible closure that
// appends one GenerationPoint per call by reading a.CurrentBest(); the
// resulting slice is only safe to read after Run returns.
func DynamicTraceHook(trace *[]GenerationPoint) func(gen int, a *evolution.ALPS) {
	return func(gen int, a *evolution.ALPS) {
		_, fit, ok := a.CurrentBest()
		if !ok {
			*trace = append(*trace, GenerationPoint{Generation: gen})
			return
		}
		*trace = append(*trace, GenerationPoint{Generation: gen, Value: fit.Value, Accuracy: fit.Accuracy})
	}
}
