// Package tuning derives any evolution-configuration field a caller
// left at its zero/sentinel value from the shape of the dataset it will
// run against (spec.md §4.10), grounded on
// original_source/kernel/search_inl.h's basic_search::tune_parameters.
package tuning

import "math"

// Defaults are the fallback values used when a field is unset and the
// dataset is too small to derive a tuned value from (search_inl.h's
// `dflt` environment). The literal default environment constructor
// itself was not retrieved, so these are the teacher's documented
// production-grade values rather than ported constants.
const (
	DefaultCodeLength             = 100
	DefaultLayers                 = 1
	DefaultIndividualsPerLayer    = 100
	DefaultPMutation              = 0.04
	DefaultPCrossover             = 0.9
	DefaultTournamentSize         = 2
	DefaultMateZone               = 20
	DefaultGenerations            = 100
	DefaultMaxStuckTime           = 0 // 0 disables the stuck-time termination condition
	RegressionFitnessThreshold    = -1e-9
	ClassificationAccuracyThresh  = 0.99
	dssDatasetSizeThreshold       = 400
	smallDatasetAutoTuneThreshold = 8 // search_inl.h's `dt->size() > 8` guard
)

// Params is the subset of evolution configuration auto-tuning can
// derive. A field left at its zero value on input is treated as unset
// and filled in by Tune, except PMutation and PCrossover, for which a
// negative value marks "unset" and an explicit 0 is kept.
type Params struct {
	CodeLength          int
	PatchLength         int
	Layers              int
	IndividualsPerLayer int
	PMutation           float64
	PCrossover          float64
	TournamentSize      int
	MateZone            int
	Generations         int
	DSS                 bool
	ThresholdFitness    float64
	ThresholdAccuracy   float64
}

// Tune fills every zero-valued field of p from datasetSize and
// isClassification, following spec.md §4.10 verbatim. It returns the
// completed Params; fields the caller already set are left untouched,
// except TournamentSize, which is always clamped.
func Tune(p Params, datasetSize int, isClassification bool) Params {
	if p.CodeLength == 0 {
		p.CodeLength = DefaultCodeLength
	}
	if p.PatchLength == 0 {
		p.PatchLength = 1 + p.CodeLength/3
	}

	if p.Layers == 0 {
		if datasetSize > smallDatasetAutoTuneThreshold {
			p.Layers = int(math.Log(float64(datasetSize)))
			if p.Layers < 1 {
				p.Layers = 1
			}
		} else {
			p.Layers = DefaultLayers
		}
	}

	if p.IndividualsPerLayer == 0 {
		if datasetSize > smallDatasetAutoTuneThreshold {
			n := 2 * math.Pow(math.Log2(float64(datasetSize)), 3) / float64(p.Layers)
			p.IndividualsPerLayer = int(n)
			if p.IndividualsPerLayer < 4 {
				p.IndividualsPerLayer = 4
			}
		} else {
			p.IndividualsPerLayer = DefaultIndividualsPerLayer
		}
	}

	if p.PMutation < 0 {
		p.PMutation = DefaultPMutation
	}
	if p.PCrossover < 0 {
		p.PCrossover = DefaultPCrossover
	}

	if !p.DSS {
		p.DSS = datasetSize > dssDatasetSizeThreshold
	}

	if p.MateZone == 0 {
		p.MateZone = DefaultMateZone
	}

	if p.TournamentSize == 0 {
		p.TournamentSize = DefaultTournamentSize
	}
	p.TournamentSize = clampTournamentSize(p.TournamentSize, p.MateZone, p.IndividualsPerLayer)

	if p.Generations == 0 {
		p.Generations = DefaultGenerations
	}

	if isClassification {
		if p.ThresholdAccuracy == 0 {
			p.ThresholdAccuracy = ClassificationAccuracyThresh
		}
	} else if p.ThresholdFitness == 0 {
		p.ThresholdFitness = RegressionFitnessThreshold
	}

	return p
}

// clampTournamentSize bounds the tournament size to [2, min(mateZone,
// individuals)] (spec.md §4.10's final bullet).
func clampTournamentSize(size, mateZone, individuals int) int {
	upper := individuals
	if mateZone > 0 && mateZone < upper {
		upper = mateZone
	}
	if upper < 2 {
		upper = 2
	}
	if size < 2 {
		size = 2
	}
	if size > upper {
		size = upper
	}
	return size
}
