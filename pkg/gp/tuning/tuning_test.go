package tuning

import "testing"

func TestTuneFillsDefaultsForSmallDataset(t *testing.T) {
	p := Tune(Params{}, 5, false)

	if p.CodeLength != DefaultCodeLength {
		t.Fatalf("CodeLength = %d, want %d", p.CodeLength, DefaultCodeLength)
	}
	if p.PatchLength != 1+DefaultCodeLength/3 {
		t.Fatalf("PatchLength = %d, want %d", p.PatchLength, 1+DefaultCodeLength/3)
	}
	if p.Layers != DefaultLayers {
		t.Fatalf("Layers = %d, want %d (dataset too small to derive)", p.Layers, DefaultLayers)
	}
	if p.DSS {
		t.Fatalf("DSS = true, want false for a 5-example dataset")
	}
}

func TestTuneDerivesLayersAndIndividualsFromDatasetSize(t *testing.T) {
	p := Tune(Params{}, 1000, false)

	if p.Layers <= 0 {
		t.Fatalf("Layers = %d, want > 0", p.Layers)
	}
	if p.IndividualsPerLayer < 4 {
		t.Fatalf("IndividualsPerLayer = %d, want >= 4 (floor clause)", p.IndividualsPerLayer)
	}
	if !p.DSS {
		t.Fatalf("DSS = false, want true for dataset_size > 400")
	}
}

func TestTuneSetsAccuracyThresholdForClassification(t *testing.T) {
	p := Tune(Params{}, 100, true)

	if p.ThresholdAccuracy != ClassificationAccuracyThresh {
		t.Fatalf("ThresholdAccuracy = %v, want %v", p.ThresholdAccuracy, ClassificationAccuracyThresh)
	}
	if p.ThresholdFitness != 0 {
		t.Fatalf("ThresholdFitness = %v, want untouched (0) for a classification task", p.ThresholdFitness)
	}
}

func TestTuneSetsFitnessThresholdForRegression(t *testing.T) {
	p := Tune(Params{}, 100, false)

	if p.ThresholdFitness != RegressionFitnessThreshold {
		t.Fatalf("ThresholdFitness = %v, want %v", p.ThresholdFitness, RegressionFitnessThreshold)
	}
}

func TestTunePreservesCallerSuppliedFields(t *testing.T) {
	p := Tune(Params{CodeLength: 42, Generations: 7}, 1000, false)

	if p.CodeLength != 42 {
		t.Fatalf("CodeLength = %d, want 42 (caller-supplied value preserved)", p.CodeLength)
	}
	if p.Generations != 7 {
		t.Fatalf("Generations = %d, want 7 (caller-supplied value preserved)", p.Generations)
	}
}

func TestClampTournamentSizeRespectsMateZoneAndIndividuals(t *testing.T) {
	if got := clampTournamentSize(50, 10, 100); got != 10 {
		t.Fatalf("clampTournamentSize = %d, want 10 (bounded by mate zone)", got)
	}
	if got := clampTournamentSize(50, 0, 3); got != 3 {
		t.Fatalf("clampTournamentSize = %d, want 3 (bounded by individuals when mate zone unset)", got)
	}
	if got := clampTournamentSize(1, 0, 100); got != 2 {
		t.Fatalf("clampTournamentSize = %d, want 2 (lower bound)", got)
	}
}
