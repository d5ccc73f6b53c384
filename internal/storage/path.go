package storage

import (
	"path/filepath"
	"strconv"
)

// PathBuilder centralizes the layout of a run's stat directory so callers
// never hand-assemble paths.
type PathBuilder struct {
	statDir string
}

// NewPathBuilder creates a PathBuilder rooted at statDir.
func NewPathBuilder(statDir string) *PathBuilder {
	return &PathBuilder{statDir: statDir}
}

// SummaryPath returns the path of the run summary written when
// --stat-summary is set.
func (p *PathBuilder) SummaryPath() string {
	return filepath.Join(p.statDir, "summary.xml")
}

// LayersPath returns the path of the per-layer population snapshot written
// when --stat-layers is set.
func (p *PathBuilder) LayersPath() string {
	return filepath.Join(p.statDir, "layers.json")
}

// PopulationPath returns the path of the full-population snapshot written
// when --stat-population is set.
func (p *PathBuilder) PopulationPath() string {
	return filepath.Join(p.statDir, "population.json")
}

// DynamicPath returns the path of the per-generation dynamic trace written
// when --stat-dynamic is set.
func (p *PathBuilder) DynamicPath() string {
	return filepath.Join(p.statDir, "dynamic.csv")
}

// ARLPath returns the path of the ARL block-promotion log written when
// --stat-arl is set.
func (p *PathBuilder) ARLPath() string {
	return filepath.Join(p.statDir, "arl.json")
}

// GenomePath returns the path a saved best-individual genome is written to.
func (p *PathBuilder) GenomePath(run int) string {
	return filepath.Join(p.statDir, "genome_"+strconv.Itoa(run)+".xml")
}
