package compat

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// registryFile is the on-disk layout of a matching registry
type registryFile struct {
	Questions    []Question          `yaml:"questions"`
	Weights      map[int]float64     `yaml:"weights"`
	Categories   []Category          `yaml:"categories"`
	Similarities []similarityFileRow `yaml:"similarities"`
}

type similarityFileRow struct {
	Question  int     `yaml:"question"`
	A         string  `yaml:"a"`
	B         string  `yaml:"b"`
	Score     float64 `yaml:"score"`
	Symmetric bool    `yaml:"symmetric"`
}

// LoadConfig decodes a YAML registry. The result is not validated;
// NewEngine does that.
func LoadConfig(r io.Reader) (Config, error) {
	var f registryFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Config{}, fmt.Errorf("decoding matching registry: %w", err)
	}

	cfg := Config{
		Questions:    f.Questions,
		Weights:      f.Weights,
		Categories:   f.Categories,
		Similarities: NewSimilarityTable(),
	}
	if cfg.Weights == nil {
		cfg.Weights = map[int]float64{}
	}
	for _, row := range f.Similarities {
		if row.Symmetric {
			cfg.Similarities.SetSymmetric(row.Question, row.A, row.B, row.Score)
		} else {
			cfg.Similarities.Set(row.Question, row.A, row.B, row.Score)
		}
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML registry from disk
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("opening matching registry: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f)
}
