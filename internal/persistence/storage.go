package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"grid-tactics/internal/models"
)

const (
	classSpecFile   = "units.json"
	terrainSpecFile = "terrain.json"
)

// LoadClassSpecs loads unit class specifications from units.json in dir.
// A missing file is not an error: the canonical built-in table is returned.
func LoadClassSpecs(dir string) (map[models.UnitClass]models.ClassSpec, error) {
	specs := models.DefaultClassSpecs()
	path := filepath.Join(dir, classSpecFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return specs, nil
	}
	if err != nil {
		return nil, err
	}

	var loaded map[models.UnitClass]models.ClassSpec
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for class, spec := range loaded {
		specs[class] = spec
	}
	return specs, nil
}

// LoadTerrainSpecs loads the terrain catalog from terrain.json in dir,
// falling back to the canonical built-in catalog when the file is absent.
func LoadTerrainSpecs(dir string) (map[models.TerrainKind]models.TerrainSpec, error) {
	specs := models.DefaultTerrainSpecs()
	path := filepath.Join(dir, terrainSpecFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return specs, nil
	}
	if err != nil {
		return nil, err
	}

	var loaded map[models.TerrainKind]models.TerrainSpec
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for kind, spec := range loaded {
		specs[kind] = spec
	}
	return specs, nil
}

// LoadGameConfig assembles a validated GameConfig from the spec files in
// dir, layered over the built-in defaults.
func LoadGameConfig(dir string) (*models.GameConfig, error) {
	cfg := models.DefaultGameConfig()

	classes, err := LoadClassSpecs(dir)
	if err != nil {
		return nil, fmt.Errorf("load class specs: %w", err)
	}
	terrain, err := LoadTerrainSpecs(dir)
	if err != nil {
		return nil, fmt.Errorf("load terrain specs: %w", err)
	}
	cfg.Classes = classes
	cfg.Terrain = terrain

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteDefaultSpecs writes the canonical spec tables to units.json and
// terrain.json in dir, creating the directory if needed. Existing files are
// left alone.
func WriteDefaultSpecs(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := writeSpecFile(filepath.Join(dir, classSpecFile), models.DefaultClassSpecs()); err != nil {
		return err
	}
	return writeSpecFile(filepath.Join(dir, terrainSpecFile), models.DefaultTerrainSpecs())
}

func writeSpecFile(path string, v interface{}) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
