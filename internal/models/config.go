package models

import "fmt"

// Default board and camp dimensions. The camp depth is how many columns from
// each board edge a team's starting rectangle extends.
const (
	DefaultGridWidth  = 20
	DefaultGridHeight = 20
	DefaultCampDepth  = 4
)

// GameConfig holds all configurable battle parameters, typically loaded from
// JSON spec files with canonical built-in defaults.
type GameConfig struct {
	Classes map[UnitClass]ClassSpec     `json:"classes"` // Keyed by class ID
	Terrain map[TerrainKind]TerrainSpec `json:"terrain"` // Keyed by terrain kind

	GridWidth  int `json:"grid_width"`
	GridHeight int `json:"grid_height"`
	CampDepth  int `json:"camp_depth"`
}

// DefaultGameConfig returns a config with the canonical stat tables and
// board dimensions.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Classes:    DefaultClassSpecs(),
		Terrain:    DefaultTerrainSpecs(),
		GridWidth:  DefaultGridWidth,
		GridHeight: DefaultGridHeight,
		CampDepth:  DefaultCampDepth,
	}
}

// Validate checks that the config covers every terrain kind and unit class
// and that its dimensions can host both camps without overlap.
func (c *GameConfig) Validate() error {
	for _, kind := range AllTerrainKinds {
		spec, ok := c.Terrain[kind]
		if !ok {
			return fmt.Errorf("terrain catalog missing kind %q", kind)
		}
		if spec.MovementCost < 1 {
			return fmt.Errorf("terrain %q has non-positive movement cost %d", kind, spec.MovementCost)
		}
		if spec.DefenseBonus < 0 {
			return fmt.Errorf("terrain %q has negative defense bonus %d", kind, spec.DefenseBonus)
		}
	}
	for _, class := range AllUnitClasses {
		spec, ok := c.Classes[class]
		if !ok {
			return fmt.Errorf("class table missing class %q", class)
		}
		if spec.MaxHP < 1 {
			return fmt.Errorf("class %q has non-positive max HP %d", class, spec.MaxHP)
		}
		if spec.Movement < 1 {
			return fmt.Errorf("class %q has non-positive movement %d", class, spec.Movement)
		}
		if spec.MinAttackRange < 1 || spec.MaxAttackRange < spec.MinAttackRange {
			return fmt.Errorf("class %q has invalid attack range band %d-%d",
				class, spec.MinAttackRange, spec.MaxAttackRange)
		}
	}
	if c.GridWidth < 1 || c.GridHeight < 1 {
		return fmt.Errorf("invalid grid dimensions %dx%d", c.GridWidth, c.GridHeight)
	}
	if c.CampDepth < 1 || 2*c.CampDepth > c.GridWidth {
		return fmt.Errorf("camp depth %d does not fit grid width %d", c.CampDepth, c.GridWidth)
	}
	if len(AllUnitClasses) > c.CampDepth*c.GridHeight {
		return fmt.Errorf("camp of %dx%d cannot hold %d units", c.CampDepth, c.GridHeight, len(AllUnitClasses))
	}
	return nil
}
