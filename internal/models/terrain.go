package models

// TerrainKind identifies one of the fixed terrain types a tile can hold.
type TerrainKind string

const (
	TerrainGrass    TerrainKind = "grass"
	TerrainForest   TerrainKind = "forest"
	TerrainMountain TerrainKind = "mountain"
	TerrainWater    TerrainKind = "water"
	TerrainRoad     TerrainKind = "road"
)

// AllTerrainKinds lists every terrain kind. The catalog must cover all of
// them so cost/bonus lookups are total functions.
var AllTerrainKinds = []TerrainKind{
	TerrainGrass, TerrainForest, TerrainMountain, TerrainWater, TerrainRoad,
}

// TerrainSpec defines the static properties of a terrain kind.
type TerrainSpec struct {
	Name         string `json:"name"`          // e.g. "Grass"
	MovementCost int    `json:"movement_cost"` // Cost to enter a tile of this kind
	DefenseBonus int    `json:"defense_bonus"` // Added to a defender's DEF on this kind
}

// DefaultTerrainSpecs returns the canonical terrain catalog.
func DefaultTerrainSpecs() map[TerrainKind]TerrainSpec {
	return map[TerrainKind]TerrainSpec{
		TerrainGrass:    {Name: "Grass", MovementCost: 1, DefenseBonus: 0},
		TerrainForest:   {Name: "Forest", MovementCost: 2, DefenseBonus: 1},
		TerrainMountain: {Name: "Mountain", MovementCost: 3, DefenseBonus: 2},
		TerrainWater:    {Name: "Water", MovementCost: 2, DefenseBonus: 0},
		TerrainRoad:     {Name: "Road", MovementCost: 1, DefenseBonus: 0},
	}
}
