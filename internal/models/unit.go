package models

// Team identifies which side a unit fights for.
type Team string

const (
	TeamPlayer Team = "player"
	TeamEnemy  Team = "enemy"
)

// Opponent returns the opposing team.
func (t Team) Opponent() Team {
	if t == TeamPlayer {
		return TeamEnemy
	}
	return TeamPlayer
}

// UnitClass identifies a unit archetype.
type UnitClass string

const (
	ClassWarrior UnitClass = "warrior"
	ClassArcher  UnitClass = "archer"
	ClassMage    UnitClass = "mage"
	ClassKnight  UnitClass = "knight"
)

// AllUnitClasses lists every unit class. Battle setup places one unit of
// each class per team.
var AllUnitClasses = []UnitClass{ClassWarrior, ClassArcher, ClassMage, ClassKnight}

// ClassSpec defines the base stat block for a unit class.
type ClassSpec struct {
	Name           string `json:"name"`             // e.g. "Warrior"
	MaxHP          int    `json:"max_hp"`           // Hit points at full health
	Attack         int    `json:"attack"`           // Base attack value
	Defense        int    `json:"defense"`          // Base defense value
	Movement       int    `json:"movement"`         // Movement budget per turn
	MinAttackRange int    `json:"min_attack_range"` // Closest Manhattan distance the class can strike
	MaxAttackRange int    `json:"max_attack_range"` // Farthest Manhattan distance the class can strike
}

// DefaultClassSpecs returns the canonical class stat table.
func DefaultClassSpecs() map[UnitClass]ClassSpec {
	return map[UnitClass]ClassSpec{
		ClassWarrior: {Name: "Warrior", MaxHP: 25, Attack: 8, Defense: 6, Movement: 4, MinAttackRange: 1, MaxAttackRange: 1},
		ClassArcher:  {Name: "Archer", MaxHP: 16, Attack: 6, Defense: 3, Movement: 5, MinAttackRange: 2, MaxAttackRange: 3},
		ClassMage:    {Name: "Mage", MaxHP: 14, Attack: 9, Defense: 2, Movement: 4, MinAttackRange: 1, MaxAttackRange: 2},
		ClassKnight:  {Name: "Knight", MaxHP: 30, Attack: 7, Defense: 8, Movement: 3, MinAttackRange: 1, MaxAttackRange: 1},
	}
}

// Unit is a live battle participant. Stats are copied from its ClassSpec at
// creation; position and HP are mutated only by the engine.
type Unit struct {
	ID             int       `json:"id"`
	Name           string    `json:"name"`
	Team           Team      `json:"team"`
	Class          UnitClass `json:"class"`
	X              int       `json:"x"`
	Y              int       `json:"y"`
	CurrentHP      int       `json:"current_hp"`
	MaxHP          int       `json:"max_hp"`
	Attack         int       `json:"attack"`
	Defense        int       `json:"defense"`
	Movement       int       `json:"movement"`
	MinAttackRange int       `json:"min_attack_range"`
	MaxAttackRange int       `json:"max_attack_range"`
}

// NewUnit instantiates a unit of the given class at (x, y) with stats
// derived from spec.
func NewUnit(id int, name string, team Team, class UnitClass, spec ClassSpec, x, y int) *Unit {
	return &Unit{
		ID:             id,
		Name:           name,
		Team:           team,
		Class:          class,
		X:              x,
		Y:              y,
		CurrentHP:      spec.MaxHP,
		MaxHP:          spec.MaxHP,
		Attack:         spec.Attack,
		Defense:        spec.Defense,
		Movement:       spec.Movement,
		MinAttackRange: spec.MinAttackRange,
		MaxAttackRange: spec.MaxAttackRange,
	}
}

// Alive reports whether the unit is still in the fight.
func (u *Unit) Alive() bool {
	return u.CurrentHP > 0
}
