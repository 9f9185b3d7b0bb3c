package game

import (
	"fmt"

	"grid-tactics/internal/models"
)

// AttackResult reports the outcome of a resolved attack. TargetRemainingHP
// of 0 means the target was defeated and removed from the live roster.
type AttackResult struct {
	AttackerName      string `json:"attacker_name"`
	TargetName        string `json:"target_name"`
	Damage            int    `json:"damage"`
	TargetRemainingHP int    `json:"target_remaining_hp"`
}

// manhattan returns |dx| + |dy| between two units.
func manhattan(a, b *models.Unit) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// ValidateAttack checks attack legality without mutating anything.
// Failure modes, in order: ErrInvalidUnit (either unit missing or dead),
// ErrFriendlyFire, then the attacker's range band (ErrTooClose/ErrOutOfRange
// on Manhattan distance).
func ValidateAttack(attacker, target *models.Unit) error {
	if attacker == nil || target == nil || !attacker.Alive() || !target.Alive() {
		return ErrInvalidUnit
	}
	if attacker.Team == target.Team {
		return ErrFriendlyFire
	}
	dist := manhattan(attacker, target)
	if dist < attacker.MinAttackRange {
		return fmt.Errorf("distance %d below range %d: %w", dist, attacker.MinAttackRange, ErrTooClose)
	}
	if dist > attacker.MaxAttackRange {
		return fmt.Errorf("distance %d beyond range %d: %w", dist, attacker.MaxAttackRange, ErrOutOfRange)
	}
	return nil
}

// ResolveAttack validates and applies an attack. Damage is deterministic:
// max(0, attacker ATK - target DEF - terrain defense bonus under the target).
// On success the target's HP is reduced (clamped at 0); the attacker is not
// mutated. Removing a defeated target from the roster is the caller's job;
// the resolver only reports the resulting HP.
func ResolveAttack(grid *Grid, cfg *models.GameConfig, attacker, target *models.Unit) (AttackResult, error) {
	if err := ValidateAttack(attacker, target); err != nil {
		return AttackResult{}, err
	}

	kind, err := grid.TerrainAt(target.X, target.Y)
	if err != nil {
		return AttackResult{}, err
	}
	damage := attacker.Attack - target.Defense - cfg.Terrain[kind].DefenseBonus
	if damage < 0 {
		damage = 0
	}

	target.CurrentHP -= damage
	if target.CurrentHP < 0 {
		target.CurrentHP = 0
	}
	return AttackResult{
		AttackerName:      attacker.Name,
		TargetName:        target.Name,
		Damage:            damage,
		TargetRemainingHP: target.CurrentHP,
	}, nil
}
