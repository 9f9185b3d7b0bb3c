package server

import (
	"fmt"
	"log"
	"sync"

	"grid-tactics/internal/game"
	"grid-tactics/internal/models"
)

// BattleSession wraps one Battle behind a mutex. The engine itself assumes
// at most one in-flight mutating operation, so the session serializes every
// call arriving from the concurrent HTTP boundary. Each session also owns
// the event hub its observers subscribe to.
type BattleSession struct {
	ID     string
	battle *game.Battle
	hub    *EventHub
	mu     sync.Mutex
}

// NewBattleSession creates an idle session with the given game config.
func NewBattleSession(id string, cfg *models.GameConfig) (*BattleSession, error) {
	battle, err := game.NewBattle(cfg)
	if err != nil {
		return nil, err
	}
	return &BattleSession{ID: id, battle: battle, hub: NewEventHub()}, nil
}

// Hub returns the session's event hub.
func (s *BattleSession) Hub() *EventHub { return s.hub }

// Snapshot returns the current battle state.
func (s *BattleSession) Snapshot() models.BattleSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.battle.Snapshot()
}

// Start begins the battle and returns the opening snapshot.
func (s *BattleSession) Start() (models.BattleSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.battle.Start(); err != nil {
		return models.BattleSnapshot{}, err
	}
	log.Printf("[Session %s] Battle started.", s.ID)
	s.hub.Broadcast(models.BattleEvent{
		Type:    models.EventBattleStarted,
		Message: "Battle started. Player moves first.",
	})
	return s.battle.Snapshot(), nil
}

// Reachable computes the movement range of a unit.
func (s *BattleSession) Reachable(unitID int) ([]models.Tile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.battle.Reachable(unitID)
}

// Move relocates a unit of the acting team.
func (s *BattleSession) Move(unitID, x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.battle.MoveUnit(unitID, x, y); err != nil {
		return err
	}
	name := fmt.Sprintf("unit %d", unitID)
	if unit, err := s.battle.Unit(unitID); err == nil {
		name = unit.Name
	}
	log.Printf("[Session %s] Unit %d (%s) moved to (%d,%d).", s.ID, unitID, name, x, y)
	s.hub.Broadcast(models.BattleEvent{
		Type:    models.EventUnitMoved,
		Message: fmt.Sprintf("%s moved to (%d,%d).", name, x, y),
		Payload: models.Tile{X: x, Y: y},
	})
	return nil
}

// Attack resolves an attack and reports damage and the target's remaining HP.
func (s *BattleSession) Attack(attackerID, targetID int) (game.AttackResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, err := s.battle.Attack(attackerID, targetID)
	if err != nil {
		return game.AttackResult{}, err
	}
	log.Printf("[Session %s] Unit %d (%s) hit unit %d (%s) for %d. Target HP %d.",
		s.ID, attackerID, result.AttackerName, targetID, result.TargetName, result.Damage, result.TargetRemainingHP)
	s.hub.Broadcast(models.BattleEvent{
		Type:    models.EventUnitAttacked,
		Message: fmt.Sprintf("%s hit %s for %d damage.", result.AttackerName, result.TargetName, result.Damage),
		Payload: result,
	})
	if result.TargetRemainingHP == 0 {
		s.hub.Broadcast(models.BattleEvent{
			Type:    models.EventUnitDefeated,
			Message: fmt.Sprintf("%s was defeated.", result.TargetName),
		})
		if winner := s.battle.Winner(); winner != "" {
			log.Printf("[Session %s] Team %s has no units left.", s.ID, winner.Opponent())
		}
	}
	return result, nil
}

// EndTurn flips the acting team and returns the new one.
func (s *BattleSession) EndTurn() (models.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	turn, err := s.battle.EndTurn()
	if err != nil {
		return "", err
	}
	log.Printf("[Session %s] Turn passed to %s.", s.ID, turn)
	s.hub.Broadcast(models.BattleEvent{
		Type:    models.EventTurnEnded,
		Message: fmt.Sprintf("It is now the %s turn.", turn),
	})
	return turn, nil
}

// Reset clears the battle back to NotStarted.
func (s *BattleSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.battle.Reset()
	log.Printf("[Session %s] Battle reset.", s.ID)
	s.hub.Broadcast(models.BattleEvent{
		Type:    models.EventBattleReset,
		Message: "Battle reset.",
	})
}
