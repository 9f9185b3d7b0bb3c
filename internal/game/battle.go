package game

import (
	"fmt"
	"sort"

	"grid-tactics/internal/models"
)

// Battle owns the authoritative state of one battle: the board, the live
// roster and whose turn it is. All position and HP changes go through its
// methods; rejected operations leave the state untouched. Battle itself is
// not safe for concurrent use; callers holding it behind a concurrent
// boundary must serialize access (see server.BattleSession).
type Battle struct {
	cfg         *models.GameConfig
	grid        *Grid
	units       map[int]*models.Unit
	currentTurn models.Team
	started     bool
	nextUnitID  int
}

// NewBattle creates an idle battle with the given config. Start must be
// called before any other operation.
func NewBattle(cfg *models.GameConfig) (*Battle, error) {
	if cfg == nil {
		cfg = models.DefaultGameConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}
	return &Battle{
		cfg:        cfg,
		units:      make(map[int]*models.Unit),
		nextUnitID: 1,
	}, nil
}

// Started reports whether the battle is running.
func (b *Battle) Started() bool { return b.started }

// CurrentTurn returns the acting team. Meaningful only while started.
func (b *Battle) CurrentTurn() models.Team { return b.currentTurn }

// Grid returns the board. Nil before Start.
func (b *Battle) Grid() *Grid { return b.grid }

// Start builds the board and places the starting roster: one unit of each
// class per team, the player camp in the low-x columns and the enemy camp in
// the high-x columns. Fails with ErrAlreadyStarted on a running battle.
func (b *Battle) Start() error {
	if b.started {
		return ErrAlreadyStarted
	}

	grid, err := GenerateMap(b.cfg.GridWidth, b.cfg.GridHeight)
	if err != nil {
		return fmt.Errorf("generate map: %w", err)
	}
	b.grid = grid
	b.units = make(map[int]*models.Unit)
	b.nextUnitID = 1

	// One row slot per class keeps camp placements collision-free.
	spacing := b.cfg.GridHeight / (len(models.AllUnitClasses) + 1)
	if spacing < 1 {
		spacing = 1
	}
	playerX := b.cfg.CampDepth - 1
	enemyX := b.cfg.GridWidth - b.cfg.CampDepth
	for i, class := range models.AllUnitClasses {
		y := (i + 1) * spacing
		if y >= b.cfg.GridHeight {
			y = b.cfg.GridHeight - 1 - i
		}
		spec := b.cfg.Classes[class]
		b.addUnit(spec.Name, models.TeamPlayer, class, playerX, y)
		b.addUnit(spec.Name, models.TeamEnemy, class, enemyX, y)
	}

	b.currentTurn = models.TeamPlayer
	b.started = true
	return nil
}

func (b *Battle) addUnit(name string, team models.Team, class models.UnitClass, x, y int) *models.Unit {
	unit := models.NewUnit(b.nextUnitID, name, team, class, b.cfg.Classes[class], x, y)
	b.units[unit.ID] = unit
	b.nextUnitID++
	return unit
}

// AddUnit places an extra unit on a running battle, for custom rosters and
// scenario setup. The tile must be on the board and vacant.
func (b *Battle) AddUnit(name string, team models.Team, class models.UnitClass, x, y int) (*models.Unit, error) {
	if !b.started {
		return nil, ErrNotStarted
	}
	if !b.grid.InBounds(x, y) {
		return nil, fmt.Errorf("placement (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	if other := b.unitAt(x, y); other != nil {
		return nil, fmt.Errorf("placement (%d,%d) held by unit %d: %w", x, y, other.ID, ErrTileOccupied)
	}
	if _, ok := b.cfg.Classes[class]; !ok {
		return nil, fmt.Errorf("unknown class %q: %w", class, ErrInvalidUnit)
	}
	return b.addUnit(name, team, class, x, y), nil
}

// Unit returns the live unit with the given id, or ErrInvalidUnit.
func (b *Battle) Unit(id int) (*models.Unit, error) {
	unit, ok := b.units[id]
	if !ok || !unit.Alive() {
		return nil, fmt.Errorf("unit %d: %w", id, ErrInvalidUnit)
	}
	return unit, nil
}

// roster returns the live units as a slice, ordered by id.
func (b *Battle) roster() []*models.Unit {
	units := make([]*models.Unit, 0, len(b.units))
	for _, u := range b.units {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].ID < units[j].ID })
	return units
}

// unitAt returns the live unit standing on (x, y), if any.
func (b *Battle) unitAt(x, y int) *models.Unit {
	for _, u := range b.units {
		if u.X == x && u.Y == y {
			return u
		}
	}
	return nil
}

// Reachable computes the tiles the unit can move to this turn.
func (b *Battle) Reachable(unitID int) ([]models.Tile, error) {
	if !b.started {
		return nil, ErrNotStarted
	}
	unit, err := b.Unit(unitID)
	if err != nil {
		return nil, err
	}
	return ReachableTiles(b.grid, b.cfg, b.roster(), unit), nil
}

// MoveUnit moves a unit of the acting team to (x, y). The destination must
// be on the board, vacant, and in the unit's reachable set. All-or-nothing:
// on any failure the unit stays where it was.
func (b *Battle) MoveUnit(unitID, x, y int) error {
	if !b.started {
		return ErrNotStarted
	}
	unit, err := b.Unit(unitID)
	if err != nil {
		return err
	}
	if unit.Team != b.currentTurn {
		return fmt.Errorf("unit %d is %s: %w", unitID, unit.Team, ErrNotYourTurn)
	}
	if !b.grid.InBounds(x, y) {
		return fmt.Errorf("destination (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	if other := b.unitAt(x, y); other != nil {
		return fmt.Errorf("destination (%d,%d) held by unit %d: %w", x, y, other.ID, ErrTileOccupied)
	}
	reachable := ReachableTiles(b.grid, b.cfg, b.roster(), unit)
	for _, t := range reachable {
		if t.X == x && t.Y == y {
			unit.X = x
			unit.Y = y
			return nil
		}
	}
	return fmt.Errorf("destination (%d,%d): %w", x, y, ErrUnreachable)
}

// Attack resolves an attack by a unit of the acting team. A defeated target
// is removed from the live roster, freeing its tile.
func (b *Battle) Attack(attackerID, targetID int) (AttackResult, error) {
	if !b.started {
		return AttackResult{}, ErrNotStarted
	}
	attacker, err := b.Unit(attackerID)
	if err != nil {
		return AttackResult{}, err
	}
	if attacker.Team != b.currentTurn {
		return AttackResult{}, fmt.Errorf("unit %d is %s: %w", attackerID, attacker.Team, ErrNotYourTurn)
	}
	target, err := b.Unit(targetID)
	if err != nil {
		return AttackResult{}, err
	}

	result, err := ResolveAttack(b.grid, b.cfg, attacker, target)
	if err != nil {
		return AttackResult{}, err
	}
	if result.TargetRemainingHP == 0 {
		delete(b.units, targetID)
	}
	return result, nil
}

// EndTurn flips the acting team. It does not check that any unit acted.
func (b *Battle) EndTurn() (models.Team, error) {
	if !b.started {
		return "", ErrNotStarted
	}
	b.currentTurn = b.currentTurn.Opponent()
	return b.currentTurn, nil
}

// Reset clears the battle back to NotStarted so Start may be called again.
func (b *Battle) Reset() {
	b.grid = nil
	b.units = make(map[int]*models.Unit)
	b.currentTurn = ""
	b.started = false
	b.nextUnitID = 1
}

// Winner reports the team that has eliminated the other, or "" while both
// sides still field units. Read-only: the turn state machine has no terminal
// state and keeps alternating regardless.
func (b *Battle) Winner() models.Team {
	if !b.started {
		return ""
	}
	playerAlive, enemyAlive := false, false
	for _, u := range b.units {
		switch u.Team {
		case models.TeamPlayer:
			playerAlive = true
		case models.TeamEnemy:
			enemyAlive = true
		}
	}
	switch {
	case playerAlive && !enemyAlive:
		return models.TeamPlayer
	case enemyAlive && !playerAlive:
		return models.TeamEnemy
	default:
		return ""
	}
}

// Snapshot returns the full read-only view of the battle.
func (b *Battle) Snapshot() models.BattleSnapshot {
	snap := models.BattleSnapshot{
		CurrentTurn: b.currentTurn,
		Started:     b.started,
		Units:       make([]models.Unit, 0, len(b.units)),
	}
	if b.grid != nil {
		snap.Grid = b.grid.Snapshot()
	}
	for _, u := range b.roster() {
		snap.Units = append(snap.Units, *u)
	}
	return snap
}
