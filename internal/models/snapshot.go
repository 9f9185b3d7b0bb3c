package models

// Tile is a board coordinate. Used for reachability results and wire payloads.
type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// GridSnapshot is the wire form of the board: dimensions plus a row-major
// [height][width] matrix of terrain kinds.
type GridSnapshot struct {
	Width  int             `json:"width"`
	Height int             `json:"height"`
	Tiles  [][]TerrainKind `json:"tiles"`
}

// BattleSnapshot is the full read-only view of a battle returned to clients.
type BattleSnapshot struct {
	Grid        GridSnapshot `json:"grid"`
	Units       []Unit       `json:"units"`
	CurrentTurn Team         `json:"current_turn"`
	Started     bool         `json:"started"`
}

// BattleEvent types published on the event stream.
const (
	EventBattleStarted = "battle_started"
	EventUnitMoved     = "unit_moved"
	EventUnitAttacked  = "unit_attacked"
	EventUnitDefeated  = "unit_defeated"
	EventTurnEnded     = "turn_ended"
	EventBattleReset   = "battle_reset"
)

// BattleEvent is a single entry in a battle's event log, broadcast to
// websocket observers as it happens.
type BattleEvent struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Payload interface{} `json:"payload,omitempty"`
}
