package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"grid-tactics/internal/models"
)

// Client drives the battle server's HTTP API.
type Client struct {
	baseURL   string
	sessionID string // empty means the server's default session
	http      *http.Client
}

// NewClient creates a client for the server at baseURL, e.g.
// "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// APIError is a non-success response from the server.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AttackOutcome is the wire form of a resolved attack.
type AttackOutcome struct {
	Damage            int    `json:"damage"`
	TargetRemainingHP int    `json:"target_remaining_hp"`
	AttackerName      string `json:"attacker_name"`
	TargetName        string `json:"target_name"`
}

// GameState fetches the current battle snapshot.
func (c *Client) GameState() (models.BattleSnapshot, error) {
	var snapshot models.BattleSnapshot
	url := c.baseURL + "/api/game-state"
	if c.sessionID != "" {
		url += "?session_id=" + c.sessionID
	}
	resp, err := c.http.Get(url)
	if err != nil {
		return snapshot, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return snapshot, decodeAPIError(resp)
	}
	err = json.NewDecoder(resp.Body).Decode(&snapshot)
	return snapshot, err
}

// StartBattle starts the battle and returns the opening snapshot.
func (c *Client) StartBattle() (models.BattleSnapshot, error) {
	var out struct {
		GameState models.BattleSnapshot `json:"game_state"`
	}
	err := c.post("/api/start-battle", map[string]interface{}{}, &out)
	return out.GameState, err
}

// MovementRange returns the tiles the unit can reach this turn.
func (c *Client) MovementRange(unitID int) ([]models.Tile, error) {
	var out struct {
		ReachableTiles []models.Tile `json:"reachable_tiles"`
	}
	err := c.post("/api/get-movement-range", map[string]interface{}{"unit_id": unitID}, &out)
	return out.ReachableTiles, err
}

// MoveUnit moves a unit to (x, y).
func (c *Client) MoveUnit(unitID, x, y int) error {
	return c.post("/api/move-unit", map[string]interface{}{"unit_id": unitID, "x": x, "y": y}, nil)
}

// Attack resolves an attack between two units.
func (c *Client) Attack(attackerID, targetID int) (AttackOutcome, error) {
	var out AttackOutcome
	err := c.post("/api/attack", map[string]interface{}{"attacker_id": attackerID, "target_id": targetID}, &out)
	return out, err
}

// EndTurn flips the acting team and returns the new one.
func (c *Client) EndTurn() (models.Team, error) {
	var out struct {
		CurrentTurn models.Team `json:"current_turn"`
	}
	err := c.post("/api/end-turn", map[string]interface{}{}, &out)
	return out.CurrentTurn, err
}

// ResetGame clears the battle back to its initial state.
func (c *Client) ResetGame() error {
	return c.post("/api/reset-game", map[string]interface{}{}, nil)
}

func (c *Client) post(path string, body map[string]interface{}, out interface{}) error {
	if c.sessionID != "" {
		body["session_id"] = c.sessionID
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := c.http.Post(c.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	var apiErr APIError
	if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return &apiErr
}
