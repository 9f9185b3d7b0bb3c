package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"grid-tactics/internal/game"
	"grid-tactics/internal/models"
)

// NewRouter builds the HTTP API. Routes mirror the reference client's
// operation set; every battle route accepts an optional session_id (query or
// body) resolving to the default session when absent.
func NewRouter(mgr *SessionManager) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/game-state", func(c *gin.Context) {
			session, ok := mgr.Get(c.Query("session_id"))
			if !ok {
				respondUnknownSession(c)
				return
			}
			c.JSON(http.StatusOK, session.Snapshot())
		})

		api.POST("/sessions", func(c *gin.Context) {
			session, err := mgr.Create()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "success", "session_id": session.ID})
		})

		api.POST("/start-battle", func(c *gin.Context) {
			var req sessionRequest
			if !bindJSON(c, &req) {
				return
			}
			session, ok := mgr.Get(req.SessionID)
			if !ok {
				respondUnknownSession(c)
				return
			}
			snapshot, err := session.Start()
			if err != nil {
				respondEngineError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "success", "game_state": snapshot})
		})

		api.POST("/get-movement-range", func(c *gin.Context) {
			var req unitRequest
			if !bindJSON(c, &req) {
				return
			}
			session, ok := mgr.Get(req.SessionID)
			if !ok {
				respondUnknownSession(c)
				return
			}
			tiles, err := session.Reachable(req.UnitID)
			if err != nil {
				respondEngineError(c, err)
				return
			}
			if tiles == nil {
				tiles = []models.Tile{}
			}
			c.JSON(http.StatusOK, gin.H{"status": "success", "reachable_tiles": tiles})
		})

		api.POST("/move-unit", func(c *gin.Context) {
			var req moveRequest
			if !bindJSON(c, &req) {
				return
			}
			session, ok := mgr.Get(req.SessionID)
			if !ok {
				respondUnknownSession(c)
				return
			}
			if err := session.Move(req.UnitID, req.X, req.Y); err != nil {
				respondEngineError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "success"})
		})

		api.POST("/attack", func(c *gin.Context) {
			var req attackRequest
			if !bindJSON(c, &req) {
				return
			}
			session, ok := mgr.Get(req.SessionID)
			if !ok {
				respondUnknownSession(c)
				return
			}
			result, err := session.Attack(req.AttackerID, req.TargetID)
			if err != nil {
				respondEngineError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"status":              "success",
				"damage":              result.Damage,
				"target_remaining_hp": result.TargetRemainingHP,
				"attacker_name":       result.AttackerName,
				"target_name":         result.TargetName,
			})
		})

		api.POST("/end-turn", func(c *gin.Context) {
			var req sessionRequest
			if !bindJSON(c, &req) {
				return
			}
			session, ok := mgr.Get(req.SessionID)
			if !ok {
				respondUnknownSession(c)
				return
			}
			turn, err := session.EndTurn()
			if err != nil {
				respondEngineError(c, err)
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "success", "current_turn": turn})
		})

		api.POST("/reset-game", func(c *gin.Context) {
			var req sessionRequest
			if !bindJSON(c, &req) {
				return
			}
			session, ok := mgr.Get(req.SessionID)
			if !ok {
				respondUnknownSession(c)
				return
			}
			session.Reset()
			c.JSON(http.StatusOK, gin.H{"status": "success"})
		})

		api.GET("/events", func(c *gin.Context) {
			session, ok := mgr.Get(c.Query("session_id"))
			if !ok {
				respondUnknownSession(c)
				return
			}
			session.Hub().Serve(c.Writer, c.Request)
		})
	}

	return r
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

type unitRequest struct {
	SessionID string `json:"session_id"`
	UnitID    int    `json:"unit_id"`
}

type moveRequest struct {
	SessionID string `json:"session_id"`
	UnitID    int    `json:"unit_id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

type attackRequest struct {
	SessionID  string `json:"session_id"`
	AttackerID int    `json:"attacker_id"`
	TargetID   int    `json:"target_id"`
}

// bindJSON decodes the request body, tolerating an empty body so routes
// like start-battle and end-turn can be called without one.
func bindJSON(c *gin.Context, v interface{}) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "code": "bad_request", "message": err.Error()})
		return false
	}
	return true
}

func respondUnknownSession(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"status": "error", "code": "unknown_session", "message": "no such battle session"})
}

// respondEngineError maps an engine failure to a JSON error response with a
// stable code, so callers can branch without parsing messages.
func respondEngineError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	code := "invalid_request"
	switch {
	case errors.Is(err, game.ErrInvalidUnit):
		status, code = http.StatusNotFound, "invalid_unit"
	case errors.Is(err, game.ErrAlreadyStarted):
		status, code = http.StatusConflict, "already_started"
	case errors.Is(err, game.ErrNotStarted):
		status, code = http.StatusConflict, "not_started"
	case errors.Is(err, game.ErrNotYourTurn):
		code = "not_your_turn"
	case errors.Is(err, game.ErrOutOfBounds):
		code = "out_of_bounds"
	case errors.Is(err, game.ErrUnreachable):
		code = "unreachable"
	case errors.Is(err, game.ErrTileOccupied):
		code = "tile_occupied"
	case errors.Is(err, game.ErrOutOfRange):
		code = "out_of_range"
	case errors.Is(err, game.ErrTooClose):
		code = "too_close"
	case errors.Is(err, game.ErrFriendlyFire):
		code = "friendly_fire"
	default:
		status, code = http.StatusInternalServerError, "internal"
	}
	c.JSON(status, gin.H{"status": "error", "code": code, "message": err.Error()})
}
