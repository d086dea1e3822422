package ws

import (
	"encoding/json"

	"github.com/lk16/flippy/reversi/internal/models"
)

type Incoming struct {
	Event  string          `json:"event"`
	ID     int             `json:"id"`
	GameID string          `json:"game_id"`
	Data   json.RawMessage `json:"data"`
}

type Outgoing struct {
	ID    int    `json:"id"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type CreateRequest = models.CreateGamePayload

type MoveRequest = models.MovePayload

type ResetRequest = models.ResetPayload
