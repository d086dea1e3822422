package ws

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/flippy/reversi/internal/repository"
)

const (
	requestTimeout = 5 * time.Second
)

// Conn is the part of a websocket connection used by the handler.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
}

type Handler struct {
	repo *repository.GameRepository
	ws   Conn
}

// NewHandler creates a new Handler.
func NewHandler(ws Conn, repo *repository.GameRepository) *Handler {
	return &Handler{repo: repo, ws: ws}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", string(msg))

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("unexpected message type: %d", msgType)
	}

	if err = sonic.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("unmarshal error: %w", err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := sonic.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func (h *Handler) handleMessage(ctx context.Context, req *Incoming) (any, error) {
	if req.Event == "" {
		return nil, errors.New("event field is either empty or missing")
	}

	if req.Event != "create" && req.GameID == "" {
		return nil, errors.New("game_id field is either empty or missing")
	}

	switch req.Event {
	case "create":
		return h.handleCreate(ctx, req)
	case "state":
		return h.repo.GetGame(ctx, req.GameID)
	case "move":
		return h.handleMove(ctx, req)
	case "opponent_move":
		return h.repo.OpponentMove(ctx, req.GameID)
	case "reset":
		return h.handleReset(ctx, req)
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}
}

// Handle handles the websocket connection until it is closed. Failed requests are answered
// with an error message, malformed frames end the connection.
func (h *Handler) Handle() error {
	for {
		req, err := h.readMessage()
		if err != nil {
			return fmt.Errorf("ws read error: %w", err)
		}

		outgoing := &Outgoing{ID: req.ID}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		data, err := h.handleMessage(ctx, req)
		cancel()

		if err != nil {
			outgoing.Error = err.Error()
		} else {
			outgoing.Data = data
		}

		if err = h.writeMessage(outgoing); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

func unmarshalData(req *Incoming, v any) error {
	if len(req.Data) == 0 {
		return nil
	}

	if err := sonic.Unmarshal(req.Data, v); err != nil {
		return fmt.Errorf("ws %s request unmarshal error: %w", req.Event, err)
	}

	return nil
}

func (h *Handler) handleCreate(ctx context.Context, req *Incoming) (any, error) {
	var reqData CreateRequest
	if err := unmarshalData(req, &reqData); err != nil {
		return nil, err
	}

	return h.repo.CreateGame(ctx, reqData.Difficulty)
}

func (h *Handler) handleMove(ctx context.Context, req *Incoming) (any, error) {
	var reqData MoveRequest
	if err := unmarshalData(req, &reqData); err != nil {
		return nil, err
	}

	coord, err := reqData.Coord()
	if err != nil {
		return nil, err
	}

	return h.repo.SubmitMove(ctx, req.GameID, coord)
}

func (h *Handler) handleReset(ctx context.Context, req *Incoming) (any, error) {
	var reqData ResetRequest
	if err := unmarshalData(req, &reqData); err != nil {
		return nil, err
	}

	return h.repo.ResetGame(ctx, req.GameID, reqData)
}
