package handlers

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"

	"github.com/avdeenko/battleships-server/internal/repository"
	"github.com/avdeenko/battleships-server/ships"
)

// ConnectWS upgrades to a websocket and applies one or more newline
// separated move-description strings (spec §6.3) per incoming text
// message, echoing back the updated session as JSON after each batch.
func (p PuzzleHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	sessionId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	session, err := p.repo.FetchPuzzleSession(r.Context(), sessionId)
	if err != nil {
		if err == pgx.ErrNoRows {
			w.WriteHeader(http.StatusNotFound)
		} else {
			p.logger.Error("could not fetch puzzle session from db", "error", err)
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	var state ships.PuzzleState
	if err := gob.NewDecoder(bytes.NewReader(session.State)).Decode(&state); err != nil {
		p.logger.Error("db returned invalid puzzle_session.state", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	conn, err := p.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		p.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	p.logger.Debug("established puzzle WS connection", "session", sessionId)

	if err := p.wsRunPuzzleLoop(r.Context(), conn, session, &state); err != nil {
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			p.logger.Warn("error in puzzle ws loop", slog.Any("error", err))
		}
	}
}

func (p PuzzleHandler) wsRunPuzzleLoop(
	ctx context.Context, conn *websocket.Conn, session *repository.PuzzleSession, state *ships.PuzzleState,
) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		lines := strings.Split(strings.TrimSpace(string(buf)), "\n")
		for _, line := range lines {
			mv, err := ships.ParseMove(strings.TrimSpace(line))
			if err != nil {
				return fmt.Errorf("invalid move: %w", err)
			}
			if err := state.Apply(mv); err != nil {
				return fmt.Errorf("could not apply move: %w", err)
			}
		}

		result := state.Validate()
		if result.Solved && !session.Solved {
			now := time.Now().UTC()
			session.EndedAt.Time = now
			session.EndedAt.Valid = true
			session.Solved = true
		}

		var stateBuf bytes.Buffer
		if err := gob.NewEncoder(&stateBuf).Encode(state); err != nil {
			return fmt.Errorf("unable to serialize puzzle state: %w", err)
		}
		stateBytes := stateBuf.Bytes()

		var endedAt *time.Time
		if session.EndedAt.Valid {
			endedAt = &session.EndedAt.Time
		}
		solved := session.Solved
		updated, err := p.repo.UpdatePuzzleSession(ctx, session.PuzzleSessionId, repository.UpdatePuzzleSessionParams{
			Solved:  &solved,
			EndedAt: endedAt,
			State:   &stateBytes,
		})
		if err != nil {
			return fmt.Errorf("unable to update puzzle session in db: %w", err)
		}
		session = updated

		if err := conn.WriteJSON(p.sessionDTO(session, state)); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}
