package handlers

import (
	"bytes"
	"encoding/gob"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avdeenko/battleships-server/internal/config"
	"github.com/avdeenko/battleships-server/internal/middleware"
	"github.com/avdeenko/battleships-server/internal/repository"
	"github.com/avdeenko/battleships-server/ships"
)

type PuzzleHandler struct {
	logger  *slog.Logger
	repo    *repository.Queries
	cookies *config.Cookies
	ws      *config.WebSocket
	rnd     *rand.Rand
}

func NewPuzzleHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	cookies *config.Cookies,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *PuzzleHandler {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)

	return &PuzzleHandler{
		logger:  logger,
		repo:    repository.New(db),
		cookies: cookies,
		ws:      ws,
		rnd:     rnd,
	}
}

func (p PuzzleHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dto, err := ParseCreatePuzzleDTO(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, p.logger, wrapError(err))
		return
	}

	params := ships.GameParams{
		Height:     dto.Height,
		Width:      dto.Width,
		Difficulty: ships.Difficulty(dto.Difficulty),
	}
	if err := params.Validate(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, p.logger, wrapError(err))
		return
	}

	result, err := ships.Generate(params, ships.NewRand(p.rnd))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		p.logger.Error("unable to generate a new puzzle", "error", err)
		return
	}

	state := ships.NewPuzzleState(result.Clues)

	var playerID *int
	if claims, loggedIn := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims); loggedIn {
		p.logger.Debug("creating player puzzle session", "claims", claims)
		id := int(claims.PlayerId)
		playerID = &id
	} else {
		p.logger.Debug("creating anonymous puzzle session")
	}

	session, err := p.repo.CreatePuzzleSession(
		r.Context(), &state, repository.CreatePuzzleSessionParams{PlayerId: playerID},
	)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		p.logger.Error("unable to create puzzle session", "error", err)
		return
	}

	sendJSONOrLog(w, p.logger, NewPuzzleSessionDTO(
		int64(session.PuzzleSessionId), session.Difficulty, session.Solved, session.Forfeited,
		session.StartedAt.Time, nil, &state,
	))
}

func (p PuzzleHandler) loadState(w http.ResponseWriter, r *http.Request) (*repository.PuzzleSession, *ships.PuzzleState, bool) {
	sessionId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return nil, nil, false
	}

	session, err := p.repo.FetchPuzzleSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		p.logger.Error("unable to fetch puzzle session from db", "error", err)
		return nil, nil, false
	}

	var state ships.PuzzleState
	if err := gob.NewDecoder(bytes.NewReader(session.State)).Decode(&state); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		p.logger.Error("db returned invalid puzzle_session.state", "error", err)
		return nil, nil, false
	}

	return session, &state, true
}

func (p PuzzleHandler) sessionDTO(session *repository.PuzzleSession, state *ships.PuzzleState) *PuzzleSessionDTO {
	var endedAt *time.Time
	if session.EndedAt.Valid {
		endedAt = &session.EndedAt.Time
	}
	return NewPuzzleSessionDTO(
		int64(session.PuzzleSessionId), session.Difficulty, session.Solved, session.Forfeited,
		session.StartedAt.Time, endedAt, state,
	)
}

func (p PuzzleHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, state, ok := p.loadState(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, p.logger, p.sessionDTO(session, state))
}

func (p PuzzleHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	mv, err := ships.ParseMove(query.Get("move"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, p.logger, wrapError(err))
		return
	}

	session, state, ok := p.loadState(w, r)
	if !ok {
		return
	}

	if err := state.Apply(mv); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, p.logger, wrapError(err))
		return
	}

	result := state.Validate()

	var endedAt *time.Time
	solved := session.Solved
	if result.Solved && !solved {
		now := time.Now().UTC()
		endedAt = &now
		solved = true
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		p.logger.Error("unable to serialize puzzle state", "error", err)
		return
	}

	stateBytes := buf.Bytes()
	updated, err := p.repo.UpdatePuzzleSession(r.Context(), session.PuzzleSessionId, repository.UpdatePuzzleSessionParams{
		Solved:  &solved,
		EndedAt: endedAt,
		State:   &stateBytes,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		p.logger.Error("unable to update puzzle session in db", "error", err)
		return
	}

	sendJSONOrLog(w, p.logger, p.sessionDTO(updated, state))
}

func (p PuzzleHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	session, state, ok := p.loadState(w, r)
	if !ok {
		return
	}

	forfeited := true
	now := time.Now().UTC()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		p.logger.Error("unable to serialize puzzle state", "error", err)
		return
	}

	stateBytes := buf.Bytes()
	updated, err := p.repo.UpdatePuzzleSession(r.Context(), session.PuzzleSessionId, repository.UpdatePuzzleSessionParams{
		Forfeited: &forfeited,
		EndedAt:   &now,
		State:     &stateBytes,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		p.logger.Error("unable to update puzzle session in db", "error", err)
		return
	}

	sendJSONOrLog(w, p.logger, p.sessionDTO(updated, state))
}

// Solve returns the encoded solver move (spec §6.4) for the session's
// ground-truth solution, letting a client auto-fill the board.
func (p PuzzleHandler) Solve(w http.ResponseWriter, r *http.Request) {
	_, state, ok := p.loadState(w, r)
	if !ok {
		return
	}

	sol, _, err := ships.ExhaustiveSolve(state.Clues, 0)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		p.logger.Error("unable to resolve puzzle solution", "error", err)
		return
	}

	typed := ships.RenderSolution(state.Clues.H, state.Clues.W, state.Clues.Ships, sol)
	sendJSONOrLog(w, p.logger, map[string]string{
		"move": ships.EncodeSolverMove(typed),
	})
}
