package handlers

import (
	"strconv"
	"time"

	"github.com/avdeenko/battleships-server/ships"
	"github.com/gorilla/schema"
)

type CreatePuzzleDTO struct {
	Width      int `schema:"width,required"`
	Height     int `schema:"height,required"`
	Difficulty int `schema:"difficulty,required"`
}

func ParseCreatePuzzleDTO(src map[string][]string) (CreatePuzzleDTO, error) {
	var dto CreatePuzzleDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type PuzzleSessionDTO struct {
	PuzzleSessionId string  `json:"puzzle_session_id"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	Difficulty      int     `json:"difficulty"`
	Ships           []int   `json:"ships"`
	Rows            []int   `json:"rows"`
	Cols            []int   `json:"cols"`
	Board           [][]int `json:"board"`
	RowMarked       []bool  `json:"row_marked"`
	ColMarked       []bool  `json:"col_marked"`
	Solved          bool    `json:"solved"`
	Forfeited       bool    `json:"forfeited"`
	StartedAt       int64   `json:"started_at"`
	EndedAt         *int64  `json:"ended_at,omitempty"`
}

func boardToRows(b ships.Board) [][]int {
	out := make([][]int, b.H)
	for y := 0; y < b.H; y++ {
		row := make([]int, b.W)
		for x := 0; x < b.W; x++ {
			row[x] = int(b.At(y, x))
		}
		out[y] = row
	}
	return out
}

func NewPuzzleSessionDTO(
	puzzleSessionId int64,
	difficulty int,
	solved, forfeited bool,
	startedAt time.Time,
	endedAt *time.Time,
	state *ships.PuzzleState,
) *PuzzleSessionDTO {
	var endedAtMs *int64
	if endedAt != nil {
		e := endedAt.UnixMilli()
		endedAtMs = &e
	}
	return &PuzzleSessionDTO{
		PuzzleSessionId: strconv.FormatInt(puzzleSessionId, 10),
		Width:           state.Clues.W,
		Height:          state.Clues.H,
		Difficulty:      difficulty,
		Ships:           state.Clues.Ships,
		Rows:            state.Clues.Rows,
		Cols:            state.Clues.Cols,
		Board:           boardToRows(ships.RenderTypedView(state.Board)),
		RowMarked:       state.RowMarked,
		ColMarked:       state.ColMarked,
		Solved:          solved,
		Forfeited:       forfeited,
		StartedAt:       startedAt.UnixMilli(),
		EndedAt:         endedAtMs,
	}
}
