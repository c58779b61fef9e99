// custom query
package repository

import (
	"context"
	"strings"

	"github.com/avdeenko/battleships-server/ships"
	"github.com/jackc/pgx/v5"
)

type Highscore struct {
	PuzzleSessionId string  `json:"puzzle_session_id"`
	Username        *string `json:"username"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	Difficulty      int     `json:"difficulty"`
	PlaytimeMs      float64 `json:"playtime_ms"`
}

type HighscoreFilter struct {
	Username   *string
	GameParams *ships.GameParams
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.GameParams != nil {
		clauses = append(
			clauses,
			"width = @width",
			"height = @height",
			"difficulty = @difficulty",
		)
		args["width"] = f.GameParams.Width
		args["height"] = f.GameParams.Height
		args["difficulty"] = int(f.GameParams.Difficulty)
	}
	return strings.Join(clauses, " AND "), args

}

func (q Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		puzzle_session_id,
		username,
		width,
		height,
		difficulty,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 playtime_ms
	FROM puzzle_session
		LEFT OUTER JOIN player using (player_id)
	WHERE
		solved = true
		AND forfeited = false
		AND ended_at IS NOT NULL
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY playtime_ms;"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
