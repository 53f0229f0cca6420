package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(72 * time.Hour)
	query, args, err := Select("id", "status").
		From("games").
		Where(
			Eq("competition_id", "epl-2025"),
			Gte("kickoff_at", from),
			Lte("kickoff_at", to),
			Ne("status", "FINISHED"),
			IsNull("deleted_at"),
		).
		OrderBy("kickoff_at ASC", "id ASC").
		Limit(50).
		Offset(100).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, status FROM games WHERE competition_id = $1 AND kickoff_at >= $2 AND kickoff_at <= $3 AND status <> $4 AND deleted_at IS NULL ORDER BY kickoff_at ASC, id ASC LIMIT 50 OFFSET 100"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[0] != "epl-2025" || args[3] != "FINISHED" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_InStringsAndExpr(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id").
		From("bets").
		Where(
			InStrings("game_id", []string{"g1", "g2"}),
			Expr("points IS NOT NULL AND user_id = ?", "u1"),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM bets WHERE game_id IN ($1, $2) AND points IS NOT NULL AND user_id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[2] != "u1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id").From("teams").Where(InStrings("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM teams WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query=%q args=%+v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("bets").
		Columns("id", "user_id", "game_id").
		Values("b1", "u1", "g1").
		Suffix("ON CONFLICT (user_id, game_id) DO UPDATE SET updated_at = NOW() RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO bets (id, user_id, game_id) VALUES ($1, $2, $3) ON CONFLICT (user_id, game_id) DO UPDATE SET updated_at = NOW() RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "b1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_RowLengthMismatch(t *testing.T) {
	t.Parallel()

	if _, _, err := InsertInto("bets").Columns("id", "user_id").Values("b1").ToSQL(); err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestUpdateBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Update("games").
		Set("status", "LIVE").
		SetExpr("updated_at", "NOW()").
		SetExpr("home_score", "COALESCE(?, home_score)", 2).
		Where(Eq("id", "g1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE games SET status = $1, updated_at = NOW(), home_score = COALESCE($2, home_score) WHERE id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "LIVE" || args[1] != 2 || args[2] != "g1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := DeleteFrom("app_settings").Where(Eq("key", "scoring.exact_points")).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM app_settings WHERE key = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("app_settings").ToSQL(); err == nil {
		t.Fatalf("expected error for delete without where")
	}
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	type row struct {
		ID       string `db:"id"`
		Name     string `db:"name"`
		internal string
		Skipped  string `db:"-"`
	}

	query, args, err := InsertModel("teams", row{ID: "t1", Name: "Arsenal", internal: "x"}, "")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}
	if query != "INSERT INTO teams (id, name) VALUES ($1, $2)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[1] != "Arsenal" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
