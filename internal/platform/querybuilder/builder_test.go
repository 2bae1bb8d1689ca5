package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("players").
		Where(Eq("status", "available"), IsNull("deleted_at")).
		OrderBy("name").
		Limit(25).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM players WHERE status = $1 AND deleted_at IS NULL ORDER BY name LIMIT 25"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "available" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_GroupBy(t *testing.T) {
	query, args, err := Select("p.category AS category", "COUNT(*) AS cnt").
		From("roster_entries r JOIN players p ON p.id = r.player_id").
		Where(Eq("r.owner_id", "own-a")).
		GroupBy("p.category").
		ToSQL()
	if err != nil {
		t.Fatalf("build grouped select query: %v", err)
	}

	wantQuery := "SELECT p.category AS category, COUNT(*) AS cnt FROM roster_entries r JOIN players p ON p.id = r.player_id WHERE r.owner_id = $1 GROUP BY p.category"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "own-a" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("bids").
		Columns("id", "amount").
		Values("b1", int64(500)).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO bids (id, amount) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "b1" || args[1] != int64(500) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("auction_state").
		Set("current_bid", int64(650)).
		SetExpr("version", "version + 1").
		Where(Eq("id", "live"), Eq("version", int64(3))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE auction_state SET current_bid = $1, version = version + 1 WHERE id = $2 AND version = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != int64(650) || args[1] != "live" || args[2] != int64(3) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("balls").
		Where(Eq("id", "ball-9")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM balls WHERE id = $1"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "ball-9" {
		t.Fatalf("unexpected args: %+v", args)
	}
}
