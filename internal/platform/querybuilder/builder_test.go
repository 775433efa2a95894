package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "name").
		From("events").
		Where(
			NotIn("status", []any{"COMPLETED"}),
			IsNull("deleted_at"),
		).
		OrderBy("event_date", "id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT public_id, name FROM events WHERE status NOT IN ($1) AND deleted_at IS NULL ORDER BY event_date, id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "COMPLETED" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ExprAndComparison(t *testing.T) {
	query, args, err := Select("COUNT(1)").
		From("fights").
		Where(
			Lte("scheduled_start_time", "2026-03-07"),
			Expr("event_public_id IN (SELECT public_id FROM events WHERE tracker_mode = ?)", "time-based"),
			In("status", AnySlice([]string{"UPCOMING", "LIVE"})),
		).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT COUNT(1) FROM fights WHERE scheduled_start_time <= $1 AND event_public_id IN (SELECT public_id FROM events WHERE tracker_mode = $2) AND status IN ($3, $4)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 || args[1] != "time-based" || args[3] != "LIVE" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestEmptyInLists(t *testing.T) {
	query, _, err := Select("id").From("fights").Where(In("status", nil), NotIn("card_type", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if want := "SELECT id FROM fights WHERE 1=0 AND 1=1"; query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("fights").
		Set("status", "COMPLETED").
		SetExpr("updated_at", "NOW()").
		Where(Eq("event_public_id", "ev-1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE fights SET status = $1, updated_at = NOW() WHERE event_public_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "COMPLETED" || args[1] != "ev-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder_RequiresSets(t *testing.T) {
	b := Update("events").Where(Eq("public_id", "ev-1"))
	if !b.Empty() {
		t.Fatal("expected empty builder")
	}
	if _, _, err := b.ToSQL(); err == nil {
		t.Fatal("expected error for update without sets")
	}
}
