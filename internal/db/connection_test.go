package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
)

func numberedRows(n int) ([]int, func(*int) string) {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i + 1
	}
	return rows, func(i *int) string { return fmt.Sprintf("%d", *i) }
}

func nodes(conn *Connection[int]) []int {
	out := make([]int, len(conn.Edges))
	for i, e := range conn.Edges {
		out[i] = e.Node
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestConnectionFirst(t *testing.T) {
	rows, cursorOf := numberedRows(5)
	conn, err := connectionOf(rows, cursorOf, ConnectionArgs{First: intPtr(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalInts(nodes(conn), []int{1, 2}) {
		t.Fatalf("expected [1 2], got %v", nodes(conn))
	}
	if conn.PageInfo.TotalCount != 5 {
		t.Fatalf("expected total 5, got %d", conn.PageInfo.TotalCount)
	}
	if !conn.PageInfo.HasNextPage {
		t.Fatal("expected a next page")
	}
	if conn.PageInfo.HasPreviousPage {
		t.Fatal("expected no previous page without a cursor")
	}
}

func TestConnectionAfterPagesToCompletion(t *testing.T) {
	rows, cursorOf := numberedRows(5)

	var seen []int
	var after *string
	for {
		conn, err := connectionOf(rows, cursorOf, ConnectionArgs{First: intPtr(2), After: after})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, e := range conn.Edges {
			seen = append(seen, e.Node)
		}
		if !conn.PageInfo.HasNextPage {
			break
		}
		after = conn.PageInfo.EndCursor
	}
	if !equalInts(seen, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("expected to see every row exactly once, got %v", seen)
	}
}

func TestConnectionLastBefore(t *testing.T) {
	rows, cursorOf := numberedRows(5)
	before := encodeCursor(cursorOf(&rows[4])) // points at 5

	conn, err := connectionOf(rows, cursorOf, ConnectionArgs{Last: intPtr(2), Before: &before})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalInts(nodes(conn), []int{3, 4}) {
		t.Fatalf("expected [3 4], got %v", nodes(conn))
	}
	if !conn.PageInfo.HasPreviousPage {
		t.Fatal("expected a previous page")
	}
	if !conn.PageInfo.HasNextPage {
		t.Fatal("expected a next page: row 5 is past the window")
	}
}

func TestConnectionSameArgsSamePage(t *testing.T) {
	rows, cursorOf := numberedRows(7)
	after := encodeCursor(cursorOf(&rows[1]))
	args := ConnectionArgs{First: intPtr(3), After: &after}

	first, err := connectionOf(rows, cursorOf, args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := connectionOf(rows, cursorOf, args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalInts(nodes(first), nodes(second)) {
		t.Fatalf("expected identical pages, got %v and %v", nodes(first), nodes(second))
	}
}

func TestConnectionEmpty(t *testing.T) {
	rows, cursorOf := numberedRows(0)
	conn, err := connectionOf(rows, cursorOf, ConnectionArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conn.PageInfo.TotalCount != 0 {
		t.Fatalf("expected total 0, got %d", conn.PageInfo.TotalCount)
	}
	if conn.PageInfo.StartCursor != nil || conn.PageInfo.EndCursor != nil {
		t.Fatal("expected nil cursors on an empty connection")
	}
	if conn.PageInfo.HasPreviousPage || conn.PageInfo.HasNextPage {
		t.Fatal("expected no pages either way")
	}
	if len(conn.Edges) != 0 {
		t.Fatalf("expected no edges, got %d", len(conn.Edges))
	}
}

func TestConnectionInvalidCursor(t *testing.T) {
	rows, cursorOf := numberedRows(3)
	bogus := encodeCursor("bogus")
	_, err := connectionOf(rows, cursorOf, ConnectionArgs{After: &bogus})
	if apperr.StatusOf(err) != 400 {
		t.Fatalf("expected status 400, got %d (%v)", apperr.StatusOf(err), err)
	}
}

func TestConnectionNegativeFirst(t *testing.T) {
	rows, cursorOf := numberedRows(3)
	_, err := connectionOf(rows, cursorOf, ConnectionArgs{First: intPtr(-1)})
	if apperr.StatusOf(err) != 400 {
		t.Fatalf("expected status 400, got %d (%v)", apperr.StatusOf(err), err)
	}
}

func TestPaginateAgainstStore(t *testing.T) {
	store, cleanup := newTestStore(t)
	defer cleanup()

	user := mustCreateUser(t, store, "pager@example.com")
	for _, label := range []string{"INPS", "IRPEF", "IVA"} {
		if _, err := store.CreateTax(context.Background(), user.ID, TaxCreationInput{
			Label: label,
			Value: 0.1,
		}); err != nil {
			t.Fatalf("create tax: %v", err)
		}
	}

	conn, err := store.TaxesForUser(context.Background(), user.ID, ConnectionArgs{First: intPtr(2)}, nil)
	if err != nil {
		t.Fatalf("list taxes: %v", err)
	}
	if len(conn.Edges) != 2 || conn.PageInfo.TotalCount != 3 {
		t.Fatalf("expected 2 of 3 taxes, got %d of %d", len(conn.Edges), conn.PageInfo.TotalCount)
	}
	if conn.Edges[0].Node.Label != "INPS" || conn.Edges[1].Node.Label != "IRPEF" {
		t.Fatalf("expected label ascending order, got %q then %q",
			conn.Edges[0].Node.Label, conn.Edges[1].Node.Label)
	}

	rest, err := store.TaxesForUser(context.Background(), user.ID,
		ConnectionArgs{After: conn.PageInfo.EndCursor}, nil)
	if err != nil {
		t.Fatalf("list remaining taxes: %v", err)
	}
	if len(rest.Edges) != 1 || rest.Edges[0].Node.Label != "IVA" {
		t.Fatalf("expected the last tax, got %+v", rest.Edges)
	}

	_, err = store.TaxesForUser(context.Background(), user.ID, ConnectionArgs{}, strPtr("BOGUS"))
	if apperr.StatusOf(err) != 400 {
		t.Fatalf("expected status 400 for unknown orderBy, got %d (%v)", apperr.StatusOf(err), err)
	}
}
