package db

import (
	"context"
	"encoding/base64"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
)

// ConnectionArgs are the cursor pagination arguments every list query
// accepts. Cursors are opaque and skip-resistant: they point at a row by
// its ordering column value, not by offset, so they stay valid when
// earlier or later rows come and go.
type ConnectionArgs struct {
	First  *int
	Last   *int
	Before *string
	After  *string
}

type Edge[T any] struct {
	Cursor string `json:"cursor"`
	Node   T      `json:"node"`
}

type PageInfo struct {
	TotalCount      int     `json:"totalCount"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	HasNextPage     bool    `json:"hasNextPage"`
}

type Connection[T any] struct {
	PageInfo PageInfo  `json:"pageInfo"`
	Edges    []Edge[T] `json:"edges"`
}

// ordering ties an ORDER BY clause to the extraction of the ordering
// column's value from a row, which is what cursors are derived from.
type ordering[T any] struct {
	clause   string
	cursorOf func(*T) string
}

// orderingFor resolves an orderBy argument against the entity's
// whitelist, defaulting when the argument is absent.
func orderingFor[T any](orderings map[string]ordering[T], orderBy *string, def string) (ordering[T], error) {
	key := def
	if orderBy != nil {
		key = *orderBy
	}
	o, ok := orderings[key]
	if !ok {
		return ordering[T]{}, apperr.BadRequest("invalid orderBy value: " + key)
	}
	return o, nil
}

func encodeCursor(value string) string {
	return base64.StdEncoding.EncodeToString([]byte(value))
}

func timeCursor(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func idCursor(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// paginate runs the ordered, filtered query and windows the result per
// args. The query does the filtering and the ordering; locating the
// before/after rows, counting and windowing all happen in one pass over
// the ordered set.
func paginate[T any](ctx context.Context, q *gorm.DB, o ordering[T], args ConnectionArgs) (*Connection[T], error) {
	var rows []T
	if err := q.WithContext(ctx).Order(o.clause).Find(&rows).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return connectionOf(rows, o.cursorOf, args)
}

func connectionOf[T any](rows []T, cursorOf func(*T) string, args ConnectionArgs) (*Connection[T], error) {
	if args.First != nil && *args.First < 0 {
		return nil, apperr.BadRequest("first must not be negative")
	}
	if args.Last != nil && *args.Last < 0 {
		return nil, apperr.BadRequest("last must not be negative")
	}

	edges := make([]Edge[T], len(rows))
	for i := range rows {
		edges[i] = Edge[T]{Cursor: encodeCursor(cursorOf(&rows[i])), Node: rows[i]}
	}

	total := len(edges)
	start, end := 0, total

	if args.After != nil {
		i, ok := locateCursor(edges, *args.After)
		if !ok {
			return nil, apperr.BadRequest("invalid cursor")
		}
		start = i + 1
	}
	if args.Before != nil {
		i, ok := locateCursor(edges, *args.Before)
		if !ok {
			return nil, apperr.BadRequest("invalid cursor")
		}
		if i < end {
			end = i
		}
	}
	if end < start {
		end = start
	}

	if args.First != nil && start+*args.First < end {
		end = start + *args.First
	}
	if args.Last != nil && end-*args.Last > start {
		start = end - *args.Last
	}

	window := edges[start:end]
	pageInfo := PageInfo{
		TotalCount:      total,
		HasPreviousPage: (args.After != nil || args.Before != nil) && start > 0,
		HasNextPage:     end < total,
	}
	if len(window) > 0 {
		pageInfo.StartCursor = &window[0].Cursor
		pageInfo.EndCursor = &window[len(window)-1].Cursor
	}

	return &Connection[T]{PageInfo: pageInfo, Edges: window}, nil
}

func locateCursor[T any](edges []Edge[T], cursor string) (int, bool) {
	for i := range edges {
		if edges[i].Cursor == cursor {
			return i, true
		}
	}
	return 0, false
}
