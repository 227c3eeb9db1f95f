// Package paginate walks cursor-based connections to exhaustion.
package paginate

import (
	"context"
	"errors"
)

// PageSize is the number of nodes requested per page.
const PageSize = 250

// ErrMissingCursor is returned when a page claims more results but gives no
// cursor to fetch them with.
var ErrMissingCursor = errors.New("page has a next page but no end cursor")

// PageInfo is the pagination part of every connection response.
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// Page is one fetched slice of a connection.
type Page[T any] struct {
	Nodes    []T      `json:"nodes"`
	PageInfo PageInfo `json:"pageInfo"`
}

// FetchFunc fetches the page that starts after the given cursor. A nil
// cursor requests the first page.
type FetchFunc[T any] func(ctx context.Context, after *string) (Page[T], error)

// All calls fetch until a page reports no next page and returns every node
// in arrival order. Any fetch error aborts the walk; no partial result is
// returned.
func All[T any](ctx context.Context, fetch FetchFunc[T]) ([]T, error) {
	items := []T{}
	var after *string

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := fetch(ctx, after)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Nodes...)

		if !page.PageInfo.HasNextPage {
			return items, nil
		}
		if page.PageInfo.EndCursor == nil || *page.PageInfo.EndCursor == "" {
			return nil, ErrMissingCursor
		}
		cursor := *page.PageInfo.EndCursor
		after = &cursor
	}
}
