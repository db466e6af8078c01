package graph

import (
	"fmt"
	"strings"

	"graphql-crm/internal/model"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/relay"
)

// connection is the value behind every *Connection type.
type connection struct {
	Edges      []*relay.Edge  `json:"edges"`
	PageInfo   relay.PageInfo `json:"pageInfo"`
	TotalCount int            `json:"totalCount"`
}

// window is the slice [Start, End) of a filtered result set requested by
// the relay arguments.
type window struct {
	args  relay.ConnectionArguments
	Start int
	End   int
}

// Page converts the window into a repository page request.
func (w window) Page(sort []model.SortField) model.PageRequest {
	return model.PageRequest{Offset: w.Start, Limit: w.End - w.Start, Sort: sort}
}

// Empty reports whether the window selects nothing.
func (w window) Empty() bool {
	return w.End <= w.Start
}

// connectionArgs extends the relay arguments with filter and ordering.
func connectionArgs(filter *graphql.InputObject) graphql.FieldConfigArgument {
	return relay.NewConnectionArgs(graphql.FieldConfigArgument{
		"filter": &graphql.ArgumentConfig{Type: filter},
		"orderBy": &graphql.ArgumentConfig{
			Type:        graphql.NewList(graphql.NewNonNull(graphql.String)),
			Description: "Field names, prefix with '-' for descending order.",
		},
	})
}

// newWindow resolves first/after/last/before against total. Without first
// or last the page size defaults to defaultSize; both are capped at maxSize.
func newWindow(raw map[string]interface{}, total, defaultSize, maxSize int) (window, error) {
	args := relay.NewConnectionArguments(raw)

	for _, name := range []string{"first", "last"} {
		if v, ok := raw[name].(int); ok && v < 0 {
			return window{}, fmt.Errorf("argument %q must be a non-negative integer", name)
		}
	}
	if args.First == -1 && args.Last == -1 {
		args.First = defaultSize
	}
	if args.First > maxSize {
		args.First = maxSize
	}
	if args.Last > maxSize {
		args.Last = maxSize
	}

	after := -1
	if args.After != "" {
		offset, err := relay.CursorToOffset(args.After)
		if err != nil || offset < 0 {
			return window{}, fmt.Errorf("invalid cursor %q", args.After)
		}
		after = offset
	}
	before := total
	if args.Before != "" {
		offset, err := relay.CursorToOffset(args.Before)
		if err != nil || offset < 0 {
			return window{}, fmt.Errorf("invalid cursor %q", args.Before)
		}
		before = offset
	}

	start := after + 1
	end := min(before, total)
	if args.First != -1 {
		end = min(end, start+args.First)
	}
	if args.Last != -1 {
		start = max(start, end-args.Last)
	}

	return window{args: args, Start: start, End: end}, nil
}

// build assembles the connection for the nodes fetched for w.
func (w window) build(nodes []interface{}, total int) *connection {
	start := w.Start
	if w.Empty() {
		start = min(w.Start, total)
	}
	conn := relay.ConnectionFromArraySlice(nodes, w.args, relay.ArraySliceMetaInfo{
		SliceStart:  start,
		ArrayLength: total,
	})
	edges := conn.Edges
	if edges == nil {
		edges = []*relay.Edge{}
	}
	return &connection{Edges: edges, PageInfo: conn.PageInfo, TotalCount: total}
}

// parseOrderBy turns ["name", "-createdAt"] into sort fields.
func parseOrderBy(raw interface{}) []model.SortField {
	list, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	sort := make([]model.SortField, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok || s == "" {
			continue
		}
		field := model.SortField{Field: s}
		if strings.HasPrefix(s, "-") {
			field = model.SortField{Field: s[1:], Descending: true}
		}
		sort = append(sort, field)
	}
	return sort
}
