package tools

import (
	"context"

	"fundline/pkg/errors"
)

type searchWebArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// NewSearchWebTool runs a web search for rates, comps, or market questions.
func NewSearchWebTool(deps Deps) Tool {
	schema := objectSchema(
		[]string{"query"},
		map[string]interface{}{
			"query": stringProp("Search query"),
			"limit": integerProp("Maximum number of results, default 5"),
		},
	)

	return New("search_web", "Search the web for current rates, property comps, or market information", schema,
		func(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
			if !deps.HasSearch() {
				return nil, errors.Wrapf(errors.ErrInternal, "search_web: search client not configured")
			}

			var in searchWebArgs
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			if in.Query == "" {
				return nil, errors.Wrapf(errors.ErrInvalidInput, "search_web: query is required")
			}
			if in.Limit <= 0 {
				in.Limit = 5
			}

			results, err := deps.Search.Search(ctx, in.Query, in.Limit)
			if err != nil {
				return nil, errors.Wrap(err, "search_web: search call")
			}

			hits := make([]map[string]interface{}, 0, len(results))
			for _, r := range results {
				hits = append(hits, map[string]interface{}{
					"title":   r.Title,
					"url":     r.URL,
					"snippet": r.Snippet,
				})
			}

			return map[string]interface{}{
				"query":   in.Query,
				"results": hits,
			}, nil
		})
}
