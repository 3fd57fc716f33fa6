package tools

import (
	"context"

	"fundline/pkg/errors"
)

type applicationStatusArgs struct {
	SessionID string `json:"session_id"`
}

// NewGetApplicationStatusTool reports where an intake session stands.
func NewGetApplicationStatusTool(deps Deps) Tool {
	schema := objectSchema(
		[]string{"session_id"},
		map[string]interface{}{
			"session_id": stringProp("The intake session identifier"),
		},
	)

	return New("get_application_status", "Look up an in-progress loan application's current step, loan type, and deal score", schema,
		func(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
			if !deps.HasSessions() {
				return nil, errors.Wrapf(errors.ErrInternal, "get_application_status: session store not configured")
			}

			var in applicationStatusArgs
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			if in.SessionID == "" {
				return nil, errors.Wrapf(errors.ErrInvalidInput, "get_application_status: session_id is required")
			}

			state, err := deps.Sessions.Get(ctx, in.SessionID)
			if err != nil {
				return nil, errors.Wrap(err, "get_application_status: load session")
			}

			return map[string]interface{}{
				"sessionId":   in.SessionID,
				"step":        string(state.Step),
				"loanType":    string(state.LoanType),
				"score":       state.DealScore.Score,
				"probability": string(state.DealScore.Probability),
				"messages":    len(state.History),
			}, nil
		})
}
