package tools

import (
	"context"

	"fundline/pkg/errors"
)

type pullCreditArgs struct {
	FullName    string `json:"full_name"`
	SSNLast4    string `json:"ssn_last4"`
	DateOfBirth string `json:"date_of_birth"`
}

// NewPullCreditReportTool pulls a soft credit report for an applicant.
func NewPullCreditReportTool(deps Deps) Tool {
	schema := objectSchema(
		[]string{"full_name", "ssn_last4"},
		map[string]interface{}{
			"full_name":     stringProp("Applicant's full legal name"),
			"ssn_last4":     stringProp("Last four digits of the applicant's SSN"),
			"date_of_birth": stringProp("Date of birth, MM/DD/YYYY"),
		},
	)

	return New("pull_credit_report", "Run a soft credit pull and return the applicant's score and trade summary", schema,
		func(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
			if !deps.HasCredit() {
				return nil, errors.Wrapf(errors.ErrInternal, "pull_credit_report: credit bureau not configured")
			}

			var in pullCreditArgs
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			if in.FullName == "" || in.SSNLast4 == "" {
				return nil, errors.Wrapf(errors.ErrInvalidInput, "pull_credit_report: full_name and ssn_last4 are required")
			}

			report, err := deps.Credit.Pull(ctx, CreditPullRequest{
				FullName:    in.FullName,
				SSNLast4:    in.SSNLast4,
				DateOfBirth: in.DateOfBirth,
			})
			if err != nil {
				return nil, errors.Wrap(err, "pull_credit_report: bureau call")
			}

			return map[string]interface{}{
				"score":        report.Score,
				"bureau":       report.Bureau,
				"openTrades":   report.OpenTrades,
				"derogatories": report.Derogatories,
				"notes":        report.Notes,
			}, nil
		})
}
