package tools

import (
	"context"

	"fundline/internal/domain/deal"
)

type scoreDealArgs struct {
	CreditScore        int     `json:"credit_score"`
	MonthlyIncome      float64 `json:"monthly_income"`
	AnnualRevenue      float64 `json:"annual_revenue"`
	LiquidAssets       float64 `json:"liquid_assets"`
	InvestorExperience string  `json:"investor_experience"`
}

// NewScoreDealTool evaluates a deal profile and returns the funding score.
func NewScoreDealTool() Tool {
	schema := objectSchema(
		nil,
		map[string]interface{}{
			"credit_score":        integerProp("Applicant credit score, 0 if unknown"),
			"monthly_income":      numberProp("Gross monthly income in USD"),
			"annual_revenue":      numberProp("Annual business revenue in USD"),
			"liquid_assets":       numberProp("Liquid assets available in USD"),
			"investor_experience": stringProp("Completed deals, e.g. '3' or '0 (first time)'"),
		},
	)

	return New("score_deal", "Score a loan scenario and return funding probability and recommendation", schema,
		func(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
			var in scoreDealArgs
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}

			score := deal.Evaluate(deal.Input{
				CreditScore:        in.CreditScore,
				MonthlyIncome:      in.MonthlyIncome,
				AnnualRevenue:      in.AnnualRevenue,
				LiquidAssets:       in.LiquidAssets,
				InvestorExperience: in.InvestorExperience,
			})

			return map[string]interface{}{
				"score":               score.Score,
				"probability":         string(score.Probability),
				"recommendation":      score.Recommendation,
				"missingCriticalInfo": score.MissingCriticalInfo,
			}, nil
		})
}
