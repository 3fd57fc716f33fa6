package deal

// Input is the slice of applicant data the scorer reads. Zero values mean
// the applicant has not provided the figure yet.
type Input struct {
	CreditScore        int
	MonthlyIncome      float64
	AnnualRevenue      float64
	LiquidAssets       float64
	InvestorExperience string
}

// Probability is the funding-likelihood tier derived from the score.
type Probability string

const (
	ProbabilityLow    Probability = "Low"
	ProbabilityMedium Probability = "Medium"
	ProbabilityHigh   Probability = "High"
)

// Score is the derived deal-viability metric. It is recomputed from the
// applicant record on every transition, never stored independently.
type Score struct {
	Score               int         `json:"score"`
	Probability         Probability `json:"probability"`
	Recommendation      string      `json:"recommendation"`
	MissingCriticalInfo []string    `json:"missingCriticalInfo"`
}

const (
	baseScore       = 50
	highThreshold   = 75
	lowThreshold    = 40
	firstTimeAnswer = "0 (first time)"
)

// Evaluate maps partial applicant data to a deal score. Pure and
// deterministic: same input, same output, no I/O.
//
// Adjustment order and the neutral 600-659 credit band are part of the
// contract; the objection-handling interrupt depends on the exact
// thresholds.
func Evaluate(in Input) Score {
	score := baseScore
	missing := []string{}

	switch {
	case in.CreditScore >= 720:
		score += 20
	case in.CreditScore >= 660:
		score += 10
	case in.CreditScore == 0:
		missing = append(missing, "Credit Score")
	case in.CreditScore < 600:
		score -= 20
	}

	income := in.MonthlyIncome
	if income == 0 && in.AnnualRevenue > 0 {
		income = in.AnnualRevenue / 12
	}
	switch {
	case income == 0:
		missing = append(missing, "Income/Revenue")
	case income > 10000:
		score += 15
	case income > 5000:
		score += 5
	default:
		score -= 5
	}

	// Assets and experience are bonuses only, never flagged missing
	switch {
	case in.LiquidAssets > 50000:
		score += 10
	case in.LiquidAssets > 10000:
		score += 5
	}

	if in.InvestorExperience != "" && in.InvestorExperience != firstTimeAnswer {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	probability := ProbabilityMedium
	switch {
	case score >= highThreshold:
		probability = ProbabilityHigh
	case score < lowThreshold:
		probability = ProbabilityLow
	}

	return Score{
		Score:               score,
		Probability:         probability,
		Recommendation:      recommendationFor(probability),
		MissingCriticalInfo: missing,
	}
}

func recommendationFor(p Probability) string {
	switch p {
	case ProbabilityHigh:
		return "Strong profile. Fast-track this file to underwriting."
	case ProbabilityLow:
		return "Profile needs strengthening. Discuss a co-signer or an alternative program."
	default:
		return "Viable profile. Collect the remaining documentation before submission."
	}
}
