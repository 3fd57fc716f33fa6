package deal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate_CreditBands(t *testing.T) {
	cases := []struct {
		name   string
		credit int
		want   int
	}{
		{"excellent adds 20", 720, 70},
		{"good adds 10", 660, 60},
		{"neutral band adds nothing", 630, 50},
		{"low end of neutral", 600, 50},
		{"challenged subtracts 20", 599, 30},
		{"unknown is neutral", 0, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(Input{CreditScore: tc.credit, MonthlyIncome: 6000})
			// income 6000 adds 5 on top of each band
			assert.Equal(t, tc.want+5, got.Score)
		})
	}
}

func TestEvaluate_IncomeBands(t *testing.T) {
	t.Run("high income adds 15", func(t *testing.T) {
		got := Evaluate(Input{CreditScore: 630, MonthlyIncome: 12000})
		assert.Equal(t, 65, got.Score)
	})

	t.Run("moderate income adds 5", func(t *testing.T) {
		got := Evaluate(Input{CreditScore: 630, MonthlyIncome: 7000})
		assert.Equal(t, 55, got.Score)
	})

	t.Run("low income subtracts 5", func(t *testing.T) {
		got := Evaluate(Input{CreditScore: 630, MonthlyIncome: 3000})
		assert.Equal(t, 45, got.Score)
	})

	t.Run("annual revenue divides by twelve", func(t *testing.T) {
		got := Evaluate(Input{CreditScore: 630, AnnualRevenue: 144000})
		assert.Equal(t, 65, got.Score, "144000/12 = 12000 monthly")
	})

	t.Run("monthly income wins over revenue", func(t *testing.T) {
		got := Evaluate(Input{CreditScore: 630, MonthlyIncome: 3000, AnnualRevenue: 600000})
		assert.Equal(t, 45, got.Score)
	})
}

func TestEvaluate_MissingCriticalInfo(t *testing.T) {
	t.Run("both missing", func(t *testing.T) {
		got := Evaluate(Input{})
		assert.Equal(t, []string{"Credit Score", "Income/Revenue"}, got.MissingCriticalInfo)
	})

	t.Run("assets and experience never flagged", func(t *testing.T) {
		got := Evaluate(Input{CreditScore: 700, MonthlyIncome: 8000})
		assert.Empty(t, got.MissingCriticalInfo)
	})
}

func TestEvaluate_BonusFactors(t *testing.T) {
	base := Input{CreditScore: 630, MonthlyIncome: 6000}

	t.Run("large reserves add 10", func(t *testing.T) {
		in := base
		in.LiquidAssets = 60000
		assert.Equal(t, 65, Evaluate(in).Score)
	})

	t.Run("modest reserves add 5", func(t *testing.T) {
		in := base
		in.LiquidAssets = 20000
		assert.Equal(t, 60, Evaluate(in).Score)
	})

	t.Run("experience adds 10", func(t *testing.T) {
		in := base
		in.InvestorExperience = "3-5"
		assert.Equal(t, 65, Evaluate(in).Score)
	})

	t.Run("first-timer gets no experience bonus", func(t *testing.T) {
		in := base
		in.InvestorExperience = "0 (first time)"
		assert.Equal(t, 55, Evaluate(in).Score)
	})
}

func TestEvaluate_Clamping(t *testing.T) {
	t.Run("never above 100", func(t *testing.T) {
		got := Evaluate(Input{
			CreditScore:        780,
			MonthlyIncome:      50000,
			LiquidAssets:       500000,
			InvestorExperience: "6+",
		})
		assert.Equal(t, 100, got.Score)
	})

	t.Run("never below 0", func(t *testing.T) {
		got := Evaluate(Input{CreditScore: 500, MonthlyIncome: 1000})
		assert.Equal(t, 25, got.Score)
		assert.GreaterOrEqual(t, got.Score, 0)
	})
}

func TestEvaluate_ProbabilityTiers(t *testing.T) {
	t.Run("high at 75", func(t *testing.T) {
		got := Evaluate(Input{CreditScore: 720, MonthlyIncome: 12000})
		assert.Equal(t, 85, got.Score)
		assert.Equal(t, ProbabilityHigh, got.Probability)
	})

	t.Run("low below 40", func(t *testing.T) {
		got := Evaluate(Input{CreditScore: 550, MonthlyIncome: 2000})
		assert.Equal(t, 25, got.Score)
		assert.Equal(t, ProbabilityLow, got.Probability)
	})

	t.Run("medium otherwise", func(t *testing.T) {
		got := Evaluate(Input{CreditScore: 630, MonthlyIncome: 6000})
		assert.Equal(t, ProbabilityMedium, got.Probability)
	})

	t.Run("recommendation matches tier", func(t *testing.T) {
		high := Evaluate(Input{CreditScore: 720, MonthlyIncome: 12000})
		assert.Contains(t, high.Recommendation, "Fast-track")
		low := Evaluate(Input{CreditScore: 550, MonthlyIncome: 2000})
		assert.Contains(t, low.Recommendation, "co-signer")
	})
}

func TestEvaluate_Deterministic(t *testing.T) {
	in := Input{CreditScore: 680, MonthlyIncome: 9000, LiquidAssets: 30000}
	first := Evaluate(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Evaluate(in))
	}
}
