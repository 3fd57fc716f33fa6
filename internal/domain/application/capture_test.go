package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"450000", 450000},
		{"450k", 450000},
		{"2.5m", 2500000},
		{"1b", 1000000000},
		{"$375,000", 375000},
		{"about 9k", 9000},
		{"  100K ", 100000},
		{"0", 0},
		{"", 0},
		{"soon", 0},
		{"n/a", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseAmount(tc.in), tc.in)
	}
}

func TestCaptureData(t *testing.T) {
	t.Run("skip leaves optional fields untouched", func(t *testing.T) {
		data := ApplicantRecord{Phone: "555-0100", LiquidAssets: 30000}
		captureData(StepAskPhone, "skip", &data)
		captureData(StepMortgageAssets, "I'd rather skip this", &data)
		assert.Equal(t, "555-0100", data.Phone)
		assert.Equal(t, float64(30000), data.LiquidAssets)
	})

	t.Run("credit band midpoints", func(t *testing.T) {
		cases := map[string]int{
			"Excellent (720+)":      740,
			"Good (660-719)":        680,
			"Fair (600-659)":        630,
			"Challenged (below 600)": 560,
			"no idea":                0,
		}
		for answer, want := range cases {
			var data ApplicantRecord
			captureData(StepBusinessCredit, answer, &data)
			assert.Equal(t, want, data.CreditScore, answer)
		}
	})

	t.Run("declarations parse yes and no", func(t *testing.T) {
		var data ApplicantRecord
		captureData(StepMortgageDeclBankruptcy, "Yes", &data)
		assert.True(t, data.DeclBankruptcy)
		captureData(StepMortgageDeclForeclosure, "no", &data)
		assert.False(t, data.DeclForeclosure)
		captureData(StepMortgageDeclForeclosure, "yeah", &data)
		assert.True(t, data.DeclForeclosure)
	})

	t.Run("amount steps normalize shorthand", func(t *testing.T) {
		var data ApplicantRecord
		captureData(StepMortgagePurchasePrice, "450k", &data)
		captureData(StepMortgageIncome, "$9,500", &data)
		captureData(StepBusinessRevenue, "1.2m", &data)
		assert.Equal(t, float64(450000), data.PurchasePrice)
		assert.Equal(t, float64(9500), data.MonthlyIncome)
		assert.Equal(t, float64(1200000), data.AnnualRevenue)
	})

	t.Run("text answers trimmed", func(t *testing.T) {
		var data ApplicantRecord
		captureData(StepInit, "  John Smith  ", &data)
		assert.Equal(t, "John Smith", data.FullName)
	})
}
