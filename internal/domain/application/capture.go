package application

import (
	"strings"

	"github.com/shopspring/decimal"
)

// amountSuffixes are trailing shorthand multipliers applicants commonly type.
var amountSuffixes = []struct {
	suffix     string
	multiplier int64
}{
	{"k", 1_000},
	{"m", 1_000_000},
	{"b", 1_000_000_000},
}

// ParseAmount normalizes shorthand numeric input: "100k" is 100000,
// "2.5m" is 2500000, "$1,200" is 1200. Unparsable input yields 0.
// Decimal arithmetic keeps fractional shorthand exact ("2.5m" never
// drifts through a float multiply).
func ParseAmount(input string) float64 {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "" {
		return 0
	}

	multiplier := decimal.NewFromInt(1)
	for _, m := range amountSuffixes {
		if strings.HasSuffix(s, m.suffix) {
			multiplier = decimal.NewFromInt(m.multiplier)
			s = strings.TrimSuffix(s, m.suffix)
			break
		}
	}

	// Strip currency symbols, commas, units — anything but digits and the dot
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return 0
	}

	value, _ := d.Mul(multiplier).Float64()
	return value
}

// captureData records the applicant's answer on a working copy of the
// record, keyed by the step that asked the question. Fields are only ever
// overwritten, never cleared.
func captureData(step StepID, input string, data *ApplicantRecord) {
	trimmed := strings.TrimSpace(input)

	switch step {
	case StepInit:
		data.FullName = trimmed
	case StepAskPhone:
		if !isSkip(trimmed) {
			data.Phone = trimmed
		}
	case StepAskEmail:
		data.Email = trimmed

	// Business flow
	case StepBusinessProduct:
		data.BusinessProduct = trimmed
	case StepBusinessName:
		data.BusinessName = trimmed
	case StepBusinessYears:
		data.YearsInBusiness = ParseAmount(trimmed)
	case StepBusinessRevenue:
		data.AnnualRevenue = ParseAmount(trimmed)
	case StepBusinessCredit:
		data.CreditScore = creditBandMidpoint(trimmed)
	case StepBusinessAmount:
		data.RequestedAmount = ParseAmount(trimmed)
	case StepBusinessUse:
		data.UseOfFunds = trimmed

	// Mortgage flow
	case StepMortgageStrategy:
		data.Strategy = trimmed
	case StepMortgagePurchasePrice, StepInvestPurchasePrice:
		data.PurchasePrice = ParseAmount(trimmed)
	case StepMortgagePropertyAddress:
		data.PropertyAddress = trimmed
	case StepMortgagePropertyType:
		data.PropertyType = trimmed
	case StepMortgageOccupancy:
		data.Occupancy = trimmed
	case StepMortgageEmployer:
		data.Employer = trimmed
	case StepMortgageIncome:
		data.MonthlyIncome = ParseAmount(trimmed)
	case StepMortgageDOB:
		data.DateOfBirth = trimmed
	case StepMortgageSSN:
		data.SSN = trimmed
	case StepMortgageMarital:
		data.MaritalStatus = trimmed
	case StepMortgageCitizenship:
		data.Citizenship = trimmed
	case StepMortgageCurrentAddress:
		data.CurrentAddress = trimmed
	case StepMortgageYearsAtAddress:
		data.YearsAtAddress = ParseAmount(trimmed)
	case StepMortgagePreviousAddress:
		data.PreviousAddress = trimmed
	case StepMortgageMonthlyDebt:
		data.MonthlyDebt = ParseAmount(trimmed)
	case StepMortgageAssets:
		if !isSkip(trimmed) {
			data.LiquidAssets = ParseAmount(trimmed)
		}
	case StepMortgageDeclBankruptcy:
		data.DeclBankruptcy = isAffirmative(trimmed)
	case StepMortgageDeclForeclosure:
		data.DeclForeclosure = isAffirmative(trimmed)

	// Investment flow
	case StepInvestRehabBudget:
		data.RehabBudget = ParseAmount(trimmed)
	case StepInvestARV:
		data.AfterRepairValue = ParseAmount(trimmed)
	case StepInvestExperience:
		data.InvestorExperience = trimmed
	case StepInvestExit:
		data.ExitStrategy = trimmed
	case StepInvestLiquidAssets:
		data.LiquidAssets = ParseAmount(trimmed)

	case StepObjectionHandling:
		data.ObjectionResponse = trimmed
	}
}

// creditBandMidpoint converts the self-reported credit menu choice into a
// representative numeric score so the deal scorer can band it.
func creditBandMidpoint(answer string) int {
	lower := strings.ToLower(answer)
	switch {
	case strings.Contains(lower, "excellent"):
		return 740
	case strings.Contains(lower, "good"):
		return 680
	case strings.Contains(lower, "fair"):
		return 630
	case strings.Contains(lower, "challenged"):
		return 560
	default:
		return 0
	}
}

func isAffirmative(input string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(input)), "y")
}
