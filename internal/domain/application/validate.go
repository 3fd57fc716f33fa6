package application

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	datePattern  = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	digitPattern = regexp.MustCompile(`\d`)
)

const minSSNDigits = 4

// validateInput checks raw input against the current step's rules and
// returns an error message for the applicant, or "" when the input is
// acceptable. Rejection is a local recoverable condition: the caller
// re-prompts with the same step.
func validateInput(step StepID, input string) string {
	trimmed := strings.TrimSpace(input)

	switch step {
	case StepInit, StepBusinessName, StepMortgageEmployer,
		StepMortgagePropertyAddress, StepMortgageCurrentAddress,
		StepMortgagePreviousAddress, StepBusinessUse:
		if trimmed == "" {
			return "I didn't catch that — could you type it out for me?"
		}

	case StepAskPhone, StepMortgageAssets:
		// Optional answers: "skip" passes through, anything else must be non-empty
		if trimmed == "" {
			return "You can answer or just say \"skip\"."
		}

	case StepAskEmail:
		if !emailPattern.MatchString(trimmed) {
			return "That doesn't look like a valid email address. Could you double-check it?"
		}

	case StepMortgagePurchasePrice, StepMortgageIncome,
		StepBusinessRevenue, StepBusinessAmount,
		StepInvestPurchasePrice, StepInvestRehabBudget, StepInvestARV,
		StepInvestLiquidAssets:
		if ParseAmount(trimmed) <= 0 {
			return "I need a number here — shorthand like 100k or 2.5m is fine."
		}

	case StepMortgageMonthlyDebt, StepMortgageYearsAtAddress, StepBusinessYears:
		// Zero is a legitimate answer, but the input must contain a figure
		if !digitPattern.MatchString(trimmed) {
			return "A number works best here — 0 is fine too."
		}

	case StepMortgageDOB:
		if !datePattern.MatchString(trimmed) {
			return "Please use MM/DD/YYYY format for your date of birth."
		}

	case StepMortgageSSN:
		if countDigits(trimmed) < minSSNDigits {
			return "I need at least the last four digits of your Social Security number."
		}

	default:
		// Option-menu steps accept any non-empty choice
		if trimmed == "" {
			return "Please pick one of the options."
		}
	}

	return ""
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// isSkip reports whether the applicant declined an optional question.
func isSkip(input string) bool {
	return strings.Contains(strings.ToLower(input), "skip")
}
