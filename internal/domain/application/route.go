package application

import (
	"strings"

	"fundline/internal/domain/deal"
	"fundline/pkg/logger"
)

// Move is the routing decision for one transition: where the dialogue goes
// next and what the applicant is told. Interstitials carry verification
// notices resolved on the way to the next question.
type Move struct {
	NextStep      StepID
	Message       Prompt
	Interstitials []Message
}

// backfill constants used by the verification steps, standing in for the
// external identity/asset verification collaborators.
const (
	verifiedCreditScore  = 720
	verifiedLiquidAssets = 25000
)

// determineNextMove routes one step forward through the dialogue graph.
//
// The objection interrupt is checked before the base graph on every
// transition: a Low-probability deal is redirected to OBJECTION_HANDLING
// from any step except ASK_LOAN_TYPE and OBJECTION_HANDLING itself.
//
// Verification steps never hold the cursor: entering one marks the
// applicant verified, backfills enrichment data, and resolves through to
// its successor within the same call.
//
// Unknown step IDs degrade to COMPLETE. Every step maps to exactly one
// outgoing transition, so the graph cannot cycle forever.
func determineNextMove(step StepID, data *ApplicantRecord, score deal.Score, lastInput string) Move {
	if score.Probability == deal.ProbabilityLow &&
		step != StepObjectionHandling && step != StepAskLoanType {
		return moveTo(StepObjectionHandling, data)
	}

	return moveTo(successorOf(step, data, lastInput), data)
}

// moveTo resolves verification pass-throughs and packages the prompt for
// the landing step.
func moveTo(next StepID, data *ApplicantRecord) Move {
	var interstitials []Message

	for {
		notice, resolved := resolveVerification(next, data)
		if notice == nil {
			break
		}
		interstitials = append(interstitials, *notice)
		next = resolved
	}

	return Move{
		NextStep:      next,
		Message:       promptFor(next),
		Interstitials: interstitials,
	}
}

// resolveVerification applies a verification step's entry effect and
// returns the notice to show plus the step's successor. Returns nil for
// non-verification steps.
func resolveVerification(step StepID, data *ApplicantRecord) (*Message, StepID) {
	switch step {
	case StepVerifyIdentity:
		data.IdentityVerified = true
		if data.CreditScore == 0 {
			data.CreditScore = verifiedCreditScore
		}
		msg := NewSystemMessage(
			"Identity confirmed. A soft credit pull came back at 720 — that opens up our best programs.",
			MessageVerifyIdentity, nil)
		return &msg, StepMortgageMarital

	case StepVerifyAssets:
		data.AssetsVerified = true
		if data.LiquidAssets == 0 {
			data.LiquidAssets = verifiedLiquidAssets
		}
		msg := NewSystemMessage(
			"Asset verification complete — your reserves are on file.",
			MessageVerifyAssets, nil)
		return &msg, StepMortgageDeclBankruptcy

	case StepVerifyProperty:
		data.PropertyVerified = true
		msg := NewSystemMessage(
			"Property records check out.",
			MessageVerifyProperty, nil)
		return &msg, StepMortgageOccupancy
	}

	return nil, step
}

// successorOf is the base dialogue graph: one outgoing edge per step.
func successorOf(step StepID, data *ApplicantRecord, lastInput string) StepID {
	switch step {
	case StepInit:
		return StepAskPhone
	case StepAskPhone:
		return StepAskLoanType
	case StepAskLoanType:
		if strings.Contains(strings.ToLower(lastInput), "business") {
			return StepBusinessProduct
		}
		return StepMortgageStrategy

	// Business flow
	case StepBusinessProduct:
		return StepBusinessName
	case StepBusinessName:
		return StepBusinessYears
	case StepBusinessYears:
		return StepBusinessRevenue
	case StepBusinessRevenue:
		return StepBusinessCredit
	case StepBusinessCredit:
		return StepBusinessAmount
	case StepBusinessAmount:
		return StepBusinessUse
	case StepBusinessUse:
		return StepAskEmail

	// Mortgage flow
	case StepMortgageStrategy:
		if isInvestmentStrategy(data.Strategy) {
			return StepInvestPurchasePrice
		}
		return StepMortgagePurchasePrice
	case StepMortgagePurchasePrice:
		return StepMortgagePropertyAddress
	case StepMortgagePropertyAddress:
		return StepMortgagePropertyType
	case StepMortgagePropertyType:
		return StepVerifyProperty
	case StepVerifyProperty:
		return StepMortgageOccupancy
	case StepMortgageOccupancy:
		return StepMortgageEmployer
	case StepMortgageEmployer:
		return StepMortgageIncome
	case StepMortgageIncome:
		return StepMortgageDOB
	case StepMortgageDOB:
		return StepMortgageSSN
	case StepMortgageSSN:
		return StepVerifyIdentity
	case StepVerifyIdentity:
		return StepMortgageMarital
	case StepMortgageMarital:
		return StepMortgageCitizenship
	case StepMortgageCitizenship:
		return StepMortgageCurrentAddress
	case StepMortgageCurrentAddress:
		return StepMortgageYearsAtAddress
	case StepMortgageYearsAtAddress:
		// Under two years at the current address requires residence history
		if data.YearsAtAddress < 2 {
			return StepMortgagePreviousAddress
		}
		return StepMortgageMonthlyDebt
	case StepMortgagePreviousAddress:
		return StepMortgageMonthlyDebt
	case StepMortgageMonthlyDebt:
		return StepMortgageAssets
	case StepMortgageAssets:
		return StepVerifyAssets
	case StepVerifyAssets:
		return StepMortgageDeclBankruptcy
	case StepMortgageDeclBankruptcy:
		return StepMortgageDeclForeclosure
	case StepMortgageDeclForeclosure:
		return StepAskEmail

	// Investment flow
	case StepInvestPurchasePrice:
		return StepInvestRehabBudget
	case StepInvestRehabBudget:
		return StepInvestARV
	case StepInvestARV:
		return StepInvestExperience
	case StepInvestExperience:
		return StepInvestExit
	case StepInvestExit:
		return StepInvestLiquidAssets
	case StepInvestLiquidAssets:
		return StepVerifyAssets

	// Objection resume point is fixed: verified assets, then declarations
	case StepObjectionHandling:
		return StepVerifyAssets

	case StepAskEmail:
		return StepComplete
	case StepComplete:
		return StepComplete
	}

	logger.Warnf("dialogue: no transition mapped for step %q, completing flow", step)
	return StepComplete
}

func isInvestmentStrategy(strategy string) bool {
	lower := strings.ToLower(strategy)
	return strings.Contains(lower, "flip") ||
		strings.Contains(lower, "construction") ||
		strings.Contains(lower, "bridge")
}
