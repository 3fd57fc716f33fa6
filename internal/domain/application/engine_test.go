package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundline/internal/domain/deal"
)

func advance(t *testing.T, state ConversationState, input string) (ConversationState, Update) {
	t.Helper()
	u := Transition(state, input)
	return Apply(state, u), u
}

func TestTransition_FullMortgageFlow(t *testing.T) {
	state := InitialState()

	steps := []struct {
		input    string
		wantStep StepID
	}{
		{"John Smith", StepAskPhone},
		{"555-0100", StepAskLoanType},
		{"Mortgage Loan", StepMortgageStrategy},
		{"Purchase", StepMortgagePurchasePrice},
		{"450k", StepMortgagePropertyAddress},
		{"123 Main St, Austin TX", StepMortgagePropertyType},
		{"Single Family", StepMortgageOccupancy}, // property verification passes through
		{"Primary", StepMortgageEmployer},
		{"Acme Corp", StepMortgageIncome},
		{"9k", StepMortgageDOB},
		{"01/15/1985", StepMortgageSSN},
		{"1234", StepMortgageMarital}, // identity verification passes through
		{"Married", StepMortgageCitizenship},
		{"US Citizen", StepMortgageCurrentAddress},
		{"456 Oak Ave, Austin TX", StepMortgageYearsAtAddress},
		{"3", StepMortgageMonthlyDebt}, // 3 years skips previous address
		{"500", StepMortgageAssets},
		{"Skip", StepMortgageDeclBankruptcy}, // asset verification passes through
		{"No", StepMortgageDeclForeclosure},
		{"No", StepAskEmail},
		{"john@example.com", StepComplete},
	}

	var update Update
	for i, s := range steps {
		state, update = advance(t, state, s.input)
		require.False(t, update.Rejected, "step %d input %q", i, s.input)
		require.Equal(t, s.wantStep, state.Step, "step %d input %q", i, s.input)
	}

	data := state.Data
	assert.Equal(t, "John Smith", data.FullName)
	assert.Equal(t, "555-0100", data.Phone)
	assert.Equal(t, LoanTypeMortgage, state.LoanType)
	assert.Equal(t, float64(450000), data.PurchasePrice)
	assert.Equal(t, float64(9000), data.MonthlyIncome)
	assert.Equal(t, "john@example.com", data.Email)

	// Verification pass-throughs enriched the record
	assert.True(t, data.PropertyVerified)
	assert.True(t, data.IdentityVerified)
	assert.True(t, data.AssetsVerified)
	assert.Equal(t, 720, data.CreditScore)
	assert.Equal(t, float64(25000), data.LiquidAssets)

	// credit 720 +20, income 9000 +5, assets 25000 +5
	assert.Equal(t, 80, state.DealScore.Score)
	assert.Equal(t, deal.ProbabilityHigh, state.DealScore.Probability)
	assert.False(t, data.DeclBankruptcy)
	assert.False(t, data.DeclForeclosure)
}

func TestTransition_VerificationEmitsInterstitials(t *testing.T) {
	state := InitialState()
	state.Step = StepMortgagePropertyType

	next, update := advance(t, state, "Single Family")
	require.Equal(t, StepMortgageOccupancy, next.Step)

	// history: user answer, verification notice, next question
	n := len(update.History)
	require.GreaterOrEqual(t, n, 3)
	assert.Equal(t, MessageVerifyProperty, update.History[n-2].Type)
	assert.Equal(t, RoleSystem, update.History[n-1].Role)
}

func TestTransition_RejectionHoldsStep(t *testing.T) {
	state := InitialState()
	state.Step = StepAskEmail

	next, update := advance(t, state, "not-an-email")
	assert.True(t, update.Rejected)
	assert.Equal(t, StepAskEmail, next.Step, "step unchanged")
	assert.Equal(t, state.Data, next.Data, "data unchanged")

	last := LastSystemMessage(update.History)
	require.NotNil(t, last)
	assert.Contains(t, last.Content, "valid email")

	// A corrected answer then completes
	next, update = advance(t, next, "jane@example.com")
	assert.False(t, update.Rejected)
	assert.Equal(t, StepComplete, next.Step)
	assert.Equal(t, "jane@example.com", next.Data.Email)
}

func TestTransition_ObjectionInterruptAndResume(t *testing.T) {
	state := InitialState()
	state.Step = StepBusinessCredit
	state.LoanType = LoanTypeBusiness
	state.Data.AnnualRevenue = 24000 // 2000/month, subtracts 5

	// Challenged credit drops the score to Low and triggers the interrupt
	next, update := advance(t, state, "Challenged (below 600)")
	require.False(t, update.Rejected)
	assert.Equal(t, StepObjectionHandling, next.Step)
	assert.Equal(t, deal.ProbabilityLow, next.DealScore.Probability)
	assert.Equal(t, MessageOptions, update.UIType)
	assert.NotEmpty(t, update.Options)

	// The objection answer resumes through asset verification to declarations
	next, update = advance(t, next, "Yes, I can add a co-signer")
	require.False(t, update.Rejected)
	assert.Equal(t, StepMortgageDeclBankruptcy, next.Step)
	assert.Equal(t, "Yes, I can add a co-signer", next.Data.ObjectionResponse)
	assert.True(t, next.Data.AssetsVerified)
	assert.Equal(t, float64(25000), next.Data.LiquidAssets)
}

func TestTransition_NoObjectionLoopFromObjectionStep(t *testing.T) {
	state := InitialState()
	state.Step = StepObjectionHandling
	state.Data.CreditScore = 560
	state.Data.MonthlyIncome = 2000

	next, _ := advance(t, state, "Tell me about alternative programs")
	assert.NotEqual(t, StepObjectionHandling, next.Step, "objection step never re-enters itself")
}

func TestTransition_ShortTenureRequiresPreviousAddress(t *testing.T) {
	state := InitialState()
	state.Step = StepMortgageYearsAtAddress

	next, _ := advance(t, state, "1")
	assert.Equal(t, StepMortgagePreviousAddress, next.Step)

	next, _ = advance(t, next, "789 Pine St")
	assert.Equal(t, StepMortgageMonthlyDebt, next.Step)
	assert.Equal(t, "789 Pine St", next.Data.PreviousAddress)
}

func TestTransition_BusinessBranch(t *testing.T) {
	state := InitialState()
	state.Step = StepAskLoanType

	next, _ := advance(t, state, "Business Loan")
	assert.Equal(t, StepBusinessProduct, next.Step)
	assert.Equal(t, LoanTypeBusiness, next.LoanType)
}

func TestTransition_InvestmentStrategyBranch(t *testing.T) {
	for _, strategy := range []string{"Fix & Flip", "New Construction", "Bridge Loan"} {
		state := InitialState()
		state.Step = StepMortgageStrategy

		next, _ := advance(t, state, strategy)
		assert.Equal(t, StepInvestPurchasePrice, next.Step, strategy)
	}

	state := InitialState()
	state.Step = StepMortgageStrategy
	next, _ := advance(t, state, "Refinance")
	assert.Equal(t, StepMortgagePurchasePrice, next.Step)
}

func TestTransition_InvestmentFlowReachesDeclarations(t *testing.T) {
	state := InitialState()
	state.Step = StepInvestLiquidAssets
	state.Data.CreditScore = 700
	state.Data.MonthlyIncome = 9000

	next, _ := advance(t, state, "75k")
	assert.Equal(t, StepMortgageDeclBankruptcy, next.Step, "asset verification resolves through")
	assert.Equal(t, float64(75000), next.Data.LiquidAssets, "provided assets not overwritten by backfill")
}

func TestTransition_UnknownStepCompletes(t *testing.T) {
	state := InitialState()
	state.Step = StepID("LEGACY_STEP")
	state.Data.CreditScore = 700
	state.Data.MonthlyIncome = 9000

	next, update := advance(t, state, "anything")
	assert.False(t, update.Rejected)
	assert.Equal(t, StepComplete, next.Step)
}

func TestTransition_HistoryIsCopied(t *testing.T) {
	state := InitialState()
	state.History = []Message{NewSystemMessage("Welcome", MessageText, nil)}
	before := len(state.History)

	_ = Transition(state, "John Smith")
	assert.Len(t, state.History, before, "caller's history slice unchanged")
}

func TestTransition_ScoreRecomputedEveryTurn(t *testing.T) {
	state := InitialState()
	state.Step = StepMortgageSSN
	state.Data.MonthlyIncome = 9000

	next, _ := advance(t, state, "123-45-6789")
	// identity verification backfilled the 720 pull and the score reflects it
	assert.Equal(t, 720, next.Data.CreditScore)
	assert.Equal(t, 75, next.DealScore.Score)
	assert.Equal(t, deal.ProbabilityHigh, next.DealScore.Probability)
}
