package application

import (
	"github.com/google/uuid"

	"fundline/internal/domain/deal"
)

// StepID identifies a position in the intake dialogue graph.
type StepID string

// Shared steps
const (
	StepInit              StepID = "INIT"
	StepAskPhone          StepID = "ASK_PHONE"
	StepAskLoanType       StepID = "ASK_LOAN_TYPE"
	StepObjectionHandling StepID = "OBJECTION_HANDLING"
	StepAskEmail          StepID = "ASK_EMAIL"
	StepComplete          StepID = "COMPLETE"
)

// Business sub-flow
const (
	StepBusinessProduct StepID = "BUSINESS_PRODUCT"
	StepBusinessName    StepID = "BUSINESS_NAME"
	StepBusinessYears   StepID = "BUSINESS_YEARS"
	StepBusinessRevenue StepID = "BUSINESS_REVENUE"
	StepBusinessCredit  StepID = "BUSINESS_CREDIT"
	StepBusinessAmount  StepID = "BUSINESS_AMOUNT"
	StepBusinessUse     StepID = "BUSINESS_USE"
)

// Mortgage sub-flow (standard URLA path)
const (
	StepMortgageStrategy        StepID = "MORTGAGE_STRATEGY"
	StepMortgagePurchasePrice   StepID = "MORTGAGE_PURCHASE_PRICE"
	StepMortgagePropertyAddress StepID = "MORTGAGE_PROPERTY_ADDRESS"
	StepMortgagePropertyType    StepID = "MORTGAGE_PROPERTY_TYPE"
	StepMortgageOccupancy       StepID = "MORTGAGE_OCCUPANCY"
	StepMortgageEmployer        StepID = "MORTGAGE_EMPLOYER"
	StepMortgageIncome          StepID = "MORTGAGE_INCOME"
	StepMortgageDOB             StepID = "MORTGAGE_DOB"
	StepMortgageSSN             StepID = "MORTGAGE_SSN"
	StepMortgageMarital         StepID = "MORTGAGE_MARITAL_STATUS"
	StepMortgageCitizenship     StepID = "MORTGAGE_CITIZENSHIP"
	StepMortgageCurrentAddress  StepID = "MORTGAGE_CURRENT_ADDRESS"
	StepMortgageYearsAtAddress  StepID = "MORTGAGE_YEARS_AT_ADDRESS"
	StepMortgagePreviousAddress StepID = "MORTGAGE_PREVIOUS_ADDRESS"
	StepMortgageMonthlyDebt     StepID = "MORTGAGE_MONTHLY_DEBT"
	StepMortgageAssets          StepID = "MORTGAGE_ASSETS"
	StepMortgageDeclBankruptcy  StepID = "MORTGAGE_DECL_BANKRUPTCY"
	StepMortgageDeclForeclosure StepID = "MORTGAGE_DECL_FORECLOSURE"
)

// Investment sub-flow (Fix & Flip / Construction / Bridge)
const (
	StepInvestPurchasePrice StepID = "INVEST_PURCHASE_PRICE"
	StepInvestRehabBudget   StepID = "INVEST_REHAB_BUDGET"
	StepInvestARV           StepID = "INVEST_ARV"
	StepInvestExperience    StepID = "INVEST_EXPERIENCE"
	StepInvestExit          StepID = "INVEST_EXIT_STRATEGY"
	StepInvestLiquidAssets  StepID = "INVEST_LIQUID_ASSETS"
)

// Verification steps. These are synthetic: routing resolves them on entry
// (marking the verified flag and backfilling enrichment data) and continues
// to their successor within the same transition.
const (
	StepVerifyIdentity StepID = "VERIFY_IDENTITY"
	StepVerifyAssets   StepID = "VERIFY_ASSETS"
	StepVerifyProperty StepID = "VERIFY_PROPERTY"
)

// LoanType distinguishes the two product families.
type LoanType string

const (
	LoanTypeNone     LoanType = ""
	LoanTypeBusiness LoanType = "business"
	LoanTypeMortgage LoanType = "mortgage"
)

// Role identifies the author of a history message.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// MessageType tells the client which widget renders a system message.
type MessageType string

const (
	MessageText           MessageType = "text"
	MessageOptions        MessageType = "options"
	MessageUpload         MessageType = "upload"
	MessageVerifyIdentity MessageType = "verify_identity"
	MessageVerifyAssets   MessageType = "verify_assets"
	MessageVerifyProperty MessageType = "verify_property"
)

// Message is a single conversation entry. Immutable once appended.
type Message struct {
	ID      string      `json:"id"`
	Role    Role        `json:"role"`
	Content string      `json:"content"`
	Type    MessageType `json:"type,omitempty"`
	Options []string    `json:"options,omitempty"`
}

// NewSystemMessage builds a system message with a fresh ID.
func NewSystemMessage(content string, msgType MessageType, options []string) Message {
	return Message{
		ID:      uuid.New().String(),
		Role:    RoleSystem,
		Content: content,
		Type:    msgType,
		Options: options,
	}
}

// NewUserMessage builds a user message with a fresh ID.
func NewUserMessage(content string) Message {
	return Message{
		ID:      uuid.New().String(),
		Role:    RoleUser,
		Content: content,
		Type:    MessageText,
	}
}

// ApplicantRecord accumulates every captured answer. Fields are append-only:
// a later step in the same domain may overwrite a value but never clears it.
type ApplicantRecord struct {
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`

	// Mortgage
	Strategy        string  `json:"strategy,omitempty"`
	PurchasePrice   float64 `json:"purchasePrice,omitempty"`
	PropertyAddress string  `json:"propertyAddress,omitempty"`
	PropertyType    string  `json:"propertyType,omitempty"`
	Occupancy       string  `json:"occupancy,omitempty"`
	Employer        string  `json:"employer,omitempty"`
	MonthlyIncome   float64 `json:"monthlyIncome,omitempty"`
	DateOfBirth     string  `json:"dateOfBirth,omitempty"`
	SSN             string  `json:"ssn,omitempty"`
	MaritalStatus   string  `json:"maritalStatus,omitempty"`
	Citizenship     string  `json:"citizenship,omitempty"`
	CurrentAddress  string  `json:"currentAddress,omitempty"`
	YearsAtAddress  float64 `json:"yearsAtAddress,omitempty"`
	PreviousAddress string  `json:"previousAddress,omitempty"`
	MonthlyDebt     float64 `json:"monthlyDebt,omitempty"`
	DeclBankruptcy  bool    `json:"declBankruptcy,omitempty"`
	DeclForeclosure bool    `json:"declForeclosure,omitempty"`

	// Business
	BusinessProduct string  `json:"businessProduct,omitempty"`
	BusinessName    string  `json:"businessName,omitempty"`
	YearsInBusiness float64 `json:"yearsInBusiness,omitempty"`
	AnnualRevenue   float64 `json:"annualRevenue,omitempty"`
	RequestedAmount float64 `json:"requestedAmount,omitempty"`
	UseOfFunds      string  `json:"useOfFunds,omitempty"`

	// Investment
	RehabBudget        float64 `json:"rehabBudget,omitempty"`
	AfterRepairValue   float64 `json:"afterRepairValue,omitempty"`
	InvestorExperience string  `json:"investorExperience,omitempty"`
	ExitStrategy       string  `json:"exitStrategy,omitempty"`
	LiquidAssets       float64 `json:"liquidAssets,omitempty"`

	// Enrichment backfilled by verification steps
	CreditScore int `json:"creditScore,omitempty"`

	IdentityVerified bool `json:"identityVerified,omitempty"`
	AssetsVerified   bool `json:"assetsVerified,omitempty"`
	PropertyVerified bool `json:"propertyVerified,omitempty"`

	ObjectionResponse string `json:"objectionResponse,omitempty"`
}

// ScoreInput projects the record into the scorer's view of it.
func (r *ApplicantRecord) ScoreInput() deal.Input {
	return deal.Input{
		CreditScore:        r.CreditScore,
		MonthlyIncome:      r.MonthlyIncome,
		AnnualRevenue:      r.AnnualRevenue,
		LiquidAssets:       r.LiquidAssets,
		InvestorExperience: r.InvestorExperience,
	}
}

// ConversationState is the single source of truth for an intake session.
type ConversationState struct {
	SessionID string          `json:"sessionId,omitempty"`
	Step      StepID          `json:"step"`
	LoanType  LoanType        `json:"loanType"`
	DealScore deal.Score      `json:"dealScore"`
	Data      ApplicantRecord `json:"data"`
	History   []Message       `json:"history"`
}

// InitialState returns a fresh session positioned at the opening question.
func InitialState() ConversationState {
	return ConversationState{
		Step:      StepInit,
		LoanType:  LoanTypeNone,
		DealScore: deal.Evaluate(deal.Input{}),
		History: []Message{
			NewSystemMessage(promptFor(StepInit).Content, promptFor(StepInit).Type, promptFor(StepInit).Options),
		},
	}
}
