package application

// Prompt is the scripted system utterance for a step.
type Prompt struct {
	Content string
	Type    MessageType
	Options []string
}

var mortgageStrategies = []string{"Purchase", "Refinance", "Fix & Flip", "New Construction", "Bridge Loan"}

var businessProducts = []string{"Term Loan", "Line of Credit", "SBA Loan", "Equipment Financing", "Merchant Cash Advance"}

var objectionOptions = []string{"Yes, I can add a co-signer", "Tell me about alternative programs"}

var prompts = map[StepID]Prompt{
	StepInit: {
		Content: "Welcome! I'm here to get your loan application moving. What's your full name?",
		Type:    MessageText,
	},
	StepAskPhone: {
		Content: "Thanks! What's the best phone number to reach you? You can say \"skip\" if you'd rather not share it yet.",
		Type:    MessageText,
	},
	StepAskLoanType: {
		Content: "What kind of financing are you looking for?",
		Type:    MessageOptions,
		Options: []string{"Business Loan", "Mortgage Loan"},
	},
	StepObjectionHandling: {
		Content: "Based on what you've shared so far, this file would be a stretch for our standard programs. Adding a co-signer or switching to an alternative program usually gets deals like this done. How would you like to proceed?",
		Type:    MessageOptions,
		Options: objectionOptions,
	},
	StepAskEmail: {
		Content: "Almost done! What's the best email address for your application updates?",
		Type:    MessageText,
	},
	StepComplete: {
		Content: "That's everything I need. Your application is in — a loan officer will reach out shortly with next steps.",
		Type:    MessageText,
	},

	// Business flow
	StepBusinessProduct: {
		Content: "Great, let's find the right product for your business.",
		Type:    MessageOptions,
		Options: businessProducts,
	},
	StepBusinessName: {
		Content: "What's the legal name of your business?",
		Type:    MessageText,
	},
	StepBusinessYears: {
		Content: "How many years has the business been operating?",
		Type:    MessageText,
	},
	StepBusinessRevenue: {
		Content: "What's your approximate annual revenue? Shorthand like 500k or 1.2m works.",
		Type:    MessageText,
	},
	StepBusinessCredit: {
		Content: "How would you describe your personal credit?",
		Type:    MessageOptions,
		Options: []string{"Excellent (720+)", "Good (660-719)", "Fair (600-659)", "Challenged (below 600)"},
	},
	StepBusinessAmount: {
		Content: "How much funding are you looking for?",
		Type:    MessageText,
	},
	StepBusinessUse: {
		Content: "What will you use the funds for?",
		Type:    MessageText,
	},

	// Mortgage flow
	StepMortgageStrategy: {
		Content: "What's your strategy for this property?",
		Type:    MessageOptions,
		Options: mortgageStrategies,
	},
	StepMortgagePurchasePrice: {
		Content: "What's the purchase price or property value? Shorthand like 500k works.",
		Type:    MessageText,
	},
	StepMortgagePropertyAddress: {
		Content: "What's the property address?",
		Type:    MessageText,
	},
	StepMortgagePropertyType: {
		Content: "What type of property is it?",
		Type:    MessageOptions,
		Options: []string{"Single Family", "Condo", "2-4 Unit", "Multifamily 5+", "Mixed Use"},
	},
	StepMortgageOccupancy: {
		Content: "How will you occupy the property?",
		Type:    MessageOptions,
		Options: []string{"Primary", "Second Home", "Investment"},
	},
	StepMortgageEmployer: {
		Content: "Who is your current employer?",
		Type:    MessageText,
	},
	StepMortgageIncome: {
		Content: "What's your gross monthly income? Shorthand like 9k works.",
		Type:    MessageText,
	},
	StepMortgageDOB: {
		Content: "What's your date of birth? (MM/DD/YYYY)",
		Type:    MessageText,
	},
	StepMortgageSSN: {
		Content: "To run a soft credit check I need at least the last four digits of your Social Security number.",
		Type:    MessageText,
	},
	StepMortgageMarital: {
		Content: "What's your marital status?",
		Type:    MessageOptions,
		Options: []string{"Married", "Unmarried", "Separated"},
	},
	StepMortgageCitizenship: {
		Content: "What's your citizenship status?",
		Type:    MessageOptions,
		Options: []string{"US Citizen", "Permanent Resident", "Non-Permanent Resident"},
	},
	StepMortgageCurrentAddress: {
		Content: "What's your current home address?",
		Type:    MessageText,
	},
	StepMortgageYearsAtAddress: {
		Content: "How many years have you lived there?",
		Type:    MessageText,
	},
	StepMortgagePreviousAddress: {
		Content: "Since that's under two years, what was your previous address?",
		Type:    MessageText,
	},
	StepMortgageMonthlyDebt: {
		Content: "Roughly how much do you pay toward debts each month? (cards, auto loans, student loans)",
		Type:    MessageText,
	},
	StepMortgageAssets: {
		Content: "About how much do you have in liquid assets — checking, savings, brokerage? Say \"skip\" to come back to this later.",
		Type:    MessageText,
	},
	StepMortgageDeclBankruptcy: {
		Content: "Have you declared bankruptcy in the past 7 years?",
		Type:    MessageOptions,
		Options: []string{"Yes", "No"},
	},
	StepMortgageDeclForeclosure: {
		Content: "Have you had a property foreclosed on in the past 7 years?",
		Type:    MessageOptions,
		Options: []string{"Yes", "No"},
	},

	// Investment flow
	StepInvestPurchasePrice: {
		Content: "What's the purchase price of the property?",
		Type:    MessageText,
	},
	StepInvestRehabBudget: {
		Content: "What's your rehab budget?",
		Type:    MessageText,
	},
	StepInvestARV: {
		Content: "What do you expect the after-repair value (ARV) to be?",
		Type:    MessageText,
	},
	StepInvestExperience: {
		Content: "How many investment projects have you completed?",
		Type:    MessageOptions,
		Options: []string{"0 (first time)", "1-2", "3-5", "6+"},
	},
	StepInvestExit: {
		Content: "What's your exit strategy?",
		Type:    MessageOptions,
		Options: []string{"Sell after rehab", "Refinance and hold", "Not sure yet"},
	},
	StepInvestLiquidAssets: {
		Content: "How much liquid capital can you bring to the project?",
		Type:    MessageText,
	},
}

// promptFor returns the scripted prompt for a step, falling back to the
// completion message for anything unknown.
func promptFor(step StepID) Prompt {
	if p, ok := prompts[step]; ok {
		return p
	}
	return prompts[StepComplete]
}
