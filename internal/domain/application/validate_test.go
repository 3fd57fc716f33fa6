package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateInput(t *testing.T) {
	t.Run("free text requires content", func(t *testing.T) {
		assert.NotEmpty(t, validateInput(StepInit, "   "))
		assert.Empty(t, validateInput(StepInit, "John Smith"))
	})

	t.Run("email gate", func(t *testing.T) {
		assert.NotEmpty(t, validateInput(StepAskEmail, "john"))
		assert.NotEmpty(t, validateInput(StepAskEmail, "john@"))
		assert.NotEmpty(t, validateInput(StepAskEmail, "john@host"))
		assert.NotEmpty(t, validateInput(StepAskEmail, "jo hn@host.com"))
		assert.Empty(t, validateInput(StepAskEmail, "john@host.com"))
		assert.Empty(t, validateInput(StepAskEmail, "j.smith+loans@mail.co.uk"))
	})

	t.Run("amounts must be positive", func(t *testing.T) {
		assert.NotEmpty(t, validateInput(StepMortgagePurchasePrice, "soon"))
		assert.NotEmpty(t, validateInput(StepMortgagePurchasePrice, "0"))
		assert.Empty(t, validateInput(StepMortgagePurchasePrice, "450k"))
		assert.Empty(t, validateInput(StepMortgagePurchasePrice, "$375,000"))
	})

	t.Run("zero allowed where a figure exists", func(t *testing.T) {
		assert.Empty(t, validateInput(StepMortgageMonthlyDebt, "0"))
		assert.NotEmpty(t, validateInput(StepMortgageMonthlyDebt, "none"))
		assert.Empty(t, validateInput(StepMortgageYearsAtAddress, "0"))
	})

	t.Run("date of birth format", func(t *testing.T) {
		assert.Empty(t, validateInput(StepMortgageDOB, "01/15/1985"))
		assert.Empty(t, validateInput(StepMortgageDOB, "1/5/1985"))
		assert.NotEmpty(t, validateInput(StepMortgageDOB, "1985-01-15"))
		assert.NotEmpty(t, validateInput(StepMortgageDOB, "January 15"))
	})

	t.Run("ssn needs four digits", func(t *testing.T) {
		assert.NotEmpty(t, validateInput(StepMortgageSSN, "123"))
		assert.Empty(t, validateInput(StepMortgageSSN, "1234"))
		assert.Empty(t, validateInput(StepMortgageSSN, "123-45-6789"))
	})

	t.Run("optional steps accept skip", func(t *testing.T) {
		assert.Empty(t, validateInput(StepAskPhone, "skip"))
		assert.Empty(t, validateInput(StepMortgageAssets, "Skip"))
		assert.NotEmpty(t, validateInput(StepMortgageAssets, ""))
	})

	t.Run("option steps need a choice", func(t *testing.T) {
		assert.NotEmpty(t, validateInput(StepMortgageMarital, ""))
		assert.Empty(t, validateInput(StepMortgageMarital, "Married"))
	})
}
