package urla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundline/internal/domain/application"
)

func TestFormat1003_CompleteRecord(t *testing.T) {
	data := application.ApplicantRecord{
		FullName:        "John Smith",
		Phone:           "555-0100",
		Email:           "john@example.com",
		Strategy:        "Purchase",
		PurchasePrice:   450000,
		PropertyAddress: "123 Main St, Austin TX",
		PropertyType:    "Single Family",
		Occupancy:       "Primary",
		Employer:        "Acme Corp",
		MonthlyIncome:   9000,
		DateOfBirth:     "01/15/1985",
		SSN:             "123-45-6789",
		MaritalStatus:   "Married",
		Citizenship:     "US Citizen",
		CurrentAddress:  "456 Oak Ave, Austin TX",
		YearsAtAddress:  3,
		MonthlyDebt:     500,
		LiquidAssets:    25000,
		AssetsVerified:  true,
		DeclBankruptcy:  false,
		DeclForeclosure: false,
	}

	report := Format1003(data)

	assert.Equal(t, "Purchase", report.Section1.LoanPurpose)
	assert.Equal(t, float64(450000), report.Section1.LoanAmount)
	assert.Equal(t, "John Smith", report.Section2.Borrower.Name)
	assert.Equal(t, "***-**-6789", report.Section2.Borrower.SSN)
	assert.Equal(t, "456 Oak Ave, Austin TX", report.Section3.CurrentAddress)
	assert.Equal(t, float64(9000), report.Section4.MonthlyIncome)
	assert.True(t, report.Section5.AssetsVerified)
	assert.False(t, report.Section6.Bankruptcy)
	assert.Equal(t, ExportVersion, report.Meta.Version)

	exportedAt, err := time.Parse(time.RFC3339, report.Meta.ExportedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), exportedAt, time.Minute)
}

func TestFormat1003_IncompleteRecordNeverFails(t *testing.T) {
	report := Format1003(application.ApplicantRecord{})

	assert.Equal(t, "N/A", report.Section1.LoanPurpose)
	assert.Equal(t, "N/A", report.Section2.Borrower.Name)
	assert.Equal(t, "N/A", report.Section2.Borrower.SSN)
	assert.Equal(t, float64(0), report.Section1.LoanAmount)
	assert.Equal(t, "N/A", report.Section3.PreviousAddress)
}

func TestMaskSSN(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"123-45-6789", "***-**-6789"},
		{"6789", "***-**-6789"},
		{"last four 4321", "***-**-4321"},
		{"123", "N/A"},
		{"", "N/A"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, maskSSN(tc.in), tc.in)
	}
}
