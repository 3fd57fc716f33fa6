// Package urla renders accumulated applicant data as the fixed six-section
// 1003 (Uniform Residential Loan Application) report structure.
package urla

import (
	"fmt"
	"time"

	"fundline/internal/domain/application"
)

// ExportVersion tags the report layout consumers were built against.
const ExportVersion = "1.1.0"

// Report is the six-section 1003 export. Every field is always present:
// absent strings render as "N/A" and absent numbers as 0, so incomplete
// applications export without error.
type Report struct {
	Section1 LoanTerms    `json:"section1"`
	Section2 BorrowerInfo `json:"section2"`
	Section3 Residence    `json:"section3"`
	Section4 Employment   `json:"section4"`
	Section5 Assets       `json:"section5"`
	Section6 Declarations `json:"section6"`
	Meta     Meta         `json:"meta"`
}

type LoanTerms struct {
	LoanPurpose     string  `json:"loanPurpose"`
	LoanAmount      float64 `json:"loanAmount"`
	PropertyAddress string  `json:"propertyAddress"`
	PropertyType    string  `json:"propertyType"`
	Occupancy       string  `json:"occupancy"`
}

type BorrowerInfo struct {
	Borrower Borrower `json:"borrower"`
}

type Borrower struct {
	Name          string `json:"name"`
	SSN           string `json:"ssn"`
	DateOfBirth   string `json:"dateOfBirth"`
	MaritalStatus string `json:"maritalStatus"`
	Citizenship   string `json:"citizenship"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

type Residence struct {
	CurrentAddress  string  `json:"currentAddress"`
	YearsAtAddress  float64 `json:"yearsAtAddress"`
	PreviousAddress string  `json:"previousAddress"`
}

type Employment struct {
	Employer      string  `json:"employer"`
	MonthlyIncome float64 `json:"monthlyIncome"`
	AnnualRevenue float64 `json:"annualRevenue"`
}

type Assets struct {
	LiquidAssets   float64 `json:"liquidAssets"`
	AssetsVerified bool    `json:"assetsVerified"`
}

type Declarations struct {
	Bankruptcy  bool `json:"bankruptcy"`
	Foreclosure bool `json:"foreclosure"`
}

type Meta struct {
	ExportedAt string `json:"exportedAt"`
	Version    string `json:"version"`
}

// Format1003 maps an applicant record into the report. It never fails:
// applications may be exported at any stage of completeness.
func Format1003(data application.ApplicantRecord) Report {
	return Report{
		Section1: LoanTerms{
			LoanPurpose:     orNA(data.Strategy),
			LoanAmount:      data.PurchasePrice,
			PropertyAddress: orNA(data.PropertyAddress),
			PropertyType:    orNA(data.PropertyType),
			Occupancy:       orNA(data.Occupancy),
		},
		Section2: BorrowerInfo{
			Borrower: Borrower{
				Name:          orNA(data.FullName),
				SSN:           maskSSN(data.SSN),
				DateOfBirth:   orNA(data.DateOfBirth),
				MaritalStatus: orNA(data.MaritalStatus),
				Citizenship:   orNA(data.Citizenship),
				Phone:         orNA(data.Phone),
				Email:         orNA(data.Email),
			},
		},
		Section3: Residence{
			CurrentAddress:  orNA(data.CurrentAddress),
			YearsAtAddress:  data.YearsAtAddress,
			PreviousAddress: orNA(data.PreviousAddress),
		},
		Section4: Employment{
			Employer:      orNA(data.Employer),
			MonthlyIncome: data.MonthlyIncome,
			AnnualRevenue: data.AnnualRevenue,
		},
		Section5: Assets{
			LiquidAssets:   data.LiquidAssets,
			AssetsVerified: data.AssetsVerified,
		},
		Section6: Declarations{
			Bankruptcy:  data.DeclBankruptcy,
			Foreclosure: data.DeclForeclosure,
		},
		Meta: Meta{
			ExportedAt: time.Now().UTC().Format(time.RFC3339),
			Version:    ExportVersion,
		},
	}
}

// maskSSN reduces a Social Security number to its last four digits.
func maskSSN(ssn string) string {
	digits := make([]rune, 0, len(ssn))
	for _, r := range ssn {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 4 {
		return "N/A"
	}
	return fmt.Sprintf("***-**-%s", string(digits[len(digits)-4:]))
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
