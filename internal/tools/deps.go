package tools

import (
	"context"

	"fundline/internal/domain/application"
)

// CreditBureau pulls a tri-merge credit report for an applicant.
type CreditBureau interface {
	Pull(ctx context.Context, req CreditPullRequest) (*CreditReport, error)
}

// CreditPullRequest identifies the applicant for a credit pull.
type CreditPullRequest struct {
	FullName    string
	SSNLast4    string
	DateOfBirth string
}

// CreditReport is a bureau response summary.
type CreditReport struct {
	Score        int      `json:"score"`
	Bureau       string   `json:"bureau"`
	OpenTrades   int      `json:"openTrades"`
	Derogatories int      `json:"derogatories"`
	Notes        []string `json:"notes,omitempty"`
}

// WebSearcher runs a web search and returns ranked results.
type WebSearcher interface {
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// SearchResult is one web search hit.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SessionReader loads conversation state for a session.
type SessionReader interface {
	Get(ctx context.Context, sessionID string) (*application.ConversationState, error)
}

// LeadWriter persists a captured lead.
type LeadWriter interface {
	SaveLead(ctx context.Context, lead Lead) (string, error)
}

// Lead is the capture-form payload a tool can persist.
type Lead struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	LoanType string `json:"loanType"`
	Source   string `json:"source"`
	Notes    string `json:"notes"`
}

// Deps carries the external collaborators shipped tools depend on.
// Nil members disable the tools that need them.
type Deps struct {
	Credit   CreditBureau
	Search   WebSearcher
	Sessions SessionReader
	Leads    LeadWriter
}

// HasCredit reports whether a credit bureau is configured.
func (d Deps) HasCredit() bool { return d.Credit != nil }

// HasSearch reports whether a web searcher is configured.
func (d Deps) HasSearch() bool { return d.Search != nil }

// HasSessions reports whether session lookup is configured.
func (d Deps) HasSessions() bool { return d.Sessions != nil }

// HasLeads reports whether lead persistence is configured.
func (d Deps) HasLeads() bool { return d.Leads != nil }
