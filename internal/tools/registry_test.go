package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundline/internal/domain/application"
	"fundline/pkg/errors"
)

type stubBureau struct {
	report *CreditReport
	err    error
}

func (s *stubBureau) Pull(ctx context.Context, req CreditPullRequest) (*CreditReport, error) {
	return s.report, s.err
}

type stubLeads struct {
	saved []Lead
}

func (s *stubLeads) SaveLead(ctx context.Context, lead Lead) (string, error) {
	s.saved = append(s.saved, lead)
	return "lead-1", nil
}

type stubSessions struct {
	state *application.ConversationState
}

func (s *stubSessions) Get(ctx context.Context, sessionID string) (*application.ConversationState, error) {
	if s.state == nil {
		return nil, errors.ErrSessionNotFound
	}
	return s.state, nil
}

func TestRegistry_RegisterAll(t *testing.T) {
	registry := NewRegistry()
	RegisterAll(registry, Deps{
		Credit:   &stubBureau{},
		Sessions: &stubSessions{},
		Leads:    &stubLeads{},
	})

	t.Run("all shipped tools registered", func(t *testing.T) {
		names := registry.List()
		assert.Equal(t, []string{
			"get_application_status",
			"pull_credit_report",
			"save_lead",
			"score_deal",
			"search_web",
		}, names)
	})

	t.Run("definitions carry schemas", func(t *testing.T) {
		defs := registry.Definitions()
		require.Len(t, defs, 5)
		for _, def := range defs {
			assert.NotEmpty(t, def.Description, def.Name)
			assert.Equal(t, "object", def.Parameters["type"], def.Name)
		}
	})

	t.Run("unknown tool not found", func(t *testing.T) {
		_, ok := registry.Get("unknown_tool")
		assert.False(t, ok)
		assert.False(t, registry.Has("unknown_tool"))
	})
}

func TestPullCreditReportTool(t *testing.T) {
	bureau := &stubBureau{report: &CreditReport{Score: 712, Bureau: "experian", OpenTrades: 4}}
	tool := NewPullCreditReportTool(Deps{Credit: bureau})

	t.Run("returns bureau summary", func(t *testing.T) {
		result, err := tool.Execute(context.Background(), map[string]interface{}{
			"full_name": "Jane Doe",
			"ssn_last4": "1234",
		})
		require.NoError(t, err)
		assert.Equal(t, 712, result["score"])
		assert.Equal(t, "experian", result["bureau"])
	})

	t.Run("rejects missing identity", func(t *testing.T) {
		_, err := tool.Execute(context.Background(), map[string]interface{}{"full_name": "Jane Doe"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInvalidInput))
	})

	t.Run("unconfigured bureau is an internal error", func(t *testing.T) {
		bare := NewPullCreditReportTool(Deps{})
		_, err := bare.Execute(context.Background(), map[string]interface{}{
			"full_name": "Jane Doe",
			"ssn_last4": "1234",
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrInternal))
	})
}

func TestScoreDealTool(t *testing.T) {
	tool := NewScoreDealTool()

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"credit_score":   float64(740),
		"monthly_income": float64(12000),
		"liquid_assets":  float64(60000),
	})
	require.NoError(t, err)
	assert.Equal(t, 95, result["score"])
	assert.Equal(t, "High", result["probability"])
}

func TestSaveLeadTool(t *testing.T) {
	leads := &stubLeads{}
	tool := NewSaveLeadTool(Deps{Leads: leads})

	result, err := tool.Execute(context.Background(), map[string]interface{}{
		"name":      "Sam Po",
		"phone":     "555-0100",
		"loan_type": "mortgage",
	})
	require.NoError(t, err)
	assert.Equal(t, "lead-1", result["leadId"])
	require.Len(t, leads.saved, 1)
	assert.Equal(t, "cofounder_chat", leads.saved[0].Source)
}

func TestGetApplicationStatusTool(t *testing.T) {
	state := application.InitialState()
	state.Step = application.StepMortgageIncome
	state.LoanType = application.LoanTypeMortgage
	sessions := &stubSessions{state: &state}
	tool := NewGetApplicationStatusTool(Deps{Sessions: sessions})

	result, err := tool.Execute(context.Background(), map[string]interface{}{"session_id": "s-1"})
	require.NoError(t, err)
	assert.Equal(t, string(application.StepMortgageIncome), result["step"])
	assert.Equal(t, "mortgage", result["loanType"])
}
