package tools

import (
	"context"

	"fundline/pkg/errors"
)

type saveLeadArgs struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	LoanType string `json:"loan_type"`
	Notes    string `json:"notes"`
}

// NewSaveLeadTool persists a contact the model captured during chat.
func NewSaveLeadTool(deps Deps) Tool {
	schema := objectSchema(
		[]string{"name", "phone"},
		map[string]interface{}{
			"name":      stringProp("Contact's full name"),
			"phone":     stringProp("Contact's phone number"),
			"email":     stringProp("Contact's email address"),
			"loan_type": stringProp("Requested loan type: mortgage or business"),
			"notes":     stringProp("Free-form context about the lead"),
		},
	)

	return New("save_lead", "Save a new lead's contact details so a loan officer can follow up", schema,
		func(ctx context.Context, args map[string]interface{}) (map[string]interface{}, error) {
			if !deps.HasLeads() {
				return nil, errors.Wrapf(errors.ErrInternal, "save_lead: lead store not configured")
			}

			var in saveLeadArgs
			if err := decodeArgs(args, &in); err != nil {
				return nil, err
			}
			if in.Name == "" || in.Phone == "" {
				return nil, errors.Wrapf(errors.ErrInvalidInput, "save_lead: name and phone are required")
			}

			id, err := deps.Leads.SaveLead(ctx, Lead{
				Name:     in.Name,
				Phone:    in.Phone,
				Email:    in.Email,
				LoanType: in.LoanType,
				Source:   "cofounder_chat",
				Notes:    in.Notes,
			})
			if err != nil {
				return nil, errors.Wrap(err, "save_lead: persist lead")
			}

			return map[string]interface{}{
				"leadId": id,
				"saved":  true,
			}, nil
		})
}
