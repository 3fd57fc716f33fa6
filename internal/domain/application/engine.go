package application

import (
	"strings"

	"fundline/internal/domain/deal"
)

// Update is the delta produced by one dialogue transition. Callers merge
// it into their copy of the state; the engine itself never does I/O.
//
// When Rejected is set, only History changed: the step and data are
// untouched and the last history entry carries the inline error message.
type Update struct {
	Rejected  bool
	Step      StepID
	LoanType  LoanType
	DealScore deal.Score
	Data      ApplicantRecord
	History   []Message
	UIType    MessageType
	Options   []string
}

// Transition advances the dialogue one turn: validate the input, capture
// it onto a working copy of the record, rescore the deal, and route to the
// next step. Pure reducer — same state and input always produce the same
// update.
func Transition(state ConversationState, rawInput string) Update {
	userMsg := NewUserMessage(rawInput)

	if errText := validateInput(state.Step, rawInput); errText != "" {
		history := appendMessages(state.History, userMsg,
			NewSystemMessage(errText, MessageText, nil))
		return Update{
			Rejected:  true,
			Step:      state.Step,
			LoanType:  state.LoanType,
			DealScore: state.DealScore,
			Data:      state.Data,
			History:   history,
			UIType:    MessageText,
		}
	}

	data := state.Data
	captureData(state.Step, rawInput, &data)

	loanType := state.LoanType
	if state.Step == StepAskLoanType {
		loanType = loanTypeFromAnswer(rawInput)
	}

	score := deal.Evaluate(data.ScoreInput())
	move := determineNextMove(state.Step, &data, score, rawInput)

	// Verification pass-throughs may have enriched the record; the score
	// invariant is recompute-on-every-transition against the final data.
	score = deal.Evaluate(data.ScoreInput())

	question := NewSystemMessage(move.Message.Content, move.Message.Type, move.Message.Options)
	history := appendMessages(state.History, userMsg)
	history = append(history, move.Interstitials...)
	history = append(history, question)

	return Update{
		Step:      move.NextStep,
		LoanType:  loanType,
		DealScore: score,
		Data:      data,
		History:   history,
		UIType:    move.Message.Type,
		Options:   move.Message.Options,
	}
}

// Apply merges an update into a state, returning the new state.
func Apply(state ConversationState, u Update) ConversationState {
	state.History = u.History
	if u.Rejected {
		return state
	}
	state.Step = u.Step
	state.LoanType = u.LoanType
	state.DealScore = u.DealScore
	state.Data = u.Data
	return state
}

// LastSystemMessage returns the most recent system utterance, which after
// a rejected transition is the inline error the applicant should see.
func LastSystemMessage(history []Message) *Message {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleSystem {
			return &history[i]
		}
	}
	return nil
}

func loanTypeFromAnswer(answer string) LoanType {
	if strings.Contains(strings.ToLower(answer), "business") {
		return LoanTypeBusiness
	}
	return LoanTypeMortgage
}

// appendMessages copies the history before appending so callers holding
// the previous slice never observe mutation.
func appendMessages(history []Message, msgs ...Message) []Message {
	out := make([]Message, 0, len(history)+len(msgs))
	out = append(out, history...)
	out = append(out, msgs...)
	return out
}
