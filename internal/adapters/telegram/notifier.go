package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/dustin/go-humanize"
	"golang.org/x/time/rate"

	"fundline/internal/domain/application"
	"fundline/pkg/errors"
	"fundline/pkg/logger"
)

// Notifier pushes loan-officer alerts to a Telegram chat.
type Notifier struct {
	api         *tgbotapi.BotAPI
	chatID      int64
	rateLimiter *rate.Limiter
	log         *logger.Logger
}

// NewNotifier creates a notifier bound to one officer chat.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	if token == "" {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "telegram bot token is required")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "create telegram bot")
	}

	return &Notifier{
		api:    api,
		chatID: chatID,
		// Telegram allows short bursts; stay well under per-chat limits
		rateLimiter: rate.NewLimiter(rate.Limit(1), 5),
		log:         logger.Get().With("component", "telegram_notifier"),
	}, nil
}

// NotifyApplicationCompleted alerts the officer chat that an intake
// flow reached COMPLETE.
func (n *Notifier) NotifyApplicationCompleted(ctx context.Context, state application.ConversationState) error {
	if err := n.rateLimiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "telegram rate limit")
	}

	msg := tgbotapi.NewMessage(n.chatID, formatCompletion(state))
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := n.api.Send(msg); err != nil {
		n.log.Errorf("Failed to send completion notification: %v", err)
		return errors.Wrap(err, "send telegram message")
	}
	return nil
}

// NotifyLead alerts the officer chat about a new captured lead.
func (n *Notifier) NotifyLead(ctx context.Context, name, phone, loanType string) error {
	if err := n.rateLimiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "telegram rate limit")
	}

	text := fmt.Sprintf("<b>New lead</b>\n%s\n%s\nLoan type: %s", name, phone, loanType)
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := n.api.Send(msg); err != nil {
		n.log.Errorf("Failed to send lead notification: %v", err)
		return errors.Wrap(err, "send telegram message")
	}
	return nil
}

func formatCompletion(state application.ConversationState) string {
	data := state.Data
	var b strings.Builder

	b.WriteString("<b>Application completed</b>\n")
	fmt.Fprintf(&b, "Name: %s\n", orDash(data.FullName))
	fmt.Fprintf(&b, "Phone: %s\n", orDash(data.Phone))
	fmt.Fprintf(&b, "Loan type: %s\n", string(state.LoanType))
	if data.PurchasePrice > 0 {
		fmt.Fprintf(&b, "Purchase price: $%s\n", humanize.Commaf(data.PurchasePrice))
	}
	fmt.Fprintf(&b, "Deal score: %d (%s)", state.DealScore.Score, state.DealScore.Probability)

	return b.String()
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
