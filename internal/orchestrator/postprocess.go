package orchestrator

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// Envelope fields checked in preference order when the model wraps its
// answer in JSON.
var envelopeFields = []string{"message", "status", "response"}

// ExtractMessage unwraps the model's final text. JSON envelopes yield
// their message field (falling back to status, then response); any
// other JSON is rendered as a code block so the user still sees it.
func ExtractMessage(response string) string {
	payload, ok := extractJSONObject(response)
	if !ok {
		return FormatCurrency(response)
	}

	for _, field := range envelopeFields {
		if text, ok := payload[field].(string); ok && text != "" {
			return FormatCurrency(text)
		}
	}

	pretty, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return FormatCurrency(response)
	}
	return "```json\n" + string(pretty) + "\n```"
}

var (
	dollarAmountRe = regexp.MustCompile(`\$(\d{4,})`)
	usdAmountRe    = regexp.MustCompile(`(\d{4,})\s*USD\b`)
)

// FormatCurrency normalizes bare dollar amounts into comma-grouped
// form: $10000 becomes $10,000 and "15000 USD" becomes $15,000.
func FormatCurrency(text string) string {
	text = dollarAmountRe.ReplaceAllStringFunc(text, func(match string) string {
		return "$" + groupDigits(strings.TrimPrefix(match, "$"))
	})
	text = usdAmountRe.ReplaceAllStringFunc(text, func(match string) string {
		digits := usdAmountRe.FindStringSubmatch(match)[1]
		return "$" + groupDigits(digits)
	})
	return text
}

func groupDigits(digits string) string {
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return digits
	}
	return humanize.Comma(n)
}
