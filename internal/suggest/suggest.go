// Package suggest provides the default suggested questions shown for each
// account before the backend has suggested any.
package suggest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/usestring/salesdash-mcp/pkg/client"
)

// Accounts known to the backend.
const (
	OrganicNetRevenues = "ORGANIC NET REVENUES"
	SGA                = "SG&A"
	COGSTotal          = "COST OF GOODS SOLD TOTAL"
	EBIT               = "EBIT"
)

// FallbackAccount supplies defaults for unknown accounts.
const FallbackAccount = OrganicNetRevenues

type question struct {
	text string
	tab  string
}

var defaults = map[string][]question{
	OrganicNetRevenues: {
		{"What is the organic net revenue for FY25 by channel?", "organic net revenues FY25 by channel"},
		{"How does the October forecast compare to plan?", "organic net revenues october forecast vs plan"},
		{"Which region drives the most organic net revenue?", "organic net revenues by region"},
	},
	SGA: {
		{"What is total SG&A spend for FY25?", "SG&A FY25 total"},
		{"How does SG&A trend month over month?", "SG&A by period"},
		{"Which profit centers have the highest SG&A?", "SG&A by profit center"},
	},
	COGSTotal: {
		{"What is the total cost of goods sold for FY25?", "COGS total FY25"},
		{"How does COGS break down by channel?", "COGS total by channel"},
		{"How does the COGS forecast compare to actuals?", "COGS total forecast vs actuals"},
	},
	EBIT: {
		{"What is EBIT for FY25 by channel?", "EBIT FY25 by channel"},
		{"How does EBIT trend across periods?", "EBIT by period"},
		{"Which clusters contribute most to EBIT?", "EBIT by cluster"},
	},
}

// Accounts returns the accounts with default questions.
func Accounts() []string {
	return []string{OrganicNetRevenues, SGA, COGSTotal, EBIT}
}

var whitespace = regexp.MustCompile(`\s+`)

// Defaults returns the default questions for account. Matching ignores case
// and surrounding space; unknown accounts get FallbackAccount's questions
// under their own ID prefix.
func Defaults(account string) []client.SuggestedQuestion {
	qs, ok := defaults[strings.ToUpper(strings.TrimSpace(account))]
	if !ok {
		qs = defaults[FallbackAccount]
	}
	if strings.TrimSpace(account) == "" {
		account = FallbackAccount
	}
	prefix := "default-" + whitespace.ReplaceAllString(strings.TrimSpace(account), "-")

	out := make([]client.SuggestedQuestion, 0, len(qs))
	for i, q := range qs {
		out = append(out, client.SuggestedQuestion{
			ID:             fmt.Sprintf("%s-%d", prefix, i+1),
			Text:           q.text,
			TabInformation: q.tab,
		})
	}
	return out
}

// Query returns the text executed for a question's dashboard tab.
func Query(q client.SuggestedQuestion) string {
	if s := strings.TrimSpace(q.TabInformation); s != "" {
		return s
	}
	return q.Text
}
