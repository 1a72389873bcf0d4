package chatbot

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/frahmantamala/finance-chatbot/internal"
	"github.com/shopspring/decimal"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	DefaultDescription = "No description"
	DefaultCategory    = "Uncategorized"
)

var (
	addPrefixRe = regexp.MustCompile(`^add (expense|income):?\s*`)

	// Amount with optional decimals, an optional "for", then free text.
	amountDescRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:for\s*)?(.*)`)

	// Free text of an add command stops at the first occurrence of any of
	// these markers; the remainder belongs to later comma parts.
	descriptionMarkers = []string{"category", "on", "via"}

	incomeWords  = []string{"income", "earn", "earned"}
	expenseWords = []string{"expense", "spend", "spent"}

	// Word run following an anchor, terminated by a temporal or command
	// stop word or end of string.
	categoryAnchorRes []*regexp.Regexp

	explicitDateLayouts = []string{
		"2006-01-02",
		"2006/01/02",
		"jan 2, 2006",
		"january 2, 2006",
		"2 january 2006",
	}
)

func init() {
	const stopWords = `today|yesterday|this|last|month|week|year|income|expense|how much|show me|total|what did|earn|spent`
	for _, anchor := range []string{"on", "for", "in"} {
		categoryAnchorRes = append(categoryAnchorRes, regexp.MustCompile(
			fmt.Sprintf(`%s\s+([a-z0-9 ]+?)(?:\s+(?:%s)|$)`, anchor, stopWords)))
	}
}

// rule pairs a predicate with its parser. Rules are evaluated in order and
// the first match wins, which makes command precedence explicit and each
// rule testable on its own.
type rule struct {
	name  string
	match func(q string) bool
	parse func(q string, now time.Time) (ParsedIntent, error)
}

type Classifier struct {
	rules []rule
}

func NewClassifier() *Classifier {
	c := &Classifier{}
	c.rules = []rule{
		{"add_transaction", func(q string) bool { return addPrefixRe.MatchString(q) }, c.parseAdd},
		{"show_balance", contains("show balance"), kindOnly(IntentShowBalance)},
		{"show_report", contains("show report"), kindOnly(IntentShowReport)},
		{"filtered_query", func(string) bool { return true }, c.parseFiltered},
	}
	return c
}

// Classify inspects the query for known command shapes and extracts their
// raw parameters. The only error it can return is a user-facing parse error
// for a malformed add command; everything else resolves to an intent, with
// IntentUnknown as the terminal fallback.
func (c *Classifier) Classify(query string, now time.Time) (ParsedIntent, error) {
	q := strings.ToLower(strings.TrimSpace(query))

	for _, r := range c.rules {
		if r.match(q) {
			return r.parse(q, now)
		}
	}
	return ParsedIntent{Kind: IntentUnknown}, nil
}

func contains(substr string) func(string) bool {
	return func(q string) bool { return strings.Contains(q, substr) }
}

func kindOnly(kind IntentKind) func(string, time.Time) (ParsedIntent, error) {
	return func(string, time.Time) (ParsedIntent, error) {
		return ParsedIntent{Kind: kind}, nil
	}
}

// parseAdd handles "add expense: <amount> [for] <description>[, category
// <name>][, on <date>][, <payment method>]". Comma parts after the first are
// classified independently; when two parts fill the same slot the last one
// wins.
func (c *Classifier) parseAdd(q string, now time.Time) (ParsedIntent, error) {
	m := addPrefixRe.FindStringSubmatch(q)
	txType := m[1]

	rest := strings.TrimSpace(q[len(m[0]):])
	parts := strings.Split(rest, ",")

	am := amountDescRe.FindStringSubmatch(strings.TrimSpace(parts[0]))
	if am == nil {
		return ParsedIntent{}, addFormatError(txType, "could not parse the amount and description")
	}

	amount, err := decimal.NewFromString(am[1])
	if err != nil || !amount.IsPositive() {
		return ParsedIntent{}, invalidAmountError(txType)
	}

	add := &AddTransactionIntent{
		Type:        txType,
		AmountMinor: amount.Round(2).Shift(2).IntPart(),
		Description: truncateDescription(strings.TrimSpace(am[2])),
		Date:        now,
	}
	if add.Description == "" {
		add.Description = DefaultDescription
	}

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		switch {
		case strings.Contains(part, "category"):
			add.CategoryToken = strings.TrimSpace(part[strings.Index(part, "category")+len("category"):])
		case strings.Contains(part, "on "):
			add.Date = resolveExplicitDate(part, now)
		case strings.Contains(part, "card") || strings.Contains(part, "cash") || strings.Contains(part, "bank"):
			add.PaymentMethod = part
		}
	}

	if add.CategoryToken == "" {
		add.CategoryToken = DefaultCategory
	}

	return ParsedIntent{Kind: IntentAddTransaction, Add: add}, nil
}

// parseFiltered covers every query that is not an explicit command. Without
// a recognized date phrase there is nothing to scope the query by, so the
// intent stays unknown rather than silently scanning all time.
func (c *Classifier) parseFiltered(q string, now time.Time) (ParsedIntent, error) {
	rng := ResolveDateRange(q, now)
	if rng.IsZero() {
		return ParsedIntent{Kind: IntentUnknown}, nil
	}

	filter := &FilteredQueryIntent{
		Type:          requestedType(q),
		CategoryToken: categoryToken(q),
		Range:         rng,
	}

	switch {
	case strings.Contains(q, "how much") || strings.Contains(q, "total"):
		return ParsedIntent{Kind: IntentAggregateQuery, Filter: filter}, nil
	case strings.Contains(q, "show me my") || strings.Contains(q, "what did i"):
		return ParsedIntent{Kind: IntentShowTransactions, Filter: filter}, nil
	}
	return ParsedIntent{Kind: IntentUnknown}, nil
}

// requestedType returns income or expense only when the query names one
// side exclusively; mixed or absent keywords leave the type unset, meaning
// both types are in scope.
func requestedType(q string) string {
	hasIncome := containsAny(q, incomeWords)
	hasExpense := containsAny(q, expenseWords)

	switch {
	case hasIncome && !hasExpense:
		return TypeIncome
	case hasExpense && !hasIncome:
		return TypeExpense
	}
	return ""
}

// categoryToken tries the anchors "on", "for", "in" in order; the first
// anchor that captures a word run wins and later anchors are not consulted.
func categoryToken(q string) string {
	for _, re := range categoryAnchorRes {
		if m := re.FindStringSubmatch(q); m != nil {
			if token := strings.TrimSpace(m[1]); token != "" {
				return token
			}
		}
	}
	return ""
}

func containsAny(q string, words []string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

// truncateDescription cuts the free text at the first marker occurrence so
// a missing comma before "category food" doesn't leak into the description.
func truncateDescription(desc string) string {
	cut := len(desc)
	for _, marker := range descriptionMarkers {
		if idx := strings.Index(desc, marker); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return strings.TrimSpace(desc[:cut])
}

// resolveExplicitDate reads the date token of an "on <date>" part. The
// literals today/yesterday resolve relative to now; anything else is tried
// against the known layouts and an unparseable date silently keeps the
// default, it never fails the whole command.
func resolveExplicitDate(part string, now time.Time) time.Time {
	if strings.Contains(part, "today") {
		return now
	}
	if strings.Contains(part, "yesterday") {
		return now.AddDate(0, 0, -1)
	}

	raw := strings.TrimSpace(part[strings.Index(part, "on ")+len("on "):])
	for _, layout := range explicitDateLayouts {
		if d, err := time.ParseInLocation(layout, raw, now.Location()); err == nil {
			return d
		}
	}
	return now
}

func addFormatError(txType, reason string) *internal.AppError {
	return internal.NewValidationError(
		fmt.Sprintf("I need a valid format for the %s: %s. Try 'Add %s: <amount> for <description>, category <name>, on <date or today/yesterday>, <payment method>'.", txType, reason, txType),
		internal.ErrCodeInvalidAddFormat,
	)
}

func invalidAmountError(txType string) *internal.AppError {
	return internal.NewValidationError(
		fmt.Sprintf("I need a valid format for the %s: the amount must be a positive number.", txType),
		internal.ErrCodeInvalidAmount,
	)
}
