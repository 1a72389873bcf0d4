package chatbot

import "time"

// IntentKind discriminates the parsed meaning of a chat query.
type IntentKind string

const (
	IntentAddTransaction   IntentKind = "add_transaction"
	IntentShowBalance      IntentKind = "show_balance"
	IntentShowReport       IntentKind = "show_report"
	IntentShowTransactions IntentKind = "show_transactions"
	IntentAggregateQuery   IntentKind = "aggregate_query"
	IntentUnknown          IntentKind = "unknown"
)

// ParsedIntent is a tagged union: exactly the variant payload matching Kind
// is non-nil, so handlers never touch fields that don't belong to their
// branch. Balance, report and unknown carry no payload.
type ParsedIntent struct {
	Kind   IntentKind
	Add    *AddTransactionIntent
	Filter *FilteredQueryIntent
}

// AddTransactionIntent holds the slots extracted from an
// "add expense:"/"add income:" command.
type AddTransactionIntent struct {
	Type          string
	AmountMinor   int64
	Description   string
	CategoryToken string
	PaymentMethod string
	Date          time.Time
}

// FilteredQueryIntent backs both listing and aggregate queries.
// Type is empty when the query named neither income nor expense words,
// which means both types are in scope.
type FilteredQueryIntent struct {
	Type          string
	CategoryToken string
	Range         DateRange
}

// DateRange bounds are inclusive; a nil bound imposes no constraint on
// that side. Start <= End whenever both are set.
type DateRange struct {
	Start *time.Time
	End   *time.Time
	Label string
}

func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}
