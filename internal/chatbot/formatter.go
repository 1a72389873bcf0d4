package chatbot

import (
	"fmt"
	"strings"
	"time"

	txModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/transaction"
	"github.com/shopspring/decimal"
)

// Formatter renders classification and query results into the plain-text
// replies the chat surface shows. It is pure; all data comes in as
// arguments.
type Formatter struct {
	CurrencySymbol string
}

func NewFormatter(currencySymbol string) *Formatter {
	if currencySymbol == "" {
		currencySymbol = "₦"
	}
	return &Formatter{CurrencySymbol: currencySymbol}
}

// Amount renders minor units with the currency glyph and exactly two
// decimal places.
func (f *Formatter) Amount(minor int64) string {
	return f.CurrencySymbol + decimal.New(minor, -2).StringFixed(2)
}

func (f *Formatter) AddConfirmation(txType string, amountMinor int64, categoryName string) string {
	return fmt.Sprintf("Successfully added %s: %s for %s.", txType, f.Amount(amountMinor), categoryName)
}

func (f *Formatter) Balance(incomeMinor, expenseMinor int64) string {
	return fmt.Sprintf("Your current balance is: %s. (Total Income: %s, Total Expenses: %s)",
		f.Amount(incomeMinor-expenseMinor), f.Amount(incomeMinor), f.Amount(expenseMinor))
}

func (f *Formatter) Report(incomeMinor, expenseMinor int64) string {
	var b strings.Builder
	b.WriteString("Financial Report Summary:\n")
	b.WriteString(fmt.Sprintf("- Total Income: %s\n", f.Amount(incomeMinor)))
	b.WriteString(fmt.Sprintf("- Total Expenses: %s\n", f.Amount(expenseMinor)))
	b.WriteString(fmt.Sprintf("- Net Balance: %s\n", f.Amount(incomeMinor-expenseMinor)))
	return b.String()
}

// AggregateAnswer renders a summed total. A zero sum reads as a negative
// finding, never as a real zero-value amount.
func (f *Formatter) AggregateAnswer(filter *FilteredQueryIntent, sumMinor int64) string {
	typePhrase := filter.Type
	if typePhrase == "" {
		typePhrase = "spent/earned"
	}
	categoryPhrase := ""
	if filter.CategoryToken != "" {
		categoryPhrase = " on " + filter.CategoryToken
	}

	if sumMinor > 0 {
		return fmt.Sprintf("You %s %s%s %s.", typePhrase, f.Amount(sumMinor), categoryPhrase, filter.Range.Label)
	}
	return f.notFound(typePhrase, categoryPhrase, filter.Range.Label)
}

// TransactionList renders one line per transaction, oldest first.
func (f *Formatter) TransactionList(filter *FilteredQueryIntent, transactions []*txModel.Transaction) string {
	typePhrase := filter.Type
	if typePhrase == "" {
		typePhrase = "transactions"
	}
	categoryPhrase := ""
	if filter.CategoryToken != "" {
		categoryPhrase = " on " + filter.CategoryToken
	}

	if len(transactions) == 0 {
		return f.notFound(typePhrase, categoryPhrase, filter.Range.Label)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Here are your %s%s from %s:\n", typePhrase, categoryPhrase, filter.Range.Label))
	for _, tx := range transactions {
		b.WriteString(fmt.Sprintf("- %s: %s on %s (%s) on %s\n",
			capitalize(tx.Type),
			f.Amount(tx.AmountMinor),
			tx.CategoryName,
			tx.Description,
			tx.Date.Format(time.DateOnly)))
	}
	return b.String()
}

func (f *Formatter) notFound(typePhrase, categoryPhrase, label string) string {
	return fmt.Sprintf("I couldn't find any %s%s for %s.", typePhrase, categoryPhrase, label)
}

// Help is the fallback reply for queries that matched no rule.
func (f *Formatter) Help() string {
	return "I can tell you about your finances. Try asking 'How much did I spend today?', " +
		"'Show me my income last week', or 'Add expense: 50 for dinner, category food, on today, cash'."
}

func (f *Formatter) StoreUnavailable() string {
	return "Sorry, I couldn't reach your records right now. Please try again later."
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
