package chatbot

import (
	"log/slog"
	"time"

	txModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/transaction"
	"github.com/frahmantamala/finance-chatbot/internal/transaction"
)

// TransactionAPI is the slice of the transaction service the chatbot
// needs: search, aggregation, and the chat write path.
type TransactionAPI interface {
	Search(userID int64, f transaction.Filter) ([]*txModel.Transaction, error)
	Aggregate(userID int64, f transaction.Filter) (transaction.Aggregate, error)
	RecordChat(userID int64, rec transaction.ChatRecord) (*txModel.Transaction, error)
}

// Service is the chatbot's single entry point: classify the query, run the
// store operation the intent calls for, and format a plain-text reply.
// Every outcome, including parse failures and store outages, becomes a
// user-facing sentence; HandleQuery never returns an error.
type Service struct {
	transactions TransactionAPI
	classifier   *Classifier
	formatter    *Formatter
	clock        func() time.Time
	logger       *slog.Logger
}

func NewService(transactions TransactionAPI, formatter *Formatter, clock func() time.Time, logger *slog.Logger) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		transactions: transactions,
		classifier:   NewClassifier(),
		formatter:    formatter,
		clock:        clock,
		logger:       logger,
	}
}

func (s *Service) HandleQuery(userID int64, query string) string {
	now := s.clock()

	intent, err := s.classifier.Classify(query, now)
	if err != nil {
		// Parse errors are corrective hints, surfaced verbatim; nothing
		// was written so the user can simply retry.
		s.logger.Info("chat query failed to parse", "user_id", userID, "error", err)
		return err.Error()
	}

	s.logger.Debug("chat query classified", "user_id", userID, "kind", intent.Kind)

	switch intent.Kind {
	case IntentAddTransaction:
		return s.handleAdd(userID, intent.Add)
	case IntentShowBalance:
		return s.handleBalance(userID)
	case IntentShowReport:
		return s.handleReport(userID)
	case IntentAggregateQuery:
		return s.handleAggregate(userID, intent.Filter)
	case IntentShowTransactions:
		return s.handleList(userID, intent.Filter)
	default:
		return s.formatter.Help()
	}
}

func (s *Service) handleAdd(userID int64, add *AddTransactionIntent) string {
	tx, err := s.transactions.RecordChat(userID, transaction.ChatRecord{
		Type:          add.Type,
		AmountMinor:   add.AmountMinor,
		Description:   add.Description,
		CategoryToken: add.CategoryToken,
		PaymentMethod: add.PaymentMethod,
		Date:          add.Date,
	})
	if err != nil {
		s.logger.Error("failed to record chat transaction", "error", err, "user_id", userID)
		return s.formatter.StoreUnavailable()
	}
	return s.formatter.AddConfirmation(tx.Type, tx.AmountMinor, tx.CategoryName)
}

// handleBalance and handleReport aggregate over all time; no date filter.
func (s *Service) handleBalance(userID int64) string {
	income, expenses, err := s.totals(userID)
	if err != nil {
		return s.formatter.StoreUnavailable()
	}
	return s.formatter.Balance(income, expenses)
}

func (s *Service) handleReport(userID int64) string {
	income, expenses, err := s.totals(userID)
	if err != nil {
		return s.formatter.StoreUnavailable()
	}
	return s.formatter.Report(income, expenses)
}

func (s *Service) totals(userID int64) (incomeMinor, expenseMinor int64, err error) {
	income, err := s.transactions.Aggregate(userID, transaction.Filter{Type: transaction.TypeIncome})
	if err != nil {
		s.logger.Error("failed to aggregate income", "error", err, "user_id", userID)
		return 0, 0, err
	}
	expenses, err := s.transactions.Aggregate(userID, transaction.Filter{Type: transaction.TypeExpense})
	if err != nil {
		s.logger.Error("failed to aggregate expenses", "error", err, "user_id", userID)
		return 0, 0, err
	}
	return income.SumMinor, expenses.SumMinor, nil
}

func (s *Service) handleAggregate(userID int64, filter *FilteredQueryIntent) string {
	agg, err := s.transactions.Aggregate(userID, toFilter(filter))
	if err != nil {
		s.logger.Error("failed to aggregate chat query", "error", err, "user_id", userID)
		return s.formatter.StoreUnavailable()
	}
	return s.formatter.AggregateAnswer(filter, agg.SumMinor)
}

func (s *Service) handleList(userID int64, filter *FilteredQueryIntent) string {
	transactions, err := s.transactions.Search(userID, toFilter(filter))
	if err != nil {
		s.logger.Error("failed to search chat query", "error", err, "user_id", userID)
		return s.formatter.StoreUnavailable()
	}
	return s.formatter.TransactionList(filter, transactions)
}

func toFilter(filter *FilteredQueryIntent) transaction.Filter {
	return transaction.Filter{
		StartDate: filter.Range.Start,
		EndDate:   filter.Range.End,
		Type:      filter.Type,
		Category:  filter.CategoryToken,
	}
}
