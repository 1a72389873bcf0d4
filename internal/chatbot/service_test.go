package chatbot_test

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/frahmantamala/finance-chatbot/internal/chatbot"
	txModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/transaction"
	"github.com/frahmantamala/finance-chatbot/internal/transaction"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockTransactionAPI implements chatbot.TransactionAPI for testing
type MockTransactionAPI struct {
	searchCalls    []transaction.Filter
	aggregateCalls []transaction.Filter
	recordCalls    []transaction.ChatRecord

	searchResult    []*txModel.Transaction
	aggregateByType map[string]int64
	shouldFail      bool
	failError       error
}

func NewMockTransactionAPI() *MockTransactionAPI {
	return &MockTransactionAPI{aggregateByType: make(map[string]int64)}
}

func (m *MockTransactionAPI) Search(userID int64, f transaction.Filter) ([]*txModel.Transaction, error) {
	m.searchCalls = append(m.searchCalls, f)
	if m.shouldFail {
		return nil, m.failError
	}
	return m.searchResult, nil
}

func (m *MockTransactionAPI) Aggregate(userID int64, f transaction.Filter) (transaction.Aggregate, error) {
	m.aggregateCalls = append(m.aggregateCalls, f)
	if m.shouldFail {
		return transaction.Aggregate{}, m.failError
	}
	return transaction.Aggregate{SumMinor: m.aggregateByType[f.Type]}, nil
}

func (m *MockTransactionAPI) RecordChat(userID int64, rec transaction.ChatRecord) (*txModel.Transaction, error) {
	m.recordCalls = append(m.recordCalls, rec)
	if m.shouldFail {
		return nil, m.failError
	}
	return &txModel.Transaction{
		ID:           1,
		UserID:       userID,
		Type:         rec.Type,
		CategoryName: rec.CategoryToken,
		AmountMinor:  rec.AmountMinor,
	}, nil
}

func (m *MockTransactionAPI) storeCalls() int {
	return len(m.searchCalls) + len(m.aggregateCalls) + len(m.recordCalls)
}

var _ = Describe("Chatbot Service", func() {
	var (
		mockAPI *MockTransactionAPI
		service *chatbot.Service
	)

	const userID = int64(7)

	BeforeEach(func() {
		mockAPI = NewMockTransactionAPI()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		clock := func() time.Time { return now }
		service = chatbot.NewService(mockAPI, chatbot.NewFormatter("₦"), clock, logger)
	})

	Describe("add transaction queries", func() {
		It("should record the parsed transaction and confirm it", func() {
			reply := service.HandleQuery(userID, "add expense: 50 for dinner, category food, cash")
			Expect(reply).To(Equal("Successfully added expense: ₦50.00 for food."))

			Expect(mockAPI.recordCalls).To(HaveLen(1))
			rec := mockAPI.recordCalls[0]
			Expect(rec.Type).To(Equal("expense"))
			Expect(rec.AmountMinor).To(Equal(int64(5000)))
			Expect(rec.Description).To(Equal("dinner"))
			Expect(rec.CategoryToken).To(Equal("food"))
			Expect(rec.PaymentMethod).To(Equal("cash"))
		})

		It("should surface the parse error without touching the store", func() {
			reply := service.HandleQuery(userID, "add expense: 0 for dinner")
			Expect(reply).To(ContainSubstring("positive number"))
			Expect(mockAPI.storeCalls()).To(BeZero())
		})
	})

	Describe("balance and report queries", func() {
		BeforeEach(func() {
			mockAPI.aggregateByType["income"] = 10000
			mockAPI.aggregateByType["expense"] = 3000
		})

		It("should aggregate both types for the balance", func() {
			reply := service.HandleQuery(userID, "show balance")
			Expect(reply).To(Equal("Your current balance is: ₦70.00. (Total Income: ₦100.00, Total Expenses: ₦30.00)"))
			Expect(mockAPI.aggregateCalls).To(HaveLen(2))
		})

		It("should render the report summary", func() {
			reply := service.HandleQuery(userID, "show report")
			Expect(reply).To(ContainSubstring("Financial Report Summary:"))
			Expect(reply).To(ContainSubstring("- Net Balance: ₦70.00"))
		})
	})

	Describe("aggregate queries", func() {
		It("should forward the parsed filter to the store", func() {
			mockAPI.aggregateByType["expense"] = 123456

			reply := service.HandleQuery(userID, "how much did I spend on food last month")
			Expect(reply).To(Equal("You expense ₦1234.56 on food last month."))

			Expect(mockAPI.aggregateCalls).To(HaveLen(1))
			f := mockAPI.aggregateCalls[0]
			Expect(f.Type).To(Equal("expense"))
			Expect(f.Category).To(Equal("food"))
			Expect(f.StartDate).NotTo(BeNil())
			Expect(f.EndDate).NotTo(BeNil())
			Expect(f.StartDate.Month()).To(Equal(time.April))
		})

		It("should answer nothing found for a zero sum", func() {
			reply := service.HandleQuery(userID, "how much did I spend on travel last month")
			Expect(reply).To(ContainSubstring("couldn't find any"))
		})
	})

	Describe("listing queries", func() {
		It("should list matching transactions oldest first", func() {
			mockAPI.searchResult = []*txModel.Transaction{
				{Type: "income", CategoryName: "Salary", AmountMinor: 500000, Description: "salary", Date: now.AddDate(0, 0, -3)},
			}

			reply := service.HandleQuery(userID, "show me my income this week")
			Expect(reply).To(ContainSubstring("Here are your income from this week:"))
			Expect(reply).To(ContainSubstring("₦5000.00"))
			Expect(mockAPI.searchCalls).To(HaveLen(1))
		})
	})

	Describe("fallbacks", func() {
		It("should answer unknown queries with usage help and no store access", func() {
			reply := service.HandleQuery(userID, "tell me a joke")
			Expect(reply).To(ContainSubstring("I can tell you about your finances"))
			Expect(mockAPI.storeCalls()).To(BeZero())
		})

		It("should answer with a friendly message when the store is down", func() {
			mockAPI.shouldFail = true
			mockAPI.failError = errors.New("connection refused")

			reply := service.HandleQuery(userID, "show balance")
			Expect(reply).To(Equal("Sorry, I couldn't reach your records right now. Please try again later."))
		})
	})
})
