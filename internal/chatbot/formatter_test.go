package chatbot_test

import (
	"time"

	"github.com/frahmantamala/finance-chatbot/internal/chatbot"
	txModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/transaction"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Formatter", func() {
	var formatter *chatbot.Formatter

	BeforeEach(func() {
		formatter = chatbot.NewFormatter("₦")
	})

	It("should render minor units with two decimal places", func() {
		Expect(formatter.Amount(5000)).To(Equal("₦50.00"))
		Expect(formatter.Amount(1235)).To(Equal("₦12.35"))
		Expect(formatter.Amount(0)).To(Equal("₦0.00"))
	})

	It("should honor a configured currency symbol", func() {
		f := chatbot.NewFormatter("$")
		Expect(f.Amount(100)).To(Equal("$1.00"))
	})

	It("should confirm an added transaction", func() {
		msg := formatter.AddConfirmation("expense", 5000, "food")
		Expect(msg).To(Equal("Successfully added expense: ₦50.00 for food."))
	})

	It("should render the balance with income and expense totals", func() {
		msg := formatter.Balance(10000, 3000)
		Expect(msg).To(Equal("Your current balance is: ₦70.00. (Total Income: ₦100.00, Total Expenses: ₦30.00)"))
	})

	It("should render the report summary lines", func() {
		msg := formatter.Report(10000, 3000)
		Expect(msg).To(ContainSubstring("Financial Report Summary:"))
		Expect(msg).To(ContainSubstring("- Total Income: ₦100.00"))
		Expect(msg).To(ContainSubstring("- Total Expenses: ₦30.00"))
		Expect(msg).To(ContainSubstring("- Net Balance: ₦70.00"))
	})

	Describe("AggregateAnswer", func() {
		filter := &chatbot.FilteredQueryIntent{
			Type:          "expense",
			CategoryToken: "food",
			Range:         chatbot.DateRange{Label: "last month"},
		}

		It("should state the total for a positive sum", func() {
			msg := formatter.AggregateAnswer(filter, 123456)
			Expect(msg).To(Equal("You expense ₦1234.56 on food last month."))
		})

		It("should read a zero sum as nothing found", func() {
			msg := formatter.AggregateAnswer(filter, 0)
			Expect(msg).To(Equal("I couldn't find any expense on food for last month."))
		})

		It("should cover both types when none was requested", func() {
			both := &chatbot.FilteredQueryIntent{Range: chatbot.DateRange{Label: "today"}}
			msg := formatter.AggregateAnswer(both, 100)
			Expect(msg).To(ContainSubstring("spent/earned"))
		})
	})

	Describe("TransactionList", func() {
		filter := &chatbot.FilteredQueryIntent{
			Type:  "expense",
			Range: chatbot.DateRange{Label: "this week"},
		}

		It("should render one line per transaction", func() {
			transactions := []*txModel.Transaction{
				{
					Type:         "expense",
					CategoryName: "Food & Dining",
					AmountMinor:  5000,
					Description:  "dinner",
					Date:         time.Date(2024, time.May, 14, 18, 0, 0, 0, time.UTC),
				},
			}
			msg := formatter.TransactionList(filter, transactions)
			Expect(msg).To(ContainSubstring("Here are your expense from this week:"))
			Expect(msg).To(ContainSubstring("- Expense: ₦50.00 on Food & Dining (dinner) on 2024-05-14"))
		})

		It("should read an empty result as nothing found", func() {
			msg := formatter.TransactionList(filter, nil)
			Expect(msg).To(Equal("I couldn't find any expense for this week."))
		})
	})

	It("should offer usage examples as the fallback reply", func() {
		Expect(formatter.Help()).To(ContainSubstring("How much did I spend today?"))
	})
})
