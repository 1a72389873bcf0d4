package postgres

import (
	"testing"
	"time"

	txModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/transaction"
	"github.com/frahmantamala/finance-chatbot/internal/transaction"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestTransactionRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "TransactionRepository Suite")
}

var _ = Describe("TransactionRepository", func() {
	var (
		db   *gorm.DB
		repo *TransactionRepository
	)

	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
	}

	seed := func(txType, categoryName string, amountMinor int64, date time.Time) *txModel.Transaction {
		tx := &txModel.Transaction{
			UserID:        1,
			Type:          txType,
			CategoryName:  categoryName,
			AmountMinor:   amountMinor,
			Description:   "seeded",
			PaymentMethod: "cash",
			Date:          date,
		}
		Expect(repo.Create(tx)).To(Succeed())
		return tx
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&txModel.Transaction{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewTransactionRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("Create", func() {
		It("should persist a transaction and assign an id", func() {
			tx := seed("expense", "Food & Dining", 5000, day(2024, time.May, 10))
			Expect(tx.ID).To(BeNumerically(">", 0))
		})
	})

	Describe("Search", func() {
		BeforeEach(func() {
			seed("expense", "Food & Dining", 5000, day(2024, time.May, 10))
			seed("expense", "Transport", 1500, day(2024, time.May, 12))
			seed("income", "Salary", 500000, day(2024, time.May, 1))
			seed("expense", "Food & Dining", 3000, day(2024, time.April, 20))
		})

		It("should match a category token as a case-insensitive substring", func() {
			results, err := repo.Search(1, transaction.Filter{Category: "food"})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
			for _, tx := range results {
				Expect(tx.CategoryName).To(Equal("Food & Dining"))
			}
		})

		It("should respect inclusive date bounds", func() {
			start := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
			end := time.Date(2024, time.May, 31, 23, 59, 59, 999_000_000, time.UTC)

			results, err := repo.Search(1, transaction.Filter{StartDate: &start, EndDate: &end})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(3))
		})

		It("should filter by type regardless of case", func() {
			results, err := repo.Search(1, transaction.Filter{Type: "INCOME"})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0].CategoryName).To(Equal("Salary"))
		})

		It("should order results oldest first", func() {
			results, err := repo.Search(1, transaction.Filter{Type: "expense"})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(3))
			Expect(results[0].Date.Before(results[1].Date)).To(BeTrue())
			Expect(results[1].Date.Before(results[2].Date)).To(BeTrue())
		})

		It("should not return other users' transactions", func() {
			results, err := repo.Search(2, transaction.Filter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(BeEmpty())
		})
	})

	Describe("ListByUser", func() {
		It("should order results newest first", func() {
			seed("expense", "Food & Dining", 5000, day(2024, time.May, 10))
			seed("expense", "Transport", 1500, day(2024, time.May, 12))

			results, err := repo.ListByUser(1, transaction.Filter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
			Expect(results[0].Date.After(results[1].Date)).To(BeTrue())
		})
	})

	Describe("Aggregate", func() {
		BeforeEach(func() {
			seed("expense", "Food & Dining", 5000, day(2024, time.May, 10))
			seed("expense", "Food & Dining", 2500, day(2024, time.May, 11))
			seed("income", "Salary", 500000, day(2024, time.May, 1))
		})

		It("should sum and count the matching rows", func() {
			agg, err := repo.Aggregate(1, transaction.Filter{Type: "expense"})
			Expect(err).NotTo(HaveOccurred())
			Expect(agg.SumMinor).To(Equal(int64(7500)))
			Expect(agg.Count).To(Equal(int64(2)))
		})

		It("should return a zero aggregate when nothing matches", func() {
			agg, err := repo.Aggregate(1, transaction.Filter{Category: "travel"})
			Expect(err).NotTo(HaveOccurred())
			Expect(agg.SumMinor).To(BeZero())
			Expect(agg.Count).To(BeZero())
		})
	})

	Describe("ReassignCategory", func() {
		It("should relabel matching rows case-insensitively and report the count", func() {
			seed("expense", "Food & Dining", 5000, day(2024, time.May, 10))
			seed("expense", "food & dining", 2500, day(2024, time.May, 11))
			seed("expense", "Transport", 1500, day(2024, time.May, 12))

			moved, err := repo.ReassignCategory(1, "Food & Dining", "Uncategorized")
			Expect(err).NotTo(HaveOccurred())
			Expect(moved).To(Equal(int64(2)))

			results, err := repo.Search(1, transaction.Filter{Category: "uncategorized"})
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
		})

		It("should not touch other users' rows", func() {
			other := &txModel.Transaction{
				UserID: 2, Type: "expense", CategoryName: "Food & Dining",
				AmountMinor: 100, Date: day(2024, time.May, 10),
			}
			Expect(repo.Create(other)).To(Succeed())

			moved, err := repo.ReassignCategory(1, "Food & Dining", "Uncategorized")
			Expect(err).NotTo(HaveOccurred())
			Expect(moved).To(BeZero())
		})
	})
})
