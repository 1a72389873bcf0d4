package postgres

import (
	"testing"

	"github.com/frahmantamala/finance-chatbot/internal/category"
	catModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/category"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestCategoryRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "CategoryRepository Suite")
}

var _ = Describe("CategoryRepository", func() {
	var (
		db   *gorm.DB
		repo category.RepositoryAPI
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&catModel.Category{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewCategoryRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("GetByName", func() {
		BeforeEach(func() {
			Expect(repo.Create(&catModel.Category{UserID: 1, Name: "Food & Dining", Type: "expense"})).To(Succeed())
		})

		It("should match regardless of case and keep the stored casing", func() {
			cat, err := repo.GetByName(1, "FOOD & dining")
			Expect(err).NotTo(HaveOccurred())
			Expect(cat).NotTo(BeNil())
			Expect(cat.Name).To(Equal("Food & Dining"))
		})

		It("should return nil for another user's category", func() {
			cat, err := repo.GetByName(2, "Food & Dining")
			Expect(err).NotTo(HaveOccurred())
			Expect(cat).To(BeNil())
		})

		It("should return nil without error when nothing matches", func() {
			cat, err := repo.GetByName(1, "Travel")
			Expect(err).NotTo(HaveOccurred())
			Expect(cat).To(BeNil())
		})
	})

	Describe("GetAllByUser", func() {
		It("should return only the user's categories ordered by name", func() {
			Expect(repo.Create(&catModel.Category{UserID: 1, Name: "Transport", Type: "expense"})).To(Succeed())
			Expect(repo.Create(&catModel.Category{UserID: 1, Name: "Food", Type: "expense"})).To(Succeed())
			Expect(repo.Create(&catModel.Category{UserID: 2, Name: "Other", Type: "expense"})).To(Succeed())

			categories, err := repo.GetAllByUser(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(HaveLen(2))
			Expect(categories[0].Name).To(Equal("Food"))
			Expect(categories[1].Name).To(Equal("Transport"))
		})
	})

	Describe("Delete", func() {
		It("should remove the row", func() {
			cat := &catModel.Category{UserID: 1, Name: "Food", Type: "expense"}
			Expect(repo.Create(cat)).To(Succeed())
			Expect(repo.Delete(cat.ID)).To(Succeed())

			found, err := repo.GetByID(cat.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})
	})
})
