package category_test

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/frahmantamala/finance-chatbot/internal"
	"github.com/frahmantamala/finance-chatbot/internal/category"
	catModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/category"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCategoryService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Service Suite")
}

// MockRepository implements category.RepositoryAPI for testing
type MockRepository struct {
	categories map[int64]*catModel.Category
	nextID     int64
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		categories: make(map[int64]*catModel.Category),
		nextID:     1,
	}
}

func (m *MockRepository) GetAllByUser(userID int64) ([]*catModel.Category, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*catModel.Category
	for _, cat := range m.categories {
		if cat.UserID == userID {
			result = append(result, cat)
		}
	}
	return result, nil
}

func (m *MockRepository) GetByID(id int64) (*catModel.Category, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	return m.categories[id], nil
}

func (m *MockRepository) GetByName(userID int64, name string) (*catModel.Category, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, cat := range m.categories {
		if cat.UserID == userID && strings.EqualFold(cat.Name, name) {
			return cat, nil
		}
	}
	return nil, nil
}

func (m *MockRepository) Create(cat *catModel.Category) error {
	if m.shouldFail {
		return m.failError
	}
	cat.ID = m.nextID
	m.nextID++
	m.categories[cat.ID] = cat
	return nil
}

func (m *MockRepository) Update(cat *catModel.Category) error {
	if m.shouldFail {
		return m.failError
	}
	m.categories[cat.ID] = cat
	return nil
}

func (m *MockRepository) Delete(id int64) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.categories, id)
	return nil
}

// MockReassigner implements category.TransactionReassigner
type MockReassigner struct {
	calls []struct {
		userID           int64
		oldName, newName string
	}
	reassigned int64
}

func (m *MockReassigner) ReassignCategory(userID int64, oldName, newName string) (int64, error) {
	m.calls = append(m.calls, struct {
		userID           int64
		oldName, newName string
	}{userID, oldName, newName})
	return m.reassigned, nil
}

var _ = Describe("Category Service", func() {
	var (
		mockRepo   *MockRepository
		reassigner *MockReassigner
		service    *category.Service
	)

	const userID = int64(1)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		reassigner = &MockReassigner{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(mockRepo, reassigner, nil, logger)
	})

	Describe("Create", func() {
		It("should create a category keeping its original casing", func() {
			created, err := service.Create(userID, category.CreateCategoryDTO{Name: "Food & Dining", Type: "expense"})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Name).To(Equal("Food & Dining"))
			Expect(created.ID).To(BeNumerically(">", 0))
		})

		It("should reject a duplicate differing only in case", func() {
			_, err := service.Create(userID, category.CreateCategoryDTO{Name: "Food", Type: "expense"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(userID, category.CreateCategoryDTO{Name: "FOOD", Type: "expense"})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeCategoryExists))
		})

		It("should allow the same name for a different user", func() {
			_, err := service.Create(userID, category.CreateCategoryDTO{Name: "Food", Type: "expense"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(int64(2), category.CreateCategoryDTO{Name: "Food", Type: "expense"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject an invalid type", func() {
			_, err := service.Create(userID, category.CreateCategoryDTO{Name: "Food", Type: "transfer"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Update", func() {
		var existing *category.Category

		BeforeEach(func() {
			var err error
			existing, err = service.Create(userID, category.CreateCategoryDTO{Name: "Food", Type: "expense"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should propagate a rename to the user's transactions", func() {
			updated, err := service.Update(userID, existing.ID, category.UpdateCategoryDTO{Name: "Groceries"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Groceries"))

			Expect(reassigner.calls).To(HaveLen(1))
			Expect(reassigner.calls[0].oldName).To(Equal("Food"))
			Expect(reassigner.calls[0].newName).To(Equal("Groceries"))
		})

		It("should not touch transactions when only the type changes", func() {
			_, err := service.Update(userID, existing.ID, category.UpdateCategoryDTO{Type: "income"})
			Expect(err).NotTo(HaveOccurred())
			Expect(reassigner.calls).To(BeEmpty())
		})

		It("should refuse to update another user's category", func() {
			_, err := service.Update(int64(2), existing.ID, category.UpdateCategoryDTO{Name: "Stolen"})
			Expect(err).To(Equal(internal.ErrCategoryNotFound))
		})
	})

	Describe("Delete", func() {
		var existing *category.Category

		BeforeEach(func() {
			var err error
			existing, err = service.Create(userID, category.CreateCategoryDTO{Name: "Food", Type: "expense"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should reassign transactions to the fallback before deleting", func() {
			reassigner.reassigned = 3

			err := service.Delete(userID, existing.ID)
			Expect(err).NotTo(HaveOccurred())

			Expect(reassigner.calls).To(HaveLen(1))
			Expect(reassigner.calls[0].oldName).To(Equal("Food"))
			Expect(reassigner.calls[0].newName).To(Equal(category.DefaultName))

			remaining, err := mockRepo.GetByName(userID, "Food")
			Expect(err).NotTo(HaveOccurred())
			Expect(remaining).To(BeNil())
		})

		It("should create the fallback category on first need", func() {
			err := service.Delete(userID, existing.ID)
			Expect(err).NotTo(HaveOccurred())

			fallback, err := mockRepo.GetByName(userID, category.DefaultName)
			Expect(err).NotTo(HaveOccurred())
			Expect(fallback).NotTo(BeNil())
		})

		It("should not reassign when deleting the fallback itself", func() {
			fallback, err := service.Create(userID, category.CreateCategoryDTO{Name: category.DefaultName, Type: "expense"})
			Expect(err).NotTo(HaveOccurred())

			err = service.Delete(userID, fallback.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(reassigner.calls).To(BeEmpty())
		})
	})

	Describe("ResolveForChat", func() {
		It("should reuse an existing category regardless of token case", func() {
			_, err := service.Create(userID, category.CreateCategoryDTO{Name: "Food & Dining", Type: "expense"})
			Expect(err).NotTo(HaveOccurred())

			name, err := service.ResolveForChat(userID, "food & dining", "expense")
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("Food & Dining"))
		})

		It("should create a category named after an unseen token", func() {
			name, err := service.ResolveForChat(userID, "travel", "expense")
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal("travel"))

			created, err := mockRepo.GetByName(userID, "travel")
			Expect(err).NotTo(HaveOccurred())
			Expect(created).NotTo(BeNil())
			Expect(created.Type).To(Equal("expense"))
		})

		It("should fall back to the default name for an empty token", func() {
			name, err := service.ResolveForChat(userID, "", "income")
			Expect(err).NotTo(HaveOccurred())
			Expect(name).To(Equal(category.DefaultName))
		})

		It("should propagate repository failures", func() {
			mockRepo.shouldFail = true
			mockRepo.failError = errors.New("database error")

			_, err := service.ResolveForChat(userID, "food", "expense")
			Expect(err).To(HaveOccurred())
		})
	})
})
