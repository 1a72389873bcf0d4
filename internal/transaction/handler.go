package transaction

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/finance-chatbot/internal"
	txModel "github.com/frahmantamala/finance-chatbot/internal/core/datamodel/transaction"
	"github.com/frahmantamala/finance-chatbot/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(userID int64, dto CreateTransactionDTO) (*txModel.Transaction, error)
	List(userID int64, f Filter) ([]*txModel.Transaction, error)
	Get(userID, id int64) (*txModel.Transaction, error)
	Update(userID, id int64, dto UpdateTransactionDTO) (*txModel.Transaction, error)
	Delete(userID, id int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == 0 {
		h.WriteError(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	var dto CreateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.Service.Create(userID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ToResponse(tx))
}

// GetTransactions lists the user's transactions newest first. Optional
// query params narrow the result: type, category, start_date, end_date
// (RFC 3339 date).
func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == 0 {
		h.WriteError(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	f, err := filterFromQuery(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	transactions, err := h.Service.List(userID, f)
	if err != nil {
		h.Logger.Error("GetTransactions: failed to list transactions", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}

	responses := make([]TransactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		responses = append(responses, ToResponse(tx))
	}

	h.WriteJSON(w, http.StatusOK, TransactionsResponse{Transactions: responses})
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == 0 {
		h.WriteError(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	tx, err := h.Service.Get(userID, id)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponse(tx))
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == 0 {
		h.WriteError(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	var dto UpdateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := h.Service.Update(userID, id, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponse(tx))
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == 0 {
		h.WriteError(w, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	if err := h.Service.Delete(userID, id); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted."})
}

func filterFromQuery(r *http.Request) (Filter, error) {
	f := Filter{
		Type:     r.URL.Query().Get("type"),
		Category: r.URL.Query().Get("category"),
	}

	if raw := r.URL.Query().Get("start_date"); raw != "" {
		start, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return Filter{}, internal.NewValidationError("start_date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
		f.StartDate = &start
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		end, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return Filter{}, internal.NewValidationError("end_date must be YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
		end = end.Add(24*time.Hour - time.Nanosecond)
		f.EndDate = &end
	}
	if f.Type != "" && !IsValidType(f.Type) {
		return Filter{}, internal.NewValidationError("Invalid transaction type: Must be 'income' or 'expense'.", internal.ErrCodeInvalidType)
	}
	return f, nil
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		status, body := appErr.ToHTTPResponse()
		h.WriteJSON(w, status, body)
		return
	}
	h.WriteError(w, http.StatusInternalServerError, "internal error")
}
