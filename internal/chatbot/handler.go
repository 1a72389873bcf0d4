package chatbot

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/finance-chatbot/internal"
	"github.com/frahmantamala/finance-chatbot/internal/transport"
)

type ServiceAPI interface {
	HandleQuery(userID int64, query string) string
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

// HandleChatQuery serves POST /chatbot. The reply is always 200 with a
// text response; parse failures and fallbacks are conversational answers,
// not HTTP errors.
func (h *Handler) HandleChatQuery(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == 0 {
		h.WriteError(w, http.StatusUnauthorized, "Authentication required to use the chatbot.")
		return
	}

	var req ChatQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	response := h.Service.HandleQuery(userID, req.Query)
	h.WriteJSON(w, http.StatusOK, ChatQueryResponse{Response: response})
}
