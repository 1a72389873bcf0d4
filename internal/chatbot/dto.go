package chatbot

import "github.com/frahmantamala/finance-chatbot/internal"

type ChatQueryRequest struct {
	Query string `json:"query"`
}

func (dto ChatQueryRequest) Validate() error {
	if dto.Query == "" {
		return internal.NewValidationError("Query is required.", internal.ErrCodeValidationFailed)
	}
	return nil
}

type ChatQueryResponse struct {
	Response string `json:"response"`
}
