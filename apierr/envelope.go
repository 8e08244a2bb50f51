package apierr

import (
	"encoding/json"
	"net/http"
)

// Envelope is the wire shape every error path returns.
type Envelope struct {
	Success bool         `json:"success"`
	Error   EnvelopeBody `json:"error"`
}

// EnvelopeBody is the error object inside the envelope.
type EnvelopeBody struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ToEnvelope converts err into the structured envelope. Unclassified
// errors become a generic FETCH_ERROR so internals never leak.
func ToEnvelope(err error) Envelope {
	e, ok := AsError(err)
	if !ok {
		e = New(CodeFetchError, http.StatusInternalServerError, "internal error")
	}
	return Envelope{
		Success: false,
		Error: EnvelopeBody{
			Code:    e.Code,
			Message: e.Message,
			Details: e.Details,
		},
	}
}

// WriteJSON writes err as the structured envelope with its HTTP status.
func WriteJSON(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(StatusOf(err))
	_ = json.NewEncoder(w).Encode(ToEnvelope(err))
}
