package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/juancruzdillon/portfolitok/internal/model"
)

// ErrorResponseBody is the unified API error response shape. It
// carries the cause category and a recovery hint next to the message.
type ErrorResponseBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// WriteErrorResponse writes an HTTP error in the unified format. All
// API endpoints answer errors through this helper.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponseBody{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// WriteInternalServerError writes the generic 500 response. Details
// stay in the logs only.
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "Ocurrió un error interno.",
		Category: "system",
		Action:   "Esperá un momento y volvé a intentar.",
	})
}
