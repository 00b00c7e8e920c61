// Package handler implements the HTTP layer of the portfolio service.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/juancruzdillon/portfolitok/internal/middleware"
	"github.com/juancruzdillon/portfolitok/internal/model"
)

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// writeAPIError writes an error in the unified format.
func writeAPIError(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	middleware.WriteErrorResponse(w, statusCode, apiErr)
}

// handleInternalError logs an unexpected error and writes the generic
// 500 response.
func handleInternalError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}

// validationDetail flattens validator errors into a short field list
// for the user-facing message.
func validationDetail(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	detail := ""
	for i, fe := range verrs {
		if i > 0 {
			detail += ", "
		}
		detail += fe.Field() + " (" + fe.Tag() + ")"
	}
	return detail
}
