// Package model defines the domain model of the portfolio service.
package model

import "fmt"

// APIError is the unified error format of the API.
// It carries the cause category and a user-facing recovery hint; the
// message and action are written in the UI language (Spanish).
type APIError struct {
	Code     string // machine-readable error code
	Message  string // user-facing message
	Category string // category: validation, game, chat, contact, system
	Action   string // user-facing recovery hint
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Defined error codes.
const (
	ErrCodeInvalidRequest      = "INVALID_REQUEST"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
	ErrCodeProjectNotFound     = "PROJECT_NOT_FOUND"
	ErrCodeGameSessionNotFound = "GAME_SESSION_NOT_FOUND"
	ErrCodeChatSessionNotFound = "CHAT_SESSION_NOT_FOUND"
	ErrCodeInvalidCardIndex    = "INVALID_CARD_INDEX"
	ErrCodeEmptyDeck           = "EMPTY_DECK"
	ErrCodeCaptchaRequired     = "CAPTCHA_REQUIRED"
	ErrCodeCaptchaRejected     = "CAPTCHA_REJECTED"
	ErrCodeMailDispatchFailed  = "MAIL_DISPATCH_FAILED"
)

// NewInvalidRequestError reports an unparsable request body.
func NewInvalidRequestError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  "No se pudo interpretar el cuerpo de la petición.",
		Category: "validation",
		Action:   "Enviá la petición en formato JSON válido.",
	}
}

// NewValidationError reports a field-level validation failure.
func NewValidationError(detail string) *APIError {
	return &APIError{
		Code:     ErrCodeValidationFailed,
		Message:  fmt.Sprintf("Datos inválidos: %s", detail),
		Category: "validation",
		Action:   "Revisá los campos del formulario y volvé a intentar.",
	}
}

// NewProjectNotFoundError reports an unknown project id.
func NewProjectNotFoundError(projectID string) *APIError {
	return &APIError{
		Code:     ErrCodeProjectNotFound,
		Message:  fmt.Sprintf("No se encontró el proyecto: %s", projectID),
		Category: "validation",
		Action:   "Verificá el identificador del proyecto.",
	}
}

// NewGameSessionNotFoundError reports an unknown or expired game session.
func NewGameSessionNotFoundError(sessionID string) *APIError {
	return &APIError{
		Code:     ErrCodeGameSessionNotFound,
		Message:  fmt.Sprintf("No se encontró la partida: %s", sessionID),
		Category: "game",
		Action:   "Creá una partida nueva para seguir jugando.",
	}
}

// NewChatSessionNotFoundError reports an unknown or closed chat session.
func NewChatSessionNotFoundError(sessionID string) *APIError {
	return &APIError{
		Code:     ErrCodeChatSessionNotFound,
		Message:  fmt.Sprintf("No se encontró la conversación: %s", sessionID),
		Category: "chat",
		Action:   "Abrí el inbox de nuevo para empezar otra conversación.",
	}
}

// NewInvalidCardIndexError reports a reveal outside the deck bounds.
func NewInvalidCardIndexError(index int) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCardIndex,
		Message:  fmt.Sprintf("Índice de carta inválido: %d", index),
		Category: "game",
		Action:   "Elegí una carta del tablero.",
	}
}

// NewEmptyDeckError reports a session request with no configured pairs.
func NewEmptyDeckError() *APIError {
	return &APIError{
		Code:     ErrCodeEmptyDeck,
		Message:  "El juego todavía no tiene cartas configuradas.",
		Category: "game",
		Action:   "Probá de nuevo en un rato.",
	}
}

// NewCaptchaRequiredError reports a missing challenge token on a gated
// submission.
func NewCaptchaRequiredError() *APIError {
	return &APIError{
		Code:     ErrCodeCaptchaRequired,
		Message:  "Falta completar la verificación anti-bots.",
		Category: "validation",
		Action:   "Completá el captcha y volvé a enviar el mensaje.",
	}
}

// NewCaptchaRejectedError reports a server-rejected challenge token.
func NewCaptchaRejectedError() *APIError {
	return &APIError{
		Code:     ErrCodeCaptchaRejected,
		Message:  "La verificación anti-bots fue rechazada.",
		Category: "validation",
		Action:   "Completá el captcha de nuevo y reintentá.",
	}
}

// NewMailDispatchFailedError reports a failed delivery to the mail relay.
// The submission stays retryable; no state is lost.
func NewMailDispatchFailedError() *APIError {
	return &APIError{
		Code:     ErrCodeMailDispatchFailed,
		Message:  "No se pudo enviar el mensaje. Por favor, inténtalo de nuevo más tarde.",
		Category: "contact",
		Action:   "Esperá un momento y volvé a intentar, o usá el chat de Inbox.",
	}
}
