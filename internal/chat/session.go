// Package chat implements the inbox chat flow: a linear four-stage
// conversation (name, email, message, sent) with per-stage validation,
// mail dispatch through the relay collaborator and an optional
// bot-challenge gate before dispatch.
package chat

import (
	"regexp"
	"time"

	"github.com/juancruzdillon/portfolitok/internal/model"
)

// Bot transcript lines, in the UI language.
const (
	msgGreeting      = "¡Hola! ¿En qué puedo ayudarte hoy? Para empezar, contame tu nombre."
	msgAskEmail      = "¡Gracias, %s! ¿Cuál es tu email así puedo responderte?"
	msgAskMessage    = "Perfecto. Ahora sí, dejame tu mensaje."
	msgConfirmation  = "¡Mensaje Enviado! Gracias por escribirme, pronto te voy a contactar."
	msgEmptyName     = "Por favor, ingresa tu nombre."
	msgInvalidEmail  = "Por favor, ingresa un email válido."
	msgEmptyMessage  = "El mensaje no puede estar vacío."
	msgCaptchaNeeded = "Falta completar la verificación anti-bots."
	msgCaptchaDenied = "La verificación anti-bots fue rechazada. Probá de nuevo."
	msgDispatchError = "No se pudo enviar el mensaje. Por favor, inténtalo de nuevo más tarde."
)

// emailPattern is the exact check the inbox always used: something
// before the @, and at least one dot after it, no whitespace anywhere.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// session is one inbox conversation. Mutations go through Flow, which
// owns the locking.
type session struct {
	id         string
	stage      model.ChatStage
	name       string
	email      string
	transcript []model.ChatMessage
	lastTouch  time.Time
}

// pushBot appends a bot line to the transcript.
func (s *session) pushBot(text string) {
	s.transcript = append(s.transcript, model.ChatMessage{Sender: model.SenderBot, Text: text})
}

// pushVisitor appends a visitor line to the transcript.
func (s *session) pushVisitor(text string) {
	s.transcript = append(s.transcript, model.ChatMessage{Sender: model.SenderVisitor, Text: text})
}

// View is the client-visible shape of a chat session.
type View struct {
	ID         string              `json:"id"`
	Stage      model.ChatStage     `json:"stage"`
	Transcript []model.ChatMessage `json:"transcript"`
}

// view snapshots the session. The transcript slice is copied so the
// caller never aliases live state.
func (s *session) view() View {
	transcript := make([]model.ChatMessage, len(s.transcript))
	copy(transcript, s.transcript)
	return View{
		ID:         s.id,
		Stage:      s.stage,
		Transcript: transcript,
	}
}
