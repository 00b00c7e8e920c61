package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/juancruzdillon/portfolitok/internal/model"
)

// Sentinel errors mapped to API errors by the handler layer. The
// session transcript already carries the user-visible explanation when
// one of these is returned.
var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrInvalidInput    = errors.New("input rejected for current stage")
	ErrCaptchaRequired = errors.New("captcha token missing")
	ErrCaptchaRejected = errors.New("captcha token rejected")
	ErrDispatchFailed  = errors.New("mail dispatch failed")
)

// Mailer dispatches a composed mail through the external relay.
type Mailer interface {
	Send(ctx context.Context, subject, body string) error
}

// Verifier checks a bot-challenge token with the external verifier.
type Verifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// Recorder receives chat events for metrics.
type Recorder interface {
	RecordChatOpened()
	RecordChatMessage(stage string)
	RecordMailDispatch(result string)
	RecordCaptchaVerdict(result string)
}

// NopRecorder discards all events.
type NopRecorder struct{}

func (NopRecorder) RecordChatOpened()           {}
func (NopRecorder) RecordChatMessage(string)    {}
func (NopRecorder) RecordMailDispatch(string)   {}
func (NopRecorder) RecordCaptchaVerdict(string) {}

// Flow owns the live chat sessions and drives the stage machine.
// A nil Verifier disables the captcha gate; when set, it gates only
// submissions that dispatch mail.
type Flow struct {
	mu       sync.RWMutex
	sessions map[string]*session

	mailer   Mailer
	verifier Verifier
	logger   *slog.Logger
	rec      Recorder

	newID func() string
}

// NewFlow builds an empty chat flow.
func NewFlow(mailer Mailer, verifier Verifier, rec Recorder, logger *slog.Logger) *Flow {
	if rec == nil {
		rec = NopRecorder{}
	}
	return &Flow{
		sessions: make(map[string]*session),
		mailer:   mailer,
		verifier: verifier,
		logger:   logger,
		rec:      rec,
		newID:    uuid.NewString,
	}
}

// Open creates a fresh session at the name stage with the greeting
// already in the transcript. Every dialog open starts from scratch.
func (f *Flow) Open() View {
	s := &session{
		id:        f.newID(),
		stage:     model.StageCollectingName,
		lastTouch: time.Now(),
	}
	s.pushBot(msgGreeting)

	f.mu.Lock()
	f.sessions[s.id] = s
	f.mu.Unlock()

	f.rec.RecordChatOpened()
	f.logger.Info("chat session opened", slog.String("session_id", s.id))

	return s.view()
}

// Get returns the current view of a session.
func (f *Flow) Get(id string) (View, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	s, ok := f.sessions[id]
	if !ok {
		return View{}, ErrSessionNotFound
	}
	return s.view(), nil
}

// Close discards the session. Closing is the only action available
// once the flow reaches sent; reopening starts over via Open.
func (f *Flow) Close(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(f.sessions, id)
	return nil
}

// Submit feeds a visitor line to the session's current stage. The
// stages only ever advance on valid input; invalid input appends a bot
// error line and keeps the stage (and any previously collected fields)
// intact. At the message stage the mail dispatch happens outside the
// lock, and the result is only applied if the session still exists at
// the same stage afterwards.
func (f *Flow) Submit(ctx context.Context, id, text, captchaToken string) (View, error) {
	text = strings.TrimSpace(text)

	f.mu.Lock()
	s, ok := f.sessions[id]
	if !ok {
		f.mu.Unlock()
		return View{}, ErrSessionNotFound
	}
	s.lastTouch = time.Now()
	stage := s.stage
	f.rec.RecordChatMessage(string(stage))

	switch stage {
	case model.StageCollectingName:
		v, err := f.submitName(s, text)
		f.mu.Unlock()
		return v, err

	case model.StageCollectingEmail:
		v, err := f.submitEmail(s, text)
		f.mu.Unlock()
		return v, err

	case model.StageSent:
		// Terminal: nothing to do but close.
		v := s.view()
		f.mu.Unlock()
		return v, nil
	}

	// StageCollectingMessage: validate inline, then release the lock
	// for the network round trips. The visitor line is recorded only
	// when the submission is accepted, so a retry after a failed
	// dispatch does not leave the message in the transcript twice.
	if text == "" {
		s.pushBot(msgEmptyMessage)
		v := s.view()
		f.mu.Unlock()
		return v, ErrInvalidInput
	}
	name, email := s.name, s.email
	f.mu.Unlock()

	return f.dispatch(ctx, id, name, email, text, captchaToken)
}

// submitName handles the name stage. Called with the lock held.
func (f *Flow) submitName(s *session, text string) (View, error) {
	if text == "" {
		s.pushBot(msgEmptyName)
		return s.view(), ErrInvalidInput
	}
	s.pushVisitor(text)
	s.name = text
	s.stage = model.StageCollectingEmail
	s.pushBot(fmt.Sprintf(msgAskEmail, text))
	return s.view(), nil
}

// submitEmail handles the email stage. Called with the lock held. A
// rejected address appends exactly one bot error and leaves the stored
// name alone.
func (f *Flow) submitEmail(s *session, text string) (View, error) {
	if !emailPattern.MatchString(text) {
		s.pushBot(msgInvalidEmail)
		return s.view(), ErrInvalidInput
	}
	s.pushVisitor(text)
	s.email = text
	s.stage = model.StageCollectingMessage
	s.pushBot(msgAskMessage)
	return s.view(), nil
}

// dispatch runs the captcha gate and the relay call, then re-locks and
// applies the outcome. A session closed mid-flight discards the late
// response (the stage re-check).
func (f *Flow) dispatch(ctx context.Context, id, name, email, text, captchaToken string) (View, error) {
	if f.verifier != nil {
		if captchaToken == "" {
			f.rec.RecordCaptchaVerdict("missing")
			return f.applyBotLine(id, msgCaptchaNeeded, ErrCaptchaRequired)
		}
		ok, err := f.verifier.Verify(ctx, captchaToken)
		if err != nil || !ok {
			f.rec.RecordCaptchaVerdict("rejected")
			if err != nil {
				f.logger.Warn("captcha verification failed",
					slog.String("session_id", id),
					slog.String("error", err.Error()),
				)
			}
			return f.applyBotLine(id, msgCaptchaDenied, ErrCaptchaRejected)
		}
		f.rec.RecordCaptchaVerdict("ok")
	}

	subject := fmt.Sprintf("Nuevo Mensaje de %s desde PortfoliTok", name)
	body := fmt.Sprintf("Nombre: %s\nEmail: %s\nMensaje: %s", name, email, text)

	if err := f.mailer.Send(ctx, subject, body); err != nil {
		f.rec.RecordMailDispatch("error")
		f.logger.Error("inbox mail dispatch failed",
			slog.String("session_id", id),
			slog.String("error", err.Error()),
		)
		return f.applyBotLine(id, msgDispatchError, ErrDispatchFailed)
	}
	f.rec.RecordMailDispatch("ok")

	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return View{}, ErrSessionNotFound
	}
	if s.stage != model.StageCollectingMessage {
		// The dialog moved on while we were on the wire.
		return s.view(), nil
	}
	s.pushVisitor(text)
	s.stage = model.StageSent
	s.pushBot(msgConfirmation)
	f.logger.Info("inbox conversation completed", slog.String("session_id", id))
	return s.view(), nil
}

// applyBotLine re-locks, appends a bot line if the session is still at
// the message stage, and returns the paired sentinel error.
func (f *Flow) applyBotLine(id, line string, cause error) (View, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return View{}, ErrSessionNotFound
	}
	if s.stage == model.StageCollectingMessage {
		s.pushBot(line)
	}
	return s.view(), cause
}

// Len returns the number of live sessions.
func (f *Flow) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.sessions)
}

// SweepExpired drops sessions idle longer than olderThan and returns
// how many were removed.
func (f *Flow) SweepExpired(olderThan time.Duration) int {
	now := time.Now()

	f.mu.Lock()
	defer f.mu.Unlock()

	removed := 0
	for id, s := range f.sessions {
		if now.Sub(s.lastTouch) > olderThan {
			delete(f.sessions, id)
			removed++
			f.logger.Info("expired chat session removed",
				slog.String("session_id", id),
			)
		}
	}
	return removed
}
