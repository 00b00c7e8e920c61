package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/juancruzdillon/portfolitok/internal/model"
	"github.com/juancruzdillon/portfolitok/internal/security"
)

// mockMailer implements Mailer.
type mockMailer struct {
	sendFn func(ctx context.Context, subject, body string) error
	calls  int
}

func (m *mockMailer) Send(ctx context.Context, subject, body string) error {
	m.calls++
	if m.sendFn != nil {
		return m.sendFn(ctx, subject, body)
	}
	return nil
}

// mockVerifier implements CaptchaVerifier.
type mockVerifier struct {
	verifyFn func(ctx context.Context, token string) (bool, error)
}

func (m *mockVerifier) Verify(ctx context.Context, token string) (bool, error) {
	if m.verifyFn != nil {
		return m.verifyFn(ctx, token)
	}
	return true, nil
}

func newContactHandler(mailer Mailer, verifier CaptchaVerifier) *ContactHandler {
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	return NewContactHandler(mailer, verifier, security.NewSanitizer(), nil, logger)
}

func postContact(h *ContactHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		bytes.NewReader([]byte(body)))
	return do(h.Submit, req)
}

func TestContactHandler_Submit(t *testing.T) {
	mailer := &mockMailer{}
	var gotSubject, gotBody string
	mailer.sendFn = func(_ context.Context, subject, body string) error {
		gotSubject, gotBody = subject, body
		return nil
	}
	h := newContactHandler(mailer, nil)

	w := postContact(h, `{"name":"Ana","email":"ana@x.com","message":"Hola, me interesa tu trabajo."}`)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", w.Code)
	}
	if mailer.calls != 1 {
		t.Fatalf("mailer called %d times, want 1", mailer.calls)
	}
	if !strings.Contains(gotSubject, "Ana") {
		t.Errorf("subject %q should contain the sender name", gotSubject)
	}
	if !strings.Contains(gotBody, "ana@x.com") {
		t.Errorf("body %q should contain the sender email", gotBody)
	}
}

func TestContactHandler_SubmitStripsHTML(t *testing.T) {
	mailer := &mockMailer{}
	var gotBody string
	mailer.sendFn = func(_ context.Context, _, body string) error {
		gotBody = body
		return nil
	}
	h := newContactHandler(mailer, nil)

	w := postContact(h, `{"name":"Ana","email":"ana@x.com","message":"hola <script>alert(1)</script> que tal va todo"}`)

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", w.Code)
	}
	if strings.Contains(gotBody, "<script>") {
		t.Errorf("body kept a script tag: %q", gotBody)
	}
}

func TestContactHandler_ValidationFailures(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"ana@x.com","message":"mensaje suficientemente largo"}`},
		{"short name", `{"name":"A","email":"ana@x.com","message":"mensaje suficientemente largo"}`},
		{"bad email", `{"name":"Ana","email":"nope","message":"mensaje suficientemente largo"}`},
		{"short message", `{"name":"Ana","email":"ana@x.com","message":"corto"}`},
		{"not json", `not json`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mailer := &mockMailer{}
			h := newContactHandler(mailer, nil)

			w := postContact(h, c.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			if mailer.calls != 0 {
				t.Errorf("mailer called %d times for invalid input, want 0", mailer.calls)
			}
		})
	}
}

func TestContactHandler_CaptchaGate(t *testing.T) {
	mailer := &mockMailer{}
	h := newContactHandler(mailer, &mockVerifier{})

	// No token: refused before the relay.
	w := postContact(h, `{"name":"Ana","email":"ana@x.com","message":"mensaje suficientemente largo"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 without token", w.Code)
	}
	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["code"] != model.ErrCodeCaptchaRequired {
		t.Errorf("code = %q, want %q", body["code"], model.ErrCodeCaptchaRequired)
	}
	if mailer.calls != 0 {
		t.Fatalf("mailer called without captcha")
	}

	// With a token: dispatched.
	w = postContact(h, `{"name":"Ana","email":"ana@x.com","message":"mensaje suficientemente largo","captcha_token":"tok"}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202 with token", w.Code)
	}
	if mailer.calls != 1 {
		t.Errorf("mailer called %d times, want 1", mailer.calls)
	}
}

func TestContactHandler_CaptchaRejected(t *testing.T) {
	mailer := &mockMailer{}
	verifier := &mockVerifier{
		verifyFn: func(context.Context, string) (bool, error) { return false, nil },
	}
	h := newContactHandler(mailer, verifier)

	w := postContact(h, `{"name":"Ana","email":"ana@x.com","message":"mensaje suficientemente largo","captcha_token":"tok"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if mailer.calls != 0 {
		t.Errorf("mailer called after rejected captcha")
	}
}

func TestContactHandler_DispatchFailure(t *testing.T) {
	mailer := &mockMailer{
		sendFn: func(context.Context, string, string) error {
			return errors.New("relay down")
		},
	}
	h := newContactHandler(mailer, nil)

	w := postContact(h, `{"name":"Ana","email":"ana@x.com","message":"mensaje suficientemente largo"}`)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", w.Code)
	}

	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["code"] != model.ErrCodeMailDispatchFailed {
		t.Errorf("code = %q, want %q", body["code"], model.ErrCodeMailDispatchFailed)
	}
}
