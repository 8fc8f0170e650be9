package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/coursemarket/course-api/internal/core/domain"
)

type stubAuthService struct {
	signupFn       func(ctx context.Context, role domain.Role, username, password string) (string, error)
	authenticateFn func(ctx context.Context, role domain.Role, username, password string) error
}

func (s *stubAuthService) Signup(ctx context.Context, role domain.Role, username, password string) (string, error) {
	return s.signupFn(ctx, role, username, password)
}

func (s *stubAuthService) Authenticate(ctx context.Context, role domain.Role, username, password string) error {
	return s.authenticateFn(ctx, role, username, password)
}

type stubTokens struct {
	issued []string
}

func (s *stubTokens) Issue(username string, role domain.Role) (string, error) {
	tok := "tok-" + role.String() + "-" + username
	s.issued = append(s.issued, tok)
	return tok, nil
}

func (s *stubTokens) Verify(string) (*domain.Claims, error) {
	return nil, domain.ErrInvalidToken
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func signupContext(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/admin/signup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signupFn: func(_ context.Context, role domain.Role, username, password string) (string, error) {
			if role != domain.RoleAdmin || username != "root" || password != "pw" {
				t.Fatalf("unexpected args: %s %s %s", role, username, password)
			}
			return "signed-token", nil
		},
	}
	h := NewAuthHandler(domain.RoleAdmin, stub, &stubTokens{})

	c, rec := signupContext(e, `{"username":"root","password":"pw"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Admin created successfully" || resp["token"] != "signed-token" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestAuthHandler_Signup_UserMessage(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signupFn: func(context.Context, domain.Role, string, string) (string, error) { return "t", nil },
	}
	h := NewAuthHandler(domain.RoleUser, stub, &stubTokens{})

	c, rec := signupContext(e, `{"username":"alice","password":"pw123"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := decodeBody(t, rec)["message"]; got != "User created successfully" {
		t.Fatalf("unexpected message: %v", got)
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		signupFn: func(context.Context, domain.Role, string, string) (string, error) {
			t.Fatal("service must not be called")
			return "", nil
		},
	}
	h := NewAuthHandler(domain.RoleUser, stub, &stubTokens{})

	for _, body := range []string{`{"username":"alice"}`, `{"password":"pw"}`, `{"username":`, `{"username":1,"password":"x"}`} {
		c, _ := signupContext(e, body)
		err := h.Signup(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest || he.Message != InvalidInput {
			t.Fatalf("body %s: expected 400 InvalidInput, got %v", body, err)
		}
	}
}

func TestAuthHandler_Signup_PropagatesDomainErrors(t *testing.T) {
	e := newTestEcho()
	for _, want := range []error{domain.ErrAlreadyExists, domain.ErrHashing} {
		stub := &stubAuthService{
			signupFn: func(context.Context, domain.Role, string, string) (string, error) { return "", want },
		}
		h := NewAuthHandler(domain.RoleAdmin, stub, &stubTokens{})
		c, _ := signupContext(e, `{"username":"root","password":"pw"}`)
		if err := h.Signup(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
}

func loginContext(e *echo.Echo, username, password string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
	if username != "" {
		req.Header.Set("username", username)
	}
	if password != "" {
		req.Header.Set("password", password)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	tokens := &stubTokens{}
	stub := &stubAuthService{
		authenticateFn: func(_ context.Context, role domain.Role, username, password string) error {
			if role != domain.RoleUser || username != "alice" || password != "pw123" {
				t.Fatalf("unexpected args: %s %s %s", role, username, password)
			}
			return nil
		},
	}
	h := NewAuthHandler(domain.RoleUser, stub, tokens)

	c, rec := loginContext(e, "alice", "pw123")
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if resp["message"] != "Logged in successfully" || resp["token"] != "tok-user-alice" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestAuthHandler_Login_MissingHeaders(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		authenticateFn: func(context.Context, domain.Role, string, string) error {
			t.Fatal("service must not be called")
			return nil
		},
	}
	h := NewAuthHandler(domain.RoleAdmin, stub, &stubTokens{})

	for _, creds := range [][2]string{{"", "pw"}, {"root", ""}, {"", ""}} {
		c, _ := loginContext(e, creds[0], creds[1])
		if err := h.Login(c); !errors.Is(err, domain.ErrMissingAuthHeader) {
			t.Fatalf("creds %v: expected ErrMissingAuthHeader, got %v", creds, err)
		}
	}
}

func TestAuthHandler_Login_Rejected(t *testing.T) {
	e := newTestEcho()
	tokens := &stubTokens{}
	for _, want := range []error{domain.ErrUnknownUser, domain.ErrWrongPassword, domain.ErrHashing} {
		stub := &stubAuthService{
			authenticateFn: func(context.Context, domain.Role, string, string) error { return want },
		}
		h := NewAuthHandler(domain.RoleUser, stub, tokens)
		c, _ := loginContext(e, "alice", "nope")
		if err := h.Login(c); !errors.Is(err, want) {
			t.Fatalf("expected %v, got %v", want, err)
		}
	}
	if len(tokens.issued) != 0 {
		t.Fatalf("no token may be issued on failure, got %v", tokens.issued)
	}
}
