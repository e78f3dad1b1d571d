package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hire-portal/internal/access"
	"hire-portal/internal/domain/role"
	"hire-portal/internal/pkg/jwt"
	"hire-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const testSecret = "middleware-test-secret"

func decode(t *testing.T, body io.Reader) response.SemanticResponse {
	t.Helper()
	var sr response.SemanticResponse
	if err := json.NewDecoder(body).Decode(&sr); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return sr
}

func TestErrorMiddleware_StatusMapping(t *testing.T) {
	var logs bytes.Buffer
	app := fiber.New(fiber.Config{})
	app.Use(NewErrorMiddleware(log.New(&logs, "", 0)).Middleware())

	app.Get("/bad", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadRequest, "Title is required.", map[string]string{"field": "title"}, nil)
	})
	app.Get("/internal", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password leaked", nil, errors.New("boom"))
	})
	app.Get("/unavailable", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusServiceUnavailable, "Backend not reachable.", nil, errors.New("dial"))
	})
	app.Get("/plain", func(c fiber.Ctx) error {
		return errors.New("raw")
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("kaboom")
	})

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{path: "/bad", status: 400, message: "Title is required."},
		{path: "/internal", status: 500, message: response.MessageInternalServerError},
		{path: "/unavailable", status: 503, message: "Backend not reachable."},
		{path: "/plain", status: 500, message: response.MessageInternalServerError},
		{path: "/panic", status: 500, message: response.MessageInternalServerError},
		{path: "/missing", status: 404, message: ""},
	}

	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		if err != nil {
			t.Fatalf("%s: request error: %v", tc.path, err)
		}
		sr := decode(t, resp.Body)
		resp.Body.Close()

		if resp.StatusCode != tc.status || sr.Status != tc.status {
			t.Fatalf("%s: expected %d, got http=%d body=%d", tc.path, tc.status, resp.StatusCode, sr.Status)
		}
		if tc.message != "" && sr.Message != tc.message {
			t.Fatalf("%s: expected message %q, got %q", tc.path, tc.message, sr.Message)
		}
	}

	if !strings.Contains(logs.String(), "path=/internal") {
		t.Fatalf("expected 5xx to be logged, got %q", logs.String())
	}
	if strings.Contains(logs.String(), "path=/bad") {
		t.Fatalf("4xx must not be logged as failures")
	}
}

func TestAccessLog_AssignsRequestID(t *testing.T) {
	var logs bytes.Buffer
	app := fiber.New(fiber.Config{})
	app.Use(NewAccessLogMiddleware(log.New(&logs, "", 0)).Middleware())

	var seen string
	app.Get("/x", func(c fiber.Ctx) error {
		seen = RequestID(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/x", nil))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	resp.Body.Close()

	rid := resp.Header.Get(HeaderRequestID)
	if rid == "" || rid != seen {
		t.Fatalf("expected request id in header and locals, header=%q locals=%q", rid, seen)
	}
	if !strings.Contains(logs.String(), "[HTTP] rid="+rid) || !strings.Contains(logs.String(), "user=-") {
		t.Fatalf("unexpected access log %q", logs.String())
	}

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set(HeaderRequestID, "upstream-id")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(HeaderRequestID); got != "upstream-id" {
		t.Fatalf("expected upstream id to be kept, got %q", got)
	}
}

func newAuthApp(t *testing.T, svc jwt.Service) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{})
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	app.Use(NewAuthMiddleware(svc).Middleware())

	guard := NewRoleGuard(access.DefaultRoutes(), nil)
	app.Get("/whoami", func(c fiber.Ctx) error {
		s := SessionFrom(c)
		return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
			"authenticated": s.Authenticated,
			"user":          s.UserID,
			"admin":         s.HasRole(role.Admin),
		})
	})
	app.Get("/admin", guard.Require(access.RouteAdminUsers), func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
	})
	return app
}

func TestAuthMiddleware_OptionalBearer(t *testing.T) {
	svc := jwt.NewHMACService(testSecret, "portal")
	app := newAuthApp(t, svc)

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	sr := decode(t, resp.Body)
	resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("expected anonymous request to pass, got %d", resp.StatusCode)
	}
	if data, _ := sr.Data.(map[string]any); data["authenticated"] != false {
		t.Fatalf("expected anonymous session, got %v", sr.Data)
	}

	tok, err := svc.IssueToken("admin-1", "root", "root@example.com", []string{"admin"}, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	sr = decode(t, resp.Body)
	resp.Body.Close()
	data, _ := sr.Data.(map[string]any)
	if data["user"] != "admin-1" || data["admin"] != true {
		t.Fatalf("expected admin session, got %v", sr.Data)
	}
}

func TestAuthMiddleware_RejectsForeignToken(t *testing.T) {
	app := newAuthApp(t, jwt.NewHMACService(testSecret, "portal"))

	foreign, err := jwt.NewHMACService("other-secret", "portal").IssueToken("u1", "u", "u@example.com", nil, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+foreign)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestRoleGuard_RedirectsToForbidden(t *testing.T) {
	svc := jwt.NewHMACService(testSecret, "")
	app := newAuthApp(t, svc)

	cases := []struct {
		name   string
		roles  []string
		status int
	}{
		{name: "anonymous", status: fiber.StatusSeeOther},
		{name: "candidate", roles: []string{"CANDIDATE"}, status: fiber.StatusSeeOther},
		{name: "admin", roles: []string{"ADMIN"}, status: fiber.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest("GET", "/admin", nil)
		if tc.roles != nil {
			tok, err := svc.IssueToken("u-"+tc.name, tc.name, "", tc.roles, time.Hour)
			if err != nil {
				t.Fatalf("issue token: %v", err)
			}
			req.Header.Set("Authorization", "Bearer "+tok)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: request error: %v", tc.name, err)
		}
		resp.Body.Close()
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.status, resp.StatusCode)
		}
		if tc.status == fiber.StatusSeeOther && resp.Header.Get("Location") != access.ForbiddenPath {
			t.Fatalf("%s: expected Location %s, got %q", tc.name, access.ForbiddenPath, resp.Header.Get("Location"))
		}
	}
}

func TestBearerTokenFromHeader(t *testing.T) {
	cases := map[string]struct {
		token string
		ok    bool
	}{
		"":              {},
		"Bearer":        {},
		"Basic abc":     {},
		"Bearer   ":     {},
		"bearer abc":    {token: "abc", ok: true},
		" Bearer  xyz ": {token: "xyz", ok: true},
	}
	for in, want := range cases {
		got, ok := bearerTokenFromHeader(in)
		if got != want.token || ok != want.ok {
			t.Fatalf("%q: expected (%q,%v), got (%q,%v)", in, want.token, want.ok, got, ok)
		}
	}
}
