package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hire-portal/internal/domain/adminuser"
	"hire-portal/internal/domain/application"
	"hire-portal/internal/domain/job"
	"hire-portal/internal/domain/profile"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api", srv.URL+"/account", time.Second, nil)
}

func TestClient_ForwardsBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]job.JobOffer{{ID: "1", Title: "Go"}})
	})

	jobs, err := c.ListJobs(WithToken(context.Background(), "tok"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if len(jobs) != 1 || jobs[0].Title != "Go" {
		t.Fatalf("unexpected jobs: %+v", jobs)
	}
}

func TestClient_ErrorCarriesStatusAndBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, strings.Repeat("x", 10000))
	})

	_, err := c.GetJob(context.Background(), "1")
	var be *Error
	if !errors.As(err, &be) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if be.StatusCode != http.StatusConflict {
		t.Fatalf("unexpected status %d", be.StatusCode)
	}
	if len(be.Message) != maxErrorBody {
		t.Fatalf("expected body capped at %d, got %d", maxErrorBody, len(be.Message))
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c := NewClient(base, "", 200*time.Millisecond, nil)
	_, err := c.ListJobs(context.Background())
	status, ok := StatusOf(err)
	if !ok || status != 0 {
		t.Fatalf("expected unreachable error, got %v", err)
	}
}

func TestClient_ApplyMultipart(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/applications" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		f, hdr, err := r.FormFile("cv")
		if err != nil {
			t.Errorf("missing cv: %v", err)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if hdr.Filename != "cv.pdf" || string(data) != "%PDF" {
			t.Errorf("unexpected cv %q %q", hdr.Filename, data)
		}
		_ = json.NewEncoder(w).Encode(application.Record{
			ApplicationID: "a1",
			JobID:         r.FormValue("jobId"),
			GithubURL:     r.FormValue("githubUrl"),
			Status:        "APPLIED",
		})
	})

	rec, err := c.Apply(context.Background(), "j1", "https://github.com/me", application.CV{
		FileName: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF"),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.JobID != "j1" || rec.GithubURL != "https://github.com/me" {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestClient_DownloadCVFileName(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="resume.pdf"`)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = io.WriteString(w, "%PDF-1.4")
	})

	cv, err := c.DownloadCV(context.Background(), "a1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cv.FileName != "resume.pdf" || string(cv.Data) != "%PDF-1.4" {
		t.Fatalf("unexpected cv %+v", cv)
	}
}

func TestClient_ListUsersNormalizes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("max") != "200" || r.URL.Query().Get("search") != "ali" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode([]adminuser.Row{{
			ID:         "u1",
			Roles:      []string{"candidate", "admin"},
			Attributes: map[string][]string{"mobile": {"+21612345678"}},
		}})
	})

	rows, err := c.ListUsers(context.Background(), 0, 200, " ali ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rows) != 1 || rows[0].Role != "ADMIN" || rows[0].PhoneNumber != "+21612345678" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestClient_AccountRoundTrip(t *testing.T) {
	var posted profile.Account
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/account" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(profile.Account{Username: "alice", Email: "a@x.io"})
		case http.MethodPost:
			_ = json.NewDecoder(r.Body).Decode(&posted)
			w.WriteHeader(http.StatusNoContent)
		}
	})

	acc, err := c.GetAccount(context.Background())
	if err != nil || acc.Username != "alice" {
		t.Fatalf("unexpected account %+v err=%v", acc, err)
	}
	acc.FirstName = "Alice"
	if err := c.UpdateAccount(context.Background(), acc); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if posted.FirstName != "Alice" || posted.Email != "a@x.io" {
		t.Fatalf("unexpected posted account %+v", posted)
	}
}
