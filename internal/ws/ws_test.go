package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"hire-portal/internal/access"
	"hire-portal/internal/domain/job"
	"hire-portal/internal/domain/role"
	"hire-portal/internal/pager"
	"hire-portal/internal/search"
	"hire-portal/internal/usecase"

	"github.com/gorilla/websocket"
)

type fakeSearcher struct {
	mu      sync.Mutex
	queries []string
	roles   []role.Set
}

func (f *fakeSearcher) Browse(_ context.Context, s access.Session, c search.JobCriteria, pageIndex, size int) (usecase.JobPage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, c.Query)
	f.roles = append(f.roles, s.Roles)
	f.mu.Unlock()
	items := []job.JobOffer{{ID: "1", Title: "Match for " + c.Query, JobStatus: "PUBLISHED"}}
	return usecase.JobPage{Items: items, Meta: pager.NewMeta(0, 10, 1, 1)}, nil
}

func (f *fakeSearcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type envelope struct {
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Source  string          `json:"source"`
	Data    json.RawMessage `json:"data"`
}

func startServer(t *testing.T, searcher Searcher, resolve SessionResolver) (*Hub, *httptest.Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	go hub.Run(ctx)

	srv := httptest.NewServer(NewHandler(hub, searcher, resolve, 30*time.Millisecond, nil))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read error: %v", err)
	}
	return env
}

func waitClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, got %d", n, hub.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLiveSearch_DebouncesBurst(t *testing.T) {
	searcher := &fakeSearcher{}
	_, srv := startServer(t, searcher, nil)
	conn := dial(t, srv, "")

	for _, q := range []string{"g", "go", "gol", "golang"} {
		if err := conn.WriteJSON(map[string]any{"type": "search", "query": q}); err != nil {
			t.Fatalf("write error: %v", err)
		}
	}

	env := readEnvelope(t, conn)
	if env.Type != TypeJobs {
		t.Fatalf("expected jobs message, got %+v", env)
	}
	if !strings.Contains(string(env.Data), "Match for golang") {
		t.Fatalf("expected result for the last key, got %s", env.Data)
	}

	time.Sleep(100 * time.Millisecond)
	if searcher.count() != 1 {
		t.Fatalf("expected a single search, got %d", searcher.count())
	}
}

func TestLiveSearch_DropsRepeatedKey(t *testing.T) {
	searcher := &fakeSearcher{}
	_, srv := startServer(t, searcher, nil)
	conn := dial(t, srv, "")

	_ = conn.WriteJSON(map[string]any{"query": "go"})
	readEnvelope(t, conn)

	_ = conn.WriteJSON(map[string]any{"query": " go "})
	time.Sleep(100 * time.Millisecond)
	if searcher.count() != 1 {
		t.Fatalf("identical key must not search again, got %d searches", searcher.count())
	}
}

func TestLiveSearch_JobsUpdatedReruns(t *testing.T) {
	searcher := &fakeSearcher{}
	hub, srv := startServer(t, searcher, nil)
	conn := dial(t, srv, "")
	waitClients(t, hub, 1)

	_ = conn.WriteJSON(map[string]any{"query": "go"})
	readEnvelope(t, conn)

	hub.NotifyJobsUpdated("create")

	env := readEnvelope(t, conn)
	if env.Type != TypeJobsUpdated || env.Source != "create" {
		t.Fatalf("expected jobs_updated, got %+v", env)
	}
	env = readEnvelope(t, conn)
	if env.Type != TypeJobs {
		t.Fatalf("expected re-run results, got %+v", env)
	}
	if searcher.count() != 2 {
		t.Fatalf("expected 2 searches, got %d", searcher.count())
	}
}

func TestLiveSearch_MalformedMessage(t *testing.T) {
	_, srv := startServer(t, &fakeSearcher{}, nil)
	conn := dial(t, srv, "")

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{nope")); err != nil {
		t.Fatalf("write error: %v", err)
	}
	env := readEnvelope(t, conn)
	if env.Type != TypeError {
		t.Fatalf("expected error message, got %+v", env)
	}
}

func TestLiveSearch_TokenResolvesSession(t *testing.T) {
	searcher := &fakeSearcher{}
	resolve := func(token string) (access.Session, error) {
		if token != "good" {
			return access.Anonymous(), errors.New("bad token")
		}
		return access.Session{Authenticated: true, UserID: "r1", Roles: role.NewSet(role.Recruiter)}, nil
	}
	_, srv := startServer(t, searcher, resolve)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?access_token=bad"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatalf("expected handshake failure")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %+v", resp)
	}

	conn := dial(t, srv, "?access_token=good")
	_ = conn.WriteJSON(map[string]any{"query": "go"})
	readEnvelope(t, conn)

	searcher.mu.Lock()
	defer searcher.mu.Unlock()
	if !searcher.roles[0].Has(role.Recruiter) {
		t.Fatalf("expected recruiter session, got %v", searcher.roles[0])
	}
}

type pagedSearcher struct {
	mu    sync.Mutex
	pages []int
}

func (p *pagedSearcher) Browse(_ context.Context, _ access.Session, _ search.JobCriteria, pageIndex, size int) (usecase.JobPage, error) {
	const total = 3
	idx := pager.Clamp(pageIndex, total)
	p.mu.Lock()
	p.pages = append(p.pages, idx)
	p.mu.Unlock()
	return usecase.JobPage{Meta: pager.NewMeta(idx, 10, total, 25)}, nil
}

func (p *pagedSearcher) seen() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int(nil), p.pages...)
}

func TestLiveSearch_PageMovesLastSearch(t *testing.T) {
	searcher := &pagedSearcher{}
	_, srv := startServer(t, searcher, nil)
	conn := dial(t, srv, "")

	_ = conn.WriteJSON(map[string]any{"query": "go"})
	readEnvelope(t, conn)

	_ = conn.WriteJSON(map[string]any{"type": "page", "action": "next"})
	readEnvelope(t, conn)

	_ = conn.WriteJSON(map[string]any{"type": "page", "action": "last"})
	env := readEnvelope(t, conn)
	var data struct {
		Meta pager.Meta `json:"meta"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Meta.Page != 2 {
		t.Fatalf("expected last page, got %d", data.Meta.Page)
	}

	_ = conn.WriteJSON(map[string]any{"type": "page", "action": "next"})
	time.Sleep(100 * time.Millisecond)

	got := searcher.seen()
	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("expected pages %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected pages %v, got %v", want, got)
		}
	}
}

func TestHub_StoppedHubDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	finished := make(chan struct{})
	client := &Client{send: make(chan []byte, 1)}
	go func() {
		for i := 0; i < 300; i++ {
			hub.Unregister(&Client{send: make(chan []byte, 1)})
		}
		hub.Register(client)
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatalf("register and unregister blocked after the hub stopped")
	}
	if _, ok := <-client.send; ok {
		t.Fatalf("expected late client to be closed")
	}
	if hub.ClientCount() != 0 {
		t.Fatalf("expected no clients, got %d", hub.ClientCount())
	}
}
