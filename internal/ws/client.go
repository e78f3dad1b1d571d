package ws

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"hire-portal/internal/access"
	"hire-portal/internal/debounce"
	"hire-portal/internal/delivery/http/dto"
	"hire-portal/internal/infrastructure/backend"
	"hire-portal/internal/pager"
	"hire-portal/internal/search"
	"hire-portal/internal/usecase"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 16
	searchTimeout  = 15 * time.Second
)

// Searcher runs one job search for a session.
type Searcher interface {
	Browse(ctx context.Context, s access.Session, c search.JobCriteria, pageIndex, size int) (usecase.JobPage, error)
}

// searchRequest is what the browser sends on every filter change. Its
// canonical encoding is the debounce key.
type searchRequest struct {
	Type           string `json:"type,omitempty"`
	Query          string `json:"query"`
	EmploymentType string `json:"employment_type"`
	Status         string `json:"status"`
	Salary         string `json:"salary"`
	Page           int    `json:"page"`
	Size           int    `json:"size"`

	// Action and Target move the last search when Type is "page".
	Action string `json:"action,omitempty"`
	Target int    `json:"target,omitempty"`
}

func (r searchRequest) key() string {
	r.Type = ""
	r.Action = ""
	r.Target = 0
	r.Query = strings.TrimSpace(r.Query)
	r.EmploymentType = strings.TrimSpace(r.EmploymentType)
	r.Status = strings.TrimSpace(r.Status)
	r.Salary = string(search.ParseSalaryRange(r.Salary))
	if r.Page < 0 {
		r.Page = 0
	}
	b, _ := json.Marshal(r)
	return string(b)
}

func (r searchRequest) criteria() search.JobCriteria {
	return search.JobCriteria{
		Query:          r.Query,
		EmploymentType: r.EmploymentType,
		Status:         r.Status,
		Salary:         search.ParseSalaryRange(r.Salary),
	}
}

type jobsMessage struct {
	Type string              `json:"type"`
	Data dto.JobListResponse `json:"data"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	session  access.Session
	searcher Searcher
	logger   *log.Logger

	debouncer *debounce.Debouncer

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	lastKey string
	nav     pager.Navigator
	closed  bool
}

func NewClient(hub *Hub, conn *websocket.Conn, s access.Session, searcher Searcher, interval time.Duration, logger *log.Logger) *Client {
	ctx, cancel := context.WithCancel(backend.WithToken(context.Background(), s.Token))
	c := &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBuffer),
		session:  s,
		searcher: searcher,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
	c.debouncer = debounce.New(interval, c.run)
	return c
}

// ReadPump reads filter changes until the connection closes.
func (c *Client) ReadPump() {
	defer func() {
		c.debouncer.Stop()
		c.cancel()
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && c.logger != nil {
				c.logger.Printf("[WS] Read error: %v", err)
			}
			return
		}

		var req searchRequest
		if err := json.Unmarshal(data, &req); err != nil {
			c.reply(errorMessage{Type: TypeError, Message: "Malformed search request."})
			continue
		}

		switch req.Type {
		case "", TypeSearch:
			key := req.key()
			c.mu.Lock()
			c.lastKey = key
			c.mu.Unlock()
			c.debouncer.Push(key)
		case TypeRefresh:
			c.refresh()
		case TypePage:
			c.move(req.Action, req.Target)
		default:
			c.reply(errorMessage{Type: TypeError, Message: "Unknown message type."})
		}
	}
}

// WritePump drains the send buffer and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// refresh runs the last search again even though its key is unchanged.
func (c *Client) refresh() {
	c.mu.Lock()
	key := c.lastKey
	c.mu.Unlock()
	if key == "" {
		return
	}
	c.debouncer.Reset()
	c.debouncer.Push(key)
}

// move applies a pager action to the last search. Moves that change nothing
// are ignored.
func (c *Client) move(action string, target int) {
	c.mu.Lock()
	if c.lastKey == "" {
		c.mu.Unlock()
		return
	}
	var req searchRequest
	if err := json.Unmarshal([]byte(c.lastKey), &req); err != nil {
		c.mu.Unlock()
		return
	}
	nav := c.nav
	if !nav.Apply(strings.ToLower(strings.TrimSpace(action)), target) {
		c.mu.Unlock()
		return
	}
	req.Page = nav.Index
	key := req.key()
	c.lastKey = key
	c.mu.Unlock()

	c.debouncer.Push(key)
}

func (c *Client) run(key string) {
	var req searchRequest
	if err := json.Unmarshal([]byte(key), &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(c.ctx, searchTimeout)
	defer cancel()

	pg, err := c.searcher.Browse(ctx, c.session, req.criteria(), req.Page, req.Size)
	if err != nil {
		if c.ctx.Err() != nil {
			return
		}
		if c.logger != nil {
			c.logger.Printf("[WS] Search failed: %v", err)
		}
		c.reply(errorMessage{Type: TypeError, Message: usecase.UserMessage(err, usecase.OpLoadJobs)})
		return
	}
	c.mu.Lock()
	if c.lastKey == key {
		c.nav = pager.Navigator{Index: pg.Meta.Page, Total: pg.Meta.TotalPages}
	}
	c.mu.Unlock()

	c.reply(jobsMessage{Type: TypeJobs, Data: dto.NewJobListResponse(pg)})
}

func (c *Client) reply(v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.deliver(b)
}

// deliver queues msg without blocking. It reports false when the buffer is
// full; a closed client silently discards.
func (c *Client) deliver(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}
