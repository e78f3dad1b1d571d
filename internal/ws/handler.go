package ws

import (
	"log"
	"net/http"
	"strings"
	"time"

	"hire-portal/internal/access"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

// SessionResolver validates a bearer token.
type SessionResolver func(token string) (access.Session, error)

type Handler struct {
	hub      *Hub
	searcher Searcher
	resolve  SessionResolver
	interval time.Duration
	logger   *log.Logger
}

func NewHandler(hub *Hub, searcher Searcher, resolve SessionResolver, interval time.Duration, logger *log.Logger) *Handler {
	return &Handler{hub: hub, searcher: searcher, resolve: resolve, interval: interval, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// tokenFrom reads the bearer token from the Authorization header or, since
// browsers cannot set headers on a websocket handshake, the access_token query
// parameter.
func tokenFrom(r *http.Request) string {
	if h := strings.TrimSpace(r.Header.Get("Authorization")); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(r.URL.Query().Get("access_token"))
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.hub == nil || h.searcher == nil {
		http.Error(w, "live search unavailable", http.StatusServiceUnavailable)
		return
	}

	s := access.Anonymous()
	if token := tokenFrom(r); token != "" {
		if h.resolve == nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		resolved, err := h.resolve(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		s = resolved
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		if h.logger != nil {
			h.logger.Printf("[WS] Upgrade error: %v", err)
		}
		return
	}

	client := NewClient(h.hub, conn, s, h.searcher, h.interval, h.logger)
	h.hub.Register(client)
	go client.WritePump()
	go client.ReadPump()
}

func (h *Handler) HandleJobsWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}
	return adaptor.HTTPHandler(h)(c)
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/ws/jobs", h.HandleJobsWS)
}
