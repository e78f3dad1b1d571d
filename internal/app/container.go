package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"hire-portal/internal/config"
	"hire-portal/internal/infrastructure/backend"
	"hire-portal/internal/infrastructure/cache"
	"hire-portal/internal/infrastructure/events"
	"hire-portal/internal/pkg/jwt"
	"hire-portal/internal/usecase"
	"hire-portal/internal/ws"

	"github.com/nats-io/nats.go"
)

type Container struct {
	Config config.Config
	Logger *log.Logger

	Backend   *backend.Client
	Cache     *cache.Redis
	NATS      *nats.Conn
	Publisher *events.Publisher
	Hub       *ws.Hub
	JWT       jwt.Service

	JobBrowse             *usecase.JobBrowse
	JobManage             *usecase.JobManage
	ApplicationReview     *usecase.ApplicationReview
	CandidateApplications *usecase.CandidateApplications
	AdminUsers            *usecase.AdminUsers
	Profile               *usecase.Profile
}

// NewContainer wires the portal. Redis and NATS are optional: without them
// lists are fetched on every request and audit events are dropped.
func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}
	if strings.TrimSpace(cfg.Backend.BaseURL) == "" {
		return nil, errors.New("backend base url not configured")
	}

	c := &Container{Config: cfg, Logger: logger}

	c.Backend = backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.AccountURL, cfg.Backend.Timeout, logger)
	c.Cache = cache.NewRedis(cfg.Redis, logger)

	if strings.TrimSpace(cfg.NATS.URL) != "" {
		nc, err := events.Connect(cfg.NATS.URL, cfg.App.AppName, logger)
		if err != nil {
			logger.Printf("[Events] NATS unavailable, audit events disabled: %v", err)
		} else {
			c.NATS = nc
		}
	} else {
		logger.Printf("[Events] NATS_URL not set, audit events disabled")
	}
	c.Publisher = events.NewPublisher(c.NATS, cfg.App.AppName, logger)

	c.Hub = ws.NewHub(logger)
	c.JWT = jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.Issuer)

	// A nil *Publisher inside a non-nil interface still drops events.
	var pub usecase.AuditPublisher = c.Publisher

	c.JobBrowse = usecase.NewJobBrowse(c.Backend, c.Cache, cfg.Redis.TTL, logger)
	c.JobManage = usecase.NewJobManage(c.Backend, c.Cache, pub, c.Hub, logger)
	c.ApplicationReview = usecase.NewApplicationReview(c.Backend, logger)
	c.CandidateApplications = usecase.NewCandidateApplications(c.Backend, logger)
	c.AdminUsers = usecase.NewAdminUsers(c.Backend, c.Cache, pub, cfg.Search.AdminFetchMax, cfg.Redis.TTL, logger)
	c.Profile = usecase.NewProfile(c.Backend, logger)

	return c, nil
}

// natsPinger reports the connection state to /health.
type natsPinger struct {
	nc *nats.Conn
}

func (p natsPinger) Ping(_ context.Context) error {
	if p.nc == nil || !p.nc.IsConnected() {
		return errors.New("nats not connected")
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	// Drain flushes pending audit events before closing the connection.
	c.Publisher.Close()
	if c.Cache != nil {
		return c.Cache.Close()
	}
	return nil
}
