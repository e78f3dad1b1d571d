package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"hire-portal/internal/access"
	"hire-portal/internal/config"
	"hire-portal/internal/delivery/http/handler"
	"hire-portal/internal/delivery/http/middleware"
	"hire-portal/internal/delivery/http/routes"
	v1 "hire-portal/internal/delivery/http/routes/v1"
	"hire-portal/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// bodyLimit leaves room for a CV upload plus the other multipart fields.
const bodyLimit = 10 << 20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(cfg config.Config, c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: bodyLimit,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the fiber app and starts the live
// search hub. The returned cleanup stops the hub and closes connections.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go c.Hub.Run(ctx)

	app := New(cfg, c)
	cleanup := func() error {
		cancel()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(errMw.Middleware())

	accessLog := middleware.NewAccessLogMiddleware(logger)
	app.Use(accessLog.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	guard := middleware.NewRoleGuard(access.DefaultRoutes(), c.Logger)
	authMw := middleware.NewAuthMiddleware(c.JWT)
	pageSize := c.Config.Search.PageSize

	health := handler.NewHealthHandler(map[string]handler.Pinger{
		"redis": c.Cache,
		"nats":  natsPinger{nc: c.NATS},
	})
	liveSearch := ws.NewHandler(c.Hub, c.JobBrowse, authMw.Resolve, c.Config.Search.Debounce, c.Logger)

	api := v1.Handlers{
		Jobs:         handler.NewJobsHandler(c.JobBrowse, c.JobManage, guard, pageSize),
		Applications: handler.NewApplicationsHandler(c.ApplicationReview, c.CandidateApplications, guard, pageSize),
		AdminUsers:   handler.NewAdminUsersHandler(c.AdminUsers, guard, pageSize),
		Profile:      handler.NewProfileHandler(c.Profile, guard),
	}

	routes.NewRegistry(health, liveSearch, authMw, api).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
