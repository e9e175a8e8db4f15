package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/api/controllers"
	cartcontrollers "github.com/Ivetta-Luis-Alberto-114588/front-startup/api/controllers/cart"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/api/middleware"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/notifications"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/internal/session"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/config"
	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/logger"
)

type sessionManager interface {
	SignIn(ctx context.Context, token string) (*session.SignInResult, error)
	SignOut(ctx context.Context) session.Summary
	Summary(ctx context.Context) session.Summary
}

type notificationFeed interface {
	List(ctx context.Context, params notifications.ListParams) (*notifications.ListResult, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) int
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	engine cartcontrollers.Engine,
	sessionManager sessionManager,
	feed notificationFeed,
	store controllers.Pinger,
	remote controllers.Pinger,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, store, remote))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartcontrollers.CartFetch(engine, logg))
			r.Delete("/", cartcontrollers.CartClear(engine, logg))
			r.Get("/current", cartcontrollers.CartCurrent(engine, logg))
			r.Get("/stream", cartcontrollers.CartStream(engine, logg))
			r.Post("/items", cartcontrollers.CartAddItem(engine, logg))
			r.Put("/items/{productId}", cartcontrollers.CartSetQuantity(engine, logg))
			r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(engine, logg))
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/", controllers.SessionSummary(sessionManager, logg))
			r.Post("/login", controllers.SessionLogin(sessionManager, engine, logg))
			r.Post("/logout", controllers.SessionLogout(sessionManager, engine, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(feed, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(feed, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(feed, logg))
		})
	})

	return r
}
