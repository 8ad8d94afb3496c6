package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mapcocoro/soleil-backend/api/controllers"
	"github.com/mapcocoro/soleil-backend/api/middleware"
	"github.com/mapcocoro/soleil-backend/internal/calendar"
	"github.com/mapcocoro/soleil-backend/internal/cart"
	"github.com/mapcocoro/soleil-backend/internal/catalog"
	"github.com/mapcocoro/soleil-backend/internal/coupons"
	"github.com/mapcocoro/soleil-backend/internal/points"
	"github.com/mapcocoro/soleil-backend/internal/reservations"
	"github.com/mapcocoro/soleil-backend/internal/users"
	"github.com/mapcocoro/soleil-backend/pkg/config"
	"github.com/mapcocoro/soleil-backend/pkg/db"
	"github.com/mapcocoro/soleil-backend/pkg/logger"
	"github.com/mapcocoro/soleil-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           *db.Client
	Redis        *redis.Client
	Registry     *prometheus.Registry
	Users        users.Service
	Catalog      catalog.Service
	Calendar     calendar.Service
	Coupons      coupons.Service
	Cart         cart.Service
	Points       points.Service
	Reservations reservations.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(deps.DB, deps.Redis, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", controllers.ListCategories(deps.Catalog, logg))
		r.Get("/products", controllers.ListProducts(deps.Catalog, logg))
		r.Get("/products/{id}", controllers.GetProduct(deps.Catalog, logg))
		r.Get("/calendar", controllers.GetCalendar(deps.Calendar, cfg.Shop.CalendarDays, logg))
		r.Get("/coupons", controllers.ListCoupons(deps.Coupons, logg))
		r.Get("/users/{id}/coupons", controllers.ListUserCoupons(deps.Coupons, logg))
		r.Get("/users/{id}/points", controllers.GetUserPoints(deps.Points, logg))

		// Routes below act on the calling customer's own data.
		r.Group(func(r chi.Router) {
			r.Use(middleware.LineUser(deps.Users, logg))

			r.Get("/users/me", controllers.GetMyProfile(deps.Users, logg))

			r.Post("/reservations", controllers.CreateReservation(deps.Reservations, logg))
			r.Get("/reservations", controllers.ListMyReservations(deps.Reservations, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(deps.Cart, logg))
				r.Post("/items", controllers.AddCartItem(deps.Cart, logg))
				r.Patch("/items/{productId}", controllers.SetCartItemQuantity(deps.Cart, logg))
				r.Delete("/items/{productId}", controllers.RemoveCartItem(deps.Cart, logg))
				r.Delete("/", controllers.ClearCart(deps.Cart, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.Admin, logg))

		r.Get("/reservations", controllers.AdminListReservations(deps.Reservations, logg))
		r.Get("/reservations/{id}", controllers.AdminGetReservation(deps.Reservations, logg))
		r.Post("/reservations/{id}/confirm", controllers.AdminConfirmReservation(deps.Reservations, logg))
		r.Post("/reservations/{id}/cancel", controllers.AdminCancelReservation(deps.Reservations, logg))
		r.Post("/reservations/{id}/complete", controllers.AdminCompleteReservation(deps.Reservations, logg))

		r.Post("/calendar/overrides", controllers.AdminSetCalendarOverride(deps.Calendar, logg))
		r.Put("/calendar/holidays", controllers.AdminSetRegularHolidays(deps.Calendar, logg))

		r.Post("/users/{id}/points/redeem", controllers.AdminRedeemPoints(deps.Points, logg))
		r.Post("/users/{id}/points/grant", controllers.AdminGrantPoints(deps.Points, logg))
	})

	return r
}
