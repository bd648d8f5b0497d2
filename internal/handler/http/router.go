package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/northwick-labs/attendance-pipeline-go/internal/handler/http/middleware"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/token"
)

func NewRouter(
	tokenService token.Service,
	employeeHandler EmployeeHandler,
	weekHandler WeekHandler,
	promotionHandler PromotionHandler,
	runHandler RunHandler,
	exportHandler ExportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-pipeline"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.List)
			r.Get("/{email}", employeeHandler.GetByEmail)
		})

		r.Route("/weeks", func(r chi.Router) {
			r.Get("/", weekHandler.List)
			r.Get("/{weekKey}/facts", weekHandler.GetFacts)
		})

		r.Get("/promotions", promotionHandler.List)

		r.Route("/runs", func(r chi.Router) {
			r.Get("/", runHandler.List)
			r.Get("/{id}", runHandler.GetByID)

			// Requires a service token
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(tokenService.JWTAuth()))
				r.Use(middleware.ServiceTokenRequired(tokenService.JWTAuth()))
				r.Post("/", runHandler.Trigger)
			})
		})

		// Requires a service token
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenService.JWTAuth()))
			r.Use(middleware.ServiceTokenRequired(tokenService.JWTAuth()))
			r.Post("/exports", exportHandler.Trigger)
		})
	})
	return r
}
