package httpserver

import (
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/avolkov3/simpledb/internal/logging"
)

// NewRouter wires the endpoint table. Public routes handle account lifecycle
// and login; everything else sits behind the bearer Authenticator.
func NewRouter(h *Handlers, logger logging.Logger, corsAllowedOrigins string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: strings.Split(corsAllowedOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Post("/create_account", h.CreateAccount)
	r.Post("/validate_and_create_password", h.ValidateAndCreatePassword)
	r.Post("/forgot_username", h.ForgotUsername)
	r.Post("/forgot_password", h.ForgotPassword)
	r.Post("/token", h.Token)
	r.Get("/get_session_token", h.GetSessionToken)

	r.Group(func(r chi.Router) {
		r.Use(h.Authenticator)
		r.Get("/users/me", h.UsersMe)
		r.Post("/delete_account", h.DeleteAccount)
		r.Post("/insert_data", h.InsertData)
		r.Post("/select_data", h.SelectData)
		r.Post("/update_entry", h.UpdateEntry)
		r.Post("/delete_entry", h.DeleteEntry)
	})

	return r
}
