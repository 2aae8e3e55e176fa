package api

import (
	"net/http"
	"time"

	"community_hub/internal/api/handler"
	"community_hub/internal/api/middleware"
	"community_hub/internal/app/service"
	"community_hub/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	tokens *security.Tokens,
	authLimiter *middleware.RateLimiter,
	secureCookies bool,
	authService *service.AuthService,
	postService *service.PostService,
	eventService *service.EventService,
	listingService *service.ListingService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the bearer access token if present and puts claims in context.
	// The Authenticator middleware on protected groups enforces it.
	r.Use(jwtauth.Verifier(tokens.Auth()))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (register/login throttled per IP)
		authHandler := handler.NewAuthHandler(authService, secureCookies)
		v1.Route("/auth", func(auth chi.Router) {
			if authLimiter != nil {
				auth.Use(authLimiter.Handler)
			}
			authHandler.RegisterRoutes(auth)
		})

		postHandler := handler.NewPostHandler(postService)
		v1.Route("/posts", postHandler.RegisterRoutes)

		eventHandler := handler.NewEventHandler(eventService)
		v1.Route("/events", eventHandler.RegisterRoutes)

		listingHandler := handler.NewListingHandler(listingService)
		v1.Route("/listings", listingHandler.RegisterRoutes)
	})

	return r
}
