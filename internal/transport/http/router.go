package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/eshop-relay/internal/application/auth"
	"github.com/eshop-relay/internal/application/chat"
	"github.com/eshop-relay/internal/config"
	"github.com/eshop-relay/internal/transport/http/handler"
	appmiddleware "github.com/eshop-relay/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(appmiddleware.RequestLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to the OTP-send endpoints so a
	// single client cannot flood someone's inbox.
	sendRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	authSvc := auth.NewService(auth.ServiceDeps{
		Ledger:   deps.Ledger,
		Identity: deps.Identity,
		Mailer:   deps.Mailer,
	})
	chatSvc := chat.NewService(deps.Generator, cfg.KnowledgeFile)

	healthH := handler.NewHealthHandler()
	otpH := handler.NewOTPHandler(authSvc)
	chatH := handler.NewChatHandler(chatSvc)

	r.Get("/", healthH.Root)
	r.Route("/api", func(r chi.Router) {
		r.Post("/test", healthH.Test)
		r.With(sendRL.Limit).Post("/send-otp", otpH.SendOTP)
		r.Post("/verify-otp", otpH.VerifyOTP)
		r.Post("/reset-password", otpH.ResetPassword)
		r.With(sendRL.Limit).Post("/send-register-otp", otpH.SendRegisterOTP)
		r.Post("/verify-register-otp", otpH.VerifyRegisterOTP)
		r.Post("/chat", chatH.Chat)
	})

	return r
}
