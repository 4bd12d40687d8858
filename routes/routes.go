package routes

import (
	"net/http"
	"time"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const requestTimeout = 30 * time.Second

func SetupRoutes(
	router chi.Router,
	authenticate func(http.Handler) http.Handler,
	allowedOrigins []string,
	authHandler *handlers.AuthHandler,
	leagueHandler *handlers.LeagueHandler,
	teamHandler *handlers.TeamHandler,
	matchHandler *handlers.MatchHandler,
	uploadHandler *handlers.UploadHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// WebSocket не оборачиваем в Timeout: соединение живет долго
	router.Get("/ws/leagues/{leagueID}", webSocketHandler.ServeWs)

	router.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(requestTimeout))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.Signup)
			r.Post("/verify-otp", authHandler.VerifyOTP)
			r.Post("/resend-otp", authHandler.ResendOTP)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/logout", authHandler.Logout)
				r.Get("/me", authHandler.Me)
				r.Delete("/", authHandler.DeleteAccount)
			})
		})

		r.Route("/leagues", func(r chi.Router) {
			r.Get("/", leagueHandler.ListLeagues)
			r.Get("/name/{name}", leagueHandler.GetLeagueByName)
			r.Get("/{leagueID}", leagueHandler.GetLeague)
			r.Get("/{leagueID}/details", leagueHandler.GetLeagueDetails)
			r.Get("/{leagueID}/matches", leagueHandler.ListLeagueMatches)
			r.Get("/{leagueID}/teams", leagueHandler.ListLeagueTeams)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/mine", leagueHandler.ListMyLeagues)
				r.Post("/", leagueHandler.CreateLeague)
				r.Put("/{leagueID}", leagueHandler.UpdateLeague)
				r.Delete("/{leagueID}", leagueHandler.DeleteLeague)
				r.Delete("/", leagueHandler.DeleteAllLeagues)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.ListTeams)
			r.Get("/name/{name}", teamHandler.GetTeamByName)
			r.Get("/{teamID}", teamHandler.GetTeam)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", teamHandler.CreateTeam)
				r.Put("/{teamID}", teamHandler.UpdateTeam)
				r.Delete("/{teamID}", teamHandler.DeleteTeam)
				r.Delete("/", teamHandler.DeleteAllTeams)
				r.Post("/{teamID}/logo", teamHandler.UploadTeamLogo)
			})
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", matchHandler.ListMatches)
			r.Get("/{matchID}", matchHandler.GetMatch)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", matchHandler.CreateMatch)
				r.Put("/{matchID}", matchHandler.UpdateMatch)
				r.Delete("/{matchID}", matchHandler.DeleteMatch)
			})
		})

		r.Route("/uploads", func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", uploadHandler.Upload)
			r.Delete("/", uploadHandler.Delete)
		})
	})
}
