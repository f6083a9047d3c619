package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/imartinez/fronton-league/handlers"
	"github.com/imartinez/fronton-league/middleware"
)

// SetupRoutes wires every HTTP endpoint. Reads are public; anything
// that mutates league state sits behind the admin JWT.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	categoryHandler *handlers.CategoryHandler,
	teamHandler *handlers.TeamHandler,
	scheduleHandler *handlers.ScheduleHandler,
	matchHandler *handlers.MatchHandler,
	transferHandler *handlers.TransferHandler,
	reportHandler *handlers.ReportHandler,
	dashboardHandler *handlers.DashboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.ListPlayers)
		r.Get("/{playerID}", playerHandler.GetPlayerByID)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireAdmin)

			r.Post("/", playerHandler.CreatePlayer)
			r.Put("/{playerID}", playerHandler.RenamePlayer)
			r.Delete("/{playerID}", playerHandler.DeletePlayer)
		})
	})

	router.Route("/categories", func(r chi.Router) {
		r.Get("/", categoryHandler.ListCategories)
		r.Get("/{categoryID}", categoryHandler.GetCategoryByID)
		r.Get("/{categoryID}/teams", categoryHandler.ListCategoryTeams)
		r.Get("/{categoryID}/matches", scheduleHandler.ListCategoryMatches)
		r.Get("/{categoryID}/standings", scheduleHandler.GetCategoryStandings)
		r.Get("/{categoryID}/export", transferHandler.ExportCategory)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireAdmin)

			r.Post("/", categoryHandler.CreateCategory)
			r.Put("/{categoryID}", categoryHandler.UpdateCategory)
			r.Delete("/{categoryID}", categoryHandler.DeleteCategory)
			r.Post("/{categoryID}/schedule", scheduleHandler.GenerateSchedule)
			r.Post("/{categoryID}/import", transferHandler.ImportTeams)
			r.Post("/{categoryID}/report", reportHandler.GenerateReport)
			r.Post("/{categoryID}/summary", reportHandler.GenerateSummary)
		})
	})

	router.Route("/teams", func(r chi.Router) {
		r.Get("/{teamID}", teamHandler.GetTeamByID)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireAdmin)

			r.Post("/", teamHandler.CreateTeam)
			r.Put("/{teamID}", teamHandler.RenameTeam)
			r.Delete("/{teamID}", teamHandler.DeleteTeam)
			r.Post("/{teamID}/players/{playerID}", teamHandler.AddPlayer)
			r.Delete("/{teamID}/players/{playerID}", teamHandler.RemovePlayer)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.GetMatchByID)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.RequireAdmin)

			r.Put("/{matchID}/result", matchHandler.RecordResult)
		})
	})

	router.Get("/dashboard", dashboardHandler.GetStats)

	router.Get("/ws/categories/{categoryID}", webSocketHandler.ServeWs)

	router.Get("/swagger/*", httpSwagger.WrapHandler)
}
