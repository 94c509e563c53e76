package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/portfolio-labs/advisory-scheduler/internal/cache"
	"github.com/portfolio-labs/advisory-scheduler/internal/clock"
	"github.com/portfolio-labs/advisory-scheduler/internal/config"
	"github.com/portfolio-labs/advisory-scheduler/internal/handlers"
	infraRepo "github.com/portfolio-labs/advisory-scheduler/internal/infra/repository"
	"github.com/portfolio-labs/advisory-scheduler/internal/middleware"
	"github.com/portfolio-labs/advisory-scheduler/internal/models"
	"github.com/portfolio-labs/advisory-scheduler/internal/notification"
	"github.com/portfolio-labs/advisory-scheduler/internal/reminder"
	"github.com/portfolio-labs/advisory-scheduler/internal/token"
	ucAdvisory "github.com/portfolio-labs/advisory-scheduler/internal/usecase/advisory"
	ucAvailability "github.com/portfolio-labs/advisory-scheduler/internal/usecase/availability"
)

// RegisterRoutes wires the whole object graph and returns the reminder
// scheduler for main to start.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) *reminder.Scheduler {

	clk := clock.System()

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	availabilityCache := cache.NewAvailabilityCache(rdb)

	advisoryRepo := infraRepo.NewAdvisoryGormRepository(db, availabilityCache)
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(db, availabilityCache)
	tokenRepo := infraRepo.NewTokenGormRepository(db)

	notifier := notification.NewDispatcher(
		notification.LogSender{},
		notification.NewLogStore(db),
		clk,
	)

	tokenService := token.NewService(
		tokenRepo,
		cfg.JWTSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
		clk,
	)

	// ======================================================
	// USE CASES
	// ======================================================
	createAdvisoryUC := ucAdvisory.NewCreateAdvisory(advisoryRepo, notifier, clk)
	approveAdvisoryUC := ucAdvisory.NewApproveAdvisory(advisoryRepo, notifier, clk)
	rejectAdvisoryUC := ucAdvisory.NewRejectAdvisory(advisoryRepo, notifier, clk)
	cancelAdvisoryUC := ucAdvisory.NewCancelAdvisory(advisoryRepo, clk)
	completeAdvisoryUC := ucAdvisory.NewCompleteAdvisory(advisoryRepo, clk)
	listAdvisoriesUC := ucAdvisory.NewListAdvisories(advisoryRepo)

	upsertWindowUC := ucAvailability.NewUpsertWindow(availabilityRepo, clk)
	deactivateWindowUC := ucAvailability.NewDeactivateWindow(availabilityRepo, clk)
	listWindowsUC := ucAvailability.NewListWindows(availabilityRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, tokenService, cfg)
	meHandler := handlers.NewMeHandler(db)
	availabilityHandler := handlers.NewAvailabilityHandler(
		upsertWindowUC,
		deactivateWindowUC,
		listWindowsUC,
	)
	advisoryHandler := handlers.NewAdvisoryHandler(
		createAdvisoryUC,
		approveAdvisoryUC,
		rejectAdvisoryUC,
		cancelAdvisoryUC,
		completeAdvisoryUC,
		listAdvisoriesUC,
	)
	publicHandler := handlers.NewPublicHandler(db, listWindowsUC)
	adminHandler := handlers.NewAdminHandler(db, listAdvisoriesUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/programmers", publicHandler.ListProgrammers)
			publicAPI.GET("/programmers/:id/availability", publicHandler.ProgrammerAvailability)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)
		api.POST("/auth/logout", authHandler.Logout)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokenService))
		{
			secured.GET("/me", meHandler.GetMe)

			// External side
			secured.POST("/advisories", advisoryHandler.Create)
			secured.GET("/advisories", advisoryHandler.ListMine)
			secured.PATCH("/advisories/:id/cancel", advisoryHandler.Cancel)

			// Programmer side
			programmer := secured.Group("/me")
			programmer.Use(middleware.RequireRole(models.RoleProgrammer, models.RoleAdmin))
			{
				programmer.GET("/availability", availabilityHandler.List)
				programmer.POST("/availability", availabilityHandler.Create)
				programmer.PATCH("/availability/:id", availabilityHandler.Update)
				programmer.DELETE("/availability/:id", availabilityHandler.Deactivate)

				programmer.GET("/advisories", advisoryHandler.ListForProgrammer)
				programmer.PATCH("/advisories/:id/approve", advisoryHandler.Approve)
				programmer.PATCH("/advisories/:id/reject", advisoryHandler.Reject)
				programmer.PATCH("/advisories/:id/complete", advisoryHandler.Complete)
			}

			// Admin side
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/advisories", adminHandler.ListAdvisories)
				admin.GET("/stats", adminHandler.Stats)
			}
		}
	}

	return reminder.NewScheduler(advisoryRepo, notifier, clk, cfg.ReminderHour)
}
