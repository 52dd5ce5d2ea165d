package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/audit"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/auth"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/config"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/db"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/handlers"
	infraRepo "github.com/prashantkoirala465/Appointment-Management-System/internal/infra/repository"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/middleware"
	ucidentity "github.com/prashantkoirala465/Appointment-Management-System/internal/usecase/identity"
)

func RegisterRoutes(r *gin.Engine, conn *gorm.DB, cfg *config.Config, log zerolog.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	identityRepo := infraRepo.NewIdentityGormRepository(conn)
	auditLogger := audit.New(conn)
	signer := auth.NewTokenSigner(cfg)

	// ======================================================
	// USE CASES — IDENTITY
	// ======================================================
	authenticateUC := ucidentity.NewAuthenticate(identityRepo)

	registerUC := ucidentity.NewRegister(
		identityRepo,
		auditLogger,
		db.DefaultRoleName,
		db.DefaultMenuName,
	)

	syncAssignmentsUC := ucidentity.NewSyncAssignments(
		identityRepo,
		auditLogger,
	)

	resolveMenuUC := ucidentity.NewResolveMenu(identityRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(authenticateUC, registerUC, signer, auditLogger, cfg)
	userHandler := handlers.NewUserHandler(conn, syncAssignmentsUC, auditLogger)
	roleHandler := handlers.NewRoleHandler(conn)
	menuHandler := handlers.NewMenuHandler(conn)
	staffHandler := handlers.NewStaffHandler(conn, auditLogger)
	appointmentHandler := handlers.NewAppointmentHandler(conn, auditLogger)
	dashboardHandler := handlers.NewDashboardHandler(conn)
	webHandler := handlers.NewWebHandler()

	// ======================================================
	// PIPELINE: authenticate -> (authorize) -> resolve menu -> handler
	// ======================================================
	r.Use(middleware.Authenticate(signer, cfg.SessionTTLMin))
	r.Use(middleware.MenuResolver(resolveMenuUC, log))

	// ======================================================
	// WEB (redirect targets for browser clients)
	// ======================================================
	r.GET(middleware.LoginPath, webHandler.LoginPage)
	r.GET(middleware.DeniedPath, webHandler.DeniedPage)
	r.GET("/app/dashboard", middleware.RequireAuth(), webHandler.AppShell)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/logout", authHandler.Logout)
		api.POST("/auth/register", authHandler.Register)
		api.GET("/auth/me", middleware.RequireAuth(), authHandler.Me)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.RequireAuth())
		{
			secured.GET("/dashboard", dashboardHandler.Get)

			// Appointment management is open to Staff and Admin alike;
			// Staff membership is the default role every account holds.
			staffOnly := secured.Group("/")
			staffOnly.Use(middleware.RequireRole(db.RoleStaff, db.RoleAdmin))
			{
				staffOnly.GET("/appointments", appointmentHandler.List)
				staffOnly.GET("/appointments/:id", appointmentHandler.Get)
				staffOnly.POST("/appointments", appointmentHandler.Create)
				staffOnly.PUT("/appointments/:id", appointmentHandler.Update)
				staffOnly.DELETE("/appointments/:id", appointmentHandler.Delete)

				staffOnly.GET("/staff", staffHandler.List)
				staffOnly.GET("/staff/:id", staffHandler.Get)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole(db.RoleAdmin))
			{
				admin.POST("/staff", staffHandler.Create)
				admin.PUT("/staff/:id", staffHandler.Update)
				admin.DELETE("/staff/:id", staffHandler.Delete)

				admin.GET("/users", userHandler.List)
				admin.GET("/users/:id", userHandler.Get)
				admin.POST("/users", userHandler.Create)
				admin.PUT("/users/:id", userHandler.Update)
				admin.POST("/users/:id/approve", userHandler.Approve)
				admin.DELETE("/users/:id", userHandler.Delete)

				admin.GET("/roles", roleHandler.List)
				admin.GET("/roles/:id", roleHandler.Get)
				admin.POST("/roles", roleHandler.Create)
				admin.PUT("/roles/:id", roleHandler.Update)
				admin.DELETE("/roles/:id", roleHandler.Delete)

				admin.GET("/menus", menuHandler.List)
				admin.GET("/menus/:id", menuHandler.Get)
				admin.POST("/menus", menuHandler.Create)
				admin.PUT("/menus/:id", menuHandler.Update)
				admin.DELETE("/menus/:id", menuHandler.Delete)
			}
		}
	}
}
