package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/esferaordo/ordo-api/internal/application/attendance"
	"github.com/esferaordo/ordo-api/internal/application/auth"
	"github.com/esferaordo/ordo-api/internal/application/billing"
	"github.com/esferaordo/ordo-api/internal/application/inventory"
	"github.com/esferaordo/ordo-api/internal/application/invite"
	"github.com/esferaordo/ordo-api/internal/application/loja"
	"github.com/esferaordo/ordo-api/internal/application/member"
	"github.com/esferaordo/ordo-api/internal/application/user"
	"github.com/esferaordo/ordo-api/internal/domain/role"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

// AppConfig opciones de la aplicación Fiber.
type AppConfig struct {
	Name string
	// ExposeErrors incluye el detalle de errores 500 (fuera de producción).
	ExposeErrors bool
}

// NewApp crea la app Fiber con recover, log de requests y ErrorHandler JSON.
func NewApp(cfg AppConfig, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: NewErrorHandler(log, cfg.ExposeErrors),
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	InviteUC     *invite.InviteUseCase
	BillingUC    *billing.BillingUseCase
	AttendanceUC *attendance.AttendanceUseCase
	MeetingUC    *attendance.MeetingUseCase
	MemberUC     *member.MemberUseCase
	UserUC       *user.UserUseCase
	LojaUC       *loja.LojaUseCase
	InventoryUC  *inventory.InventoryUseCase
	Cookie       CookieConfig
	LoginLimit   RateLimitConfig
	// Health verifica dependencias externas (DB); nil = siempre ok.
	Health func(ctx context.Context) error
	Log    *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	sessions := deps.AuthUC.Sessions()
	app.Use(SessionGate(sessions, deps.Cookie.Name))

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Health != nil {
			if err := deps.Health(c.UserContext()); err != nil {
				deps.Log.Error().Err(err).Msg("health check")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.InviteUC, deps.Cookie)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", RateLimitByIP(deps.LoginLimit, deps.Log), authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/set-password", RateLimitByIP(deps.LoginLimit, deps.Log), authHandler.SetPassword)

	// Rutas protegidas (cookie de sesión o Bearer)
	requireAuth := AuthMiddleware(sessions, deps.Cookie.Name)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	authGroup.Post("/change-password", requireAuth, authHandler.ChangePassword)

	admin := api.Group("/admin", requireAuth, RequirePermission("admin", role.IsAdmin))
	admin.Post("/verify-password", authHandler.VerifyPassword)

	// Usuarios (SaaS-admin; edición y baja solo SYS_ADMIN)
	userHandler := NewUserHandler(deps.InviteUC, deps.UserUC)
	users := api.Group("/users", requireAuth, RequirePermission("saas-admin", role.IsSaasAdmin))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Post("/invite", userHandler.Invite)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", RequireRole(role.SysAdmin), userHandler.Update)
	users.Delete("/:id", RequireRole(role.SysAdmin), userHandler.Delete)

	// Lojas
	lojaHandler := NewLojaHandler(deps.LojaUC)
	lojas := api.Group("/lojas", requireAuth)
	lojas.Get("/", lojaHandler.List)
	lojas.Post("/", RequirePermission("saas-admin", role.IsSaasAdmin), lojaHandler.Create)
	lojas.Get("/:id", lojaHandler.Get)
	lojas.Put("/:id", RequirePermission("admin", role.IsAdmin), lojaHandler.Update)
	lojas.Get("/:id/valores", lojaHandler.Valores)

	// Tesouraria
	billingHandler := NewBillingHandler(deps.BillingUC)
	billingGroup := api.Group("/billing", requireAuth)
	billingGroup.Get("/summary", billingHandler.Summary)
	billingGroup.Post("/payments", RequirePermission("finance", role.CanAccessFinance), billingHandler.RegisterPayment)
	api.Get("/payments/grid", requireAuth, billingHandler.Grid)
	api.Get("/payments/history/:id", requireAuth, billingHandler.History)

	// Presença
	presenceHandler := NewPresenceHandler(deps.AttendanceUC)
	meetingHandler := NewMeetingHandler(deps.MeetingUC)
	api.Get("/presenca/dashboard", requireAuth, presenceHandler.Dashboard)
	api.Get("/presenca/frequencia", requireAuth, RequirePermission("presence", role.CanAccessPresence), presenceHandler.Frequency)
	sessoes := api.Group("/sessoes", requireAuth, RequirePermission("presence", role.CanAccessPresence))
	sessoes.Get("/", meetingHandler.List)
	sessoes.Post("/", meetingHandler.Create)
	sessoes.Get("/:id", meetingHandler.Get)
	sessoes.Put("/:id", meetingHandler.Update)
	sessoes.Delete("/:id", meetingHandler.Delete)
	sessoes.Get("/:id/presenca", presenceHandler.List)
	sessoes.Post("/:id/presenca", presenceHandler.Mark)

	// Membros
	memberHandler := NewMemberHandler(deps.MemberUC)
	members := api.Group("/members", requireAuth, RequirePermission("members", role.CanViewMembers))
	members.Get("/", memberHandler.List)
	members.Post("/", RequirePermission("manage-members", role.CanManageMembers), memberHandler.Create)
	members.Get("/:id", memberHandler.Get)
	members.Put("/:id", RequirePermission("manage-members", role.CanManageMembers), memberHandler.Update)
	members.Delete("/:id", RequirePermission("delete-members", role.CanDeleteMembers), memberHandler.Delete)

	// Patrimônio
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inv := api.Group("/inventory", requireAuth, RequirePermission("inventory", role.CanManageInventory))
	inv.Get("/items", inventoryHandler.ListItems)
	inv.Post("/items", inventoryHandler.CreateItem)
	inv.Get("/items/:id/movements", inventoryHandler.ListMovements)
	inv.Post("/items/:id/movements", inventoryHandler.RegisterMovement)
	inv.Post("/items/:id/archive", inventoryHandler.Archive)
	inv.Get("/reorder", inventoryHandler.ReorderList)
	inv.Get("/export", inventoryHandler.Export)
}
