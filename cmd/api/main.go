package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/esferaordo/ordo-api/docs"
	"github.com/esferaordo/ordo-api/internal/application/attendance"
	"github.com/esferaordo/ordo-api/internal/application/auth"
	"github.com/esferaordo/ordo-api/internal/application/billing"
	"github.com/esferaordo/ordo-api/internal/application/inventory"
	"github.com/esferaordo/ordo-api/internal/application/invite"
	"github.com/esferaordo/ordo-api/internal/application/loja"
	"github.com/esferaordo/ordo-api/internal/application/member"
	"github.com/esferaordo/ordo-api/internal/application/user"
	domainattendance "github.com/esferaordo/ordo-api/internal/domain/attendance"
	"github.com/esferaordo/ordo-api/internal/infrastructure/mail"
	infrapdf "github.com/esferaordo/ordo-api/internal/infrastructure/pdf"
	"github.com/esferaordo/ordo-api/internal/infrastructure/postgres"
	httpRouter "github.com/esferaordo/ordo-api/internal/interfaces/http"
	"github.com/esferaordo/ordo-api/pkg/config"
	"github.com/esferaordo/ordo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	prod := cfg.App.IsProduction()

	if cfg.App.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString(), postgres.MigrateUp); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	lojaRepo := postgres.NewLojaRepository(pool)
	memberRepo := postgres.NewMemberRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	chargeRepo := postgres.NewChargeRepository(pool)
	meetingRepo := postgres.NewMeetingRepository(pool)
	attendanceRepo := postgres.NewAttendanceRepository(pool)
	inviteRepo := postgres.NewInviteTokenRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Horário de Brasília cuando el tenant no define zona y tzdata no está disponible.
	defaultLoc := domainattendance.LoadLocation(cfg.App.DefaultTimezone, time.FixedZone("UTC-3", -3*60*60))

	sessions := auth.NewSessionManager(auth.SessionConfig{
		Secret:           cfg.JWT.Secret,
		Issuer:           cfg.JWT.Issuer,
		TTL:              cfg.JWT.TTL(),
		DevEmailFallback: cfg.Auth.DevEmailFallback,
	}, userRepo, log)
	authUC := auth.NewAuthUseCase(sessions, userRepo, tenantRepo, lojaRepo)

	tokenStore := invite.NewTokenStore(inviteRepo, cfg.Invite.TTL())
	inviteUC := invite.NewInviteUseCase(userRepo, tokenStore, txRunner,
		mail.NewLogMailer(log, !prod),
		invite.Config{BaseURL: cfg.Invite.BaseURL, ExposeLink: !prod},
		log,
	)

	billingUC := billing.NewBillingUseCase(memberRepo, lojaRepo, paymentRepo, chargeRepo, txRunner, log)
	attendanceUC := attendance.NewAttendanceUseCase(tenantRepo, meetingRepo, memberRepo, attendanceRepo, txRunner, defaultLoc, log)
	meetingUC := attendance.NewMeetingUseCase(tenantRepo, lojaRepo, meetingRepo, memberRepo, attendanceRepo, defaultLoc, log)
	memberUC := member.NewMemberUseCase(memberRepo, lojaRepo, log)
	userUC := user.NewUserUseCase(userRepo, lojaRepo, txRunner, log)
	lojaUC := loja.NewLojaUseCase(lojaRepo, log)

	// PDF: relatório de patrimônio
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	inventoryUC := inventory.NewInventoryUseCase(inventoryRepo, lojaRepo, txRunner, pdfGenerator, log)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		ExposeErrors: !prod,
	}, log)

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ordo API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		InviteUC:     inviteUC,
		BillingUC:    billingUC,
		AttendanceUC: attendanceUC,
		MeetingUC:    meetingUC,
		MemberUC:     memberUC,
		UserUC:       userUC,
		LojaUC:       lojaUC,
		InventoryUC:  inventoryUC,
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: prod,
			MaxAge: cfg.JWT.TTL(),
		},
		LoginLimit: httpRouter.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.LoginPerMinute,
			Window:            time.Minute,
			Burst:             cfg.RateLimit.LoginBurst,
		},
		Health: pool.Ping,
		Log:    log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
