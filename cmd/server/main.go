package main

import (
	"context"
	"os"
	"strings"

	"pos-backend/internal/audit"
	"pos-backend/internal/auth"
	"pos-backend/internal/backup"
	"pos-backend/internal/config"
	"pos-backend/internal/database"
	"pos-backend/internal/maintenance"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

// Yedek dosyaları varsayılan 4MB gövde limitini aşabilir
const bodyLimit = 64 << 20

func main() {
	cfg := config.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("yapılandırma geçersiz")
	}
	for _, w := range cfg.Warnings() {
		log.Warn().Msg(w)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("veritabanı açılamadı")
	}
	defer database.Close(db)
	log.Info().Str("driver", cfg.DatabaseDriver).Msg("veritabanı bağlantısı kuruldu")

	store, err := backup.NewStore(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("yedek arşivi hazırlanamadı")
	}
	log.Info().Str("storage", store.Name()).Msg("yedek arşivi hazır")

	engine := maintenance.New(db, log)
	backups := backup.NewHandler(engine, backup.NewArchive(db, store), log)

	app := fiber.New(fiber.Config{
		BodyLimit: bodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error().Err(err).Str("path", c.Path()).Msg("beklenmeyen hata")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public
	api.Get("/setup", auth.SetupStatusHandler(db))
	api.Post("/setup", auth.SetupHandler(db, cfg.JWTSecret))
	api.Post("/auth/login", auth.LoginHandler(db, cfg.JWTSecret))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(db, cfg.JWTSecret))

	protected.Get("/auth/me", auth.MeHandler(db))

	// Yönetim: yedekleme, geri yükleme, sıfırlama
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleOwner, models.RoleAdmin))

	adminRoutes.Get("/backup", backups.DownloadHandler())
	adminRoutes.Get("/backup/export.xlsx", backups.ExportWorkbookHandler())
	adminRoutes.Get("/backups", backups.ListHandler())
	adminRoutes.Post("/backups/:id/restore", backups.RestoreArchivedHandler())
	adminRoutes.Post("/restore", backups.RestoreUploadHandler())
	adminRoutes.Post("/reset", backups.ResetHandler())
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler(db))

	// Sadece sahip
	adminRoutes.Post("/factory-reset", auth.RequireRole(models.RoleOwner), backups.FactoryResetHandler())

	log.Info().Str("port", cfg.HTTPPort).Msg("server çalışıyor")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("server durdu")
	}
}
