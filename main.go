package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"erp_backend/internals/configs"
	database "erp_backend/internals/databases"
	"erp_backend/internals/features/base"
	"erp_backend/internals/helpers/dbtime"
	"erp_backend/internals/helpers/oss"
	"erp_backend/internals/helpers/session"
	middlewares "erp_backend/internals/middlewares"
	routes "erp_backend/internals/route"
	"erp_backend/internals/seeds"
)

var version = "dev"

func main() {
	configs.LoadEnv()
	configs.InitLogger()
	dbtime.SetLocation(configs.GetEnv("APP_TIMEZONE", "UTC"))
	configs.InitRollbar(version)
	defer configs.FlushReports()

	app := routes.NewApp()
	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	if configs.GetBool("DB_AUTO_MIGRATE") {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatal().Err(err).Msg("auto-migrate failed")
		}
	}
	if path := configs.GetEnv("DB_SEED_FILE"); path != "" {
		if err := seeds.RunAllSeeds(database.DB, path); err != nil {
			log.Fatal().Err(err).Msg("seeding failed")
		}
	}

	rdb := database.ConnectRedis()
	if rdb != nil {
		defer rdb.Close()
	}

	deps := base.Deps{
		DB:       database.DB,
		Sessions: session.New(rdb, configs.GetDuration("SESSION_EXPIRY")),
		Blob:     oss.NewBlobServiceFromEnv(),
	}
	routes.SetupRoutes(app, deps, configs.JWTSecret)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		log.Info().Str("port", port).Msg("✅ listening")
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	database.Close(database.DB)
}
