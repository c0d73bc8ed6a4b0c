package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/techmaster-vietnam/goerrorkit"
	"github.com/techmaster-vietnam/kidsenglish"
	"github.com/techmaster-vietnam/kidsenglish/cache"
	"github.com/techmaster-vietnam/kidsenglish/config"
	"github.com/techmaster-vietnam/kidsenglish/database"
)

func main() {
	// 0. Load .env file
	if err := godotenv.Load(); err != nil {
		_ = goerrorkit.WrapWithMessage(err, "Warning: .env file not found, using environment variables")
	}

	// 1. Initialize goerrorkit logger
	goerrorkit.InitLogger(goerrorkit.LoggerOptions{
		ConsoleOutput: true,
		FileOutput:    true,
		FilePath:      "logs/errors.log",
		JSONFormat:    true,
		MaxFileSize:   10,
		MaxBackups:    5,
		MaxAge:        30,
		LogLevel:      "info",
	})

	// 2. Configure stack trace for this application
	goerrorkit.ConfigureForApplication("main")

	// 3. Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(goerrorkit.NewSystemError(err))
	}

	// 4. Connect to database
	db, err := database.Open(cfg.Database)
	if err != nil {
		panic(goerrorkit.NewSystemError(err).
			WithData(map[string]interface{}{
				"driver":   cfg.Database.Driver,
				"host":     cfg.Database.Host,
				"port":     cfg.Database.Port,
				"database": cfg.Database.Name,
			}))
	}

	// 5. Optional Redis principal cache
	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.New(context.Background(), cfg.Cache.RedisAddr)
		if err != nil {
			panic(goerrorkit.WrapWithMessage(err, "Failed to connect to Redis").
				WithData(map[string]interface{}{
					"addr": cfg.Cache.RedisAddr,
				}))
		}
		defer redisClient.Close()
	}

	// 6. Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "KidsEnglish API",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	// 7. Add middleware (RequestID must be before ErrorHandler)
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(goerrorkit.FiberErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	// 8. Build kit (migrations run inside Initialize)
	builder := kidsenglish.New(app, db).WithConfig(cfg)
	if redisClient != nil {
		builder = builder.WithRedis(redisClient)
	}
	kit, err := builder.Initialize()
	if err != nil {
		panic(goerrorkit.NewSystemError(err).
			WithData(map[string]interface{}{
				"operation": "initialize",
			}))
	}

	// 9. Seed roles and bootstrap super admin
	if err := database.Seed(db, cfg); err != nil {
		panic(goerrorkit.WrapWithMessage(err, "Failed to seed initial data").
			WithData(map[string]interface{}{
				"operation": "seed_data",
			}))
	}

	// 10. Register routes
	kit.RegisterRoutes()

	// 11. Start server, shut down on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		panic(goerrorkit.NewSystemError(err))
	}
}
