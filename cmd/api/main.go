package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/zulucoding5223-stack/slice-stack-app/internal/bootstrap"
	"github.com/zulucoding5223-stack/slice-stack-app/internal/routes"
)

func main() {
	app, cleanup, err := bootstrap.Init("config.yaml")
	if err != nil {
		log.Fatalf("failed to bootstrap: %v", err)
	}
	sugar := app.Sugar

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 15*time.Second)
	if err := app.SeedOwner(seedCtx); err != nil {
		cancelSeed()
		sugar.Fatalf("Owner seeding failed: %v", err)
	}
	cancelSeed()

	srv := fiber.New(fiber.Config{
		ReadTimeout:  app.Config.App.ReadTimeout,
		WriteTimeout: app.Config.App.WriteTimeout,
		IdleTimeout:  app.Config.App.IdleTimeout,
	})

	srv.Use(cors.New())

	// Simple Zap logging middleware
	srv.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)
		status := c.Response().StatusCode()
		if err != nil {
			app.Logger.Error("HTTP Request Error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", status),
				zap.Duration("latency", latency),
				zap.Error(err),
			)
			return err
		}
		app.Logger.Info("HTTP Request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", status),
			zap.Duration("latency", latency),
		)
		return nil
	})

	srv.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.Setup(srv, app.Handler, app.Tokens)

	go func() {
		listenAddr := fmt.Sprintf(":%d", app.Config.App.Port)
		sugar.Infof("Server listening on %s", listenAddr)
		if err := srv.Listen(listenAddr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.ShutdownWithContext(ctxShut); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	cleanup(ctxShut)

	sugar.Info("Graceful shutdown complete. Goodbye!")
}
