package main

import (
	"context"
	"os"

	"github.com/99minutos/todo-list/internal/app"
	"github.com/99minutos/todo-list/internal/pkg/config"
	"github.com/99minutos/todo-list/pkg/logger"
)

// @title        Todo List
// @version      1.0
// @description  Multi-user todo list with server-rendered pages.
// @host         localhost:8080
// @BasePath     /
func main() {
	cfg, err := config.Load(context.Background())
	if err != nil {
		l := logger.Init(logger.Options{Pretty: true})
		l.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "todo-list",
	})

	if err := app.Run(cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
