package main

import (
	"context"
	"flag"
	"os"

	"github.com/urbancabz/booking-system/config"
	_ "github.com/urbancabz/booking-system/docs"
	"github.com/urbancabz/booking-system/internal/app"
	"github.com/urbancabz/booking-system/pkg/logger"
)

var (
	helpFlag   = flag.Bool("help", false, "Show help message")
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
)

// @title           UrbanCabz Booking System API
// @version         1.0
// @description     Fare quoting, online checkout and dispatch management for an outstation cab fleet.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	flag.Parse()
	if *helpFlag {
		config.PrintHelp()
		return
	}

	ctx := context.Background()
	log := logger.InitLogger("booking-system", logger.LevelDebug)

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log.Error(ctx, "failed to configure application", err)
		config.PrintHelp()
		return
	}

	log = logger.InitLogger("booking-system", cfg.Log.Level)

	application, err := app.NewApplication(ctx, *cfg, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		log.Error(ctx, "application stopped with error", err)
		os.Exit(1)
	}
}
