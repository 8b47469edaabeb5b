package main

import (
	"flag"
	"fmt"
	"os"

	"kalma/config"
	"kalma/database"
	"kalma/server"

	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

func main() {
	commandFlag := flag.String("command", "start", "Command to run: start, migrate or reset")
	flag.Parse()

	if *commandFlag == "" {
		fmt.Println("Usage: kalma --command <start|migrate|reset>")
		os.Exit(1)
	}

	cfg := config.Load()
	server.InitLogger()

	switch *commandFlag {
	case "start":
		server.StartServer(cfg)
	case "migrate":
		dbConn := database.InitializeDatabase(cfg.Database)
		dbConn.Close()
	case "reset":
		dbConn := database.InitializeDatabase(cfg.Database)
		defer dbConn.Close()
		if err := database.Reset(dbConn); err != nil {
			logger.Error("Reset failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("Database reset", zap.String("driver", cfg.Database.Driver))
	default:
		fmt.Printf("Unknown command %q\n", *commandFlag)
		os.Exit(1)
	}
}
