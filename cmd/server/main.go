package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"alumnihub/portal/internal/api"
	"alumnihub/portal/internal/config"
	"alumnihub/portal/internal/db"
	"alumnihub/portal/internal/logging"
	"alumnihub/portal/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("portal starting up",
		"environment", cfg.AppEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	dsn := cfg.PostgresDSN()

	if err := db.InitSqlx(dsn); err != nil {
		logging.Fatal("failed to connect to Postgres (sqlx)", "error", err.Error())
	}
	logging.Info("connected to Postgres (sqlx)")

	db.Configure(dsn)
	gormDB, err := db.Get()
	if err != nil {
		logging.Fatal("failed to connect to Postgres (GORM)", "error", err.Error())
	}
	logging.Info("connected to Postgres (GORM)")

	if err := db.Migrate(gormDB); err != nil {
		logging.Fatal("failed to migrate schema", "error", err.Error())
	}

	deps, err := api.InitDependencies(cfg)
	if err != nil {
		logging.Fatal("failed to initialize dependencies", "error", err.Error())
	}
	defer deps.Invalidator.Close()

	upSince := time.Now()
	router := routes.RegisterRoutes(cfg, deps, upSince)

	logging.Info("server starting", "port", cfg.Port, "environment", cfg.AppEnv)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		logging.Fatal("server exited", "error", err.Error())
	}
}
