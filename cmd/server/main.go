package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/semla/internal/app"
	"github.com/shrimpsizemoose/semla/internal/handlers"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	// .env may override the config path in container setups
	_ = godotenv.Load()
	if env := os.Getenv("SEMLA_CONFIG"); env != "" {
		*configPath = env
	}

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to load config: %v", err)
	}
	defer service.Teardown()

	if err := service.Init(); err != nil {
		logger.Error.Fatalf("Failed to init platform state: %v", err)
	}

	platform := handlers.NewPlatformHandler(service)

	http.HandleFunc("POST /api/v1/auth/login", platform.HandleLogin)
	http.HandleFunc("POST /api/v1/auth/logout", platform.HandleLogout)
	http.HandleFunc("GET /api/v1/auth/session", platform.HandleSession)
	http.HandleFunc("POST /api/v1/accounts", platform.HandleRegister)
	http.HandleFunc("GET /api/v1/accounts", platform.HandleListAccounts)
	http.HandleFunc("POST /api/v1/accounts/{id}/approve", platform.HandleApprove)
	http.HandleFunc("DELETE /api/v1/accounts/{id}", platform.HandleRemove)
	http.HandleFunc("POST /api/v1/courses", platform.HandlePublish)
	http.HandleFunc("DELETE /api/v1/courses/{id}", platform.HandleUnpublish)
	http.HandleFunc("GET /api/v1/courses", platform.HandleListCourses)
	http.HandleFunc("POST /api/v1/enroll", platform.HandleEnroll)
	http.HandleFunc("GET /api/v1/results", platform.HandleListResults)
	http.HandleFunc("GET /api/v1/stats", platform.HandleStats)
	http.HandleFunc("POST /api/v1/protection/key", platform.HandleProtectionKey)
	http.HandleFunc("POST /api/v1/protection/visibility", platform.HandleProtectionVisibility)

	http.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Starting semla platform on %s", service.Config.Server.Port)
	if err := http.ListenAndServe(service.Config.Server.Port, nil); err != nil {
		logger.Error.Fatalf("Semla server failed: %v", err)
	}
}
