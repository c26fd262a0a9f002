package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/ahmedsaheb/duty-roster-bot/internal/config"
	"github.com/ahmedsaheb/duty-roster-bot/internal/database"
	"github.com/ahmedsaheb/duty-roster-bot/internal/domain/service"
	"github.com/ahmedsaheb/duty-roster-bot/internal/handlers"
	"github.com/ahmedsaheb/duty-roster-bot/internal/scheduler"
	"github.com/ahmedsaheb/duty-roster-bot/internal/transport/telegram"
	"github.com/ahmedsaheb/duty-roster-bot/migrator/sqlite"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN environment variable is required")
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := sqlite.Migrate(db.DB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram client: %v", err)
	}
	log.Printf("Authorized as @%s", api.Self.UserName)

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		log.Fatalf("Failed to load timezone %q: %v", cfg.TimeZone, err)
	}

	transport := telegram.New(api, cfg.OwnerID)
	dm := database.NewInstance(db)
	services := service.NewInstance(dm, transport, loc)

	handler := handlers.New(api, dm, services, transport, loc, cfg.OwnerID, cfg.AllowAnyoneUpload)
	go handler.Run()

	sched := scheduler.New(services)
	sched.Start()
	defer sched.Stop()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	// manual trigger, same semantics as one scheduler tick
	mux.HandleFunc("/tick", func(w http.ResponseWriter, r *http.Request) {
		result := services.Poster.Tick()
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			log.Printf("Failed to encode tick result: %v", err)
		}
	})

	server := &http.Server{Addr: ":" + cfg.Port, Handler: mux}
	go func() {
		log.Printf("HTTP server listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	if err := server.Close(); err != nil {
		log.Printf("Failed to close HTTP server: %v", err)
	}
}
