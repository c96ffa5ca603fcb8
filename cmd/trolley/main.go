package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jdupreez/trolley/internal/api"
	"github.com/jdupreez/trolley/internal/config"
	"github.com/jdupreez/trolley/internal/handlers"
	"github.com/jdupreez/trolley/internal/repository/rest"
	"github.com/jdupreez/trolley/internal/session"
	"github.com/jdupreez/trolley/internal/telegram"
	"github.com/jdupreez/trolley/pkg/logger"
)

func main() {
	// Optional .env file for local development
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel)
	l.Info("Starting Trolley...")

	// Remote record store client and repositories
	client := rest.NewClient(cfg.APIBaseURL, l)
	userRepo := rest.NewUserRepository(client)
	listRepo := rest.NewShoppingListRepository(client)
	itemRepo := rest.NewItemRepository(client)

	// Session manager, restoring users signed in by a previous run
	sessionStore := session.NewStore(cfg.SessionFile, l)
	sessions := handlers.NewSessions(userRepo, listRepo, itemRepo, sessionStore, cfg.SearchDebounce, l)
	if err := sessions.Restore(); err != nil {
		l.Fatalf("Failed to restore sessions: %v", err)
	}

	// Telegram bot
	bot, err := telegram.NewBot(cfg.TelegramToken, l)
	if err != nil {
		l.Fatalf("Failed to create Telegram bot: %v", err)
	}

	// Register command handlers
	bot.RegisterCommand("start", handlers.NewStartHandler(l))
	bot.RegisterCommand("help", handlers.NewHelpHandler(l))

	// Account handlers
	bot.RegisterCommand("register", handlers.NewRegisterHandler(sessions, l))
	bot.RegisterCommand("login", handlers.NewLoginHandler(sessions, l))
	bot.RegisterCommand("logout", handlers.NewLogoutHandler(sessions, l))
	bot.RegisterCommand("profile", handlers.NewProfileHandler(sessions, l))

	// List handlers
	bot.RegisterCommand("lists", handlers.NewListsHandler(sessions, l))
	bot.RegisterCommand("newlist", handlers.NewNewListHandler(sessions, l))
	bot.RegisterCommand("renamelist", handlers.NewRenameListHandler(sessions, l))
	bot.RegisterCommand("dellist", handlers.NewDeleteListHandler(sessions, l))

	// Item handlers
	bot.RegisterCommand("additem", handlers.NewAddItemHandler(sessions, l))
	bot.RegisterCommand("edititem", handlers.NewEditItemHandler(sessions, l))
	bot.RegisterCommand("delitem", handlers.NewDeleteItemHandler(sessions, l))

	// View handlers
	bot.RegisterCommand("search", handlers.NewSearchHandler(sessions, l))
	bot.RegisterCommand("sort", handlers.NewSortHandler(sessions, l))
	bot.RegisterCommand("view", handlers.NewViewHandler(sessions, l))

	// Delete confirmation keyboard
	bot.RegisterCallback("delete", handlers.NewDeleteCallbackHandler(sessions, l))

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("Received shutdown signal...")
		cancel()
	}()

	// Status server: liveness + metrics
	statusServer := &http.Server{
		Addr:    ":" + cfg.MetricsPort,
		Handler: api.NewServer(l).Handler(),
	}

	go func() {
		l.Infof("Status server listening on :%s", cfg.MetricsPort)
		if err := statusServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Errorf("Status server error: %v", err)
		}
	}()

	// Start Telegram bot polling
	go func() {
		if err := bot.Start(ctx); err != nil {
			l.Errorf("Bot error: %v", err)
		}
	}()

	l.Info("Trolley started successfully")

	<-ctx.Done()

	l.Info("Shutting down status server...")
	statusServer.Close()

	l.Info("Trolley stopped")
}
