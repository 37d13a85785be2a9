package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/flashcard-quiz-bot/internal/config"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/infra/ai"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/infra/postgres"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/infra/redis"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/infra/sqlite"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/logger"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/repository"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/service"
	"github.com/aliskhannn/flashcard-quiz-bot/internal/storage"
)

// kvStore is a local key-value store that owns a connection.
type kvStore interface {
	repository.KVStore
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, err := openKVStore(ctx, cfg)
	if err != nil {
		lg.Fatal("failed to open local store", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer func() { _ = kv.Close() }()

	// Remote collection (optional).
	var remote repository.RemoteCollection
	if cfg.Remote.Enabled {
		dsn, err := cfg.Remote.DB.DSN()
		if err != nil {
			lg.Fatal("remote collection needs DATABASE_URL", zap.Error(err))
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.Remote.DB.MaxConnections),
			MaxConnLifetime: cfg.Remote.DB.MaxConnLifetime,
		})
		if err != nil {
			lg.Fatal("failed to connect to remote database", zap.Error(err))
		}
		defer pool.Close()

		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			lg.Fatal("failed to prepare remote schema", zap.Error(err))
		}

		remote = postgres.NewCollection(pool, postgres.NewTransactor(pool))
		lg.Info("remote collection enabled", zap.String("collection", cfg.Remote.Collection))
	}

	// Repositories and services.
	defaults := service.DefaultQuestions()

	var repoOpts []repository.FlashcardOption
	if remote != nil {
		repoOpts = append(repoOpts, repository.WithRemote(remote, cfg.Remote.Collection))
	}
	deck := repository.NewFlashcardRepository(kv, defaults, lg.Named("deck"), repoOpts...)

	source := service.NewQuestionSource(remote, cfg.Remote.Collection, deck, defaults, lg.Named("questions"))
	results := service.NewResultsRecorder(kv, lg.Named("results"))
	sessions := storage.NewSessionStorage()
	defer sessions.CloseAll()

	quizService := service.NewQuizService(source, results, sessions, service.QuizConfig{
		QuestionTime:            cfg.Quiz.QuestionTime,
		WrongAnswerDelay:        cfg.Quiz.WrongAnswerDelay,
		AllowRetreatAfterAnswer: cfg.Quiz.AllowRetreatAfterAnswer,
		Shuffle:                 cfg.Quiz.Shuffle,
	}, nil, lg.Named("quiz"))

	summaryService := service.NewSummaryService(results, deck, remote, cfg.Remote.Collection, len(defaults), lg.Named("summary"))

	var generator telegram.GeneratorService
	if cfg.AI.Enabled {
		client, err := newAIClient(cfg, lg.Named("ai"))
		if err != nil {
			lg.Fatal("failed to configure ai client", zap.Error(err))
		}
		generator = service.NewGenerator(client, deck, lg.Named("generator"))
	}

	if remote != nil {
		syncService := service.NewSyncService(source, deck, cfg.Sync.Schedule, lg.Named("sync"))
		go func() {
			if err := syncService.Start(ctx); err != nil {
				lg.Error("flashcard sync stopped", zap.Error(err))
			}
		}()

		go func() {
			if err := summaryService.Watch(ctx); err != nil {
				lg.Error("card count watch stopped", zap.Error(err))
			}
		}()
	}

	// Telegram.
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Debug

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Home screen"},
		{Command: "quiz", Description: "Start a quiz"},
		{Command: "list", Description: "Show your flashcards"},
		{Command: "add", Description: "Add a flashcard: question | options | answer"},
		{Command: "edit", Description: "Edit a flashcard: id question | options | answer"},
		{Command: "generate", Description: "Generate questions: topic [difficulty] [count]"},
		{Command: "fromtext", Description: "Generate questions from your notes"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	lg.Info("authorized", zap.String("account", bot.Self.UserName))

	handler := telegram.NewHandler(
		bot,
		lg.Named("telegram"),
		quizService,
		deck,
		generator,
		summaryService,
		storage.NewMessageStorage(),
		storage.NewGeneratedStorage(),
	)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler failed", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}

func openKVStore(ctx context.Context, cfg *config.Config) (kvStore, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.Storage.SQLite.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		}
		return sqlite.Open(ctx, cfg.Storage.SQLite.Path)
	case config.DriverRedis:
		return redis.NewStore(ctx, redis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
			Prefix:   cfg.Storage.Redis.Prefix,
		})
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.Storage.Driver)
	}
}

func newAIClient(cfg *config.Config, lg *zap.Logger) (service.QuestionGenerator, error) {
	switch cfg.AI.Provider {
	case config.ProviderHTTP:
		return ai.NewHTTPClient(cfg.AI.BaseURL, cfg.AI.Timeout, lg), nil
	case config.ProviderOpenAI:
		return ai.NewOpenAIClient(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.OpenAIBaseURL, cfg.AI.Timeout, lg), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownAIProvider, cfg.AI.Provider)
	}
}
