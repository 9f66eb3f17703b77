package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mvasconcelos/horaculo/internal/adapters/ai"
	"github.com/mvasconcelos/horaculo/internal/adapters/database"
	"github.com/mvasconcelos/horaculo/internal/adapters/redis"
	"github.com/mvasconcelos/horaculo/internal/adapters/telegram"
	"github.com/mvasconcelos/horaculo/internal/analysis"
	"github.com/mvasconcelos/horaculo/internal/cache"
	"github.com/mvasconcelos/horaculo/internal/config"
	"github.com/mvasconcelos/horaculo/internal/embeddings"
	"github.com/mvasconcelos/horaculo/internal/ingest"
	"github.com/mvasconcelos/horaculo/internal/memory"
	"github.com/mvasconcelos/horaculo/internal/pipeline"
	"github.com/mvasconcelos/horaculo/pkg/logger"
	_ "github.com/lib/pq"
)

func main() {
	crypto := flag.Bool("crypto", false, "run the crypto satellite (argument is an asset symbol)")
	local := flag.Bool("local", false, "skip the strategic LLM summary, use the local fallback")
	trust := flag.String("trust", "", "register a trusted source and exit")
	trustWeight := flag.Float64("weight", 0.95, "weight for -trust")
	flag.Parse()

	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := run(ctx, flag.Arg(0), *crypto, !*local, *trust, *trustWeight); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, query string, crypto, useLLM bool, trust string, trustWeight float64) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := initDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := memory.NewSQLStore(db.DB())
	if err != nil {
		return fmt.Errorf("failed to initialize memory store: %w", err)
	}

	if trust != "" {
		if err := store.AddTrustedSource(ctx, trust, trustWeight); err != nil {
			return fmt.Errorf("failed to add trusted source: %w", err)
		}
		logger.Info("trusted source registered",
			zap.String("source", trust),
			zap.Float64("weight", trustWeight),
		)
		return nil
	}

	if query == "" {
		return fmt.Errorf("usage: horaculo [-crypto] [-local] <query>")
	}

	if cfg.AI.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required for embeddings")
	}

	// Initialize KV store and locking
	kv, locker := initRedis(cfg)
	if c, ok := kv.(*redis.Client); ok {
		defer c.Close()
	}

	embedder := embeddings.NewCache(kv, embeddings.NewClient(cfg.AI.OpenAIKey, cfg.AI.EmbeddingModel))
	classifier := analysis.NewLexiconClassifier()

	if crypto {
		return runCrypto(ctx, query, embedder, classifier)
	}

	var results pipeline.ResultCache
	if kv != nil {
		results = cache.NewResults(kv)
	}

	var summarizer pipeline.Summarizer
	if useLLM {
		summarizer = ai.NewSummarizer(cfg.AI.OpenAIKey, cfg.AI.SummaryModel)
	}

	var alerts pipeline.Alerter
	if cfg.Telegram.AlertsEnabled() {
		notifier, err := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			logger.Error("failed to create telegram notifier", zap.Error(err))
		} else {
			alerts = notifier
		}
	}

	coordinator := ingest.NewCoordinator(
		ingest.DefaultTier1(cfg.News.APIKey, cfg.News.PageSize),
		ingest.DefaultTier2(),
	)

	p := pipeline.New(coordinator, embedder, classifier, store, locker, results, summarizer, alerts)

	result, err := p.RunQuery(ctx, query, useLLM)
	if err != nil {
		if errors.Is(err, pipeline.ErrNoData) || errors.Is(err, pipeline.ErrFiltered) {
			return printJSON(map[string]string{"error": err.Error()})
		}
		return err
	}

	return printJSON(result)
}

func runCrypto(ctx context.Context, asset string, embedder pipeline.Embedder, classifier analysis.Classifier) error {
	satellite := pipeline.NewCryptoSatellite(embedder, classifier)
	result, err := satellite.RunAnalysis(ctx, asset)
	if err != nil {
		return err
	}
	return printJSON(result)
}

// initDatabase initializes the durable store and runs migrations
func initDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Migrate("./migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("database ready", zap.String("driver", db.Driver()))
	return db, nil
}

// initRedis connects the shared KV store. Without Redis the caches are
// disabled and reputation locking falls back to in-process mutexes.
func initRedis(cfg *config.Config) (embeddings.KV, memory.KeyLocker) {
	if cfg.Redis.URL == "" {
		logger.Warn("redis not configured, caching disabled")
		return nil, memory.NewLocalLocker()
	}

	client, err := redis.New(cfg.Redis.URL)
	if err != nil {
		logger.Warn("redis unavailable, caching disabled", zap.Error(err))
		return nil, memory.NewLocalLocker()
	}

	return client, client
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
