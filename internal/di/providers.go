package di

import (
	"context"
	"fmt"

	"InvestGuide/internal/catalog"
	"InvestGuide/internal/domain/models"
	"InvestGuide/internal/domain/repository"
	"InvestGuide/internal/handler/api"
	internalrepo "InvestGuide/internal/repository"
	"InvestGuide/internal/service/llm"
	"InvestGuide/internal/service/transcript"
	"InvestGuide/internal/session"
	"InvestGuide/internal/usecase"
	"InvestGuide/pkg/cache"
	pkgch "InvestGuide/pkg/clickhouse"
	"InvestGuide/pkg/config"
	pkgkafka "InvestGuide/pkg/kafka"
	xlogger "InvestGuide/pkg/logger"
	"InvestGuide/pkg/metrics"
	"InvestGuide/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*xlogger.Logger, error) {
	return xlogger.New(&xlogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideCatalog loads the strategy catalog. Failure here is fatal: the
// service cannot run without it.
func ProvideCatalog(cfg *config.Config) ([]models.StrategyRecord, error) {
	records, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return records, nil
}

// ProvideSessionCache creates the cache backend for session storage.
func ProvideSessionCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Backend {
	case "memory":
		opts := []cache.MemoryOption{}
		if cfg.Cache.MemoryMaxSize > 0 {
			opts = append(opts, cache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize))
		}
		return cache.NewMemoryCache(opts...), nil
	case "redis":
		return newRedisCache(cfg)
	case "layered":
		rc, err := newRedisCache(cfg)
		if err != nil {
			return nil, err
		}
		return cache.NewLayeredCache(rc, cache.WithLayeredMemorySize(cfg.Cache.MemoryMaxSize)), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func newRedisCache(cfg *config.Config) (*cache.RedisCache, error) {
	opts := []cache.RedisOption{
		cache.WithRedisHost(cfg.Cache.Redis.Host),
		cache.WithRedisPort(cfg.Cache.Redis.Port),
		cache.WithRedisPassword(cfg.Cache.Redis.Password),
		cache.WithRedisDB(cfg.Cache.Redis.DB),
	}
	if cfg.Cache.Redis.Prefix != "" {
		opts = append(opts, cache.WithRedisPrefix(cfg.Cache.Redis.Prefix))
	}
	rc, err := cache.NewRedisCache(opts...)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return rc, nil
}

// ProvideSessionStore creates the cache-backed session store.
func ProvideSessionStore(cfg *config.Config, c cache.Service) *session.Store {
	return session.NewStore(c, cfg.Session.TTL, cfg.Session.MaxRounds)
}

// ProvideGenerator creates the text-generation client.
func ProvideGenerator(cfg *config.Config) (llm.Generator, error) {
	return llm.NewClient(llm.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRoundPublisher creates the Kafka round publisher, or a no-op when
// the events channel is disabled.
func ProvideRoundPublisher(cfg *config.Config) (repository.Publisher, error) {
	if !cfg.Events.Enabled {
		return internalrepo.NoopPublisher{}, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Events.Brokers),
		pkgkafka.WithCompression(cfg.Events.Compression),
		pkgkafka.WithRequiredAcks(cfg.Events.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Events.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Events.WriteTimeout, cfg.Events.ReadTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	return internalrepo.NewKafkaRoundPublisher(producer, cfg.Events.Topic), nil
}

// ProvideRoundArchiver creates the ClickHouse round archiver, or a no-op
// when the archive is disabled.
func ProvideRoundArchiver(cfg *config.Config) (repository.Archiver, error) {
	if !cfg.Archive.Enabled {
		return internalrepo.NoopArchiver{}, nil
	}

	ch := cfg.Archive.ClickHouse
	client, err := pkgch.NewClient(
		pkgch.WithHost(ch.Host),
		pkgch.WithPort(ch.Port),
		pkgch.WithDatabase(ch.Database),
		pkgch.WithCredentials(ch.User, ch.Password),
		pkgch.WithTimeouts(ch.DialTimeout, ch.ReadTimeout, ch.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), ch.DialTimeout)
	defer cancel()
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS investguide",
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (session_id String, round UInt8, top_strategy String, top_score UInt8, risk_tolerance String, horizon String, knowledge_level String, recommendation String, created_at DateTime) ENGINE=MergeTree ORDER BY (session_id, round)", cfg.Archive.Table),
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return internalrepo.NewClickHouseRoundArchiver(client.DB(), cfg.Archive.Table), nil
}

// ProvideAdvisor creates the advisory use case.
func ProvideAdvisor(
	cfg *config.Config,
	records []models.StrategyRecord,
	store *session.Store,
	gen llm.Generator,
	pub repository.Publisher,
	arch repository.Archiver,
	m repository.Metrics,
	logger *xlogger.Logger,
) *usecase.Advisor {
	return usecase.NewAdvisor(records, store, gen, pub, arch, m, logger, cfg.Session.TopMatches)
}

// narrativeAppender bridges the transcript channel to the advisor.
type narrativeAppender struct {
	advisor *usecase.Advisor
}

func (n narrativeAppender) Append(ctx context.Context, sessionID, text string) error {
	_, err := n.advisor.AppendNarrative(ctx, sessionID, text)
	return err
}

// ProvideTranscriptChannel creates the websocket transcript ingest channel.
func ProvideTranscriptChannel(advisor *usecase.Advisor, logger *xlogger.Logger) *transcript.Channel {
	return transcript.NewChannel(narrativeAppender{advisor: advisor}, logger)
}

// ProvideAdvisorHandler creates the session-lifecycle HTTP handler.
func ProvideAdvisorHandler(logger *xlogger.Logger, advisor *usecase.Advisor, ch *transcript.Channel) *api.AdvisorEchoHandler {
	return api.NewAdvisorEchoHandler(logger, advisor, ch)
}

// ProvidePlanningHandler creates the stateless planning HTTP handler.
func ProvidePlanningHandler(advisor *usecase.Advisor) *api.PlanningEchoHandler {
	return api.NewPlanningEchoHandler(advisor)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	logger *xlogger.Logger,
	advisorH *api.AdvisorEchoHandler,
	planningH *api.PlanningEchoHandler,
	pub repository.Publisher,
	arch repository.Archiver,
	store cache.Service,
) *server.App {
	return server.New(cfg, logger, advisorH, planningH, pub, arch, store)
}
