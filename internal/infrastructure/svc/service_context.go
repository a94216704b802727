package svc

import (
	"context"
	"fmt"
	"net/http"
	"time"

	redisclient "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"threecommas/internal/application/port"
	"threecommas/internal/application/service"
	"threecommas/internal/infrastructure/config"
	"threecommas/internal/infrastructure/exchange/threecommas"
	"threecommas/internal/infrastructure/metrics"
	"threecommas/internal/infrastructure/storage"
	"threecommas/internal/infrastructure/storage/composite"
	postgresrepo "threecommas/internal/infrastructure/storage/postgres"
	redisrepo "threecommas/internal/infrastructure/storage/redis"
	sqliterepo "threecommas/internal/infrastructure/storage/sqlite"
	"threecommas/internal/interfaces/console"
)

type ServiceContext struct {
	Ctx    context.Context
	Config *config.Config

	// 基础设施层
	Journal port.CallJournal
	Metrics *metrics.Collector
	Client  *threecommas.Client

	// 输出端口
	Sink port.Sink

	// 资源管理
	closerChain []func() error
}

// Option 调整 ServiceContext 的构建（测试时注入 http client / sink）
type Option func(*ServiceContext, *[]threecommas.Option)

// WithHTTPClient replaces the client's transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(_ *ServiceContext, opts *[]threecommas.Option) {
		*opts = append(*opts, threecommas.WithHTTPClient(hc))
	}
}

// WithSink replaces the console sink.
func WithSink(sink port.Sink) Option {
	return func(sc *ServiceContext, _ *[]threecommas.Option) {
		sc.Sink = sink
	}
}

// New 创建并初始化 ServiceContext
// 顺序：存储 → 指标 → 客户端（hooks 依赖前两者）
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*ServiceContext, error) {
	sc := &ServiceContext{
		Ctx:         ctx,
		Config:      cfg,
		Sink:        console.NewSink(),
		closerChain: make([]func() error, 0),
	}

	if err := sc.initializeStorage(); err != nil {
		_ = sc.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageInitFailed, err)
	}

	sc.Metrics = metrics.NewCollector()

	clientOpts := []threecommas.Option{
		threecommas.WithTimeout(time.Duration(cfg.API.TimeoutSec) * time.Second),
		threecommas.WithHooks(service.NewJournalHook(sc.Journal), sc.Metrics),
	}
	for name, path := range cfg.Routes {
		clientOpts = append(clientOpts, threecommas.WithRoute(name, path))
	}
	for _, opt := range opts {
		opt(sc, &clientOpts)
	}

	if cfg.API.V2 {
		sc.Client = threecommas.NewClientV2(cfg.API.BaseURL, cfg.API.APIKey, cfg.API.APISecret, clientOpts...)
	} else {
		sc.Client = threecommas.NewClient(cfg.API.BaseURL, cfg.API.APIKey, cfg.API.APISecret, clientOpts...)
	}

	if !cfg.HasCredentials() {
		log.Warn().Msg("api key or secret not configured, signed calls will fail")
	}

	log.Info().
		Str("base_url", sc.Client.BaseURL()).
		Bool("v2", cfg.API.V2).
		Int("routes", len(sc.Client.Routes())).
		Msg("✓ client initialized")

	return sc, nil
}

// initializeStorage 按配置初始化 journal 后端 (SQLite / Postgres / Redis)
func (sc *ServiceContext) initializeStorage() error {
	var journals []port.CallJournal

	if sc.Config.Journal.SQLite.Enabled {
		repo, err := sc.initSQLite()
		if err != nil {
			return fmt.Errorf("sqlite initialization failed: %w", err)
		}
		journals = append(journals, repo)
	}

	if sc.Config.Journal.Postgres.Enabled {
		repo, err := sc.initPostgres()
		if err != nil {
			return fmt.Errorf("postgres initialization failed: %w", err)
		}
		journals = append(journals, repo)
	}

	if sc.Config.Journal.Redis.Enabled {
		repo, err := sc.initRedis()
		if err != nil {
			return fmt.Errorf("redis initialization failed: %w", err)
		}
		journals = append(journals, repo)
	}

	switch len(journals) {
	case 0:
		sc.Journal = storage.NewNoopJournal()
	case 1:
		sc.Journal = journals[0]
	default:
		sc.Journal = composite.New(journals...)
	}
	return nil
}

// initSQLite 初始化 SQLite 数据库
func (sc *ServiceContext) initSQLite() (*sqliterepo.Repo, error) {
	repo, err := sqliterepo.New(sc.Config.Journal.SQLite.Path)
	if err != nil {
		return nil, err
	}

	sc.closerChain = append(sc.closerChain, func() error {
		log.Info().Msg("closing sqlite connection")
		return repo.Close()
	})

	log.Info().
		Str("path", sc.Config.Journal.SQLite.Path).
		Msg("✓ SQLite initialized")
	return repo, nil
}

// initPostgres 初始化 Postgres 连接
func (sc *ServiceContext) initPostgres() (*postgresrepo.Repo, error) {
	repo, err := postgresrepo.New(sc.Config.Journal.Postgres.DSN)
	if err != nil {
		return nil, err
	}

	sc.closerChain = append(sc.closerChain, func() error {
		log.Info().Msg("closing postgres connection")
		return repo.Close()
	})

	log.Info().Msg("✓ Postgres initialized")
	return repo, nil
}

// initRedis 初始化 Redis 连接
func (sc *ServiceContext) initRedis() (*redisrepo.Repo, error) {
	rc := sc.Config.Journal.Redis
	rdb := redisclient.NewClient(&redisclient.Options{
		Addr:     rc.Addr,
		Password: rc.Password,
		DB:       rc.DB,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(sc.Ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	repo := redisrepo.New(
		rdb,
		rc.Prefix,
		rc.Stream,
		rc.Channel,
		rc.MaxLen,
		time.Duration(rc.TTLSeconds)*time.Second,
	)

	sc.closerChain = append(sc.closerChain, func() error {
		log.Info().Msg("closing redis connection")
		return rdb.Close()
	})

	log.Info().
		Str("addr", rc.Addr).
		Int("db", rc.DB).
		Msg("✓ Redis initialized")
	return repo, nil
}

// NewStream 使用配置中的 ws_url 创建推送订阅
func (sc *ServiceContext) NewStream() *threecommas.Stream {
	return sc.Client.NewStream(sc.Config.Stream.WsURL)
}

// NewStreamService 事件同时计入指标并输出到 Sink
func (sc *ServiceContext) NewStreamService() *service.StreamService {
	return service.NewStreamService(sc.Sink, sc.Metrics)
}

// Close 按照相反的顺序关闭所有资源
func (sc *ServiceContext) Close() error {
	for i := len(sc.closerChain) - 1; i >= 0; i-- {
		if err := sc.closerChain[i](); err != nil {
			log.Error().Err(err).Msg("error closing resource")
		}
	}
	sc.closerChain = nil
	return nil
}
