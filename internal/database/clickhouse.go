package database

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/rs/zerolog/log"

	"github.com/your-username/game-event-analytics/internal/cache"
	"github.com/your-username/game-event-analytics/internal/config"
	"github.com/your-username/game-event-analytics/internal/models"
)

// DB holds one native-protocol connection per platform. A platform whose
// connection cannot be established at startup is skipped; analysis against
// it fails with a ConnectionError while the other platform keeps working.
type DB struct {
	conns   map[models.Platform]driver.Conn
	timeout time.Duration
	results *cache.ResultCache
	events  *cache.ResultCache
}

func New(cfg config.DatabaseConfig, cacheCfg config.CacheConfig) (*DB, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)

	conns := make(map[models.Platform]driver.Conn)
	for _, platform := range models.Platforms {
		conn, err := open(addr, cfg)
		if err != nil {
			log.Error().Err(err).Str("platform", string(platform)).Msg("Failed to connect to ClickHouse")
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = conn.Ping(ctx)
		cancel()
		if err != nil {
			log.Error().Err(err).Str("platform", string(platform)).Msg("ClickHouse ping failed")
			_ = conn.Close()
			continue
		}

		log.Info().Str("addr", addr).Str("platform", string(platform)).Msg("Connected to ClickHouse")
		conns[platform] = conn
	}

	if len(conns) == 0 {
		return nil, fmt.Errorf("no ClickHouse connection could be established for any platform")
	}

	store := cache.NewMemoryCache(cacheCfg.MaxEntries)
	return &DB{
		conns:   conns,
		timeout: cfg.QueryTimeout,
		results: cache.NewResultCache(store, cacheCfg.ResultTTL),
		events:  cache.NewResultCache(store, cacheCfg.EventsTTL),
	}, nil
}

func open(addr string, cfg config.DatabaseConfig) (driver.Conn, error) {
	opts := &clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Username: cfg.Username,
			Password: cfg.Password,
		},
		DialTimeout: 10 * time.Second,
	}
	if cfg.Secure {
		opts.TLS = &tls.Config{}
	}
	return clickhouse.Open(opts)
}

// Connected reports whether a platform has a live connection.
func (db *DB) Connected(platform models.Platform) bool {
	_, ok := db.conns[platform]
	return ok
}

func (db *DB) conn(platform models.Platform) (driver.Conn, error) {
	conn, ok := db.conns[platform]
	if !ok {
		return nil, &ConnectionError{Platform: platform, Err: fmt.Errorf("no connection established")}
	}
	return conn, nil
}

// Health pings every live connection.
func (db *DB) Health(ctx context.Context) error {
	for platform, conn := range db.conns {
		if err := conn.Ping(ctx); err != nil {
			return &ConnectionError{Platform: platform, Err: err}
		}
	}
	return nil
}

func (db *DB) Close() error {
	for _, conn := range db.conns {
		_ = conn.Close()
	}
	return nil
}
