package testkit

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"golang.org/x/sync/errgroup"
)

// Suite manages the lifecycle of the Postgres and Redis containers shared by
// the integration tests.
type Suite struct {
	mu    sync.Mutex
	cfg   Config
	pg    *PostgresModule
	redis *RedisModule
	ready bool
}

var (
	globalSuite *Suite
	globalOnce  sync.Once
)

// Global returns the singleton Suite instance.
func Global() *Suite {
	globalOnce.Do(func() {
		globalSuite = &Suite{cfg: LoadConfig()}
	})
	return globalSuite
}

// Setup starts all required containers (or uses external overrides).
// Returns an error if called twice without Shutdown in between.
func (s *Suite) Setup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return fmt.Errorf("suite already set up; call Shutdown first")
	}

	var (
		pg  *PostgresModule
		rdb *RedisModule
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if pg, err = StartPostgres(gctx, &s.cfg); err != nil {
			return fmt.Errorf("setup postgres: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if rdb, err = StartRedis(gctx, &s.cfg); err != nil {
			return fmt.Errorf("setup redis: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		// Clean up whichever container did start.
		if !s.cfg.KeepContainers {
			if pg != nil {
				_ = pg.Terminate(ctx)
			}
			if rdb != nil {
				_ = rdb.Terminate(ctx)
			}
		}
		return err
	}

	s.pg = pg
	s.redis = rdb
	s.ready = true
	return nil
}

// Shutdown terminates all containers unless KEEP_CONTAINERS is set.
func (s *Suite) Shutdown(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ready {
		return
	}

	if s.cfg.KeepContainers {
		fmt.Println("KEEP_CONTAINERS=true, skipping container cleanup")
		if s.pg != nil {
			fmt.Println("  Postgres DSN:", s.pg.DSN())
		}
		if s.redis != nil {
			fmt.Println("  Redis Addr:", s.redis.Addr())
		}
		s.ready = false
		return
	}

	if s.redis != nil {
		if err := s.redis.Terminate(ctx); err != nil {
			fmt.Println("warning: failed to terminate redis container:", err)
		}
	}
	if s.pg != nil {
		if err := s.pg.Terminate(ctx); err != nil {
			fmt.Println("warning: failed to terminate postgres container:", err)
		}
	}
	s.ready = false
}

// Postgres returns the running Postgres module, or nil before Setup.
func (s *Suite) Postgres() *PostgresModule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pg
}

// Redis returns the running Redis module, or nil before Setup.
func (s *Suite) Redis() *RedisModule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.redis
}

// Run sets up the suite, calls optional afterSetup callbacks (opening the
// migrated database, connecting Redis), executes tests, then shuts down.
// Intended for use in TestMain.
func (s *Suite) Run(m *testing.M, afterSetup ...func() error) {
	ctx := context.Background()

	if err := s.Setup(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "integration test setup failed: %v\n", err)
		os.Exit(1)
	}

	for _, fn := range afterSetup {
		if err := fn(); err != nil {
			fmt.Fprintf(os.Stderr, "afterSetup callback failed: %v\n", err)
			s.Shutdown(ctx)
			os.Exit(1)
		}
	}

	code := m.Run()

	s.Shutdown(ctx)
	os.Exit(code)
}

// Run is a package-level convenience that delegates to Global().Run.
// For a custom Suite instance, call the method directly: suite.Run(m, ...).
func Run(m *testing.M, afterSetup ...func() error) {
	Global().Run(m, afterSetup...)
}
