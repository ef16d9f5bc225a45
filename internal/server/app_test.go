package server

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/toursite/internal/server/config"
)

func sqliteConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDriver = config.DriverSQLite
	c.DatabaseDSN = "file:app_test?mode=memory&cache=shared"
	c.HTTPAddr = "127.0.0.1:0"
	c.GRPCAddr = "127.0.0.1:0"
	c.ShutdownTimeout = time.Second
	c.LogLevel = "error"
	return c
}

func TestNewApp_UnknownDriver(t *testing.T) {
	c := sqliteConfig()
	c.DatabaseDriver = "oracle"

	_, err := NewApp(context.Background(), c)
	assert.ErrorContains(t, err, "db init error")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), sqliteConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop after cancel")
	}
}

func TestNewApp_GivesUpOnUnreachableDatabase(t *testing.T) {
	orig := dbBackoff
	attempts := 0
	dbBackoff = func() retry.Backoff {
		b := retry.WithMaxRetries(2, retry.NewConstant(time.Millisecond))
		return retry.BackoffFunc(func() (time.Duration, bool) {
			attempts++
			return b.Next()
		})
	}
	t.Cleanup(func() { dbBackoff = orig })

	c := sqliteConfig()
	c.DatabaseDriver = config.DriverPostgres
	c.DatabaseDSN = "postgres://u:p@127.0.0.1:1/toursite?sslmode=disable&connect_timeout=1"

	_, err := NewApp(context.Background(), c)
	assert.ErrorContains(t, err, "db init error")
	assert.Equal(t, 3, attempts)
}
