package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStats struct{}

func (fakeStats) AcquiredConns() int32     { return 3 }
func (fakeStats) IdleConns() int32         { return 2 }
func (fakeStats) TotalConns() int32        { return 5 }
func (fakeStats) MaxConns() int32          { return 25 }
func (fakeStats) AcquireCount() int64      { return 40 }
func (fakeStats) EmptyAcquireCount() int64 { return 1 }

func TestPoolCollector(t *testing.T) {
	collector := newPoolCollector(func() PoolStats { return fakeStats{} })

	registry := prometheus.NewPedanticRegistry()
	require.NoError(t, registry.Register(collector))

	assert.Equal(t, 6, testutil.CollectAndCount(collector))

	expected := `
# HELP db_pool_acquired_conns Connections currently checked out.
# TYPE db_pool_acquired_conns gauge
db_pool_acquired_conns 3
# HELP db_pool_max_conns Maximum size of the pool.
# TYPE db_pool_max_conns gauge
db_pool_max_conns 25
`
	err := testutil.GatherAndCompare(registry, strings.NewReader(expected),
		"db_pool_acquired_conns", "db_pool_max_conns")
	assert.NoError(t, err)
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("expected a deadline")
	}
	return f.err
}

func TestCheckHealth(t *testing.T) {
	assert.NoError(t, CheckHealth(context.Background(), fakePinger{}))

	down := errors.New("connection refused")
	assert.ErrorIs(t, CheckHealth(context.Background(), fakePinger{err: down}), down)
}
