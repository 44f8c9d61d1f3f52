package database

import (
	"context"
	"time"
)

// Pinger is satisfied by *pgxpool.Pool and by the catalog stores.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CheckHealth pings with a short deadline so readiness probes never hang.
func CheckHealth(ctx context.Context, db Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Ping(ctx)
}
