package ports

import "context"

// StoredResponse is the response replayed when a create request reuses its key.
type StoredResponse struct {
	Resource   string
	StatusCode int
	Body       []byte
	RecordID   int64
}

// IdempotencyStore lets clients retry create requests without duplicating
// rows. Keys are scoped by resource; the first saved response wins.
type IdempotencyStore interface {
	Get(ctx context.Context, resource, key string) (*StoredResponse, error)
	Save(ctx context.Context, key string, response StoredResponse) error
}
