package store

import (
	"context"

	"github.com/lara783/lensandlaunch.com-sub001/core/db/sqlc"
)

type clientStore struct {
	queries *sqlc.Queries
}

func newClientStore(queries *sqlc.Queries) ClientStore {
	return &clientStore{queries: queries}
}

func (s *clientStore) Exists(ctx context.Context, clientID string) (bool, error) {
	return s.queries.ClientExists(ctx, clientID)
}
