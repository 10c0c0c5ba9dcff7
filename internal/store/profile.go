package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/lara783/lensandlaunch.com-sub001/core/db/sqlc"
	"github.com/lara783/lensandlaunch.com-sub001/internal/model"
)

type profileStore struct {
	queries *sqlc.Queries
}

func newProfileStore(queries *sqlc.Queries) ProfileStore {
	return &profileStore{queries: queries}
}

func (s *profileStore) GetRole(ctx context.Context, userID string) (model.Role, error) {
	role, err := s.queries.GetProfileRole(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return model.Role(role), nil
}
