package store

import (
	"github.com/lara783/lensandlaunch.com-sub001/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) ClientIntegrations() ClientIntegrationStore {
	return newClientIntegrationStore(s.queries)
}

func (s *Stores) Clients() ClientStore {
	return newClientStore(s.queries)
}

func (s *Stores) Profiles() ProfileStore {
	return newProfileStore(s.queries)
}
