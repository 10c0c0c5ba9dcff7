package store_test

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lara783/lensandlaunch.com-sub001/core/db/sqlc"
	"github.com/lara783/lensandlaunch.com-sub001/internal/model"
	"github.com/lara783/lensandlaunch.com-sub001/internal/store"
)

const clientID = "6f1c2d3e-4b5a-4c6d-8e7f-901a2b3c4d5e"

func strPtr(s string) *string { return &s }

var _ = Describe("Stores", func() {
	var (
		ctx    context.Context
		db     *fakeDB
		stores *store.Stores
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = &fakeDB{}
		stores = store.NewStores(sqlc.New(db))
	})

	Describe("ClientIntegrations", func() {
		It("maps a missing row to ErrNotFound", func() {
			db.rowScan = func(...any) error { return pgx.ErrNoRows }

			_, err := stores.ClientIntegrations().Get(ctx, clientID)

			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("passes other errors through", func() {
			db.rowScan = func(...any) error { return errors.New("conn reset") }

			_, err := stores.ClientIntegrations().Get(ctx, clientID)

			Expect(err).To(MatchError("conn reset"))
			Expect(errors.Is(err, store.ErrNotFound)).To(BeFalse())
		})

		It("converts a row to the model", func() {
			synced := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
			db.rowScan = func(dest ...any) error {
				*dest[0].(*string) = clientID
				*dest[1].(**string) = strPtr("page-token")
				*dest[2].(**string) = strPtr("p1")
				*dest[5].(*pgtype.Timestamptz) = pgtype.Timestamptz{Time: synced, Valid: true}
				*dest[6].(**string) = strPtr("tt-token")
				return nil
			}

			rec, err := stores.ClientIntegrations().Get(ctx, clientID)

			Expect(err).NotTo(HaveOccurred())
			Expect(rec.ClientID).To(Equal(clientID))
			Expect(rec.PageAccessToken).To(HaveValue(Equal("page-token")))
			Expect(rec.FBPageID).To(HaveValue(Equal("p1")))
			Expect(rec.IGAccountID).To(BeNil())
			Expect(rec.MetaTokenSyncedAt).To(HaveValue(BeTemporally("==", synced)))
			Expect(rec.TikTokAccessToken).To(HaveValue(Equal("tt-token")))
			Expect(rec.TikTokTokenSyncedAt).To(BeNil())
		})

		It("stores empty optional Meta fields as NULL", func() {
			err := stores.ClientIntegrations().SaveMeta(ctx, clientID, model.MetaCredentials{
				PageAccessToken: "page-token",
				PageID:          "p1",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(db.lastArgs).To(HaveLen(5))
			Expect(db.lastArgs[0]).To(Equal(clientID))
			Expect(db.lastArgs[1]).To(HaveValue(Equal("page-token")))
			Expect(db.lastArgs[3]).To(BeNil())
			Expect(db.lastArgs[4]).To(BeNil())
		})

		It("stores the TikTok triple", func() {
			err := stores.ClientIntegrations().SaveTikTok(ctx, clientID, model.TikTokCredentials{
				AccessToken:  "act",
				RefreshToken: "rft",
				OpenID:       "open-1",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(db.lastArgs[1]).To(HaveValue(Equal("act")))
			Expect(db.lastArgs[2]).To(HaveValue(Equal("rft")))
			Expect(db.lastArgs[3]).To(HaveValue(Equal("open-1")))
		})

		It("reports ErrNotFound when a token update touches no row", func() {
			db.execTag = pgconn.NewCommandTag("UPDATE 0")

			err := stores.ClientIntegrations().UpdateTikTokTokens(ctx, clientID, "new", "")

			Expect(err).To(MatchError(store.ErrNotFound))
			Expect(db.lastArgs[2]).To(BeNil())
		})

		It("updates refreshed tokens", func() {
			db.execTag = pgconn.NewCommandTag("UPDATE 1")

			err := stores.ClientIntegrations().UpdateTikTokTokens(ctx, clientID, "new", "new-refresh")

			Expect(err).NotTo(HaveOccurred())
			Expect(db.lastArgs[1]).To(HaveValue(Equal("new")))
			Expect(db.lastArgs[2]).To(HaveValue(Equal("new-refresh")))
		})

		It("stamps the sync time", func() {
			at := time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)

			Expect(stores.ClientIntegrations().TouchMetaSynced(ctx, clientID, at)).To(Succeed())
			Expect(db.lastArgs[1]).To(Equal(pgtype.Timestamptz{Time: at, Valid: true}))
		})
	})

	Describe("Clients", func() {
		It("reports existence", func() {
			db.rowScan = func(dest ...any) error {
				*dest[0].(*bool) = true
				return nil
			}

			ok, err := stores.Clients().Exists(ctx, clientID)

			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
		})
	})

	Describe("Profiles", func() {
		It("returns the role", func() {
			db.rowScan = func(dest ...any) error {
				*dest[0].(*string) = "team"
				return nil
			}

			role, err := stores.Profiles().GetRole(ctx, "user-1")

			Expect(err).NotTo(HaveOccurred())
			Expect(role).To(Equal(model.RoleTeam))
		})

		It("maps an unknown profile to ErrNotFound", func() {
			db.rowScan = func(...any) error { return pgx.ErrNoRows }

			_, err := stores.Profiles().GetRole(ctx, "ghost")

			Expect(err).To(MatchError(store.ErrNotFound))
		})
	})
})
