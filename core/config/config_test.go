package config_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lara783/lensandlaunch.com-sub001/core/config"
)

var _ = Describe("Load", func() {
	BeforeEach(func() {
		// Anything but development skips the .env files.
		GinkgoT().Setenv("APP_ENV", "test")
	})

	It("derives callback URIs from the app base URL", func() {
		GinkgoT().Setenv("APP_BASE_URL", "https://portal.example.com/")

		cfg, err := config.Load(config.ServiceTypeServer)

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.AppBaseURL).To(Equal("https://portal.example.com"))
		Expect(cfg.MetaRedirectURI()).To(Equal("https://portal.example.com/api/v1/meta/callback"))
		Expect(cfg.TikTokRedirectURI()).To(Equal("https://portal.example.com/api/v1/tiktok/callback"))
	})

	It("enables providers only with both credentials", func() {
		GinkgoT().Setenv("META_APP_ID", "app")
		GinkgoT().Setenv("META_APP_SECRET", "")
		GinkgoT().Setenv("TIKTOK_CLIENT_KEY", "key")
		GinkgoT().Setenv("TIKTOK_CLIENT_SECRET", "secret")

		cfg, err := config.Load(config.ServiceTypeServer)

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Meta.Enabled()).To(BeFalse())
		Expect(cfg.TikTok.Enabled()).To(BeTrue())
	})

	It("parses durations and falls back on garbage", func() {
		GinkgoT().Setenv("OAUTH_STATE_TTL", "5m")
		GinkgoT().Setenv("PROVIDER_HTTP_TIMEOUT", "soon")

		cfg, err := config.Load(config.ServiceTypeServer)

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.OAuthState.TTL).To(Equal(5 * time.Minute))
		Expect(cfg.HTTPTimeout).To(Equal(30 * time.Second))
	})

	It("rejects a non-positive state TTL", func() {
		GinkgoT().Setenv("OAUTH_STATE_TTL", "0s")

		_, err := config.Load(config.ServiceTypeServer)

		Expect(err).To(MatchError(ContainSubstring("OAUTH_STATE_TTL")))
	})
})
