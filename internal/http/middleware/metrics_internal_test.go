package middleware

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var _ = Describe("Metrics", func() {
	It("labels requests by route template", func() {
		router := gin.New()
		router.Use(Metrics())
		router.GET("/api/v1/meta/insights/:clientId", func(c *gin.Context) { c.Status(http.StatusOK) })

		counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/meta/insights/:clientId", "200")
		before := testutil.ToFloat64(counter)

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/meta/insights/abc", nil))
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/meta/insights/def", nil))

		Expect(testutil.ToFloat64(counter) - before).To(Equal(2.0))
	})

	It("collapses unknown paths", func() {
		router := gin.New()
		router.Use(Metrics())

		counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
		before := testutil.ToFloat64(counter)

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/123", nil))

		Expect(testutil.ToFloat64(counter) - before).To(Equal(1.0))
	})
})
