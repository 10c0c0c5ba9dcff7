package analytics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lara783/lensandlaunch.com-sub001/internal/analytics"
)

func i64(v int64) *int64 { return &v }

var _ = Describe("SummarizeVideos", func() {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	daysAgo := func(d int) int64 { return now.AddDate(0, 0, -d).Unix() }

	It("only counts videos from the last thirty days", func() {
		videos := []analytics.Video{
			{ID: "old", CreateTime: daysAgo(35), PlayCount: i64(10000), ViewCount: i64(10000), LikeCount: i64(500)},
			{ID: "new", CreateTime: daysAgo(10), PlayCount: i64(200), ViewCount: i64(250), LikeCount: i64(10), CommentCount: i64(5), ShareCount: i64(10)},
		}

		summary := analytics.SummarizeVideos(videos, now)

		Expect(summary.Count).To(Equal(1))
		Expect(summary.Reach).To(Equal(int64(200)))
		Expect(summary.Impressions).To(Equal(int64(250)))
		Expect(summary.Likes).To(Equal(int64(10)))
		Expect(summary.EngagementRate).To(HaveValue(Equal(10.0)))
		Expect(summary.TopVideo.ID).To(Equal("new"))
	})

	It("falls back to play count when a video has no view count", func() {
		videos := []analytics.Video{
			{ID: "a", CreateTime: daysAgo(1), PlayCount: i64(100)},
			{ID: "b", CreateTime: daysAgo(2), PlayCount: i64(40), ViewCount: i64(60)},
		}

		summary := analytics.SummarizeVideos(videos, now)

		Expect(summary.Reach).To(Equal(int64(140)))
		Expect(summary.Impressions).To(Equal(int64(160)))
	})

	It("rounds the engagement rate to two decimals", func() {
		videos := []analytics.Video{
			{ID: "a", CreateTime: daysAgo(1), PlayCount: i64(3), LikeCount: i64(1)},
		}

		summary := analytics.SummarizeVideos(videos, now)

		Expect(summary.EngagementRate).To(HaveValue(Equal(33.33)))
	})

	It("never divides by zero impressions", func() {
		videos := []analytics.Video{
			{ID: "a", CreateTime: daysAgo(1), PlayCount: i64(0), LikeCount: i64(4)},
		}

		summary := analytics.SummarizeVideos(videos, now)

		Expect(summary.Impressions).To(BeZero())
		Expect(summary.EngagementRate).To(BeNil())
	})

	It("returns no engagement rate and no top video for an empty window", func() {
		videos := []analytics.Video{{ID: "old", CreateTime: daysAgo(45), PlayCount: i64(9)}}

		summary := analytics.SummarizeVideos(videos, now)

		Expect(summary.Count).To(BeZero())
		Expect(summary.EngagementRate).To(BeNil())
		Expect(summary.TopVideo).To(BeNil())
	})

	It("picks the first video on play count ties", func() {
		videos := []analytics.Video{
			{ID: "low", CreateTime: daysAgo(3), PlayCount: i64(5)},
			{ID: "first", CreateTime: daysAgo(2), PlayCount: i64(50), ShareURL: "https://tiktok.com/@a/video/1"},
			{ID: "second", CreateTime: daysAgo(1), PlayCount: i64(50), ShareURL: "https://tiktok.com/@a/video/2"},
		}

		summary := analytics.SummarizeVideos(videos, now)

		Expect(summary.TopVideo).NotTo(BeNil())
		Expect(summary.TopVideo.ID).To(Equal("first"))
		Expect(summary.TopVideo.ShareURL).To(Equal("https://tiktok.com/@a/video/1"))
	})

	It("includes a video created exactly thirty days ago", func() {
		videos := []analytics.Video{{ID: "edge", CreateTime: daysAgo(30), PlayCount: i64(1)}}

		Expect(analytics.RecentVideos(videos, now)).To(HaveLen(1))
	})
})

var _ = Describe("EngagementRate", func() {
	It("is nil for zero impressions", func() {
		Expect(analytics.EngagementRate(10, 0)).To(BeNil())
	})

	It("is a percentage of impressions", func() {
		Expect(analytics.EngagementRate(25, 200)).To(HaveValue(Equal(12.5)))
	})
})
