package analytics

import (
	"math"
	"time"
)

// Video carries the per-video counters used for TikTok aggregation.
// Counters are nil when the provider omitted them.
type Video struct {
	ID           string
	ShareURL     string
	CreateTime   int64 // unix seconds
	PlayCount    *int64
	ViewCount    *int64
	LikeCount    *int64
	CommentCount *int64
	ShareCount   *int64
}

type VideoSummary struct {
	// EngagementRate is a percentage rounded to 2 decimals; nil when there were no impressions.
	EngagementRate *float64
	// TopVideo has the highest play count; the earliest video in the list wins ties.
	TopVideo    *Video
	Reach       int64
	Impressions int64
	Likes       int64
	Comments    int64
	Shares      int64
	Count       int
}

// RecentVideos keeps the videos created at or after now-30d, preserving order.
func RecentVideos(videos []Video, now time.Time) []Video {
	cutoff := now.Add(-windowLength).Unix()
	recent := make([]Video, 0, len(videos))
	for _, v := range videos {
		if v.CreateTime >= cutoff {
			recent = append(recent, v)
		}
	}
	return recent
}

// SummarizeVideos aggregates the videos of the last 30 days.
func SummarizeVideos(videos []Video, now time.Time) VideoSummary {
	recent := RecentVideos(videos, now)
	summary := VideoSummary{Count: len(recent)}

	var topPlays int64
	for i := range recent {
		v := recent[i]
		plays := deref(v.PlayCount)

		summary.Reach += plays
		if v.ViewCount != nil {
			summary.Impressions += *v.ViewCount
		} else {
			summary.Impressions += plays
		}
		summary.Likes += deref(v.LikeCount)
		summary.Comments += deref(v.CommentCount)
		summary.Shares += deref(v.ShareCount)

		if summary.TopVideo == nil || plays > topPlays {
			summary.TopVideo = &recent[i]
			topPlays = plays
		}
	}

	summary.EngagementRate = EngagementRate(summary.Likes+summary.Comments+summary.Shares, summary.Impressions)
	return summary
}

// EngagementRate returns interactions/impressions as a percentage rounded to 2 decimals,
// or nil when impressions is not positive.
func EngagementRate(interactions, impressions int64) *float64 {
	if impressions <= 0 {
		return nil
	}
	rate := math.Round(float64(interactions)/float64(impressions)*100*100) / 100
	return &rate
}

func deref(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
