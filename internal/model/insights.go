package model

// FacebookInsights is the normalized page summary. Nil fields mean the Graph API
// returned no data for that metric in the window.
type FacebookInsights struct {
	Reach            *int64 `json:"reach"`
	Impressions      *int64 `json:"impressions"`
	NewFollowers     *int64 `json:"new_followers"`
	Engagements      *int64 `json:"engagements"`
	TotalFollowers   *int64 `json:"total_followers"`
	PrevReach        *int64 `json:"prev_reach"`
	PrevImpressions  *int64 `json:"prev_impressions"`
	PrevNewFollowers *int64 `json:"prev_new_followers"`
}

type InstagramInsights struct {
	Username        *string `json:"username"`
	Reach           *int64  `json:"reach"`
	Impressions     *int64  `json:"impressions"`
	ProfileViews    *int64  `json:"profile_views"`
	TotalFollowers  *int64  `json:"total_followers"`
	MediaCount      *int64  `json:"media_count"`
	PrevReach       *int64  `json:"prev_reach"`
	PrevImpressions *int64  `json:"prev_impressions"`
}

type TikTokInsights struct {
	DisplayName    *string  `json:"display_name"`
	TotalFollowers *int64   `json:"total_followers"`
	FollowingCount *int64   `json:"following_count"`
	LikesCount     *int64   `json:"likes_count"`
	VideoCount     *int64   `json:"video_count"`
	EngagementRate *float64 `json:"engagement_rate"`
	TopPostURL     *string  `json:"top_post_url"`
	Reach          int64    `json:"reach"`
	Impressions    int64    `json:"impressions"`
	TotalLikes     int64    `json:"total_likes"`
	TotalComments  int64    `json:"total_comments"`
	TotalShares    int64    `json:"total_shares"`
	VideosAnalyzed int      `json:"videos_analyzed"`
}

// PlatformResult holds either a platform summary or the error that prevented it.
// Exactly one of Data and Err is set.
type PlatformResult[T any] struct {
	Data *T
	Err  error
}

// MetaInsights is the combined Facebook + Instagram response. A nil slot means the
// client has no Facebook page or no linked Instagram account.
type MetaInsights struct {
	Facebook  *PlatformResult[FacebookInsights]
	Instagram *PlatformResult[InstagramInsights]
}
