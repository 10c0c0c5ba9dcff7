package dto

import "github.com/lara783/lensandlaunch.com-sub001/internal/model"

type TikTokInsightsResponse struct {
	TikTok *model.TikTokInsights `json:"tiktok"`
}
