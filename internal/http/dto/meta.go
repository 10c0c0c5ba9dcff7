package dto

import (
	"github.com/lara783/lensandlaunch.com-sub001/internal/model"
	"github.com/lara783/lensandlaunch.com-sub001/internal/service"
)

type SelectPageRequest struct {
	ClientID    string  `json:"client_id" binding:"required,uuid"`
	PageID      string  `json:"page_id" binding:"required,max=255"`
	PageName    string  `json:"page_name" binding:"max=255"`
	AccessToken string  `json:"access_token" binding:"required"`
	IGAccountID *string `json:"ig_account_id,omitempty"`
}

func (r SelectPageRequest) ToSelection() service.PageSelection {
	return service.PageSelection{
		ClientID:    r.ClientID,
		PageID:      r.PageID,
		PageName:    r.PageName,
		AccessToken: r.AccessToken,
		IGAccountID: r.IGAccountID,
	}
}

type SelectPageResponse struct {
	Connected bool `json:"connected"`
}

// MetaInsightsResponse omits a platform key entirely when the client has no
// page or no linked Instagram account. A present key holds either the summary
// or an ErrorResponse.
type MetaInsightsResponse struct {
	Facebook  any `json:"facebook,omitempty"`
	Instagram any `json:"instagram,omitempty"`
}

func ToMetaInsightsResponse(in *model.MetaInsights) *MetaInsightsResponse {
	resp := &MetaInsightsResponse{}
	if in == nil {
		return resp
	}
	if in.Facebook != nil {
		resp.Facebook = platformSlot(in.Facebook)
	}
	if in.Instagram != nil {
		resp.Instagram = platformSlot(in.Instagram)
	}
	return resp
}

func platformSlot[T any](r *model.PlatformResult[T]) any {
	if r.Err != nil {
		return ErrorResponse{Error: r.Err.Error()}
	}
	return r.Data
}
