package http

import "github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/views"

type viewportReq struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type textReq struct {
	Text string `json:"text"`
}

type sortReq struct {
	Order string `json:"order"`
}

type selectionReq struct {
	Code string `json:"code"`
}

type subscriptionReq struct {
	Subscribed *bool `json:"subscribed"`
}

type statusReq struct {
	Status string `json:"status"`
}

type sessionResponse struct {
	ID       string                     `json:"id"`
	View     views.ViewName             `json:"view"`
	Projects *views.ProjectViewSnapshot `json:"projects,omitempty"`
	Samples  *views.SampleViewSnapshot  `json:"samples,omitempty"`
}
