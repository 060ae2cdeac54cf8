package server

// Suggestion is one people search result. Label carries the person id in
// parentheses.
type Suggestion struct {
	Label string `json:"label" example:"Jane Doe (100)"`
	Value string `json:"value" example:"Jane Doe (100)"`
}

// Option is one item of a dependent select.
type Option struct {
	ID    string `json:"id" example:"100"`
	Value string `json:"value" example:"Jane Doe"`
}

// OrderSlideResponse lists the session's slides after a reorder.
type OrderSlideResponse struct {
	Slide  string   `json:"slide" example:"slides-120-httpbis-chairs"`
	Order  int      `json:"order" example:"0"`
	Slides []string `json:"slides"`
}

// SlideOrderEvent is pushed to /secr/ws/slides subscribers after a reorder.
type SlideOrderEvent struct {
	Type    string   `json:"type" example:"slide_order"`
	Meeting string   `json:"meeting" example:"120"`
	Group   string   `json:"group" example:"httpbis"`
	Slide   string   `json:"slide" example:"slides-120-httpbis-chairs"`
	Order   int      `json:"order" example:"0"`
	Slides  []string `json:"slides"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}
