package models

// PreviewMode selects how an open preview behaves on hover-leave.
type PreviewMode string

const (
	// PreviewModeInline expands next to the card and closes after a short
	// grace period once the pointer leaves card and panel.
	PreviewModeInline PreviewMode = "inline"
	// PreviewModeModal centers over a backdrop and closes only on an explicit
	// action (Escape, backdrop click, close control).
	PreviewModeModal PreviewMode = "modal"
)

// Rect is a hovered card's bounding box in viewport pixels.
type Rect struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Viewport is the client viewport size at hover time.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Position is the computed top-left offset for the preview panel. It is a
// snapshot from the moment the show delay elapsed and is not recomputed on
// scroll or resize.
type Position struct {
	Top  float64 `json:"top"`
	Left float64 `json:"left"`
}
