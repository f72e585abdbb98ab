package preview

import "moodstream/models"

// modalTopFraction places the modal dialog in the upper portion of the
// viewport, leaving room for the trailer frame below the fold line.
const modalTopFraction = 0.1

// positionFor computes the panel's top-left offset from the hovered card's
// bounding box at the moment the show delay elapses. The result is a
// snapshot: scroll and resize after this point do not move the panel.
//
// Inline panels center over the card; modal panels center in the viewport.
// Either way the panel is clamped so it never extends past a horizontal
// viewport edge, keeping at least the configured margin on each side.
func positionFor(mode models.PreviewMode, card models.Rect, vp models.Viewport, panelWidth, margin float64) models.Position {
	var pos models.Position
	switch mode {
	case models.PreviewModeModal:
		pos.Left = (vp.Width - panelWidth) / 2
		pos.Top = vp.Height * modalTopFraction
	default:
		pos.Left = card.Left + (card.Width-panelWidth)/2
		pos.Top = card.Top
	}

	if pos.Left+panelWidth > vp.Width-margin {
		pos.Left = vp.Width - margin - panelWidth
	}
	if pos.Left < margin {
		pos.Left = margin
	}
	if pos.Top < margin {
		pos.Top = margin
	}
	return pos
}
