package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"moodstream/models"
)

func TestPositionCentersInlinePanelOverCard(t *testing.T) {
	card := models.Rect{Top: 150, Left: 500, Width: 180, Height: 260}
	vp := models.Viewport{Width: 1280, Height: 800}

	pos := positionFor(models.PreviewModeInline, card, vp, 360, 10)

	// 500 + (180-360)/2 = 410
	assert.Equal(t, 410.0, pos.Left)
	assert.Equal(t, 150.0, pos.Top)
}

func TestPositionClampsToLeftEdge(t *testing.T) {
	card := models.Rect{Top: 150, Left: 4, Width: 180, Height: 260}
	vp := models.Viewport{Width: 1280, Height: 800}

	pos := positionFor(models.PreviewModeInline, card, vp, 360, 10)

	assert.Equal(t, 10.0, pos.Left, "panel must keep the margin from the left edge")
}

func TestPositionClampsToRightEdge(t *testing.T) {
	card := models.Rect{Top: 150, Left: 1200, Width: 180, Height: 260}
	vp := models.Viewport{Width: 1280, Height: 800}

	pos := positionFor(models.PreviewModeInline, card, vp, 360, 10)

	assert.Equal(t, 1280.0-10-360, pos.Left, "panel must keep the margin from the right edge")
}

func TestPositionNarrowViewportPrefersLeftMargin(t *testing.T) {
	// Viewport narrower than panel + both margins: the left margin wins.
	card := models.Rect{Top: 150, Left: 0, Width: 180, Height: 260}
	vp := models.Viewport{Width: 320, Height: 800}

	pos := positionFor(models.PreviewModeInline, card, vp, 360, 10)

	assert.Equal(t, 10.0, pos.Left)
}

func TestPositionModalCentersInViewport(t *testing.T) {
	card := models.Rect{Top: 700, Left: 1100, Width: 180, Height: 260}
	vp := models.Viewport{Width: 1280, Height: 800}

	pos := positionFor(models.PreviewModeModal, card, vp, 360, 10)

	assert.Equal(t, (1280.0-360)/2, pos.Left, "modal ignores the card rectangle")
	assert.Equal(t, 80.0, pos.Top)
}
