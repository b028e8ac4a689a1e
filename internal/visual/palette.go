// Package visual generates the Andry Tree scene graph from an emotional
// profile and the document's content sections.  Generation is a fixed
// sequence of phases appending to a shared builder; the resulting element
// order is the renderer's compositing order.
package visual

import (
	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"
)

// palettes holds the fixed 4-stop color ramp per emotion, darkest to
// lightest.  The intensity argument selects the stop.
var palettes = map[emotion.Emotion][4]string{
	emotion.Hope:         {"#1b4332", "#2d6a4f", "#52b788", "#b7e4c7"},
	emotion.Confidence:   {"#03045e", "#0077b6", "#00b4d8", "#90e0ef"},
	emotion.Breakthrough: {"#7f5539", "#e85d04", "#f48c06", "#ffba08"},
	emotion.Healing:      {"#143601", "#245501", "#538d22", "#aad576"},
	emotion.Tension:      {"#641220", "#a11d33", "#da1e37", "#f0a1ac"},
	emotion.Uncertainty:  {"#3d348b", "#7678ed", "#b8b8d1", "#d8d8e8"},
}

// ColorFor returns the palette color for an emotion at a given intensity in
// [0,1].  Unknown emotions use the hope palette so a color always exists.
func ColorFor(e emotion.Emotion, intensity float64) string {
	ramp, ok := palettes[e]
	if !ok {
		ramp = palettes[emotion.Hope]
	}
	idx := int(clamp01(intensity) * 4)
	if idx > 3 {
		idx = 3
	}
	return ramp[idx]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
