package classify

import "github.com/ironsheep/glyph-ocr/internal/templates"

// Aspect ratio bounds used by the geometry filter (height / width).
const (
	tallAspect = 1.6
	wideAspect = 1.2
)

// geometryCandidates narrows the library by the raw glyph's aspect ratio:
// tall glyphs are matched only against uppercase templates, squat ones only
// against lowercase templates. When the narrowed set would be empty the full
// library is used.
func geometryCandidates(width, height int, entries []templates.Entry) []templates.Entry {
	aspect := float64(height) / (float64(width) + 1e-5)

	var want templates.Class
	switch {
	case aspect > tallAspect:
		want = templates.Uppercase
	case aspect < wideAspect:
		want = templates.Lowercase
	default:
		return entries
	}

	filtered := make([]templates.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Class == want {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == 0 {
		return entries
	}
	return filtered
}
