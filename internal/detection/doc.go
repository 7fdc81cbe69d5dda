// Package detection splits a binarized text line into glyph crops.
//
// The input is a foreground-high mask as produced by imaging.Binarizer. Each
// external region whose bounding box is strictly larger than the configured
// minimum size becomes one GlyphCrop, and crops are returned in reading
// order (ascending left edge).
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes use inclusive top-left and exclusive bottom-right
//
// # Limitations
//
// Only a single line of text is supported. Glyphs that touch after dilation
// merge into one region, and glyphs made of several disjoint strokes (such
// as "i" or "j") yield only the strokes that pass the size filter.
package detection
