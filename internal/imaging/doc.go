// Package imaging provides the pixel-level stages of the recognition
// pipeline: loading, binarization, region extraction and normalization.
//
// All masks produced here share one polarity: strokes are the high
// intensity (Foreground) and paper is zero (Background). Any non-zero pixel
// counts as foreground, which matters after resizing, when edge pixels carry
// interpolated values.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, Min is inclusive (top-left) and Max is exclusive (bottom-right)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Binarizer and Normalizer
// are plain values and every operation returns a fresh Mask, so they can be
// shared across goroutines. A Mask itself is not synchronized.
//
// # Supported Formats
//
// PNG, JPEG and GIF come from the standard library, BMP, TIFF and WebP from
// golang.org/x/image, and the PBM/PGM/PPM/PAM family from
// github.com/spakin/netpbm.
package imaging
