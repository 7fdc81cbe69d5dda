package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createPaperImage returns a white RGBA image with ink rectangles.
func createPaperImage(width, height int, ink color.Color, rects ...image.Rectangle) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.Set(x, y, ink)
			}
		}
	}
	return img
}

func TestBinarize_InvertsPolarity(t *testing.T) {
	img := createPaperImage(40, 40, color.Black, image.Rect(10, 10, 30, 30))

	m := Binarizer{Threshold: 180, KernelSize: 1}.Binarize(img)

	require.Equal(t, 40, m.Width())
	require.Equal(t, 40, m.Height())
	assert.Equal(t, Foreground, m.At(20, 20), "ink becomes foreground")
	assert.Equal(t, Background, m.At(2, 2), "paper becomes background")
	assert.Equal(t, 400, m.ForegroundCount())
}

func TestBinarize_DilationThickensStrokes(t *testing.T) {
	img := createPaperImage(40, 40, color.Black, image.Rect(10, 10, 30, 30))

	m := NewBinarizer().Binarize(img)

	// A 3-pixel kernel grows the 20x20 block by one pixel per side.
	assert.Greater(t, m.ForegroundCount(), 20*20)
	for _, p := range []image.Point{{9, 20}, {30, 20}, {20, 9}, {20, 30}} {
		assert.Equal(t, Foreground, m.At(p.X, p.Y), "edge %v", p)
	}
	for _, p := range []image.Point{{8, 20}, {31, 20}, {20, 8}, {20, 31}} {
		assert.Equal(t, Background, m.At(p.X, p.Y), "outside %v", p)
	}
	region, ok := LargestRegion(m)
	require.True(t, ok)
	assert.Equal(t, image.Rect(9, 9, 31, 31), region.Bounds)
}

// uniformGray returns a w x h grayscale image filled with v.
func uniformGray(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func TestBinarize_Threshold(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		intensity uint8
		wantInk   bool
	}{
		{"live paper", 180, 220, false},
		{"live at threshold", 180, 180, true},
		{"live just above threshold", 180, 181, false},
		{"live mid gray", 180, 160, true},
		{"live dark", 180, 40, true},
		{"template at threshold", 150, 150, true},
		{"template just above threshold", 150, 151, false},
		{"template mid gray", 150, 160, false},
		{"zero threshold keeps black", 0, 0, true},
		{"zero threshold drops one", 0, 1, false},
		{"top threshold", 254, 254, true},
		{"top threshold white", 254, 255, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Binarizer{Threshold: tt.threshold, KernelSize: 1}.Binarize(uniformGray(4, 4, tt.intensity))
			want := 0
			if tt.wantInk {
				want = 16
			}
			assert.Equal(t, want, m.ForegroundCount())
		})
	}
}

func TestBinarize_ColourUsesLuma(t *testing.T) {
	// Pure red has BT.601 luma 0.299*255 = 76: ink at 180.
	img := createPaperImage(10, 10, color.RGBA{R: 255, A: 255}, image.Rect(0, 0, 5, 10))
	m := Binarizer{Threshold: 180, KernelSize: 1}.Binarize(img)
	assert.Equal(t, Foreground, m.At(2, 5))
	assert.Equal(t, Background, m.At(7, 5))

	// Pure blue has luma 29, pure green 150.
	blue := createPaperImage(4, 4, color.RGBA{B: 255, A: 255}, image.Rect(0, 0, 4, 4))
	assert.Equal(t, 16, Binarizer{Threshold: 100, KernelSize: 1}.Binarize(blue).ForegroundCount())
	green := createPaperImage(4, 4, color.RGBA{G: 255, A: 255}, image.Rect(0, 0, 4, 4))
	assert.Equal(t, 0, Binarizer{Threshold: 100, KernelSize: 1}.Binarize(green).ForegroundCount())
}

func TestBinarize_BlankPage(t *testing.T) {
	img := createPaperImage(30, 30, color.Black)
	m := NewBinarizer().Binarize(img)
	assert.Equal(t, 0, m.ForegroundCount())
}

func TestBinarizeFile(t *testing.T) {
	img := createPaperImage(30, 30, color.Black, image.Rect(5, 5, 25, 25))
	path := filepath.Join(t.TempDir(), "line.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	m, err := NewBinarizer().BinarizeFile(path)
	require.NoError(t, err)
	assert.Equal(t, Foreground, m.At(15, 15))

	_, err = NewBinarizer().BinarizeFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, ErrImageLoad)
}

func TestBinarizer_Validate(t *testing.T) {
	tests := []struct {
		name    string
		b       Binarizer
		wantErr bool
	}{
		{"defaults", NewBinarizer(), false},
		{"no dilation", Binarizer{Threshold: 100, KernelSize: 1}, false},
		{"even kernel", Binarizer{Threshold: 100, KernelSize: 4}, true},
		{"zero kernel", Binarizer{Threshold: 100, KernelSize: 0}, true},
		{"threshold too high", Binarizer{Threshold: 255, KernelSize: 3}, true},
		{"negative threshold", Binarizer{Threshold: -1, KernelSize: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.b.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
