package imaging

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExternalRegions_Separate(t *testing.T) {
	m := NewMask(50, 20)
	fillRect(m, image.Rect(30, 2, 40, 18))
	fillRect(m, image.Rect(2, 5, 10, 15))

	regions := ExternalRegions(m)
	require.Len(t, regions, 2)

	// Raster order: the right block starts on a higher row.
	assert.Equal(t, image.Rect(30, 2, 40, 18), regions[0].Bounds)
	assert.Equal(t, 160, regions[0].Area)
	assert.Equal(t, image.Rect(2, 5, 10, 15), regions[1].Bounds)
	assert.Equal(t, 80, regions[1].Area)
}

func TestExternalRegions_DiagonalConnectivity(t *testing.T) {
	m := NewMask(4, 4)
	m.Set(0, 0, Foreground)
	m.Set(1, 1, Foreground)
	m.Set(2, 2, Foreground)

	regions := ExternalRegions(m)
	require.Len(t, regions, 1)
	assert.Equal(t, image.Rect(0, 0, 3, 3), regions[0].Bounds)
}

func TestExternalRegions_NestedRegionIsAbsorbed(t *testing.T) {
	// A ring with a dot inside its hole: only the ring is external.
	m := NewMask(30, 30)
	fillRect(m, image.Rect(2, 2, 28, 28))
	for y := 5; y < 25; y++ {
		for x := 5; x < 25; x++ {
			m.Set(x, y, Background)
		}
	}
	fillRect(m, image.Rect(12, 12, 16, 16))

	regions := ExternalRegions(m)
	require.Len(t, regions, 1)
	assert.Equal(t, image.Rect(2, 2, 28, 28), regions[0].Bounds)
	assert.Equal(t, 26*26, regions[0].Area, "holes count toward the enclosed area")
}

func TestExternalRegions_Empty(t *testing.T) {
	assert.Empty(t, ExternalRegions(NewMask(0, 0)))
	assert.Empty(t, ExternalRegions(NewMask(10, 10)))
}

func TestLargestRegion(t *testing.T) {
	m := NewMask(40, 40)
	fillRect(m, image.Rect(0, 0, 3, 3))
	fillRect(m, image.Rect(10, 10, 30, 35))

	r, ok := LargestRegion(m)
	require.True(t, ok)
	assert.Equal(t, image.Rect(10, 10, 30, 35), r.Bounds)

	_, ok = LargestRegion(NewMask(5, 5))
	assert.False(t, ok)
}

func TestLargestRegion_TieKeepsFirst(t *testing.T) {
	m := NewMask(40, 20)
	fillRect(m, image.Rect(20, 0, 25, 5))
	fillRect(m, image.Rect(0, 10, 5, 15))

	r, ok := LargestRegion(m)
	require.True(t, ok)
	assert.Equal(t, image.Rect(20, 0, 25, 5), r.Bounds)
}
