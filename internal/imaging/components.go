package imaging

import "image"

// Region is one external foreground region of a mask.
type Region struct {
	// Bounds is the axis-aligned bounding box (Min inclusive, Max exclusive).
	Bounds image.Rectangle `json:"bounds"`

	// Area is the number of pixels enclosed by the region's outer boundary,
	// holes included.
	Area int `json:"area"`
}

// ExternalRegions finds the outermost connected foreground regions of m.
//
// Foreground is 8-connected and background 4-connected. Background that
// cannot be reached from the mask border is a hole and belongs to the region
// around it, so a blob sitting inside the counter of an "O" is part of the
// "O" rather than a region of its own.
//
// Regions are returned in raster order of their first (top-most, then
// left-most) pixel.
func ExternalRegions(m *Mask) []Region {
	w, h := m.Width(), m.Height()
	if w == 0 || h == 0 {
		return nil
	}

	filled := fillHoles(m)
	visited := make([]bool, w*h)
	regions := make([]Region, 0)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if filled[i] && !visited[i] {
				regions = append(regions, floodFill(filled, visited, x, y, w, h))
			}
		}
	}

	return regions
}

// LargestRegion returns the external region with the greatest area. Ties go
// to the region found first in raster order. ok is false when m has no
// foreground.
func LargestRegion(m *Mask) (Region, bool) {
	var best Region
	found := false
	for _, r := range ExternalRegions(m) {
		if !found || r.Area > best.Area {
			best = r
			found = true
		}
	}
	return best, found
}

// fillHoles returns a row-major grid that is true for foreground pixels and
// for background pixels enclosed by foreground.
func fillHoles(m *Mask) []bool {
	w, h := m.Width(), m.Height()
	outside := make([]bool, w*h)
	stack := make([]image.Point, 0, 2*(w+h))

	push := func(x, y int) {
		if x < 0 || x >= w || y < 0 || y >= h {
			return
		}
		i := y*w + x
		if outside[i] || m.IsForeground(x, y) {
			return
		}
		outside[i] = true
		stack = append(stack, image.Point{X: x, Y: y})
	}

	for x := 0; x < w; x++ {
		push(x, 0)
		push(x, h-1)
	}
	for y := 0; y < h; y++ {
		push(0, y)
		push(w-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.X+1, p.Y)
		push(p.X-1, p.Y)
		push(p.X, p.Y+1)
		push(p.X, p.Y-1)
	}

	filled := make([]bool, w*h)
	for i := range filled {
		filled[i] = !outside[i]
	}
	return filled
}

// floodFill labels one 8-connected region starting at (startX, startY).
//
// Uses an explicit stack rather than recursion so large glyphs cannot
// overflow the goroutine stack.
func floodFill(filled, visited []bool, startX, startY, width, height int) Region {
	minX, minY := startX, startY
	maxX, maxY := startX, startY
	area := 0

	stack := []image.Point{{X: startX, Y: startY}}
	visited[startY*width+startX] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		area++

		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				i := ny*width + nx
				if filled[i] && !visited[i] {
					visited[i] = true
					stack = append(stack, image.Point{X: nx, Y: ny})
				}
			}
		}
	}

	return Region{
		Bounds: image.Rect(minX, minY, maxX+1, maxY+1),
		Area:   area,
	}
}
