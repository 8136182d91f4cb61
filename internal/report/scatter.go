package report

import (
	"strings"

	"textenc/internal/analytics"
)

const markers = "123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// marker returns the plot character of the i-th point; '*' once markers run out.
func marker(i int) rune {
	if i < len(markers) {
		return rune(markers[i])
	}
	return '*'
}

// Scatter draws points on a width × height character grid scaled to their
// bounding box. Points that land on the same cell show the later marker.
func Scatter(points []analytics.Point, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", width))
	}
	for i, p := range points {
		col := scale(p.X, minX, maxX, width)
		row := height - 1 - scale(p.Y, minY, maxY, height)
		grid[row][col] = marker(i)
	}

	var b strings.Builder
	border := "+" + strings.Repeat("-", width) + "+\n"
	b.WriteString(border)
	for _, line := range grid {
		b.WriteString("|")
		b.WriteString(string(line))
		b.WriteString("|\n")
	}
	b.WriteString(border)
	return b.String()
}

// scale maps v from [low, high] onto a cell index in [0, cells).
func scale(v, low, high float64, cells int) int {
	if high == low {
		return cells / 2
	}
	idx := int((v - low) / (high - low) * float64(cells-1))
	return min(max(idx, 0), cells-1)
}
