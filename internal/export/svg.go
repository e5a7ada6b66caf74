package export

import (
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/viz"
)

// Track is the path of one body, oldest point first.
type Track struct {
	Name   string
	Color  string
	Radius float64
	Points []dynamo.Vec
}

// TracksFromSamples groups recorded samples into one track per body.
// Body names, colors and radii come from meta when it lists the body.
func TracksFromSamples(meta *storage.RunMetadata, samples []storage.Sample) []Track {
	n := 0
	if meta != nil {
		n = len(meta.Bodies)
	}
	for _, s := range samples {
		n = max(n, s.Body+1)
	}

	tracks := make([]Track, n)
	for i := range tracks {
		tracks[i] = Track{Name: fmt.Sprintf("body%d", i), Color: "white", Radius: 1}
		if meta != nil && i < len(meta.Bodies) {
			b := meta.Bodies[i]
			tracks[i] = Track{Name: b.Name, Color: b.Color, Radius: b.Radius}
		}
	}
	for _, s := range samples {
		if s.Body < 0 {
			continue
		}
		tracks[s.Body].Points = append(tracks[s.Body].Points, dynamo.Vec{X: s.X, Y: s.Y})
	}
	return tracks
}

// TracksFromSystem uses each body's trail, ending at its current position.
func TracksFromSystem(sys *physics.System) []Track {
	tracks := make([]Track, 0, sys.Len())
	for _, b := range sys.Bodies() {
		pts := b.Trail()
		if last, ok := b.LastTrailPoint(); !ok || last != b.Position() {
			pts = append(pts, b.Position())
		}
		tracks = append(tracks, Track{Name: b.Name(), Color: b.Color(), Radius: b.Radius(), Points: pts})
	}
	return tracks
}

type bounds struct {
	minX, minY, maxX, maxY float64
}

func fit(tracks []Track) (bounds, bool) {
	b := bounds{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	found := false
	for _, t := range tracks {
		for _, p := range t.Points {
			if !dynamo.Finite(p) {
				continue
			}
			b.minX, b.maxX = math.Min(b.minX, p.X), math.Max(b.maxX, p.X)
			b.minY, b.maxY = math.Min(b.minY, p.Y), math.Max(b.maxY, p.Y)
			found = true
		}
	}
	return b, found
}

// TracksToSVG draws every track as a polyline in its body color with a
// circle at its last point. The view is fitted to all points with 10%
// padding and a uniform scale. It returns "" when no track has a finite
// point.
func TracksToSVG(tracks []Track, width, height int) string {
	b, ok := fit(tracks)
	if !ok {
		return ""
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	scale := math.Min(float64(width)/rangeX, float64(height)/rangeY)
	offX := (float64(width) - rangeX*scale) / 2
	offY := (float64(height) - rangeY*scale) / 2
	project := func(p dynamo.Vec) (float64, float64) {
		x := offX + (p.X-b.minX)*scale
		y := float64(height) - offY - (p.Y-b.minY)*scale
		return x, y
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, t := range tracks {
		color := escape(viz.ColorHex(t.Color))
		var last dynamo.Vec
		have := false
		pts := make([]string, 0, len(t.Points))
		for _, p := range t.Points {
			if !dynamo.Finite(p) {
				continue
			}
			x, y := project(p)
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", x, y))
			last, have = p, true
		}
		if !have {
			continue
		}

		sb.WriteString(fmt.Sprintf("<g id=\"%s\">\n", escape(t.Name)))
		if len(pts) > 1 {
			sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1.5" points="%s"/>
`, color, strings.Join(pts, " ")))
		}
		x, y := project(last)
		r := math.Max(t.Radius*scale, 2)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, r, color))
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// escape makes s safe inside a quoted XML attribute.
func escape(s string) string {
	var sb strings.Builder
	// strings.Builder never fails a write
	_ = xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
