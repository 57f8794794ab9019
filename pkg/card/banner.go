package card

import (
	"math"
	"strings"

	"github.com/matzehuels/statcard/pkg/svg"
)

// WaveStyle names a banner wave animation.
type WaveStyle string

const (
	WaveWave   WaveStyle = "wave"
	WavePulse  WaveStyle = "pulse"
	WaveFlow   WaveStyle = "flow"
	WaveGlitch WaveStyle = "glitch"
)

// waveShape lists amplitude keyframes as fractions of the card height. Every
// keyframe of a shape has the same number of points, so the generated paths
// share one command structure and can be interpolated.
type waveShape struct {
	smooth bool
	frames [][]float64
}

var waveShapes = map[WaveStyle]waveShape{
	WaveWave: {smooth: true, frames: [][]float64{
		{0, 0.06, 0, -0.06, 0},
		{0.04, -0.02, 0.06, -0.02, 0.04},
		{0, -0.06, 0, 0.06, 0},
		{-0.04, 0.02, -0.06, 0.02, -0.04},
	}},
	WavePulse: {smooth: true, frames: [][]float64{
		{0, 0, 0, 0, 0},
		{0.02, -0.1, 0.12, -0.1, 0.02},
		{0, 0.02, -0.02, 0.02, 0},
		{-0.02, 0.08, -0.1, 0.08, -0.02},
	}},
	WaveFlow: {smooth: true, frames: [][]float64{
		{0.03, -0.03, 0.03, -0.03, 0.03, -0.03, 0.03},
		{-0.03, 0.03, -0.03, 0.03, -0.03, 0.03, -0.03},
		{0.05, 0, -0.05, 0, 0.05, 0, -0.05},
		{0, 0.05, 0, -0.05, 0, 0.05, 0},
	}},
	WaveGlitch: {smooth: false, frames: [][]float64{
		{0, 0.05, -0.03, 0.06, -0.05, 0.02, 0, -0.04, 0.03},
		{0.04, -0.06, 0.02, -0.02, 0.07, -0.03, 0.05, 0, -0.02},
		{-0.03, 0.02, 0.06, -0.05, 0, 0.04, -0.06, 0.03, 0},
		{0.02, 0, -0.04, 0.03, -0.02, 0.06, 0.01, -0.05, 0.04},
	}},
}

// ParseWaveStyle maps s to a WaveStyle; unknown values map to WaveWave.
func ParseWaveStyle(s string) WaveStyle {
	w := WaveStyle(s)
	if _, ok := waveShapes[w]; ok {
		return w
	}
	return WaveWave
}

const (
	bannerCycle  = 6.0
	bannerSpline = "0.45 0 0.55 1"
)

// wavePath traces amps across width w around baseline base and closes the
// shape along the bottom edge.
func wavePath(w, h, base float64, amps []float64, smooth bool) string {
	n := len(amps) - 1
	dx := w / float64(n)
	pt := func(i int) (float64, float64) { return float64(i) * dx, base + amps[i]*h }

	var b strings.Builder
	x, y := pt(0)
	b.WriteString("M" + svg.FormatFloat(x) + "," + svg.FormatFloat(y))
	for i := 1; i <= n; i++ {
		px, py := pt(i - 1)
		x, y = pt(i)
		if smooth {
			b.WriteString(" C" + svg.FormatFloat(px+dx/2) + "," + svg.FormatFloat(py) +
				" " + svg.FormatFloat(x-dx/2) + "," + svg.FormatFloat(y) +
				" " + svg.FormatFloat(x) + "," + svg.FormatFloat(y))
		} else {
			b.WriteString(" L" + svg.FormatFloat(x) + "," + svg.FormatFloat(py) +
				" L" + svg.FormatFloat(x) + "," + svg.FormatFloat(y))
		}
	}
	b.WriteString(" L" + svg.FormatFloat(w) + "," + svg.FormatFloat(h) + " L0," + svg.FormatFloat(h) + " Z")
	return b.String()
}

// waveLayer is one animated wave path. The keyframe list loops back to the
// first frame.
func waveLayer(r *Resolved, base float64, fill string, opacity float64, begin float64) *svg.Element {
	shape := waveShapes[r.Wave]
	w, h := float64(r.Width), float64(r.Height)

	paths := make([]string, 0, len(shape.frames)+1)
	for _, amps := range shape.frames {
		paths = append(paths, wavePath(w, h, base, amps, shape.smooth))
	}
	path := svg.E("path").
		Attr("d", paths[0]).
		Attr("fill", fill).Attr("fill-opacity", opacity)
	if !r.Animate {
		return path
	}
	paths = append(paths, paths[0])

	segments := len(paths) - 1
	times := make([]string, len(paths))
	splines := make([]string, segments)
	for i := range paths {
		times[i] = svg.FormatFloat(float64(i) / float64(segments))
	}
	for i := range splines {
		splines[i] = bannerSpline
	}
	dur := bannerCycle * r.Speed.Multiplier()
	return path.Add(svg.E("animate").
		Attr("attributeName", "d").
		Attr("dur", seconds(dur)).
		Attr("begin", seconds(begin*dur)).
		Attr("repeatCount", "indefinite").
		Attr("calcMode", "spline").
		Attr("keyTimes", strings.Join(times, ";")).
		Attr("keySplines", strings.Join(splines, ";")).
		Attr("values", strings.Join(paths, ";")))
}

func buildBanner(r *Resolved) *svg.Element {
	f := newFrame(r, r.BannerName)
	w, h := float64(r.Width), float64(r.Height)
	nameSize := math.Min(w/12, 56)
	descSize := math.Min(w/30, 22)
	f.style(
		".banner-name { font-family: "+fontStack+"; font-weight: 800; font-size: "+svg.FormatFloat(nameSize)+"px; fill: "+r.Theme.Text+"; }",
		".banner-desc { font-family: "+fontStack+"; font-weight: 400; font-size: "+svg.FormatFloat(descSize)+"px; fill: "+r.Theme.Secondary+"; }",
	)
	f.def(svg.E("clipPath").Attr("id", "banner-clip").Add(
		svg.E("rect").
			Attr("x", 0.5).Attr("y", 0.5).
			Attr("width", r.Width-1).Attr("height", r.Height-1).
			Attr("rx", r.BorderRadius),
	))

	f.add(
		svg.Group(
			waveLayer(r, h*0.68, r.Theme.Primary, 0.35, 0),
			waveLayer(r, h*0.76, r.Theme.Secondary, 0.25, 0.5),
		).Attr("clip-path", "url(#banner-clip)"),
		svg.E("text").
			Attr("x", w/2).Attr("y", h*0.4).
			Attr("text-anchor", "middle").
			Class("banner-name", "anim", "d1").
			Add(svg.Text(r.BannerName)),
		svg.E("text").
			Attr("x", w/2).Attr("y", h*0.4+nameSize*0.9).
			Attr("text-anchor", "middle").
			Class("banner-desc", "anim", "d2").
			Add(svg.Text(r.BannerDescription)),
	)
	return f.element()
}
