package card

import (
	"math"

	"github.com/matzehuels/statcard/pkg/svg"
)

// activityTier is 2 above 60% of the series max, 1 above 30%, else 0.
func activityTier(v, peak int) int {
	if peak <= 0 {
		return 0
	}
	ratio := float64(v) / float64(peak)
	switch {
	case ratio > 0.6:
		return 2
	case ratio > 0.3:
		return 1
	default:
		return 0
	}
}

func activitySeries(r *Resolved) ([]int, bool) {
	if len(r.Activity) > 0 {
		return r.Activity, false
	}
	series := make([]int, ActivityDays)
	if !r.Demo {
		return series, false
	}
	rng := demoRand(r.Username)
	for i := range series {
		series[i] = rng.IntN(12)
	}
	return series, true
}

func buildActivity(r *Resolved) *svg.Element {
	title := r.possessive("Activity")
	f := newFrame(r, title)
	f.add(
		titleText(r, title),
		svg.E("text").
			Attr("x", r.right()).Attr("y", r.top()+12).
			Attr("text-anchor", "end").
			Class("muted", "anim").
			Add(svg.Text("Last 30 days")),
	)
	f.style(barCSS(r))

	series, synthetic := activitySeries(r)
	f.demo = synthetic

	peak := 0
	for _, v := range series {
		peak = max(peak, v)
	}

	chartTop := r.top() + 34
	chartBottom := r.bottom() - 16
	chartH := math.Max(chartBottom-chartTop, 0)
	slot := r.innerWidth() / ActivityDays
	mult := r.Speed.Multiplier()

	bars := svg.Group()
	for i, v := range series {
		h := 2.0
		if peak > 0 && v > 0 {
			h = math.Max(float64(v)/float64(peak)*chartH, 2)
		}
		fill, opacity := r.Theme.Primary, 0.4
		switch activityTier(v, peak) {
		case 2:
			opacity = 1
		case 1:
			fill, opacity = r.Theme.Secondary, 1
		}
		bar := svg.E("rect").
			Attr("x", r.left()+float64(i)*slot+slot*0.2).
			Attr("y", chartBottom-h).
			Attr("width", slot*0.6).Attr("height", h).
			Attr("rx", 1.5).
			Attr("fill", fill).Attr("fill-opacity", opacity)
		if r.Animate {
			bar.Class("bar").Attr("style", "animation-delay: "+seconds(float64(i)*0.03*mult))
		}
		bars.Add(bar)
	}
	f.add(
		bars,
		svg.E("line").
			Attr("x1", r.left()).Attr("y1", chartBottom).
			Attr("x2", r.right()).Attr("y2", chartBottom).
			Attr("stroke", r.Theme.Text).Attr("stroke-opacity", 0.2),
		svg.E("text").
			Attr("x", r.left()).Attr("y", r.bottom()).
			Class("muted").
			Add(svg.Text("30 days ago")),
		svg.E("text").
			Attr("x", r.right()).Attr("y", r.bottom()).
			Attr("text-anchor", "end").
			Class("muted").
			Add(svg.Text("Today")),
	)
	return f.element()
}

func barCSS(r *Resolved) string {
	if !r.Animate {
		return ""
	}
	return "@keyframes barUp { from { transform: scaleY(0); } to { transform: scaleY(1); } }\n" +
		".bar { transform-box: fill-box; transform-origin: bottom; animation: barUp " +
		seconds(0.6*r.Speed.Multiplier()) + " ease-out both; }"
}
