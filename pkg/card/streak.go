package card

import (
	"github.com/matzehuels/statcard/pkg/svg"
)

const (
	ringRadius = 36.0
	flamePath  = "M0 -14C6 -7 10 -2 10 4C10 10 5.5 14 0 14C-5.5 14 -10 10 -10 4C-10 -1 -6.5 -5 -3.5 -8.5C-2.5 -4 -0.5 -2 1.5 -1.5C2.5 -6 2 -10 0 -14Z"
)

func buildStreak(r *Resolved) *svg.Element {
	title := r.possessive("Contribution Streak")
	f := newFrame(r, title)
	f.style(
		".streak-value { font: 700 28px "+fontStack+"; fill: "+r.Theme.Text+"; }",
		".streak-label { font: 700 13px "+fontStack+"; fill: "+r.Theme.Primary+"; }",
		ringCSS(r),
	)

	col := r.innerWidth() / 3
	cx := func(i int) float64 { return r.left() + col*(float64(i)+0.5) }
	ringCY := r.top() + 50

	total := r.Streak.Total
	if total == 0 {
		for _, d := range r.Streak.Days {
			total += d.Count
		}
	}
	since := "All time"
	if len(r.Streak.Days) > 0 {
		if t, ok := parseDate(r.Streak.Days[0].Date); ok {
			since = "Since " + t.Format("Jan 2, 2006")
		}
	}

	today := r.Today.Format(isoDate)
	current := formatDate(today)
	if r.Streak.Current > 0 {
		if rng := formatRange(r.Streak.StartDate, today); rng != "" {
			current = rng
		}
	}

	f.add(
		sideColumn(r, cx(0), total, "Total Contributions", since, 1),
		sideColumn(r, cx(2), r.Streak.Longest, "Longest Streak", formatRange(r.Streak.LongestStreakStart, r.Streak.LongestStreakEnd), 3),
	)

	for _, x := range []float64{r.left() + col, r.left() + 2*col} {
		f.add(svg.E("line").
			Attr("x1", x).Attr("y1", r.top()+10).
			Attr("x2", x).Attr("y2", r.bottom()-10).
			Attr("stroke", r.Theme.Text).Attr("stroke-opacity", 0.2))
	}

	c := cx(1)
	f.def(svg.E("mask").Attr("id", "ring-mask").Add(
		svg.E("rect").
			Attr("x", 0).Attr("y", 0).
			Attr("width", r.Width).Attr("height", r.Height).
			Attr("fill", "white"),
		svg.E("ellipse").
			Attr("cx", c).Attr("cy", ringCY-ringRadius).
			Attr("rx", 13).Attr("ry", 16).
			Attr("fill", "black"),
	))
	f.add(
		svg.Group(svg.E("circle").
			Attr("cx", c).Attr("cy", ringCY).Attr("r", ringRadius).
			Attr("fill", "none").
			Attr("stroke", r.Theme.Primary).Attr("stroke-width", 5),
		).Attr("mask", "url(#ring-mask)").Class("ring"),
		svg.E("path").
			Attr("d", flamePath).
			Attr("fill", r.Theme.Secondary).
			Attr("transform", "translate("+svg.FormatFloat(c)+" "+svg.FormatFloat(ringCY-ringRadius)+")").
			Class("anim", "d2"),
		svg.Group(
			svg.E("text").
				Attr("x", c).Attr("y", ringCY+10).
				Attr("text-anchor", "middle").
				Class("streak-value").
				Add(svg.Text(FormatNumber(r.Streak.Current))),
			svg.E("text").
				Attr("x", c).Attr("y", ringCY+62).
				Attr("text-anchor", "middle").
				Class("streak-label").
				Add(svg.Text("Current Streak")),
			svg.E("text").
				Attr("x", c).Attr("y", ringCY+80).
				Attr("text-anchor", "middle").
				Class("muted").
				Add(svg.Text(current)),
		).Class("anim", "d2"),
	)
	return f.element()
}

func sideColumn(r *Resolved, cx float64, value int, label, sub string, step int) *svg.Element {
	return svg.Group(
		svg.E("text").
			Attr("x", cx).Attr("y", r.top()+70).
			Attr("text-anchor", "middle").
			Class("streak-value").
			Add(svg.Text(FormatNumber(value))),
		svg.E("text").
			Attr("x", cx).Attr("y", r.top()+100).
			Attr("text-anchor", "middle").
			Class("label").
			Add(svg.Text(label)),
		svg.E("text").
			Attr("x", cx).Attr("y", r.top()+120).
			Attr("text-anchor", "middle").
			Class("muted").
			Add(svg.Text(sub)),
	).Class("anim", delayClass(step))
}

// ringCSS reveals the masked ring after the column entrance.
func ringCSS(r *Resolved) string {
	if !r.Animate {
		return ".ring { }"
	}
	mult := r.Speed.Multiplier()
	return "@keyframes ringFade { from { opacity: 0; } to { opacity: 1; } }\n" +
		".ring { opacity: 0; animation: ringFade " + seconds(0.6*mult) + " ease-in forwards; animation-delay: " + seconds(0.4*mult) + "; }"
}
