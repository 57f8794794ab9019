package card

import (
	"strings"

	"github.com/matzehuels/statcard/pkg/svg"
)

const (
	// QuoteLineWidth is the wrap width of the quote card in runes.
	QuoteLineWidth = 38
	// QuoteMaxLines is the number of quote lines drawn.
	QuoteMaxLines = 4

	ellipsis        = "..."
	quoteHeader     = 40.0
	quoteFooter     = 30.0
	quoteLineHeight = 22.0
)

// WrapText greedily wraps s at width runes per line, hard-splitting words
// longer than width. When more than maxLines result, the last kept line is
// cut so that it ends in "..." and still fits width.
func WrapText(s string, width, maxLines int) []string {
	if width <= len(ellipsis) || maxLines <= 0 {
		return nil
	}
	var (
		lines []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, string(cur))
			cur = nil
		}
	}
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > width {
			flush()
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(w) == 0:
		case len(cur) == 0:
			cur = append(cur, w...)
		case len(cur)+1+len(w) <= width:
			cur = append(cur, ' ')
			cur = append(cur, w...)
		default:
			flush()
			cur = append(cur, w...)
		}
	}
	flush()

	if len(lines) <= maxLines {
		return lines
	}
	last := []rune(lines[maxLines-1])
	if len(last) > width-len(ellipsis) {
		last = last[:width-len(ellipsis)]
	}
	lines = lines[:maxLines]
	lines[maxLines-1] = strings.TrimRight(string(last), " ") + ellipsis
	return lines
}

func buildQuote(r *Resolved) *svg.Element {
	f := newFrame(r, "Quote by "+r.Quote.Author)
	f.style(
		".quote-mark { font: 700 44px Georgia, serif; fill: "+r.Theme.Primary+"; opacity: 0.6; }",
		".quote-text { font: italic 400 16px "+fontStack+"; fill: "+r.Theme.Text+"; }",
		".quote-author { font: 600 13px "+fontStack+"; fill: "+r.Theme.Secondary+"; }",
	)
	f.add(svg.E("text").
		Attr("x", r.left()).Attr("y", r.top()+26).
		Class("quote-mark", "anim").
		Add(svg.Text("“")))

	lines := WrapText(r.Quote.Quote, QuoteLineWidth, QuoteMaxLines)
	bandTop := r.top() + quoteHeader
	bandH := r.innerHeight() - quoteHeader - quoteFooter
	y := bandTop + (bandH-float64(len(lines))*quoteLineHeight)/2 + quoteLineHeight*0.7
	cx := float64(r.Width) / 2
	for i, line := range lines {
		f.add(svg.E("text").
			Attr("x", cx).Attr("y", y+float64(i)*quoteLineHeight).
			Attr("text-anchor", "middle").
			Class("quote-text", "anim", delayClass(i+1)).
			Add(svg.Text(line)))
	}

	f.add(svg.E("text").
		Attr("x", r.right()).Attr("y", r.bottom()-4).
		Attr("text-anchor", "end").
		Class("quote-author", "anim", "d5").
		Add(svg.Text("— " + r.Quote.Author)))
	return f.element()
}
