package quote

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/matzehuels/statcard/pkg/card"
)

var quotes = []card.Quote{
	{Quote: "Talk is cheap. Show me the code.", Author: "Linus Torvalds"},
	{Quote: "Programs must be written for people to read, and only incidentally for machines to execute.", Author: "Harold Abelson"},
	{Quote: "Simplicity is prerequisite for reliability.", Author: "Edsger W. Dijkstra"},
	{Quote: "Premature optimization is the root of all evil.", Author: "Donald Knuth"},
	{Quote: "Clear is better than clever.", Author: "Rob Pike"},
	{Quote: "A little copying is better than a little dependency.", Author: "Rob Pike"},
	{Quote: "Make it work, make it right, make it fast.", Author: "Kent Beck"},
	{Quote: "Any fool can write code that a computer can understand. Good programmers write code that humans can understand.", Author: "Martin Fowler"},
	{Quote: "First, solve the problem. Then, write the code.", Author: "John Johnson"},
	{Quote: "The best error message is the one that never shows up.", Author: "Thomas Fuchs"},
	{Quote: "Deleted code is debugged code.", Author: "Jeff Sickel"},
	{Quote: "Code is like humor. When you have to explain it, it's bad.", Author: "Cory House"},
	{Quote: "Walking on water and developing software from a specification are easy if both are frozen.", Author: "Edward V. Berard"},
	{Quote: "The most disastrous thing that you can ever learn is your first programming language.", Author: "Alan Kay"},
	{Quote: "Code is poetry.", Author: "WordPress"},
}

// Static picks from a curated list of developer quotes.
type Static struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStatic creates a Static provider. A nil rng uses a randomly seeded one.
func NewStatic(rng *rand.Rand) *Static {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Static{rng: rng}
}

func (s *Static) Name() string { return "static" }

func (s *Static) Quote(context.Context) (card.Quote, error) {
	s.mu.Lock()
	i := s.rng.IntN(len(quotes))
	s.mu.Unlock()
	return quotes[i], nil
}

// All returns a copy of the curated list.
func All() []card.Quote {
	return append([]card.Quote(nil), quotes...)
}
