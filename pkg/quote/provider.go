package quote

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/statcard/pkg/card"
)

// MaxQuoteLength bounds generated quotes so they fit the card at four lines.
const MaxQuoteLength = 160

// ErrInvalidQuote is returned when a provider produced an unusable quote.
var ErrInvalidQuote = errors.New("invalid quote")

// Provider produces quotes.
type Provider interface {
	Name() string
	Quote(ctx context.Context) (card.Quote, error)
}

// validate trims q and rejects empty or overlong quotes.
func validate(q card.Quote) (card.Quote, error) {
	q.Quote = strings.TrimSpace(q.Quote)
	q.Author = strings.TrimSpace(q.Author)
	if q.Quote == "" {
		return card.Quote{}, errors.Join(ErrInvalidQuote, errors.New("empty quote"))
	}
	if utf8.RuneCountInString(q.Quote) > MaxQuoteLength {
		return card.Quote{}, errors.Join(ErrInvalidQuote, errors.New("quote too long"))
	}
	if q.Author == "" {
		q.Author = card.DefaultAuthor
	}
	return q, nil
}
