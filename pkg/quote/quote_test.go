package quote

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"google.golang.org/genai"

	"github.com/matzehuels/statcard/pkg/cache"
	"github.com/matzehuels/statcard/pkg/card"
)

type fakeProvider struct {
	quote card.Quote
	err   error
	calls int
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Quote(context.Context) (card.Quote, error) {
	f.calls++
	return f.quote, f.err
}

func TestStaticDeterministicWithSeed(t *testing.T) {
	a := NewStatic(rand.New(rand.NewPCG(1, 2)))
	b := NewStatic(rand.New(rand.NewPCG(1, 2)))
	for range 5 {
		qa, _ := a.Quote(context.Background())
		qb, _ := b.Quote(context.Background())
		if qa != qb {
			t.Fatalf("same seed produced %v and %v", qa, qb)
		}
	}
}

func TestStaticQuotesFitCard(t *testing.T) {
	for _, q := range All() {
		if _, err := validate(q); err != nil || q.Author == "" {
			t.Errorf("quote %q is not servable: %v", q.Quote, err)
		}
	}
}

func TestParseQuote(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    card.Quote
		wantErr bool
	}{
		{name: "plain", text: `{"quote":"Ship it.","author":"Someone"}`, want: card.Quote{Quote: "Ship it.", Author: "Someone"}},
		{name: "fenced", text: "```json\n{\"quote\":\"Ship it.\"}\n```", want: card.Quote{Quote: "Ship it.", Author: card.DefaultAuthor}},
		{name: "empty quote", text: `{"quote":"  ","author":"x"}`, wantErr: true},
		{name: "too long", text: `{"quote":"` + strings.Repeat("a", MaxQuoteLength+1) + `"}`, wantErr: true},
		{name: "not json", text: "Ship it.", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseQuote(tt.text)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQuote) {
					t.Errorf("parseQuote() error = %v, want ErrInvalidQuote", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("parseQuote() = %+v, %v; want %+v", got, err, tt.want)
			}
		})
	}
}

type fakeModels struct {
	text  string
	model string
	mime  string
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, _ []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model, f.mime = model, cfg.ResponseMIMEType
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: genai.NewContentFromText(f.text, genai.RoleModel),
		}},
	}, nil
}

func TestGenAIQuote(t *testing.T) {
	models := &fakeModels{text: `{"quote":"Types are documentation that never lies.","author":"Anonymous"}`}
	g := &GenAI{models: models, model: DefaultModel}

	q, err := g.Quote(context.Background())
	if err != nil {
		t.Fatalf("Quote() error: %v", err)
	}
	if q.Quote != "Types are documentation that never lies." {
		t.Errorf("Quote() = %+v", q)
	}
	if models.model != DefaultModel || models.mime != "application/json" {
		t.Errorf("request used model %q mime %q", models.model, models.mime)
	}
}

func TestNewGenAIRequiresKey(t *testing.T) {
	if _, err := NewGenAI(context.Background(), "", ""); err == nil {
		t.Error("NewGenAI without key should fail")
	}
}

func TestServiceCachesPerHour(t *testing.T) {
	ctx := context.Background()
	primary := &fakeProvider{quote: card.Quote{Quote: "Cached wisdom.", Author: "Tester"}}
	s := NewService(cache.NewMemoryCache(0), nil, primary, nil)
	clock := time.Date(2024, 3, 14, 10, 5, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	q, hit, err := s.Get(ctx, false)
	if err != nil || hit || q.Quote != "Cached wisdom." {
		t.Fatalf("first Get() = %+v, %v, %v", q, hit, err)
	}
	if _, hit, _ := s.Get(ctx, false); !hit {
		t.Error("second Get() in the same hour should hit the cache")
	}
	if primary.calls != 1 {
		t.Errorf("primary called %d times, want 1", primary.calls)
	}

	clock = clock.Add(time.Hour)
	if _, hit, _ := s.Get(ctx, false); hit {
		t.Error("next hour should miss")
	}
	if _, hit, _ := s.Get(ctx, true); hit {
		t.Error("refresh should bypass the cache")
	}
}

func TestServiceFallback(t *testing.T) {
	ctx := context.Background()
	primary := &fakeProvider{err: errors.New("quota exceeded")}
	fallback := &fakeProvider{quote: card.Quote{Quote: "Fallback.", Author: "Static"}}
	s := NewService(nil, nil, primary, nil)
	s.Fallback = fallback

	q, _, err := s.Get(ctx, false)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if q.Quote != "Fallback." || primary.calls != 1 || fallback.calls != 1 {
		t.Errorf("Get() = %+v (primary %d, fallback %d calls)", q, primary.calls, fallback.calls)
	}

	s.Fallback = &fakeProvider{quote: card.Quote{Quote: ""}}
	if _, _, err := s.Get(ctx, false); err == nil {
		t.Error("Get() should fail when every provider fails")
	}
}
