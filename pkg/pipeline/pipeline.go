// Package pipeline runs the fetch → quote → render pipeline behind every card.
//
// The CLI and the HTTP server both go through [Runner] so caching and
// defaulting behave the same everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(store, nil, fetcher, quotes, logger)
//	result, err := runner.Execute(ctx, pipeline.Request{
//	    Params: card.Params{Type: card.KindStats, Username: "octocat"},
//	})
//	os.Stdout.Write(result.SVG)
//
// Stages:
//
//  1. Fetch: GitHub profile data, when the card draws on it and none was supplied
//  2. Quote: a quote for quote cards that don't carry one
//  3. Render: SVG from the normalized parameters, cached per day
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/statcard/pkg/card"
	apperr "github.com/matzehuels/statcard/pkg/errors"
)

// =============================================================================
// Formats
// =============================================================================

const (
	FormatSVG     = "svg"
	FormatDataURL = "dataurl"
)

// ValidFormats is the set of supported output formats. "base64" is an alias
// of dataurl.
var ValidFormats = map[string]bool{
	FormatSVG:     true,
	FormatDataURL: true,
	"base64":      true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperr.New(apperr.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, dataurl)", format)
	}
	return nil
}

// =============================================================================
// Request and Result
// =============================================================================

// Request is one card to produce.
type Request struct {
	Params card.Params

	// Format is svg (default) or dataurl.
	Format string
	// Refresh bypasses every cache tier.
	Refresh bool
	// Offline renders only from the supplied data.
	Offline bool
}

// Validate applies defaults and rejects malformed requests.
func (r *Request) Validate() error {
	if r.Format == "" {
		r.Format = FormatSVG
	}
	if r.Format == "base64" {
		r.Format = FormatDataURL
	}
	if err := ValidateFormat(r.Format); err != nil {
		return err
	}
	if r.Params.Username != "" {
		if err := apperr.ValidateUsername(r.Params.Username); err != nil {
			return err
		}
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// SVG is the rendered card, or its data URL for FormatDataURL.
	SVG []byte

	// Kind is the card type that was rendered after fallback.
	Kind card.Kind

	Stats     Stats
	CacheInfo CacheInfo
}

// ContentType returns the MIME type of the result body for format.
func ContentType(format string) string {
	if format == FormatDataURL {
		return "text/plain; charset=utf-8"
	}
	return "image/svg+xml; charset=utf-8"
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FetchTime  time.Duration
	QuoteTime  time.Duration
	RenderTime time.Duration
	Bytes      int
}

// CacheInfo tracks which stages hit the cache.
type CacheInfo struct {
	DataHit  bool // profile data came from cache
	QuoteHit bool // quote came from cache
	CardHit  bool // rendered SVG came from cache
}

func (c CacheInfo) String() string {
	return fmt.Sprintf("data=%t quote=%t card=%t", c.DataHit, c.QuoteHit, c.CardHit)
}
