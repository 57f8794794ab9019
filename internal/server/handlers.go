package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/statcard/pkg/buildinfo"
	"github.com/matzehuels/statcard/pkg/card"
	apperr "github.com/matzehuels/statcard/pkg/errors"
	"github.com/matzehuels/statcard/pkg/pipeline"
	"github.com/matzehuels/statcard/pkg/theme"
)

// cardRequest is the POST /api/card body: card parameters plus output options.
type cardRequest struct {
	card.Params
	Format  string `json:"format,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`
}

func (s *Server) getCard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	refresh, _ := strconv.ParseBool(q.Get("refresh"))
	s.serveCard(w, r, pipeline.Request{
		Params:  card.ParseQuery(q),
		Format:  q.Get("format"),
		Refresh: refresh,
	})
}

// postCard answers malformed JSON with 500, matching the hosted endpoint
// existing embeds were written against.
func (s *Server) postCard(w http.ResponseWriter, r *http.Request) {
	var body cardRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	s.serveCard(w, r, pipeline.Request{
		Params:  body.Params,
		Format:  body.Format,
		Refresh: body.Refresh,
	})
}

func (s *Server) serveCard(w http.ResponseWriter, r *http.Request, req pipeline.Request) {
	res, err := s.opts.Runner.Execute(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := req.Format
	if format == "base64" {
		format = pipeline.FormatDataURL
	}
	h := w.Header()
	h.Set("Content-Type", pipeline.ContentType(format))
	h.Set("Cache-Control", cardCacheControl)
	h.Set("X-Statcard-Cache", res.CacheInfo.String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.SVG)
}

func (s *Server) getQuote(w http.ResponseWriter, r *http.Request) {
	if s.opts.Quotes == nil {
		writeJSON(w, http.StatusOK, card.Quote{Quote: card.DefaultQuote, Author: card.DefaultAuthor})
		return
	}
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	q, _, err := s.opts.Quotes.Get(r.Context(), refresh)
	if err != nil {
		s.writeError(w, r, apperr.Wrap(apperr.ErrCodeInternal, err, "no quote available"))
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if err := apperr.ValidateUsername(username); err != nil {
		s.writeError(w, r, err)
		return
	}
	if s.opts.Runner.Fetcher == nil {
		s.writeError(w, r, apperr.New(apperr.ErrCodeUnsupported, "profile fetching is disabled"))
		return
	}
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	data, err := s.opts.Runner.Data(r.Context(), username, refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=1800")
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) getThemes(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]theme.Palette, len(theme.Names()))
	for _, name := range theme.Names() {
		out[name], _ = theme.Lookup(name)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *Server) ready(w http.ResponseWriter, r *http.Request) {
	if s.opts.Ready != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.opts.Ready(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
