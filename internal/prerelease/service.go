// Package prerelease fetches the pre-release card dataset, a standalone JSON
// resource refreshed via ETag/Last-Modified change detection rather than a
// version token.
package prerelease

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hexzhou/ygocdb/internal/domain"
)

type Service interface {
	// Fetch returns the pre-release card list, re-downloading only when
	// the remote resource changed since the last fetch. force bypasses
	// the change probe.
	Fetch(ctx context.Context, force bool) ([]domain.PreReleaseCard, error)
	// Search fetches if needed and filters by name/desc substring or id.
	Search(ctx context.Context, query string) ([]domain.PreReleaseCard, error)
	// ClearCache drops the cached list and the observed validators.
	ClearCache()
}

type service struct {
	log    zerolog.Logger
	url    string
	client *http.Client

	mu           sync.Mutex
	cards        []domain.PreReleaseCard
	etag         string
	lastModified string
}

func NewService(log zerolog.Logger, cfg *domain.Config) Service {
	return &service{
		log: log.With().Str("module", "prerelease").Logger(),
		url: cfg.PreReleaseURL,
		client: &http.Client{
			Transport: &userAgentTransport{UserAgent: cfg.UserAgent},
			Timeout:   cfg.RequestTimeout(),
		},
	}
}

type userAgentTransport struct {
	Transport http.RoundTripper
	UserAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Transport == nil {
		t.Transport = http.DefaultTransport
	}
	if t.UserAgent != "" {
		req.Header.Set("User-Agent", t.UserAgent)
	}
	return t.Transport.RoundTrip(req)
}

func (s *service) Fetch(ctx context.Context, force bool) ([]domain.PreReleaseCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cards != nil && !force && !s.hasChanged(ctx) {
		return s.cards, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pre-release request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch pre-release dataset")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pre-release dataset returned status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read pre-release dataset")
	}

	var cards []domain.PreReleaseCard
	if err := json.Unmarshal(body, &cards); err != nil {
		return nil, errors.Wrap(err, "failed to decode pre-release dataset")
	}

	s.cards = cards
	s.etag = resp.Header.Get("ETag")
	s.lastModified = resp.Header.Get("Last-Modified")
	s.log.Debug().Int("cards", len(cards)).Msg("pre-release dataset refreshed")

	return s.cards, nil
}

// hasChanged probes the resource with a HEAD request and compares validators
// against the ones observed at the last fetch. Probe failures and missing
// validators both report changed, so a refresh is never skipped on doubt.
// Callers hold s.mu.
func (s *service) hasChanged(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.url, nil)
	if err != nil {
		return true
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Debug().Err(err).Msg("pre-release change probe failed")
		return true
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return true
	}

	if etag := resp.Header.Get("ETag"); etag != "" && s.etag != "" {
		return etag != s.etag
	}
	if lm := resp.Header.Get("Last-Modified"); lm != "" && s.lastModified != "" {
		return lm != s.lastModified
	}
	return true
}

func (s *service) Search(ctx context.Context, query string) ([]domain.PreReleaseCard, error) {
	cards, err := s.Fetch(ctx, false)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return cards, nil
	}

	var matched []domain.PreReleaseCard
	for _, card := range cards {
		if strings.Contains(strings.ToLower(card.Name), query) ||
			strings.Contains(strings.ToLower(card.Desc), query) ||
			strings.Contains(strconv.Itoa(card.ID), query) {
			matched = append(matched, card)
		}
	}
	return matched, nil
}

func (s *service) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = nil
	s.etag = ""
	s.lastModified = ""
}
