// Package ygodb talks to the ygocdb HTTP API: dataset version probing, bulk
// archive download and per-card detail lookup.
package ygodb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hexzhou/ygocdb/internal/domain"
	"github.com/hexzhou/ygocdb/internal/zipx"
)

// cardsEntryName is the single payload entry inside cards.zip.
const cardsEntryName = "cards.json"

type Service interface {
	// FetchMD5 returns the remote dataset version token, trimmed.
	FetchMD5(ctx context.Context) (string, error)
	// HasRemoteChanged compares the remote token against localToken. An
	// empty localToken always reports changed.
	HasRemoteChanged(ctx context.Context, localToken string) (bool, error)
	// DownloadCards fetches, extracts and decodes the full dataset,
	// returning it with the version token that produced it. progress, if
	// non-nil, receives fractions in [0,1] at a bounded rate and a final
	// 1.0 on completion.
	DownloadCards(ctx context.Context, progress func(float64)) (domain.CardDatabase, string, error)
	// FetchCardDetail returns the full per-card payload, including FAQs
	// and release packs.
	FetchCardDetail(ctx context.Context, cardID int) (*domain.CardFullDetail, error)
}

type service struct {
	log     zerolog.Logger
	baseURL string

	// client serves small transfers, bulkClient the archive download.
	client     *http.Client
	bulkClient *http.Client
}

// userAgentTransport adds the configured client identifier to every request.
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

func NewService(log zerolog.Logger, cfg *domain.Config) Service {
	transport := &userAgentTransport{UserAgent: cfg.UserAgent}
	return &service{
		log:     log.With().Str("module", "ygodb").Logger(),
		baseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout(),
		},
		bulkClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.DownloadTimeout(),
		},
	}
}

func (s *service) FetchMD5(ctx context.Context) (string, error) {
	url := s.baseURL + "/cards.zip.md5"
	s.log.Debug().Str("url", url).Msg("fetching dataset md5")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(err, "failed to create request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "failed to fetch md5")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "failed to read md5 response")
	}

	md5 := strings.TrimSpace(string(body))
	if md5 == "" {
		return "", fmt.Errorf("empty md5 response from %s", url)
	}

	s.log.Debug().Str("md5", md5).Msg("fetched dataset md5")
	return md5, nil
}

func (s *service) HasRemoteChanged(ctx context.Context, localToken string) (bool, error) {
	remote, err := s.FetchMD5(ctx)
	if err != nil {
		return false, err
	}
	if localToken == "" {
		return true, nil
	}
	return remote != localToken, nil
}

func (s *service) DownloadCards(ctx context.Context, progress func(float64)) (domain.CardDatabase, string, error) {
	token, err := s.FetchMD5(ctx)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to fetch version token")
	}

	archive, err := s.downloadArchive(ctx, progress)
	if err != nil {
		return nil, "", err
	}

	payload, err := zipx.Extract(archive, cardsEntryName)
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to extract cards.json")
	}
	s.log.Info().Int("bytes", len(payload)).Msg("extracted dataset payload")

	cards, err := decodeCards(payload)
	if err != nil {
		return nil, "", err
	}

	s.log.Info().Int("count", len(cards)).Str("md5", token).Msg("decoded card dataset")
	return cards, token, nil
}

// downloadArchive streams cards.zip, reporting progress at most once per 1%
// of the declared content length. Without a declared length only the final
// 1.0 is delivered.
func (s *service) downloadArchive(ctx context.Context, progress func(float64)) ([]byte, error) {
	url := s.baseURL + "/cards.zip"
	s.log.Info().Str("url", url).Msg("downloading card dataset")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := s.bulkClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to download archive")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, url)
	}

	total := resp.ContentLength
	var data []byte
	if total > 0 {
		data = make([]byte, 0, total)
	}

	buf := make([]byte, 32*1024)
	lastPercent := -1
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
			if progress != nil && total > 0 {
				fraction := float64(len(data)) / float64(total)
				if fraction > 1 {
					fraction = 1
				}
				if percent := int(fraction * 100); percent > lastPercent {
					lastPercent = percent
					progress(fraction)
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, errors.Wrap(readErr, "failed to read archive body")
		}
	}

	if progress != nil {
		progress(1.0)
	}

	s.log.Info().Int("bytes", len(data)).Msg("archive download complete")
	return data, nil
}

// decodeCards parses the extracted payload, naming the offending field or
// offset on structural errors.
func decodeCards(payload []byte) (domain.CardDatabase, error) {
	var cards domain.CardDatabase
	if err := json.Unmarshal(payload, &cards); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, errors.Wrapf(err, "failed to decode dataset: field %q expects %s, got %s",
				typeErr.Field, typeErr.Type, typeErr.Value)
		}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, errors.Wrapf(err, "failed to decode dataset: malformed JSON at offset %d", syntaxErr.Offset)
		}
		return nil, errors.Wrap(err, "failed to decode dataset")
	}
	return cards, nil
}

func (s *service) FetchCardDetail(ctx context.Context, cardID int) (*domain.CardFullDetail, error) {
	url := fmt.Sprintf("%s/card/%d?show=all", s.baseURL, cardID)
	s.log.Debug().Str("url", url).Msg("fetching card detail")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch card detail")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read card detail response")
	}

	detail := &domain.CardFullDetail{}
	if err := json.Unmarshal(body, detail); err != nil {
		return nil, errors.Wrapf(err, "failed to decode card detail for %d", cardID)
	}

	return detail, nil
}
