// Package store owns the in-memory card collection. The collection and its
// search index are swapped atomically under one lock whenever a dataset
// snapshot is saved, so readers never observe a half-updated state.
package store

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/hexzhou/ygocdb/internal/domain"
	"github.com/hexzhou/ygocdb/internal/search"
)

type Store struct {
	log   zerolog.Logger
	repo  domain.CardRepository
	paths *domain.Paths

	mu     sync.RWMutex
	cards  []domain.Card
	index  *search.Index
	token  string
	loaded bool

	// searchMu serializes generation bumps, the staleness re-check and the
	// delivery itself, so a superseded search can never deliver after a
	// newer one. searchGen is only touched under searchMu.
	searchMu  sync.Mutex
	searchGen uint64
}

func NewStore(log zerolog.Logger, repo domain.CardRepository, paths *domain.Paths) *Store {
	return &Store{
		log:   log.With().Str("module", "store").Logger(),
		repo:  repo,
		paths: paths,
		index: search.New(nil),
	}
}

// Load reads the persisted snapshot and version token. A missing snapshot
// leaves the store empty and is not an error.
func (s *Store) Load(ctx context.Context) error {
	cards, err := s.repo.GetAll(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load persisted snapshot")
	}

	token := s.readToken()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(cards) == 0 {
		s.cards = nil
		s.index = search.New(nil)
		s.token = token
		s.loaded = false
		s.log.Debug().Msg("no persisted snapshot, store left empty")
		return nil
	}

	s.install(cards, token)
	s.log.Info().Int("count", len(cards)).Str("md5", token).Msg("loaded card snapshot")
	return nil
}

// Save persists a freshly downloaded dataset and swaps it into memory. The
// durable write happens first; a failure there leaves both the previous
// persisted snapshot and the in-memory collection untouched.
func (s *Store) Save(ctx context.Context, db domain.CardDatabase, token string) error {
	cards := make([]domain.Card, 0, len(db))
	for _, c := range db {
		cards = append(cards, c)
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].CID < cards[j].CID })

	if err := s.repo.Replace(ctx, cards); err != nil {
		return errors.Wrap(err, "failed to persist snapshot")
	}

	// The token is written strictly after the snapshot commit. If the write
	// fails, the durable token stays behind the snapshot and the next sync
	// re-downloads; a token ahead of the snapshot would skip that sync.
	if err := os.WriteFile(s.paths.TokenPath, []byte(token), 0644); err != nil {
		return errors.Wrap(err, "failed to write version token")
	}

	s.mu.Lock()
	s.install(cards, token)
	s.mu.Unlock()

	s.log.Info().Int("count", len(cards)).Str("md5", token).Msg("saved card snapshot")
	return nil
}

// install swaps the collection and rebuilds the index. Callers hold s.mu.
func (s *Store) install(cards []domain.Card, token string) {
	s.cards = cards
	s.index = search.New(cards)
	s.token = token
	s.loaded = len(cards) > 0
}

// Clear removes the persisted snapshot and token and empties the store.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return errors.Wrap(err, "failed to clear persisted snapshot")
	}
	if err := os.Remove(s.paths.TokenPath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove version token")
	}

	s.mu.Lock()
	s.install(nil, "")
	s.mu.Unlock()

	s.log.Info().Msg("card data cleared")
	return nil
}

// Search returns every card matching query. An empty query returns nothing.
func (s *Store) Search(query string) []domain.Card {
	query = strings.TrimSpace(query)

	s.mu.RLock()
	ix := s.index
	s.mu.RUnlock()

	return ix.Query(query)
}

// SearchAsync runs query off the caller's goroutine and hands the result to
// deliver. A later SearchAsync call supersedes earlier in-flight ones:
// their completions are discarded, never delivered. Cancelling ctx also
// discards the result.
func (s *Store) SearchAsync(ctx context.Context, query string, deliver func([]domain.Card)) {
	s.searchMu.Lock()
	s.searchGen++
	gen := s.searchGen
	s.searchMu.Unlock()

	go func() {
		results := s.Search(query)

		// The re-check and the delivery stay inside one critical section;
		// a newer submission bumps the generation under the same lock.
		s.searchMu.Lock()
		defer s.searchMu.Unlock()

		if ctx.Err() != nil {
			return
		}
		if s.searchGen != gen {
			// A newer query was submitted while this one ran.
			return
		}
		deliver(results)
	}()
}

// Cards returns the current collection, sorted by cid.
func (s *Store) Cards() []domain.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cards
}

// Count reports the collection size.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}

// Loaded reports whether a snapshot is currently installed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// LocalToken returns the version token of the installed snapshot, empty when
// none is known.
func (s *Store) LocalToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// DataSize reports the byte size of the durable snapshot file.
func (s *Store) DataSize() int64 {
	info, err := os.Stat(s.paths.DatabasePath())
	if err != nil {
		return 0
	}
	return info.Size()
}

func (s *Store) readToken() string {
	b, err := os.ReadFile(s.paths.TokenPath)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}
