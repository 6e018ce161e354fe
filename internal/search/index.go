// Package search holds the in-memory card index. Every searchable field is
// lowercased once at build time so repeated substring queries stay cheap.
package search

import (
	"strconv"
	"strings"

	"github.com/hexzhou/ygocdb/internal/domain"
)

// entry carries the precomputed representation of one card. The index only
// references cards; the collection itself is owned by the store.
type entry struct {
	names []string
	desc  string
	idStr string
	card  *domain.Card
}

// Index answers case-insensitive substring queries over card names and
// effect text, plus exact matches on the card password.
type Index struct {
	entries []entry
}

// New builds an index over cards. The slice must not be mutated afterwards;
// the store replaces it wholesale on every dataset update.
func New(cards []domain.Card) *Index {
	ix := &Index{entries: make([]entry, 0, len(cards))}
	ix.Build(cards)
	return ix
}

// Build replaces the whole index. O(n) in the number of cards.
func (ix *Index) Build(cards []domain.Card) {
	entries := make([]entry, len(cards))
	for i := range cards {
		c := &cards[i]
		names := make([]string, 0, 8)
		for _, n := range []string{c.CnName, c.ScName, c.MdName, c.NwbbsN, c.CnocgN, c.JpName, c.JpRuby, c.EnName} {
			if n != "" {
				names = append(names, strings.ToLower(n))
			}
		}
		entries[i] = entry{
			names: names,
			desc:  strings.ToLower(c.Desc()),
			idStr: strconv.Itoa(c.ID),
			card:  c,
		}
	}
	ix.entries = entries
}

// Len reports how many cards are indexed; always equals the collection size.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Query returns every card with any name or effect text containing text
// (case-insensitive), or whose password equals text exactly. An empty query
// returns nothing.
func (ix *Index) Query(text string) []domain.Card {
	if text == "" {
		return nil
	}
	lowered := strings.ToLower(text)

	var results []domain.Card
	for i := range ix.entries {
		e := &ix.entries[i]
		if e.matches(lowered, text) {
			results = append(results, *e.card)
		}
	}
	return results
}

func (e *entry) matches(lowered, raw string) bool {
	for _, n := range e.names {
		if strings.Contains(n, lowered) {
			return true
		}
	}
	if e.desc != "" && strings.Contains(e.desc, lowered) {
		return true
	}
	return e.idStr == raw
}
