package filter

import (
	"sort"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/arcanaland/deckwright/internal/card"
)

// AccessKey fingerprints the inputs of FilterDeckAccess by value: the
// investigator code and taboo set, selections, card pool, sealed list and
// deck target. Equal inputs give equal keys regardless of identity.
func AccessKey(investigator *card.Card, opts AccessOptions) uint64 {
	d := xxhash.New()
	write := func(parts ...string) {
		for _, p := range parts {
			_, _ = d.WriteString(p)
			_, _ = d.Write([]byte{0})
		}
	}

	write("investigator", investigator.Code)
	if investigator.TabooSetID != nil {
		write("taboo", strconv.Itoa(*investigator.TabooSetID))
	}
	if opts.ExtraDeck {
		write("extra")
	}

	keys := make([]string, 0, len(opts.Selections))
	for k := range opts.Selections {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		write("sel", k, opts.Selections[k])
	}

	codes := append([]string(nil), opts.InvestigatorCodes...)
	sort.Strings(codes)
	write(append([]string{"codes"}, codes...)...)

	pool := append([]string(nil), opts.CardPool...)
	sort.Strings(pool)
	write(append([]string{"pool"}, pool...)...)

	if opts.Sealed != nil {
		sealed := make([]string, 0, len(opts.Sealed))
		for code := range opts.Sealed {
			sealed = append(sealed, code)
		}
		sort.Strings(sealed)
		write("sealed")
		for _, code := range sealed {
			write(code, strconv.Itoa(opts.Sealed[code]))
		}
	}
	return d.Sum64()
}

// Cache memoizes deck access filters by AccessKey. A cache is bound to one
// card database; the key does not cover Metadata or Lookup.
type Cache struct {
	mu      sync.Mutex
	entries map[uint64]Filter
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint64]Filter)}
}

// DeckAccess returns the cached FilterDeckAccess for the inputs, building it
// on first use.
func (c *Cache) DeckAccess(investigator *card.Card, opts AccessOptions) Filter {
	key := AccessKey(investigator, opts)

	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.entries[key]; ok {
		return f
	}
	f := FilterDeckAccess(investigator, opts)
	c.entries[key] = f
	return f
}

// Len returns the number of cached filters.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
