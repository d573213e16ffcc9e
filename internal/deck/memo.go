package deck

import (
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/arcanaland/deckwright/internal/resolver"
)

// CacheKey fingerprints the deck by value: id, name, taboo set, investigator,
// every slot collection, meta blob, update stamp, upgrade chain and
// experience.
func CacheKey(d *Deck) uint64 {
	h := xxhash.New()
	write := func(s string) {
		_, _ = h.WriteString(s)
		_, _ = h.Write([]byte{0})
	}
	writeSlots := func(name string, s Slots) {
		write(name)
		for _, code := range s.Codes() {
			write(code)
			write(strconv.Itoa(s[code]))
		}
	}

	write(string(d.ID))
	write(d.Name)
	if d.TabooID != nil {
		write("taboo:" + strconv.Itoa(*d.TabooID))
	}
	write(d.InvestigatorCode)
	writeSlots("slots", d.Slots)
	writeSlots("side", d.SideSlots)
	writeSlots("ignore", d.IgnoreDeckLimitSlots)
	write(d.ExileString)
	write(d.Meta)
	write(d.DateUpdate)
	if d.XP != nil {
		write("xp:" + strconv.Itoa(*d.XP))
	}
	write(strconv.Itoa(d.XPAdjustment))
	if d.PreviousDeck != nil {
		write("previous:" + strconv.Itoa(*d.PreviousDeck))
	}
	if d.NextDeck != nil {
		write("next:" + strconv.Itoa(*d.NextDeck))
	}
	return h.Sum64()
}

// Memo remembers the last resolution and returns it again while the deck's
// CacheKey is unchanged. A Memo is bound to one Deps and collator.
type Memo struct {
	deps     Deps
	collator resolver.Collator

	mu   sync.Mutex
	key  uint64
	last *ResolvedDeck
}

// NewMemo returns a Memo resolving with deps and collator.
func NewMemo(deps Deps, collator resolver.Collator) *Memo {
	return &Memo{deps: deps, collator: collator}
}

// Resolve returns the memoized ResolvedDeck for d, resolving when the
// deck's value changed since the last call.
func (m *Memo) Resolve(d *Deck) (*ResolvedDeck, error) {
	key := CacheKey(d)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.last != nil && m.key == key {
		return m.last, nil
	}
	rd, err := Resolve(m.deps, m.collator, d)
	if err != nil {
		return nil, err
	}
	m.key, m.last = key, rd
	return rd, nil
}
