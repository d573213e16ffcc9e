package deck

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/arcanaland/deckwright/internal/filter"
	"github.com/arcanaland/deckwright/internal/resolver"
)

// Meta keys with a fixed meaning. Any other top-level string key is kept as
// a deck option selection.
const (
	metaAlternateFront   = "alternate_front"
	metaAlternateBack    = "alternate_back"
	metaExtraDeck        = "extra_deck"
	metaCardPool         = "card_pool"
	metaSealedDeck       = "sealed_deck"
	metaDeckSizeSelected = "deck_size_selected"
	metaCustomizePrefix  = "cus_"
)

// ErrMalformedMeta is returned by ParseMeta for a meta blob that is not a
// JSON object.
var ErrMalformedMeta = errors.New("malformed deck meta")

// Meta is the decoded deck meta blob.
type Meta struct {
	AlternateFront string
	AlternateBack  string
	// ExtraDeck holds the extra (campaign) deck slots.
	ExtraDeck Slots
	// CardPool lists pack or cycle codes the deck is limited to.
	CardPool []string
	// Sealed is the sealed-deck allowlist; nil when the deck is not sealed.
	Sealed map[string]int
	// DeckSizeSelected is the chosen deck_size_select value, or 0.
	DeckSizeSelected int
	Selections       filter.Selections
	Customizations   resolver.Customizations
}

// ParseMeta decodes a deck meta blob. An empty blob yields an empty Meta.
func ParseMeta(raw string) (Meta, error) {
	meta := Meta{
		Selections:     filter.Selections{},
		Customizations: resolver.Customizations{},
	}
	if strings.TrimSpace(raw) == "" {
		return meta, nil
	}
	if !gjson.Valid(raw) {
		return meta, ErrMalformedMeta
	}
	root := gjson.Parse(raw)
	if !root.IsObject() {
		return meta, ErrMalformedMeta
	}

	root.ForEach(func(key, value gjson.Result) bool {
		k := key.String()
		switch {
		case strings.HasPrefix(k, metaCustomizePrefix):
			meta.Customizations[strings.TrimPrefix(k, metaCustomizePrefix)] = resolver.ParseCustomizations(value.String())
		case value.Type == gjson.String:
			meta.Selections[k] = value.String()
		}
		return true
	})

	meta.AlternateFront = root.Get(metaAlternateFront).String()
	meta.AlternateBack = root.Get(metaAlternateBack).String()
	meta.ExtraDeck = parseCodeList(root.Get(metaExtraDeck).String())
	meta.CardPool = splitCodes(root.Get(metaCardPool).String())
	if sealed := root.Get(metaSealedDeck); sealed.Exists() {
		meta.Sealed = parseSealed(sealed.String())
	}
	if size := root.Get(metaDeckSizeSelected); size.Exists() {
		meta.DeckSizeSelected = int(size.Int())
	}
	return meta, nil
}

// splitCodes splits a comma-separated code list, dropping blanks.
func splitCodes(s string) []string {
	var codes []string
	for _, code := range strings.Split(s, ",") {
		if code = strings.TrimSpace(code); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// parseSealed decodes "code:qty,code:qty". A code without a quantity counts one.
func parseSealed(s string) map[string]int {
	sealed := make(map[string]int)
	for _, entry := range splitCodes(s) {
		code, qty, found := strings.Cut(entry, ":")
		n := 1
		if found {
			if v, err := strconv.Atoi(qty); err == nil && v > 0 {
				n = v
			}
		}
		sealed[strings.TrimSpace(code)] += n
	}
	return sealed
}
