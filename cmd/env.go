package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/text/collate"

	"github.com/arcanaland/deckwright/internal/config"
	"github.com/arcanaland/deckwright/internal/deck"
	"github.com/arcanaland/deckwright/internal/logging"
	"github.com/arcanaland/deckwright/internal/metadata"
	"github.com/arcanaland/deckwright/internal/resolver"
)

// environment is what every deck command needs: configuration, the card
// database and a collator for presentation order.
type environment struct {
	cfg      *config.Config
	meta     *metadata.Metadata
	lookup   *metadata.LookupTables
	collator *collate.Collator
	logger   *slog.Logger
}

func loadEnvironment() (*environment, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	if tabooFlag != 0 {
		cfg.TabooSet = tabooFlag
	}
	if localeFlag != "" {
		cfg.Locale = localeFlag
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	meta, lookup, err := metadata.Load(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("error loading card database from %s: %w", cfg.DataDir, err)
	}
	logger.Debug("loaded card database", "dir", cfg.DataDir, "cards", len(meta.Cards))

	return &environment{
		cfg:      cfg,
		meta:     meta,
		lookup:   lookup,
		collator: resolver.NewCollator(cfg.Locale),
		logger:   logger,
	}, nil
}

func (e *environment) deps() deck.Deps {
	return deck.Deps{Metadata: e.meta, Lookup: e.lookup, Logger: e.logger}
}

// loadDeck reads a deck file and applies the configured taboo set when the
// deck names none.
func (e *environment) loadDeck(path string) (*deck.Deck, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("deck file not found: %s", path)
	}
	d, err := deck.LoadDeck(path)
	if err != nil {
		return nil, fmt.Errorf("error loading deck: %w", err)
	}
	if d.TabooID == nil {
		d.TabooID = e.cfg.TabooSetID()
	}
	return d, nil
}

func (e *environment) resolveDeck(path string) (*deck.ResolvedDeck, error) {
	d, err := e.loadDeck(path)
	if err != nil {
		return nil, err
	}
	rd, err := deck.Resolve(e.deps(), e.collator, d)
	if err != nil {
		return nil, fmt.Errorf("error resolving deck %s: %w", path, err)
	}
	return rd, nil
}
