package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
)

// categoryFiles lists the per-category card lists shipped in the data
// directory, in load order.
var categoryFiles = []model.Category{
	model.CategoryPilot,
	model.CategoryDrone,
	model.CategoryBack,
	model.CategoryChassis,
	model.CategoryLeft,
	model.CategoryRight,
	model.CategoryTorso,
	model.CategoryProjectile,
	model.CategoryTactical,
}

const keywordsFile = "keywords.json"

// Load reads every category list plus the keyword glossary from dir and
// builds the catalog. A missing or unparsable category file is logged
// and skipped: stale saves referencing its cards resolve to nothing,
// which the roster codec treats as a dropped slot, not an error. Load
// itself fails only when the directory is unreadable.
func Load(dir string, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("catalog dir: %w", err)
	}

	var cards []*model.Card
	for _, cat := range categoryFiles {
		path := filepath.Join(dir, string(cat)+".json")
		list, err := readCardFile(path, cat)
		if err != nil {
			logger.Warn("skipping card list", "file", path, "error", err)
			continue
		}
		cards = append(cards, list...)
	}

	keywords, err := readKeywordFile(filepath.Join(dir, keywordsFile))
	if err != nil {
		logger.Warn("skipping keyword glossary", "error", err)
	}

	c := New(cards, keywords)
	logger.Info("catalog loaded", "cards", c.Len(), "keywords", len(c.keywords))
	return c, nil
}

func readCardFile(path string, cat model.Category) ([]*model.Card, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []*model.Card
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	for _, card := range list {
		if card != nil && card.Category == "" {
			card.Category = cat
		}
	}
	return list, nil
}

func readKeywordFile(path string) ([]Keyword, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var list []Keyword
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", keywordsFile, err)
	}
	return list, nil
}
