package catalog

import (
	"strings"

	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
)

// Keyword is one entry of the rules glossary shipped next to the card
// lists.
type Keyword struct {
	Keyword     string `json:"keyword"`
	Description string `json:"description"`
}

// Catalog is the immutable set of known card definitions, indexed for
// every lookup the rest of the system performs. It is read-only after
// Load, so any number of consumers may share it.
type Catalog struct {
	byFileName map[string]*model.Card
	byCardID   map[string]*model.Card
	byKey      map[string]*model.Card
	byCategory map[model.Category][]*model.Card
	keywords   map[string]Keyword
	ordered    []*model.Card
}

// Key builds the composite lookup key used by v2 saves: category plus
// display name. Display names survive art-revision migrations where file
// identifiers do not.
func Key(category model.Category, name string) string {
	return string(category) + "_" + name
}

// DeriveCardID extracts the stable composite id `Category_modelID` from
// a file identifier. Part art assets are named `Part_<Category>_<model>`,
// everything else `<Kind>_<set>_<model>`; a trailing `Front` marker names
// the face of a double-sided print and is not part of the model id.
func DeriveCardID(category model.Category, fileName string) string {
	name := fileName
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[:i]
	}
	parts := strings.Split(name, "_")
	start := 2
	if parts[0] == "Part" {
		start = 3
	}
	if start > len(parts) {
		start = len(parts)
	}
	idParts := parts[start:]
	if len(idParts) > 1 && idParts[len(idParts)-1] == "Front" {
		idParts = idParts[:len(idParts)-1]
	}
	return string(category) + "_" + strings.Join(idParts, "_")
}

// New builds a catalog from raw card definitions and glossary entries.
// Each card gets its derived CardID and its initial reveal flag: hidden
// tactical cards start face-down, everything else face-up.
func New(cards []*model.Card, keywords []Keyword) *Catalog {
	c := &Catalog{
		byFileName: make(map[string]*model.Card, len(cards)),
		byCardID:   make(map[string]*model.Card, len(cards)),
		byKey:      make(map[string]*model.Card, len(cards)),
		byCategory: make(map[model.Category][]*model.Card),
		keywords:   make(map[string]Keyword, len(keywords)),
	}
	for _, card := range cards {
		if card == nil || card.FileName == "" {
			continue
		}
		card.CardID = DeriveCardID(card.Category, card.FileName)
		card.IsRevealed = !(card.Category == model.CategoryTactical && card.Hidden)

		c.byFileName[card.FileName] = card
		c.byCardID[card.CardID] = card
		c.byKey[Key(card.Category, card.Name)] = card
		c.byCategory[card.Category] = append(c.byCategory[card.Category], card)
		c.ordered = append(c.ordered, card)
	}
	for _, kw := range keywords {
		c.keywords[kw.Keyword] = kw
	}
	return c
}

// ByFileName looks a definition up by file identifier (v1 saves).
func (c *Catalog) ByFileName(fileName string) (*model.Card, bool) {
	card, ok := c.byFileName[fileName]
	return card, ok
}

// ByCardID looks a definition up by composite id (roster codes).
func (c *Catalog) ByCardID(cardID string) (*model.Card, bool) {
	card, ok := c.byCardID[cardID]
	return card, ok
}

// ByKey looks a definition up by category and display name (v2 saves).
func (c *Catalog) ByKey(category model.Category, name string) (*model.Card, bool) {
	card, ok := c.byKey[Key(category, name)]
	return card, ok
}

// Category returns the definitions of one category in load order.
func (c *Catalog) Category(cat model.Category) []*model.Card {
	return c.byCategory[cat]
}

// ForFaction returns the definitions of a category usable by the given
// faction. Public cards are usable by everyone.
func (c *Catalog) ForFaction(cat model.Category, faction string) []*model.Card {
	var out []*model.Card
	for _, card := range c.byCategory[cat] {
		if card.Faction == "" || card.Faction == "Public" || card.Faction == faction {
			out = append(out, card)
		}
	}
	return out
}

// Keyword returns a glossary entry.
func (c *Catalog) Keyword(name string) (Keyword, bool) {
	kw, ok := c.keywords[name]
	return kw, ok
}

// Keywords returns every glossary entry.
func (c *Catalog) Keywords() []Keyword {
	out := make([]Keyword, 0, len(c.keywords))
	for _, kw := range c.keywords {
		out = append(out, kw)
	}
	return out
}

// All returns every definition in load order.
func (c *Catalog) All() []*model.Card {
	return c.ordered
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// Instance returns a fresh deep copy of the definition with the given
// file identifier, for insertion into a roster. Returns nil when the
// identifier is unknown.
func (c *Catalog) Instance(fileName string) *model.Card {
	card, ok := c.byFileName[fileName]
	if !ok {
		return nil
	}
	return card.Clone()
}

// InstanceByKey is Instance keyed by category and display name.
func (c *Catalog) InstanceByKey(category model.Category, name string) *model.Card {
	card, ok := c.byKey[Key(category, name)]
	if !ok {
		return nil
	}
	return card.Clone()
}

// InstanceByCardID is Instance keyed by composite id.
func (c *Catalog) InstanceByCardID(cardID string) *model.Card {
	card, ok := c.byCardID[cardID]
	if !ok {
		return nil
	}
	return card.Clone()
}
