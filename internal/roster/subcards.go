package roster

import (
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/catalog"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
)

// AllSubCards collects the auxiliary cards referenced by the cards
// already in the roster. It walks every unit part, drone and drone
// back card, follows each card's subCards list against the catalog, and
// de-duplicates by file identifier. Returned cards are fresh copies,
// never the catalog's own entries.
//
// Resolution is exactly one level deep: sub-cards of sub-cards are not
// expanded. Both the builder render path and game-mode instancing use
// this same walk, so the two can never disagree on depth.
//
// With includeDrones false, drone-category sub-cards are excluded (the
// generic sub-card bucket is rendered apart from the drone section);
// with true, sub-drones are included for the full game-mode roster and
// for export.
func AllSubCards(cat *catalog.Catalog, r *model.Roster, includeDrones bool) []*model.Card {
	var walk []*model.Card
	for _, unit := range r.Units {
		if unit == nil {
			continue
		}
		for _, card := range unit.Parts {
			if card != nil {
				walk = append(walk, card)
			}
		}
	}
	for _, d := range r.Drones {
		if d == nil {
			continue
		}
		walk = append(walk, d)
		if d.BackCard != nil {
			walk = append(walk, d.BackCard)
		}
	}

	seen := make(map[string]bool)
	var out []*model.Card
	for _, card := range walk {
		for _, fileName := range card.SubCards {
			if seen[fileName] {
				continue
			}
			def, ok := cat.ByFileName(fileName)
			if !ok {
				continue
			}
			if !includeDrones && def.Category == model.CategoryDrone {
				continue
			}
			seen[fileName] = true
			out = append(out, def.Clone())
		}
	}
	return out
}
