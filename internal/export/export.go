// Package export assembles the printable sheet view of a roster: the
// ordered card lists, per-group and total points, and the display
// options that shape them. Rendering itself happens client-side; this
// package only decides what goes on the sheet.
package export

import (
	"sort"

	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/catalog"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/roster"
)

// Options control what the exported sheet shows. They persist across
// sessions alongside the rosters.
type Options struct {
	ShowTitle       bool `json:"showTitle"`
	ShowTotalPoints bool `json:"showTotalPoints"`
	ShowUnitPoints  bool `json:"showUnitPoints"`
	ShowCardPoints  bool `json:"showCardPoints"`
	ShowSubCards    bool `json:"showSubCards"`
	ShowDiscarded   bool `json:"showDiscarded"`
	RevealHidden    bool `json:"revealHidden"`
}

// DefaultOptions is the sheet configuration used before the user
// changes anything.
func DefaultOptions() Options {
	return Options{
		ShowTitle:       true,
		ShowTotalPoints: true,
		ShowUnitPoints:  true,
		ShowCardPoints:  true,
		ShowSubCards:    true,
	}
}

// UnitEntry is one unit on the sheet, parts in display order.
type UnitEntry struct {
	ID     int           `json:"id"`
	Parts  []*model.Card `json:"parts"`
	Points int           `json:"points"`
}

// Sheet is the fully resolved export view of one roster.
type Sheet struct {
	Title       string        `json:"title,omitempty"`
	Faction     string        `json:"faction"`
	Units       []UnitEntry   `json:"units"`
	Drones      []*model.Card `json:"drones"`
	Tactical    []*model.Card `json:"tactical"`
	SubCards    []*model.Card `json:"subCards,omitempty"`
	TotalPoints int           `json:"totalPoints,omitempty"`
	Options     Options       `json:"options"`
}

// Build resolves a roster into a sheet under the given options.
// Hidden tactical cards show their concealed face unless RevealHidden
// is set; sub-cards already present in the roster are not repeated.
func Build(cat *catalog.Catalog, r *model.Roster, opts Options) *Sheet {
	sheet := &Sheet{Faction: r.Faction, Options: opts}
	if opts.ShowTitle {
		sheet.Title = r.Name
	}
	if opts.ShowTotalPoints {
		sheet.TotalPoints = roster.TotalPoints(r)
	}

	for _, id := range sortedUnitIDs(r) {
		unit := r.Units[id]
		entry := UnitEntry{ID: id}
		for _, slot := range model.PartOrder {
			if card := unit.Part(slot); card != nil {
				entry.Parts = append(entry.Parts, card)
			}
		}
		if opts.ShowUnitPoints {
			entry.Points = roster.UnitPoints(unit)
		}
		sheet.Units = append(sheet.Units, entry)
	}

	sheet.Drones = append(sheet.Drones, r.Drones...)
	for _, t := range r.Tactical {
		if t.Hidden && !opts.RevealHidden {
			concealed := t.Clone()
			concealed.IsConcealed = true
			sheet.Tactical = append(sheet.Tactical, concealed)
			continue
		}
		sheet.Tactical = append(sheet.Tactical, t)
	}

	if opts.ShowSubCards {
		sheet.SubCards = roster.AllSubCards(cat, r, true)
	}
	return sheet
}

func sortedUnitIDs(r *model.Roster) []int {
	ids := make([]int, 0, len(r.Units))
	for id := range r.Units {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
