package game

import (
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/rules"
)

// Advance moves a card one step through its status cycle. Two tables
// exist, keyed by whether the card is a drone:
//
//	drone:     0 -> 1 (frame) | 2, 1 -> 2, 2 -> 0
//	unit part: 0 -> 1 (frame) | 2, 1 -> 2, 2 -> 3 (can_repair) | 0, 3 -> 0
//
// A frame lets the card absorb one hit as a warning before destruction;
// without one the first hit destroys it outright. A unit with a
// can_repair ability returns destroyed parts to a distinct repaired
// state so a never-damaged part stays distinguishable.
//
// For hidden cards the primary action is the reveal toggle until the
// card is face-up; status never advances while concealed.
func Advance(card *model.Card, unit *model.Unit) {
	if card == nil {
		return
	}
	if card.Hidden && !card.IsRevealed {
		card.IsRevealed = true
		card.IsConcealed = false
		return
	}

	hasFrame := card.Frame
	if card.Category == model.CategoryDrone {
		switch card.Status {
		case model.StatusFresh:
			if hasFrame {
				card.Status = model.StatusWarning
			} else {
				card.Status = model.StatusDestroyed
			}
		case model.StatusWarning:
			card.Status = model.StatusDestroyed
		case model.StatusDestroyed:
			card.Status = model.StatusFresh
		}
		return
	}

	switch card.Status {
	case model.StatusFresh:
		if hasFrame {
			card.Status = model.StatusWarning
		} else {
			card.Status = model.StatusDestroyed
		}
	case model.StatusWarning:
		card.Status = model.StatusDestroyed
	case model.StatusDestroyed:
		if rules.UnitHasAbility(unit, rules.TagCanRepair) {
			card.Status = model.StatusRepaired
		} else {
			card.Status = model.StatusFresh
		}
	case model.StatusRepaired:
		card.Status = model.StatusFresh
	}
}

// AdvancePart advances a unit part and refreshes the owning unit's
// destroyed flag, which consumes the status machine's output but is not
// part of it.
func (s *Session) AdvancePart(unitID int, slot model.Category) bool {
	unit := s.Unit(unitID)
	if unit == nil {
		return false
	}
	card := unit.Part(slot)
	if card == nil {
		return false
	}
	Advance(card, unit)
	unit.IsOut = IsUnitOut(unit)
	return true
}

// AdvanceCard advances a drone, tactical or sub-card located by roster
// id.
func (s *Session) AdvanceCard(rosterID string) bool {
	card := s.FindCard(rosterID)
	if card == nil {
		return false
	}
	Advance(card, nil)
	return true
}

// AdvanceDroneBack advances the back card attached to the drone with
// the given roster id.
func (s *Session) AdvanceDroneBack(rosterID string) bool {
	for _, d := range s.Roster.Drones {
		if d.RosterID == rosterID && d.BackCard != nil {
			Advance(d.BackCard, nil)
			return true
		}
	}
	return false
}

// UnitStats are the unit-level derived stats shown in game mode.
type UnitStats struct {
	Electronic int `json:"electronic"`
	Mobility   int `json:"mobility"`
}

// CalculateUnitStats sums electronic and effective mobility over the
// unit's non-destroyed parts. Discarded parts contribute dropMobility
// when they have one.
func CalculateUnitStats(unit *model.Unit) UnitStats {
	var stats UnitStats
	if unit == nil {
		return stats
	}
	for _, part := range unit.Parts {
		if part == nil || part.Status == model.StatusDestroyed {
			continue
		}
		stats.Electronic += part.Electronic
		stats.Mobility += part.EffectiveMobility()
	}
	return stats
}

// IsUnitOut reports whether the unit counts as destroyed: immediately
// when its Torso is destroyed, otherwise when two or fewer of the
// destruction-relevant parts remain undestroyed. Recomputed after every
// status change; it informs rendering only and never blocks further
// interaction with the unit's parts.
func IsUnitOut(unit *model.Unit) bool {
	if unit == nil {
		return false
	}
	if torso := unit.Part(model.CategoryTorso); torso != nil && torso.Status == model.StatusDestroyed {
		return true
	}
	remaining := 0
	for _, cat := range model.DestructionParts {
		if part := unit.Part(cat); part != nil && part.Status != model.StatusDestroyed {
			remaining++
		}
	}
	return remaining <= 2
}
