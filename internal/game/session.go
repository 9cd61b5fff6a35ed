// Package game implements the game-mode overlay: an ephemeral deep
// snapshot of the active roster whose cards carry battle status,
// resource trackers and discard state. Nothing in here ever touches the
// underlying roster; exiting game mode simply discards the session.
package game

import (
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/catalog"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/rules"
)

// Session is one game-mode run over a roster snapshot.
type Session struct {
	cat *catalog.Catalog

	// Roster is the deep clone all game-mode mutations apply to.
	Roster *model.Roster
	// SubCards holds resolver-derived auxiliary card instances that are
	// not drones (sub-drones are appended to Roster.Drones instead).
	SubCards []*model.Card
}

// NewSession snapshots the roster and initializes every reachable card
// for play. The order is fixed: special rules first, then sub-card
// instancing, then status initialization; the later stages read the
// frame and freight flags the rules finalize. Initialization happens
// exactly once per game-mode entry.
func NewSession(cat *catalog.Catalog, src *model.Roster) *Session {
	s := &Session{cat: cat, Roster: src.Clone()}

	for _, unit := range s.Roster.Units {
		rules.ApplyUnitRules(unit)
		unit.IsOut = false
	}
	for _, d := range s.Roster.Drones {
		rules.ApplyDroneRules(d)
	}

	s.instanceSubCards()

	for _, card := range s.allCards() {
		initCard(card)
	}
	return s
}

// instanceSubCards appends one instance of every sub-card referenced by
// the snapshot's unit parts, drones and drone back cards. Cards already
// present as drones or tacticals are not duplicated. Resolution is one
// level deep; instances get a synthetic stable roster id.
func (s *Session) instanceSubCards() {
	var walk []*model.Card
	for _, unit := range s.Roster.Units {
		for _, card := range unit.Parts {
			if card != nil {
				walk = append(walk, card)
			}
		}
	}
	for _, d := range s.Roster.Drones {
		walk = append(walk, d)
		if d.BackCard != nil {
			walk = append(walk, d.BackCard)
		}
	}

	processed := make(map[string]bool)
	for _, d := range s.Roster.Drones {
		processed[d.FileName] = true
	}
	for _, t := range s.Roster.Tactical {
		processed[t.FileName] = true
	}

	for _, card := range walk {
		for _, fileName := range card.SubCards {
			if processed[fileName] {
				continue
			}
			def, ok := s.cat.ByFileName(fileName)
			if !ok {
				continue
			}
			inst := def.Clone()
			if inst.Category == model.CategoryDrone {
				inst.RosterID = "sub-drone-" + fileName
				rules.ApplyDroneRules(inst)
				s.Roster.Drones = append(s.Roster.Drones, inst)
			} else {
				inst.RosterID = "sub-card-" + fileName
				s.SubCards = append(s.SubCards, inst)
			}
			processed[fileName] = true
		}
	}
}

// allCards returns every card reachable in the session: unit parts,
// drones, drone back cards, tactical cards and resolved sub-cards.
func (s *Session) allCards() []*model.Card {
	cards := s.Roster.AllCards()
	cards = append(cards, s.SubCards...)
	return cards
}

// initCard sets a card's transient fields to their game-start values:
// fresh status, full resource tracks, uncharged, no blackbox, hidden
// cards concealed.
func initCard(card *model.Card) {
	if card == nil {
		return
	}
	card.Status = model.StatusFresh
	if card.Ammunition > 0 {
		card.CurrentAmmunition = card.Ammunition
	}
	if card.Intercept > 0 {
		card.CurrentIntercept = card.Intercept
	}
	if card.Link > 0 {
		card.CurrentLink = card.Link
	}
	if card.Charge {
		card.IsCharged = false
	}
	card.IsBlackbox = false
	if card.Hidden {
		card.IsConcealed = true
	}
}

// Unit returns the unit with the given id, or nil.
func (s *Session) Unit(id int) *model.Unit {
	return s.Roster.Units[id]
}

// FindCard locates a card instance anywhere in the session by its
// roster id.
func (s *Session) FindCard(rosterID string) *model.Card {
	for _, d := range s.Roster.Drones {
		if d.RosterID == rosterID {
			return d
		}
	}
	for _, t := range s.Roster.Tactical {
		if t.RosterID == rosterID {
			return t
		}
	}
	for _, c := range s.SubCards {
		if c.RosterID == rosterID {
			return c
		}
	}
	return nil
}
