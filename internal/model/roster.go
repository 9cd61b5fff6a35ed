package model

// Unit is one assembled model: a card (or nothing) in each part slot.
// IsOut is only meaningful inside a game-mode snapshot.
type Unit struct {
	Parts map[Category]*Card `json:"parts"`
	IsOut bool               `json:"isOut,omitempty"`
}

// NewUnit creates an empty unit.
func NewUnit() *Unit {
	return &Unit{Parts: make(map[Category]*Card)}
}

// Part returns the card in the given slot, or nil.
func (u *Unit) Part(cat Category) *Card {
	if u == nil {
		return nil
	}
	return u.Parts[cat]
}

// Clone returns a deep copy of the unit.
func (u *Unit) Clone() *Unit {
	if u == nil {
		return nil
	}
	dup := &Unit{Parts: make(map[Category]*Card, len(u.Parts)), IsOut: u.IsOut}
	for cat, card := range u.Parts {
		dup.Parts[cat] = card.Clone()
	}
	return dup
}

// Roster is one player's collection. Every non-nil card it holds is a
// deep copy of a catalog entry, never a shared reference.
type Roster struct {
	Name     string        `json:"name"`
	Faction  string        `json:"faction"`
	Units    map[int]*Unit `json:"units"`
	Drones   []*Card       `json:"drones"`
	Tactical []*Card       `json:"tacticalCards"`
}

// DefaultFaction is assigned to new rosters and to saves that predate
// faction support.
const DefaultFaction = "RDL"

// NewRoster creates an empty roster with the default faction.
func NewRoster(name string) *Roster {
	return &Roster{
		Name:    name,
		Faction: DefaultFaction,
		Units:   make(map[int]*Unit),
	}
}

// Clear removes every unit, drone and tactical card, keeping name and
// faction.
func (r *Roster) Clear() {
	r.Units = make(map[int]*Unit)
	r.Drones = nil
	r.Tactical = nil
}

// Clone returns a deep copy of the roster. Game mode snapshots the
// active roster through this; mutations to the copy never reach the
// original.
func (r *Roster) Clone() *Roster {
	if r == nil {
		return nil
	}
	dup := &Roster{
		Name:    r.Name,
		Faction: r.Faction,
		Units:   make(map[int]*Unit, len(r.Units)),
	}
	for id, unit := range r.Units {
		dup.Units[id] = unit.Clone()
	}
	for _, d := range r.Drones {
		dup.Drones = append(dup.Drones, d.Clone())
	}
	for _, t := range r.Tactical {
		dup.Tactical = append(dup.Tactical, t.Clone())
	}
	return dup
}

// AllCards returns every card the roster holds: unit parts, drones,
// drone back cards and tactical cards. Nil slots are skipped.
func (r *Roster) AllCards() []*Card {
	var cards []*Card
	for _, unit := range r.Units {
		if unit == nil {
			continue
		}
		for _, card := range unit.Parts {
			if card != nil {
				cards = append(cards, card)
			}
		}
	}
	for _, d := range r.Drones {
		if d == nil {
			continue
		}
		cards = append(cards, d)
		if d.BackCard != nil {
			cards = append(cards, d.BackCard)
		}
	}
	for _, t := range r.Tactical {
		if t != nil {
			cards = append(cards, t)
		}
	}
	return cards
}
