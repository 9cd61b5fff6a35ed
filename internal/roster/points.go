package roster

import "github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"

// TotalPoints sums the point cost of every card in the roster: unit
// parts, drones, drone back cards and tactical cards. Pure function,
// recomputed on demand after every mutation; never cached.
func TotalPoints(r *model.Roster) int {
	if r == nil {
		return 0
	}
	total := 0
	for _, unit := range r.Units {
		total += UnitPoints(unit)
	}
	total += DronePoints(r)
	total += TacticalPoints(r)
	return total
}

// UnitPoints sums the point cost of one unit's parts.
func UnitPoints(u *model.Unit) int {
	if u == nil {
		return 0
	}
	total := 0
	for _, card := range u.Parts {
		if card != nil {
			total += card.Points
		}
	}
	return total
}

// DronePoints sums drones plus their attached back cards.
func DronePoints(r *model.Roster) int {
	total := 0
	for _, d := range r.Drones {
		if d == nil {
			continue
		}
		total += d.Points
		if d.BackCard != nil {
			total += d.BackCard.Points
		}
	}
	return total
}

// TacticalPoints sums the tactical card section.
func TacticalPoints(r *model.Roster) int {
	total := 0
	for _, t := range r.Tactical {
		if t != nil {
			total += t.Points
		}
	}
	return total
}
