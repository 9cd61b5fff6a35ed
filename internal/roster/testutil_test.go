package roster

import (
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/catalog"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
)

// newTestCatalog builds a small but representative catalog: a full set
// of unit parts, a freight drone with an attachable back card, a hidden
// tactical card and a projectile referenced as a sub-card.
func newTestCatalog() *catalog.Catalog {
	cards := []*model.Card{
		{Category: model.CategoryPilot, Name: "Ace", FileName: "Part_Pilot_RDL_Ace.png", Faction: "RDL", Points: 5},
		{Category: model.CategoryTorso, Name: "Raven", FileName: "Part_Torso_RDL_Raven.png", Faction: "RDL", Points: 10, Frame: true},
		{Category: model.CategoryChassis, Name: "Strider", FileName: "Part_Chassis_RDL_Strider.png", Faction: "RDL", Points: 8, Mobility: 4},
		{Category: model.CategoryLeft, Name: "Cannon", FileName: "Part_Left_RDL_Cannon.png", Faction: "RDL", Points: 6, Ammunition: 3},
		{Category: model.CategoryRight, Name: "Blade", FileName: "Part_Right_RDL_Blade.png", Faction: "RDL", Points: 6},
		{Category: model.CategoryBack, Name: "Launcher", FileName: "Part_Back_RDL_Launcher.png", Faction: "RDL", Points: 4,
			SubCards: []string{"Projectile_RDL_Rocket.png"}},
		{Category: model.CategoryBack, Name: "Crate", FileName: "Part_Back_Public_Crate.png", Faction: "Public", Points: 2},
		{Category: model.CategoryDrone, Name: "Scout", FileName: "Drone_RDL_Scout.png", Faction: "RDL", Points: 3,
			Special: []string{"freight_back"}},
		{Category: model.CategoryTactical, Name: "Ambush", FileName: "Tactical_RDL_Ambush.png", Faction: "RDL", Points: 2, Hidden: true},
		{Category: model.CategoryProjectile, Name: "Rocket", FileName: "Projectile_RDL_Rocket.png", Faction: "RDL", Points: 0},
	}
	return catalog.New(cards, nil)
}

// newTestRoster assembles a roster with one full unit, one freight
// drone carrying a back card, and one tactical card.
func newTestRoster(cat *catalog.Catalog) *model.Roster {
	r := model.NewRoster("Strike Team")
	unit := model.NewUnit()
	for _, fn := range []string{
		"Part_Pilot_RDL_Ace.png",
		"Part_Torso_RDL_Raven.png",
		"Part_Chassis_RDL_Strider.png",
		"Part_Left_RDL_Cannon.png",
		"Part_Right_RDL_Blade.png",
		"Part_Back_RDL_Launcher.png",
	} {
		card := cat.Instance(fn)
		unit.Parts[card.Category] = card
	}
	r.Units[0] = unit

	drone := cat.Instance("Drone_RDL_Scout.png")
	drone.RosterID = "d_0"
	drone.BackCard = cat.Instance("Part_Back_Public_Crate.png")
	r.Drones = append(r.Drones, drone)

	tactical := cat.Instance("Tactical_RDL_Ambush.png")
	tactical.RosterID = "t_0"
	r.Tactical = append(r.Tactical, tactical)
	return r
}
