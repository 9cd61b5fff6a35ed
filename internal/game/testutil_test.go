package game

import (
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/catalog"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/rules"
)

func intPtr(v int) *int { return &v }

func newTestCatalog() *catalog.Catalog {
	cards := []*model.Card{
		{Category: model.CategoryPilot, Name: "Ace", FileName: "pilot.png", Points: 5},
		{Category: model.CategoryPilot, Name: "Framer", FileName: "pilot_framer.png", Points: 6,
			Special: []string{rules.TagChassisHaveFrame}},
		{Category: model.CategoryPilot, Name: "Mechanic", FileName: "pilot_mechanic.png", Points: 7,
			Special: []string{rules.TagCanRepair}},
		{Category: model.CategoryTorso, Name: "Raven", FileName: "torso.png", Points: 10, Frame: true,
			Electronic: 2},
		{Category: model.CategoryChassis, Name: "Strider", FileName: "chassis.png", Points: 8,
			Mobility: 4},
		{Category: model.CategoryLeft, Name: "Cannon", FileName: "left.png", Points: 6,
			Ammunition: 3},
		{Category: model.CategoryRight, Name: "Blade", FileName: "right.png", Points: 6,
			Mobility: 1},
		{Category: model.CategoryBack, Name: "Launcher", FileName: "back.png", Points: 4,
			SubCards: []string{"rocket.png"}},
		{Category: model.CategoryBack, Name: "Bay", FileName: "bay.png", Points: 2,
			SubCards: []string{"repairbot.png"}},
		{Category: model.CategoryDrone, Name: "Scout", FileName: "drone.png", Points: 3,
			Special: []string{rules.TagFreightBack}},
		{Category: model.CategoryDrone, Name: "Shieldbearer", FileName: "drone_frame.png", Points: 4,
			Frame: true},
		{Category: model.CategoryDrone, Name: "RepairBot", FileName: "repairbot.png", Points: 1},
		{Category: model.CategoryProjectile, Name: "Rocket", FileName: "rocket.png",
			Charge: true},
		{Category: model.CategoryTactical, Name: "Ambush", FileName: "tactical_hidden.png", Points: 2,
			Hidden: true},
		{Category: model.CategoryTactical, Name: "Barrage", FileName: "tactical.png", Points: 3},
		{Category: model.CategoryRight, Name: "Shield", FileName: "right_shield.png", Points: 5,
			Mobility: 2, Drop: "right_shield_dropped.png", DropMobility: intPtr(0), Intercept: 2},
		{Category: model.CategoryRight, Name: "Morph", FileName: "right_morph.png", Points: 5,
			Ammunition: 4, Changes: []string{"right_morph_alt.png"}},
		{Category: model.CategoryRight, Name: "MorphAlt", FileName: "right_morph_alt.png", Points: 5,
			Ammunition: 2, Changes: []string{"right_morph.png"}},
	}
	return catalog.New(cards, nil)
}

// fullRoster builds a roster with one complete unit, two drones (one
// freight with a sub-card back), and both tactical cards.
func fullRoster(cat *catalog.Catalog) *model.Roster {
	r := model.NewRoster("Test")
	unit := model.NewUnit()
	for _, fn := range []string{"pilot.png", "torso.png", "chassis.png", "left.png", "right.png", "back.png"} {
		card := cat.Instance(fn)
		unit.Parts[card.Category] = card
	}
	r.Units[0] = unit

	scout := cat.Instance("drone.png")
	scout.RosterID = "d_0"
	scout.BackCard = cat.Instance("bay.png")
	shield := cat.Instance("drone_frame.png")
	shield.RosterID = "d_1"
	r.Drones = append(r.Drones, scout, shield)

	hidden := cat.Instance("tactical_hidden.png")
	hidden.RosterID = "t_0"
	open := cat.Instance("tactical.png")
	open.RosterID = "t_1"
	r.Tactical = append(r.Tactical, hidden, open)
	return r
}
