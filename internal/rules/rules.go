// Package rules holds the card-specific exception rules. Every rule is
// keyed off a card's special tag list and runs right before game-mode
// initialization (and before builder-mode rendering when the caller asks
// for it). Rules only add computed properties, they never remove any.
package rules

import "github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"

// Ability tags consumed by the rule table and the status engine.
const (
	TagChassisHaveFrame = "chassis_have_frame"
	TagFreightBack      = "freight_back"
	TagCanRepair        = "can_repair"
)

var unitRules = []func(*model.Unit){
	grantChassisFrame,
}

var droneRules = []func(*model.Card){
	markFreightBack,
}

// ApplyUnitRules runs every unit-scoped rule. Must run before sub-card
// resolution and card-status initialization: both read the flags it
// finalizes.
func ApplyUnitRules(unit *model.Unit) {
	if unit == nil {
		return
	}
	for _, rule := range unitRules {
		rule(unit)
	}
}

// ApplyDroneRules runs every drone-scoped rule.
func ApplyDroneRules(drone *model.Card) {
	if drone == nil {
		return
	}
	for _, rule := range droneRules {
		rule(drone)
	}
}

// UnitHasAbility reports whether any card in the unit carries the tag.
func UnitHasAbility(unit *model.Unit, tag string) bool {
	if unit == nil {
		return false
	}
	for _, card := range unit.Parts {
		if card.HasSpecial(tag) {
			return true
		}
	}
	return false
}

// A pilot with chassis_have_frame grants a structural frame to the
// chassis it is paired with, letting it absorb one hit as a warning.
func grantChassisFrame(unit *model.Unit) {
	pilot := unit.Part(model.CategoryPilot)
	chassis := unit.Part(model.CategoryChassis)
	if pilot.HasSpecial(TagChassisHaveFrame) && chassis != nil {
		chassis.Frame = true
	}
}

// A drone with freight_back tows an independently tracked Back slot.
func markFreightBack(drone *model.Card) {
	if drone.HasSpecial(TagFreightBack) {
		drone.HasFreightBack = true
	}
}
