package model

// Category is the slot/type a card belongs to.
type Category string

const (
	CategoryPilot      Category = "Pilot"
	CategoryTorso      Category = "Torso"
	CategoryChassis    Category = "Chassis"
	CategoryLeft       Category = "Left"
	CategoryRight      Category = "Right"
	CategoryBack       Category = "Back"
	CategoryDrone      Category = "Drone"
	CategoryProjectile Category = "Projectile"
	CategoryTactical   Category = "Tactical"
)

// PartOrder is the fixed unit-slot order. It is a stable wire contract:
// the roster-code encoder and decoder both index into it, so reordering
// entries breaks every exported code in circulation.
var PartOrder = []Category{
	CategoryPilot,
	CategoryTorso,
	CategoryChassis,
	CategoryLeft,
	CategoryRight,
	CategoryBack,
}

// DestructionParts are the categories counted by the unit-out predicate.
// The Pilot slot never counts toward unit destruction.
var DestructionParts = []Category{
	CategoryTorso,
	CategoryChassis,
	CategoryLeft,
	CategoryRight,
	CategoryBack,
}

// Card status values tracked in game mode.
const (
	StatusFresh     = 0
	StatusWarning   = 1
	StatusDestroyed = 2
	StatusRepaired  = 3
)

// Card is a single card. The catalog holds the definition; a roster holds
// deep copies so game-mode mutation can never corrupt the catalog entry.
//
// Static attributes come from the catalog JSON. RosterID and BackCard are
// roster-instance fields. The Current*/Is* fields are transient game-mode
// state and are never persisted.
type Card struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
	FileName string   `json:"fileName"`
	// CardID is the composite id `Category_modelID`, stable across art
	// revisions (a .jpg -> .png swap changes FileName but not CardID).
	CardID  string `json:"cardId,omitempty"`
	Faction string `json:"faction,omitempty"`
	Points  int    `json:"points"`

	Ammunition int  `json:"ammunition,omitempty"`
	Intercept  int  `json:"intercept,omitempty"`
	Link       int  `json:"link,omitempty"`
	Charge     bool `json:"charge,omitempty"`

	Drop     string   `json:"drop,omitempty"`
	Changes  []string `json:"changes,omitempty"`
	Special  []string `json:"special,omitempty"`
	SubCards []string `json:"subCards,omitempty"`

	Hidden      bool   `json:"hidden,omitempty"`
	HiddenTitle string `json:"hiddenTitle,omitempty"`
	Freehand    bool   `json:"freehand,omitempty"`
	Frame       bool   `json:"frame,omitempty"`

	Electronic   int  `json:"electronic,omitempty"`
	Mobility     int  `json:"mobility,omitempty"`
	DropMobility *int `json:"dropMobility,omitempty"`

	// Roster-instance state.
	RosterID       string `json:"rosterId,omitempty"`
	BackCard       *Card  `json:"backCard,omitempty"`
	HasFreightBack bool   `json:"hasFreightBack,omitempty"`

	// Game-mode state.
	Status            int  `json:"cardStatus"`
	CurrentAmmunition int  `json:"currentAmmunition,omitempty"`
	CurrentIntercept  int  `json:"currentIntercept,omitempty"`
	CurrentLink       int  `json:"currentLink,omitempty"`
	IsCharged         bool `json:"isCharged,omitempty"`
	IsBlackbox        bool `json:"isBlackbox,omitempty"`
	IsDropped         bool `json:"isDropped,omitempty"`
	IsRevealed        bool `json:"isRevealedInGameMode"`
	IsConcealed       bool `json:"isConcealed,omitempty"`
}

// HasSpecial reports whether the card carries the given ability tag.
func (c *Card) HasSpecial(tag string) bool {
	if c == nil {
		return false
	}
	for _, s := range c.Special {
		if s == tag {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the card, including slices and the
// attached back card.
func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	dup := *c
	if c.Changes != nil {
		dup.Changes = append([]string(nil), c.Changes...)
	}
	if c.Special != nil {
		dup.Special = append([]string(nil), c.Special...)
	}
	if c.SubCards != nil {
		dup.SubCards = append([]string(nil), c.SubCards...)
	}
	if c.DropMobility != nil {
		v := *c.DropMobility
		dup.DropMobility = &v
	}
	dup.BackCard = c.BackCard.Clone()
	return &dup
}

// EffectiveMobility returns dropMobility when the card is discarded and
// an alternate value exists, otherwise the printed mobility.
func (c *Card) EffectiveMobility() int {
	if c == nil {
		return 0
	}
	if c.IsDropped && c.DropMobility != nil {
		return *c.DropMobility
	}
	return c.Mobility
}
