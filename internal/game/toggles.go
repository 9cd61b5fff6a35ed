package game

import (
	"errors"

	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
)

// Toggle failures. Each leaves the card untouched.
var (
	ErrNoCharge    = errors.New("card has no charge capability")
	ErrNoDrop      = errors.New("card has no discard art")
	ErrNoBlackbox  = errors.New("card has no blackbox state")
	ErrNotHidden   = errors.New("card is not hidden")
	ErrNoSuchTrack = errors.New("card has no such resource track")
	ErrNoChanges   = errors.New("card has no alternate forms")
)

// ResourceTrack names one of the three resource tracks a card may carry.
type ResourceTrack string

const (
	TrackAmmunition ResourceTrack = "ammunition"
	TrackIntercept  ResourceTrack = "intercept"
	TrackLink       ResourceTrack = "link"
)

// SetResource applies a click on resource mark index (1-based): the
// current value becomes index, or index-1 when the track already sits
// exactly at index, so a repeated click on the same mark steps down by
// one. The result always stays within [0, max].
func SetResource(card *model.Card, track ResourceTrack, index int) error {
	max, current := 0, 0
	switch track {
	case TrackAmmunition:
		max, current = card.Ammunition, card.CurrentAmmunition
	case TrackIntercept:
		max, current = card.Intercept, card.CurrentIntercept
	case TrackLink:
		max, current = card.Link, card.CurrentLink
	default:
		return ErrNoSuchTrack
	}
	if max <= 0 {
		return ErrNoSuchTrack
	}

	if index < 1 {
		index = 1
	}
	if index > max {
		index = max
	}
	next := index
	if current == index {
		next = index - 1
	}

	switch track {
	case TrackAmmunition:
		card.CurrentAmmunition = next
	case TrackIntercept:
		card.CurrentIntercept = next
	case TrackLink:
		card.CurrentLink = next
	}
	return nil
}

// ToggleCharge flips the charge token on a charge-capable card.
func ToggleCharge(card *model.Card) error {
	if !card.Charge {
		return ErrNoCharge
	}
	card.IsCharged = !card.IsCharged
	return nil
}

// ToggleDrop flips the discard state. While dropped the card renders
// its alternate art and contributes dropMobility instead of mobility.
func ToggleDrop(card *model.Card) error {
	if card.Drop == "" {
		return ErrNoDrop
	}
	card.IsDropped = !card.IsDropped
	return nil
}

// ToggleBlackbox flips the blackbox marker. Only freehand cards and
// discarded cards carry one.
func ToggleBlackbox(card *model.Card) error {
	if !card.Freehand && !card.IsDropped {
		return ErrNoBlackbox
	}
	card.IsBlackbox = !card.IsBlackbox
	return nil
}

// ToggleReveal flips a hidden card between face-down and face-up.
func ToggleReveal(card *model.Card) error {
	if !card.Hidden {
		return ErrNotHidden
	}
	card.IsRevealed = !card.IsRevealed
	card.IsConcealed = !card.IsRevealed
	return nil
}

// CycleChange swaps the card's identity to the next entry of its change
// cycle `[current, changes...]`, wrapping around. Battle state survives
// the swap (status, resource currents, discard state, blackbox marker
// and the stable roster id) while every static attribute is replaced
// by the next definition's. Resource currents are clamped to the new
// maxima so the track invariant holds across the swap.
func (s *Session) CycleChange(card *model.Card) error {
	if card == nil || len(card.Changes) == 0 {
		return ErrNoChanges
	}
	cycle := append([]string{card.FileName}, card.Changes...)
	idx := 0
	for i, fn := range cycle {
		if fn == card.FileName {
			idx = i
			break
		}
	}
	next := cycle[(idx+1)%len(cycle)]
	def, ok := s.cat.ByFileName(next)
	if !ok {
		return ErrNoChanges
	}

	preserved := struct {
		status     int
		ammo       int
		intercept  int
		link       int
		isDropped  bool
		isBlackbox bool
		rosterID   string
	}{
		status:     card.Status,
		ammo:       card.CurrentAmmunition,
		intercept:  card.CurrentIntercept,
		link:       card.CurrentLink,
		isDropped:  card.IsDropped,
		isBlackbox: card.IsBlackbox,
		rosterID:   card.RosterID,
	}

	*card = *def.Clone()
	card.Status = preserved.status
	card.CurrentAmmunition = clamp(preserved.ammo, card.Ammunition)
	card.CurrentIntercept = clamp(preserved.intercept, card.Intercept)
	card.CurrentLink = clamp(preserved.link, card.Link)
	card.IsDropped = preserved.isDropped
	card.IsBlackbox = preserved.isBlackbox
	card.RosterID = preserved.rosterID
	return nil
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
