package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
)

func TestNewSessionLeavesSourceUntouched(t *testing.T) {
	cat := newTestCatalog()
	src := fullRoster(cat)
	s := NewSession(cat, src)

	s.Unit(0).Part(model.CategoryTorso).Status = model.StatusDestroyed
	s.Roster.Drones[0].Status = model.StatusDestroyed

	assert.Equal(t, model.StatusFresh, src.Units[0].Part(model.CategoryTorso).Status)
	assert.Equal(t, model.StatusFresh, src.Drones[0].Status)
	// Sub-card instancing must not grow the source's drone list.
	assert.Len(t, src.Drones, 2)
}

func TestNewSessionInitializesCards(t *testing.T) {
	cat := newTestCatalog()
	s := NewSession(cat, fullRoster(cat))

	left := s.Unit(0).Part(model.CategoryLeft)
	assert.Equal(t, model.StatusFresh, left.Status)
	assert.Equal(t, 3, left.CurrentAmmunition)

	hidden := s.FindCard("t_0")
	require.NotNil(t, hidden)
	assert.True(t, hidden.IsConcealed)
	assert.False(t, hidden.IsRevealed)

	open := s.FindCard("t_1")
	require.NotNil(t, open)
	assert.False(t, open.IsConcealed)

	for _, unit := range s.Roster.Units {
		assert.False(t, unit.IsOut)
	}
}

func TestNewSessionAppliesSpecialRules(t *testing.T) {
	cat := newTestCatalog()
	r := fullRoster(cat)
	r.Units[0].Parts[model.CategoryPilot] = cat.Instance("pilot_framer.png")
	s := NewSession(cat, r)

	// chassis_have_frame grants the chassis a frame for this session only.
	assert.True(t, s.Unit(0).Part(model.CategoryChassis).Frame)
	assert.False(t, r.Units[0].Part(model.CategoryChassis).Frame)

	assert.True(t, s.Roster.Drones[0].HasFreightBack)
	assert.False(t, s.Roster.Drones[1].HasFreightBack)
}

func TestNewSessionInstancesSubCards(t *testing.T) {
	cat := newTestCatalog()
	s := NewSession(cat, fullRoster(cat))

	// rocket.png from the unit's back part lands in the sub-card bucket.
	rocket := s.FindCard("sub-card-rocket.png")
	require.NotNil(t, rocket)
	assert.Equal(t, model.CategoryProjectile, rocket.Category)
	assert.False(t, rocket.IsCharged)

	// repairbot.png from the freight back card joins the drone list.
	bot := s.FindCard("sub-drone-repairbot.png")
	require.NotNil(t, bot)
	assert.Equal(t, model.CategoryDrone, bot.Category)
	assert.Len(t, s.Roster.Drones, 3)
}

func TestSubCardsNotDuplicatedWhenAlreadyInRoster(t *testing.T) {
	cat := newTestCatalog()
	r := fullRoster(cat)
	// The referenced sub-drone is already fielded as a regular drone.
	bot := cat.Instance("repairbot.png")
	bot.RosterID = "d_2"
	r.Drones = append(r.Drones, bot)

	s := NewSession(cat, r)
	count := 0
	for _, d := range s.Roster.Drones {
		if d.FileName == "repairbot.png" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestFindCard(t *testing.T) {
	cat := newTestCatalog()
	s := NewSession(cat, fullRoster(cat))

	assert.NotNil(t, s.FindCard("d_0"))
	assert.NotNil(t, s.FindCard("t_1"))
	assert.Nil(t, s.FindCard("nope"))
}
