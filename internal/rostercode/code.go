// Package rostercode implements the compact text form rosters are
// shared in: `name#faction~units~drones~tactical`, with `|`-separated
// unit groups of `/`-separated model identifiers in the fixed part
// order, and `Drone:`/`Tactical:`-prefixed comma lists. The part order
// is a wire contract shared with model.PartOrder.
package rostercode

import (
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/catalog"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/rules"
)

// ErrBadCode reports a malformed roster code. The caller must discard
// any roster it was building; nothing partial may survive a failed
// import.
var ErrBadCode = errors.New("malformed roster code")

const (
	dronePrefix    = "Drone:"
	tacticalPrefix = "Tactical:"
)

// Encode renders a roster as a shareable code string.
func Encode(r *model.Roster) string {
	var unitGroups []string
	for _, id := range sortedUnitIDs(r) {
		unit := r.Units[id]
		slots := make([]string, len(model.PartOrder))
		for i, cat := range model.PartOrder {
			if card := unit.Part(cat); card != nil {
				slots[i] = card.Name
			}
		}
		unitGroups = append(unitGroups, strings.Join(slots, "/"))
	}

	var droneNames []string
	for _, d := range r.Drones {
		if d == nil || d.Name == "" {
			continue
		}
		name := d.Name
		if d.HasSpecial(rules.TagFreightBack) && d.BackCard != nil {
			name += ":" + d.BackCard.Name
		}
		droneNames = append(droneNames, name)
	}
	dronesCode := ""
	if len(droneNames) > 0 {
		dronesCode = dronePrefix + strings.Join(droneNames, ",")
	}

	var tacticalNames []string
	for _, t := range r.Tactical {
		if t != nil && t.Name != "" {
			tacticalNames = append(tacticalNames, t.Name)
		}
	}
	tacticalCode := ""
	if len(tacticalNames) > 0 {
		tacticalCode = tacticalPrefix + strings.Join(tacticalNames, ",")
	}

	faction := r.Faction
	if faction == "" {
		faction = model.DefaultFaction
	}
	data := faction + "~" + strings.Join(unitGroups, "|") + "~" + dronesCode + "~" + tacticalCode
	return url.PathEscape(r.Name) + "#" + data
}

// Decode parses a code string into a fresh roster and the embedded
// name ("" when the code carries none). Identifiers the catalog does
// not know are skipped silently; a structurally broken code returns
// ErrBadCode and no roster.
func Decode(code string, cat *catalog.Catalog) (string, *model.Roster, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", nil, ErrBadCode
	}
	if IsCompressed(code) {
		var err error
		code, err = Decompress(code)
		if err != nil {
			return "", nil, err
		}
	}

	name := ""
	data := code
	if i := strings.Index(code, "#"); i >= 0 {
		decoded, err := url.PathUnescape(code[:i])
		if err == nil {
			name = decoded
		}
		data = code[i+1:]
	}

	fields := strings.Split(data, "~")
	if len(fields) != 4 {
		return "", nil, ErrBadCode
	}
	factionCode, unitsCode, dronesCode, tacticalCode := fields[0], fields[1], fields[2], fields[3]

	r := model.NewRoster(name)
	if factionCode != "" {
		r.Faction = factionCode
	}

	if unitsCode != "" {
		for unitID, group := range strings.Split(unitsCode, "|") {
			unit := model.NewUnit()
			for i, modelID := range strings.Split(group, "/") {
				if modelID == "" || i >= len(model.PartOrder) {
					continue
				}
				slot := model.PartOrder[i]
				if card := cat.InstanceByKey(slot, modelID); card != nil {
					unit.Parts[slot] = card
				}
			}
			r.Units[unitID] = unit
		}
	}

	if dronesCode != "" {
		if !strings.HasPrefix(dronesCode, dronePrefix) {
			return "", nil, ErrBadCode
		}
		for _, entry := range strings.Split(strings.TrimPrefix(dronesCode, dronePrefix), ",") {
			if entry == "" {
				continue
			}
			mainID, backID, _ := strings.Cut(entry, ":")
			card := cat.InstanceByKey(model.CategoryDrone, mainID)
			if card == nil {
				continue
			}
			if backID != "" {
				card.BackCard = cat.InstanceByKey(model.CategoryBack, backID)
			}
			card.RosterID = "d_" + strconv.Itoa(len(r.Drones))
			r.Drones = append(r.Drones, card)
		}
	}

	if tacticalCode != "" {
		if !strings.HasPrefix(tacticalCode, tacticalPrefix) {
			return "", nil, ErrBadCode
		}
		for _, modelID := range strings.Split(strings.TrimPrefix(tacticalCode, tacticalPrefix), ",") {
			if modelID == "" {
				continue
			}
			card := cat.InstanceByKey(model.CategoryTactical, modelID)
			if card == nil {
				continue
			}
			card.RosterID = "t_" + strconv.Itoa(len(r.Tactical))
			r.Tactical = append(r.Tactical, card)
		}
	}

	return name, r, nil
}

func sortedUnitIDs(r *model.Roster) []int {
	ids := make([]int, 0, len(r.Units))
	for id := range r.Units {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
