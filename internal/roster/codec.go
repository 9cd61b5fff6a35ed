package roster

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/catalog"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
)

// CurrentSaveVersion is the save format written by Encode. Three
// generations exist on read:
//
//	v0: no version field, full card objects embedded.
//	v1: cards referenced by file identifier.
//	v2: cards referenced by {category, name}; display names are stable
//	     across art-revision migrations, file identifiers are not.
//
// Migration is strictly forward: v0 -> v1 -> v2, each step a pure
// function over the record that drops unresolvable references instead
// of failing.
const CurrentSaveVersion = 2

// SavedRef references a card by category and display name (v2).
type SavedRef struct {
	Category model.Category `json:"category"`
	Name     string         `json:"name"`
}

// SavedDrone is a drone reference, optionally carrying its freight
// back-card reference.
type SavedDrone struct {
	Category model.Category `json:"category"`
	Name     string         `json:"name"`
	BackCard *SavedRef      `json:"backCard,omitempty"`
}

// SavedRoster is the current (v2) persisted form of one roster.
type SavedRoster struct {
	Version  int                             `json:"version"`
	Faction  string                          `json:"faction"`
	Units    map[string]map[string]*SavedRef `json:"units"`
	Drones   []SavedDrone                    `json:"drones"`
	Tactical []SavedRef                      `json:"tacticalCards"`
}

// --- v0 record: full embedded card objects ---

type cardRefV0 struct {
	FileName string     `json:"fileName"`
	BackCard *cardRefV0 `json:"backCard,omitempty"`
}

type recordV0 struct {
	Faction  string                           `json:"faction"`
	Units    map[string]map[string]*cardRefV0 `json:"units"`
	Drones   []*cardRefV0                     `json:"drones"`
	Tactical []*cardRefV0                     `json:"tacticalCards"`
}

// --- v1 record: file-identifier references ---

// droneRefV1 appears in old saves either as a bare file-identifier
// string or as an object with a back-card identifier. The custom
// unmarshaler turns both shapes into one explicit variant.
type droneRefV1 struct {
	FileName         string `json:"fileName"`
	BackCardFileName string `json:"backCardFileName,omitempty"`
}

func (d *droneRefV1) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		d.FileName = s
		d.BackCardFileName = ""
		return nil
	}
	type alias droneRefV1
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*d = droneRefV1(a)
	return nil
}

type recordV1 struct {
	Version  int                          `json:"version"`
	Faction  string                       `json:"faction"`
	Units    map[string]map[string]string `json:"units"`
	Drones   []droneRefV1                 `json:"drones"`
	Tactical []string                     `json:"tacticalCards"`
}

// migrateV0toV1 reduces embedded card objects to their file
// identifiers. Slots without a usable identifier become null.
func migrateV0toV1(old recordV0) recordV1 {
	rec := recordV1{
		Version: 1,
		Faction: old.Faction,
		Units:   make(map[string]map[string]string),
	}
	if rec.Faction == "" {
		rec.Faction = model.DefaultFaction
	}
	for unitID, unit := range old.Units {
		rec.Units[unitID] = make(map[string]string)
		for cat, card := range unit {
			if card != nil && card.FileName != "" {
				rec.Units[unitID][cat] = card.FileName
			} else {
				rec.Units[unitID][cat] = ""
			}
		}
	}
	for _, d := range old.Drones {
		if d == nil || d.FileName == "" {
			continue
		}
		ref := droneRefV1{FileName: d.FileName}
		if d.BackCard != nil && d.BackCard.FileName != "" {
			ref.BackCardFileName = d.BackCard.FileName
		}
		rec.Drones = append(rec.Drones, ref)
	}
	for _, t := range old.Tactical {
		if t != nil && t.FileName != "" {
			rec.Tactical = append(rec.Tactical, t.FileName)
		}
	}
	return rec
}

// migrateV1toV2 rewrites file-identifier references as {category, name}
// pairs resolved against the catalog. References the catalog no longer
// knows are dropped; a stale reference is expected after catalog content
// changes, never a failure.
func migrateV1toV2(old recordV1, cat *catalog.Catalog) SavedRoster {
	rec := SavedRoster{
		Version: CurrentSaveVersion,
		Faction: old.Faction,
		Units:   make(map[string]map[string]*SavedRef),
	}
	if rec.Faction == "" {
		rec.Faction = model.DefaultFaction
	}
	for unitID, unit := range old.Units {
		rec.Units[unitID] = make(map[string]*SavedRef)
		for slot, fileName := range unit {
			if fileName == "" {
				rec.Units[unitID][slot] = nil
				continue
			}
			if def, ok := cat.ByFileName(fileName); ok {
				rec.Units[unitID][slot] = &SavedRef{Category: def.Category, Name: def.Name}
			} else {
				rec.Units[unitID][slot] = nil
			}
		}
	}
	for _, d := range old.Drones {
		def, ok := cat.ByFileName(d.FileName)
		if !ok {
			continue
		}
		saved := SavedDrone{Category: def.Category, Name: def.Name}
		if d.BackCardFileName != "" {
			if back, ok := cat.ByFileName(d.BackCardFileName); ok {
				saved.BackCard = &SavedRef{Category: back.Category, Name: back.Name}
			}
		}
		rec.Drones = append(rec.Drones, saved)
	}
	for _, fileName := range old.Tactical {
		if def, ok := cat.ByFileName(fileName); ok {
			rec.Tactical = append(rec.Tactical, SavedRef{Category: def.Category, Name: def.Name})
		}
	}
	return rec
}

// Encode serializes a roster into its current versioned record. Only
// stable identifiers are stored, so catalog updates (point changes, new
// attributes) propagate automatically on the next load.
func Encode(r *model.Roster) ([]byte, error) {
	rec := SavedRoster{
		Version: CurrentSaveVersion,
		Faction: r.Faction,
		Units:   make(map[string]map[string]*SavedRef),
	}
	for unitID, unit := range r.Units {
		saved := make(map[string]*SavedRef)
		if unit != nil {
			for cat, card := range unit.Parts {
				if card != nil {
					saved[string(cat)] = &SavedRef{Category: card.Category, Name: card.Name}
				}
			}
		}
		rec.Units[strconv.Itoa(unitID)] = saved
	}
	for _, d := range r.Drones {
		if d == nil {
			continue
		}
		saved := SavedDrone{Category: d.Category, Name: d.Name}
		if d.BackCard != nil && d.BackCard.Name != "" {
			saved.BackCard = &SavedRef{Category: d.BackCard.Category, Name: d.BackCard.Name}
		}
		rec.Drones = append(rec.Drones, saved)
	}
	for _, t := range r.Tactical {
		if t != nil {
			rec.Tactical = append(rec.Tactical, SavedRef{Category: t.Category, Name: t.Name})
		}
	}
	return json.Marshal(rec)
}

// Decode parses a stored record of any supported version, migrates it
// forward as needed, and resolves every reference against the catalog
// into a fresh independent card copy. The second return reports whether
// a migration ran; when it did, the caller must re-persist the whole
// collection so storage converges to the current version.
func Decode(name string, raw []byte, cat *catalog.Catalog) (*model.Roster, bool, error) {
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, false, fmt.Errorf("parse roster %q: %w", name, err)
	}

	var rec SavedRoster
	migrated := false
	switch probe.Version {
	case 0:
		var v0 recordV0
		if err := json.Unmarshal(raw, &v0); err != nil {
			return nil, false, fmt.Errorf("parse v0 roster %q: %w", name, err)
		}
		rec = migrateV1toV2(migrateV0toV1(v0), cat)
		migrated = true
	case 1:
		var v1 recordV1
		if err := json.Unmarshal(raw, &v1); err != nil {
			return nil, false, fmt.Errorf("parse v1 roster %q: %w", name, err)
		}
		rec = migrateV1toV2(v1, cat)
		migrated = true
	default:
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, false, fmt.Errorf("parse v2 roster %q: %w", name, err)
		}
	}

	return fromRecord(name, rec, cat), migrated, nil
}

// fromRecord materializes a roster from a current-version record.
// Unresolvable references become empty slots or are dropped from lists.
func fromRecord(name string, rec SavedRoster, cat *catalog.Catalog) *model.Roster {
	r := model.NewRoster(name)
	if rec.Faction != "" {
		r.Faction = rec.Faction
	}
	for key, saved := range rec.Units {
		unitID, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		unit := model.NewUnit()
		for slot, ref := range saved {
			if ref == nil || ref.Name == "" {
				continue
			}
			if card := cat.InstanceByKey(ref.Category, ref.Name); card != nil {
				unit.Parts[model.Category(slot)] = card
			}
		}
		r.Units[unitID] = unit
	}
	for i, saved := range rec.Drones {
		card := cat.InstanceByKey(saved.Category, saved.Name)
		if card == nil {
			continue
		}
		card.RosterID = droneRosterID(i)
		if saved.BackCard != nil {
			card.BackCard = cat.InstanceByKey(saved.BackCard.Category, saved.BackCard.Name)
		}
		r.Drones = append(r.Drones, card)
	}
	for i, saved := range rec.Tactical {
		card := cat.InstanceByKey(saved.Category, saved.Name)
		if card == nil {
			continue
		}
		card.RosterID = tacticalRosterID(i)
		r.Tactical = append(r.Tactical, card)
	}
	return r
}

func droneRosterID(n int) string    { return "d_" + strconv.Itoa(n) }
func tacticalRosterID(n int) string { return "t_" + strconv.Itoa(n) }

// sortedNames returns map keys in stable order; used wherever the
// collection is walked for output or persistence.
func sortedNames[M ~map[string]V, V any](m M) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
