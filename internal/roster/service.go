package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/catalog"
	"github.com/Andrea4595/ObsidianProtocolRoasterReady/internal/model"
)

// Service owns the roster collection: every saved roster, the active
// roster's name, and the write-through persistence behind them. All
// mutating operations are serialized by an internal lock, matching the
// one-event-at-a-time model the data model assumes.
//
// The collection always contains at least one roster and exactly one is
// active.
type Service struct {
	mu      sync.Mutex
	log     *slog.Logger
	cat     *catalog.Catalog
	store   Store
	rosters map[string]*model.Roster
	active  string

	exportSettings json.RawMessage

	// Persistence is suspended while a game session is running;
	// game-mode mutations only ever touch the session's clone anyway.
	gameMode bool

	nextUnitID     int
	nextDroneID    int
	nextTacticalID int
}

// DefaultRosterName is created on first run when storage is empty.
const DefaultRosterName = "Default Roster"

// NewService builds a service over the given catalog and store.
func NewService(cat *catalog.Catalog, store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		log:     logger,
		cat:     cat,
		store:   store,
		rosters: make(map[string]*model.Roster),
	}
}

// Load reads the persisted collection, migrating old save formats
// forward. When any roster migrated, the whole collection is re-saved
// immediately so storage converges to the current version. An empty
// store yields one fresh default roster.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load rosters: %w", err)
	}
	s.exportSettings = snap.ExportSettings

	anyMigrated := false
	for _, name := range sortedNames(snap.Rosters) {
		r, migrated, err := Decode(name, snap.Rosters[name], s.cat)
		if err != nil {
			// A roster that fails to parse is dropped, not fatal.
			s.log.Warn("dropping unreadable roster", "name", name, "error", err)
			continue
		}
		if migrated {
			s.log.Info("migrated roster to current save version", "name", name)
			anyMigrated = true
		}
		s.rosters[name] = r
	}

	if len(s.rosters) == 0 {
		s.rosters[DefaultRosterName] = model.NewRoster(DefaultRosterName)
		s.active = DefaultRosterName
		anyMigrated = true
	} else if _, ok := s.rosters[snap.Active]; ok {
		s.active = snap.Active
	} else {
		s.active = sortedNames(s.rosters)[0]
	}

	s.recalcNextIDs()
	if anyMigrated {
		s.persist(ctx)
	}
	return nil
}

// Active returns the active roster.
func (s *Service) Active() *model.Roster {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rosters[s.active]
}

// ActiveName returns the active roster's name.
func (s *Service) ActiveName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Names returns every roster name in stable order.
func (s *Service) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedNames(s.rosters)
}

// Catalog returns the catalog the service resolves references against.
func (s *Service) Catalog() *catalog.Catalog {
	return s.cat
}

// SetGameMode flips the game-mode flag. While set, persistence is
// skipped and every collection-level mutation is rejected.
func (s *Service) SetGameMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gameMode = enabled
}

// GameMode reports whether a game session is running.
func (s *Service) GameMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gameMode
}

// Create adds an empty roster and makes it active. Duplicate names are
// rejected with the prior state untouched. Rejected while game mode
// runs.
func (s *Service) Create(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameMode {
		return ErrGameModeActive
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if _, exists := s.rosters[name]; exists {
		return ErrDuplicateName
	}
	s.rosters[name] = model.NewRoster(name)
	s.active = name
	s.recalcNextIDs()
	s.persist(ctx)
	return nil
}

// Rename changes the active roster's name. Rejected while game mode
// runs.
func (s *Service) Rename(ctx context.Context, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameMode {
		return ErrGameModeActive
	}
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return ErrEmptyName
	}
	if _, exists := s.rosters[newName]; exists {
		return ErrDuplicateName
	}
	r := s.rosters[s.active]
	delete(s.rosters, s.active)
	r.Name = newName
	s.rosters[newName] = r
	s.active = newName
	s.persist(ctx)
	return nil
}

// Delete removes the active roster. The last remaining roster can never
// be deleted. The first roster (by name) becomes active. Rejected while
// game mode runs.
func (s *Service) Delete(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameMode {
		return ErrGameModeActive
	}
	if len(s.rosters) <= 1 {
		return ErrLastRoster
	}
	delete(s.rosters, s.active)
	s.active = sortedNames(s.rosters)[0]
	s.recalcNextIDs()
	s.persist(ctx)
	return nil
}

// SetActive switches the active roster. Rejected while game mode runs.
func (s *Service) SetActive(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameMode {
		return ErrGameModeActive
	}
	if _, ok := s.rosters[name]; !ok {
		return ErrRosterNotFound
	}
	s.active = name
	s.recalcNextIDs()
	s.persist(ctx)
	return nil
}

// SetFaction changes the active roster's faction.
func (s *Service) SetFaction(ctx context.Context, faction string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gameMode {
		return ErrGameModeActive
	}
	if faction == "" {
		faction = model.DefaultFaction
	}
	s.rosters[s.active].Faction = faction
	s.persist(ctx)
	return nil
}

// AddUnit appends an empty unit to the active roster and returns its id.
func (s *Service) AddUnit(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextUnitID
	s.rosters[s.active].Units[id] = model.NewUnit()
	s.nextUnitID++
	s.persist(ctx)
	return id
}

// RemoveUnit deletes a unit.
func (s *Service) RemoveUnit(ctx context.Context, unitID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.rosters[s.active]
	if _, ok := r.Units[unitID]; !ok {
		return ErrUnitNotFound
	}
	delete(r.Units, unitID)
	s.recalcNextIDs()
	s.persist(ctx)
	return nil
}

// SetPart places a fresh catalog copy into a unit slot. An empty
// fileName clears the slot.
func (s *Service) SetPart(ctx context.Context, unitID int, slot model.Category, fileName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !isPartSlot(slot) {
		return ErrNotPartSlot
	}
	r := s.rosters[s.active]
	unit, ok := r.Units[unitID]
	if !ok {
		return ErrUnitNotFound
	}
	if fileName == "" {
		delete(unit.Parts, slot)
		s.persist(ctx)
		return nil
	}
	card := s.cat.Instance(fileName)
	if card == nil {
		return ErrCardNotFound
	}
	unit.Parts[slot] = card
	s.persist(ctx)
	return nil
}

// AddDrone appends a fresh catalog copy to the drone list.
func (s *Service) AddDrone(ctx context.Context, fileName string) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card := s.cat.Instance(fileName)
	if card == nil || card.Category != model.CategoryDrone {
		return nil, ErrCardNotFound
	}
	card.RosterID = droneRosterID(s.nextDroneID)
	s.nextDroneID++
	r := s.rosters[s.active]
	r.Drones = append(r.Drones, card)
	s.persist(ctx)
	return card, nil
}

// RemoveDrone deletes a drone by its roster id.
func (s *Service) RemoveDrone(ctx context.Context, rosterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.rosters[s.active]
	kept := r.Drones[:0]
	found := false
	for _, d := range r.Drones {
		if d.RosterID == rosterID {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		return ErrCardNotFound
	}
	r.Drones = kept
	s.persist(ctx)
	return nil
}

// SetDroneBack attaches (or, with empty fileName, detaches) a back card
// to a freight drone.
func (s *Service) SetDroneBack(ctx context.Context, rosterID, fileName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.rosters[s.active]
	for _, d := range r.Drones {
		if d.RosterID != rosterID {
			continue
		}
		if fileName == "" {
			d.BackCard = nil
			s.persist(ctx)
			return nil
		}
		back := s.cat.Instance(fileName)
		if back == nil || back.Category != model.CategoryBack {
			return ErrCardNotFound
		}
		d.BackCard = back
		s.persist(ctx)
		return nil
	}
	return ErrCardNotFound
}

// AddTactical appends a fresh catalog copy to the tactical card list.
func (s *Service) AddTactical(ctx context.Context, fileName string) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	card := s.cat.Instance(fileName)
	if card == nil || card.Category != model.CategoryTactical {
		return nil, ErrCardNotFound
	}
	card.RosterID = tacticalRosterID(s.nextTacticalID)
	s.nextTacticalID++
	r := s.rosters[s.active]
	r.Tactical = append(r.Tactical, card)
	s.persist(ctx)
	return card, nil
}

// RemoveTactical deletes a tactical card by its roster id.
func (s *Service) RemoveTactical(ctx context.Context, rosterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.rosters[s.active]
	kept := r.Tactical[:0]
	found := false
	for _, t := range r.Tactical {
		if t.RosterID == rosterID {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return ErrCardNotFound
	}
	r.Tactical = kept
	s.persist(ctx)
	return nil
}

// Register adds an externally built roster (code import) under a unique
// name derived from wantName, makes it active, and returns the final
// name. The roster is fully built before registration, so a failed
// import never leaves partial state behind.
func (s *Service) Register(ctx context.Context, wantName string, r *model.Roster) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(wantName)
	if name == "" {
		name = "Imported Roster"
	}
	final := name
	for n := 1; ; n++ {
		if _, exists := s.rosters[final]; !exists {
			break
		}
		final = fmt.Sprintf("%s (%d)", name, n)
	}
	r.Name = final
	s.rosters[final] = r
	s.active = final
	s.recalcNextIDs()
	s.persist(ctx)
	return final
}

// TotalPoints recomputes the active roster's point total.
func (s *Service) TotalPoints() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TotalPoints(s.rosters[s.active])
}

// ExportSettings returns the persisted image-export settings record.
func (s *Service) ExportSettings() json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exportSettings
}

// SetExportSettings stores the image-export settings record.
func (s *Service) SetExportSettings(ctx context.Context, raw json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exportSettings = raw
	s.persist(ctx)
}

// persist writes the whole collection through the store. Callers hold
// the lock. Skipped during game mode; failures are logged and accepted
// as a degraded mode, never rolled back.
func (s *Service) persist(ctx context.Context) {
	if s.gameMode {
		return
	}
	snap := NewSnapshot()
	snap.Active = s.active
	snap.ExportSettings = s.exportSettings
	for name, r := range s.rosters {
		rec, err := Encode(r)
		if err != nil {
			s.log.Error("encode roster", "name", name, "error", err)
			continue
		}
		snap.Rosters[name] = rec
	}
	if err := s.store.Save(ctx, snap); err != nil {
		s.log.Error("persist rosters", "error", err)
	}
}

// recalcNextIDs rescans the active roster for the highest unit, drone
// and tactical ids so new entries never collide with loaded ones.
func (s *Service) recalcNextIDs() {
	s.nextUnitID, s.nextDroneID, s.nextTacticalID = 0, 0, 0
	r := s.rosters[s.active]
	if r == nil {
		return
	}
	for id := range r.Units {
		if id >= s.nextUnitID {
			s.nextUnitID = id + 1
		}
	}
	for _, d := range r.Drones {
		if n, ok := parseRosterID(d.RosterID, "d_"); ok && n >= s.nextDroneID {
			s.nextDroneID = n + 1
		}
	}
	for _, t := range r.Tactical {
		if n, ok := parseRosterID(t.RosterID, "t_"); ok && n >= s.nextTacticalID {
			s.nextTacticalID = n + 1
		}
	}
}

func parseRosterID(id, prefix string) (int, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
	if err != nil {
		return 0, false
	}
	return n, true
}

func isPartSlot(cat model.Category) bool {
	for _, c := range model.PartOrder {
		if c == cat {
			return true
		}
	}
	return false
}
