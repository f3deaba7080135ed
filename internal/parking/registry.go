package parking

import (
	"fmt"
	"sort"
	"sync"
)

// LotSummary describes one lot for listings and metrics.
type LotSummary struct {
	ID         string
	TotalSlots int
	Occupied   int
	Available  int
}

// LotRegistry owns every lot by id. Lots lock themselves, so the registry lock
// only covers the id map.
type LotRegistry struct {
	mu   sync.RWMutex
	lots map[string]*ParkingLot
}

func NewLotRegistry() *LotRegistry {
	return &LotRegistry{
		lots: make(map[string]*ParkingLot),
	}
}

func (r *LotRegistry) CreateLot(id string, size int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lots[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateLot, id)
	}

	lot, err := NewParkingLot(size)
	if err != nil {
		return err
	}

	r.lots[id] = lot
	return nil
}

func (r *LotRegistry) ExpandLot(id string, size int) (int, error) {
	lot, err := r.lot(id)
	if err != nil {
		return 0, err
	}
	return lot.Expand(size)
}

func (r *LotRegistry) Park(id, regNo, color string) (int, error) {
	lot, err := r.lot(id)
	if err != nil {
		return 0, err
	}
	return lot.Park(NewCar(regNo, color))
}

func (r *LotRegistry) Free(id string, slot int) error {
	lot, err := r.lot(id)
	if err != nil {
		return err
	}
	return lot.Free(slot)
}

func (r *LotRegistry) Status(id string) ([]OccupiedSlot, error) {
	lot, err := r.lot(id)
	if err != nil {
		return nil, err
	}
	return lot.Occupied(), nil
}

func (r *LotRegistry) RegNosByColor(id, color string) ([]string, error) {
	lot, err := r.lot(id)
	if err != nil {
		return nil, err
	}
	return lot.RegNosByColor(color)
}

func (r *LotRegistry) SlotsByColor(id, color string) ([]int, error) {
	lot, err := r.lot(id)
	if err != nil {
		return nil, err
	}
	return lot.SlotsByColor(color), nil
}

func (r *LotRegistry) SlotByRegNo(id, regNo string) (int, bool, error) {
	lot, err := r.lot(id)
	if err != nil {
		return 0, false, err
	}
	slot, ok := lot.SlotByRegNo(regNo)
	return slot, ok, nil
}

func (r *LotRegistry) ColorCounts(id string) (map[string]int, error) {
	lot, err := r.lot(id)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, s := range lot.Occupied() {
		counts[s.Color]++
	}
	return counts, nil
}

// DeleteLot removes the lot and returns its counts at the moment of removal.
func (r *LotRegistry) DeleteLot(id string) (LotSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lot, ok := r.lots[id]
	if !ok {
		return LotSummary{}, fmt.Errorf("%w: %s", ErrLotNotFound, id)
	}
	summary := lot.close(id)
	delete(r.lots, id)
	return summary, nil
}

// Lots lists every lot ordered by id.
func (r *LotRegistry) Lots() []LotSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	summaries := make([]LotSummary, 0, len(r.lots))
	for id, lot := range r.lots {
		lot.mu.Lock()
		summaries = append(summaries, lot.summaryLocked(id))
		lot.mu.Unlock()
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ID < summaries[j].ID
	})

	return summaries
}

func (r *LotRegistry) lot(id string) (*ParkingLot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lot, ok := r.lots[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLotNotFound, id)
	}
	return lot, nil
}

func (r *LotRegistry) Summary(id string) (LotSummary, error) {
	lot, err := r.lot(id)
	if err != nil {
		return LotSummary{}, err
	}

	lot.mu.Lock()
	defer lot.mu.Unlock()
	return lot.summaryLocked(id), nil
}
