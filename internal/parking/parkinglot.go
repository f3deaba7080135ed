package parking

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// ParkingLot allocates numbered slots smallest-first and keeps color and
// registration indexes in step with the occupied table. A failed call leaves
// every structure untouched.
type ParkingLot struct {
	mu         sync.Mutex
	totalSlots int
	available  *slotPool
	closed     bool
	occupied   map[int]Car
	byColor    map[string]map[int]struct{}
	byRegNo    map[string]int
}

func NewParkingLot(size int) (*ParkingLot, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: parking lot size must be positive, got %d", ErrInvalidArgument, size)
	}

	return &ParkingLot{
		totalSlots: size,
		available:  newSlotPool(size),
		occupied:   make(map[int]Car),
		byColor:    make(map[string]map[int]struct{}),
		byRegNo:    make(map[string]int),
	}, nil
}

func (pl *ParkingLot) Size() int {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.totalSlots
}

func (pl *ParkingLot) AvailableCount() int {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.available.Len()
}

func (pl *ParkingLot) OccupiedCount() int {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return len(pl.occupied)
}

func (pl *ParkingLot) Park(car Car) (int, error) {
	car = NewCar(car.RegNo, car.Color)

	pl.mu.Lock()
	defer pl.mu.Unlock()

	if pl.closed {
		return 0, errLotClosed
	}
	if pl.available.Len() == 0 {
		return 0, ErrFull
	}
	if _, ok := pl.byRegNo[car.RegNo]; ok {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateRegistration, car.RegNo)
	}

	slot := pl.available.take()
	pl.occupied[slot] = car
	pl.byRegNo[car.RegNo] = slot

	slots, ok := pl.byColor[car.Color]
	if !ok {
		slots = make(map[int]struct{})
		pl.byColor[car.Color] = slots
	}
	slots[slot] = struct{}{}

	return slot, nil
}

func (pl *ParkingLot) Free(slot int) error {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	if pl.closed {
		return errLotClosed
	}

	car, ok := pl.occupied[slot]
	if !ok {
		return fmt.Errorf("%w: slot %d", ErrSlotNotOccupied, slot)
	}

	delete(pl.occupied, slot)
	delete(pl.byRegNo, car.RegNo)
	if slots := pl.byColor[car.Color]; slots != nil {
		delete(slots, slot)
		if len(slots) == 0 {
			delete(pl.byColor, car.Color)
		}
	}
	pl.available.release(slot)

	return nil
}

// Expand adds extra slots numbered after the current total and returns the
// new total.
func (pl *ParkingLot) Expand(extra int) (int, error) {
	if extra <= 0 {
		return 0, fmt.Errorf("%w: expansion size must be positive, got %d", ErrInvalidArgument, extra)
	}

	pl.mu.Lock()
	defer pl.mu.Unlock()

	if pl.closed {
		return 0, errLotClosed
	}
	if extra > math.MaxInt-pl.totalSlots {
		return 0, fmt.Errorf("%w: cannot add %d slots to a lot of %d", ErrInvalidArgument, extra, pl.totalSlots)
	}

	pl.available.extend(extra)
	pl.totalSlots += extra

	return pl.totalSlots, nil
}

// Occupied returns every occupied slot in ascending slot order.
func (pl *ParkingLot) Occupied() []OccupiedSlot {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	status := make([]OccupiedSlot, 0, len(pl.occupied))
	for slot, car := range pl.occupied {
		status = append(status, OccupiedSlot{
			Slot:  slot,
			RegNo: car.RegNo,
			Color: car.Color,
		})
	}

	sort.Slice(status, func(i, j int) bool {
		return status[i].Slot < status[j].Slot
	})

	return status
}

// RegNosByColor fails with ErrNotFound when no car of that color is parked,
// unlike SlotsByColor which answers with an empty list.
func (pl *ParkingLot) RegNosByColor(color string) ([]string, error) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	slots := pl.slotsByColorLocked(normalize(color))
	if len(slots) == 0 {
		return nil, fmt.Errorf("%w: color %s", ErrNotFound, color)
	}

	regNos := make([]string, 0, len(slots))
	for _, slot := range slots {
		regNos = append(regNos, pl.occupied[slot].RegNo)
	}
	return regNos, nil
}

func (pl *ParkingLot) SlotsByColor(color string) []int {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	return pl.slotsByColorLocked(normalize(color))
}

// SlotByRegNo reports false when the car is not parked here.
func (pl *ParkingLot) SlotByRegNo(regNo string) (int, bool) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	slot, ok := pl.byRegNo[normalize(regNo)]
	return slot, ok
}

func (pl *ParkingLot) slotsByColorLocked(color string) []int {
	set := pl.byColor[color]
	slots := make([]int, 0, len(set))
	for slot := range set {
		slots = append(slots, slot)
	}
	sort.Ints(slots)
	return slots
}

// close marks the lot as removed and returns its final counts. Mutations
// racing with the removal fail with ErrLotNotFound.
func (pl *ParkingLot) close(id string) LotSummary {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	pl.closed = true
	return pl.summaryLocked(id)
}

func (pl *ParkingLot) summaryLocked(id string) LotSummary {
	return LotSummary{
		ID:         id,
		TotalSlots: pl.totalSlots,
		Occupied:   len(pl.occupied),
		Available:  pl.available.Len(),
	}
}
