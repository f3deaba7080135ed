package parking

import "container/heap"

// OccupiedSlot is one row of a lot's status.
type OccupiedSlot struct {
	Slot  int
	RegNo string
	Color string
}

// slotHeap is a min-heap of freed slot numbers.
type slotHeap []int

func (h slotHeap) Len() int           { return len(h) }
func (h slotHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h slotHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *slotHeap) Push(x any) {
	*h = append(*h, x.(int))
}

func (h *slotHeap) Pop() any {
	old := *h
	n := len(old)
	slot := old[n-1]
	*h = old[:n-1]
	return slot
}

// slotPool hands out slot numbers smallest-first. Slots 1..issued have been
// handed out at least once; freed ones go back on the heap. Every freed slot
// is at most issued, so the heap is always drained before fresh numbers.
type slotPool struct {
	freed  slotHeap
	issued int
	total  int
}

func newSlotPool(total int) *slotPool {
	return &slotPool{total: total}
}

func (p *slotPool) Len() int {
	return len(p.freed) + p.total - p.issued
}

// take must only be called when Len() > 0.
func (p *slotPool) take() int {
	if len(p.freed) > 0 {
		return heap.Pop(&p.freed).(int)
	}
	p.issued++
	return p.issued
}

func (p *slotPool) release(slot int) {
	heap.Push(&p.freed, slot)
}

// extend raises the total. Callers guard against overflow.
func (p *slotPool) extend(extra int) {
	p.total += extra
}
