package parking

import (
	"math"
	"testing"
)

func TestNewSlotPool(t *testing.T) {
	p := newSlotPool(4)

	if p.Len() != 4 {
		t.Fatalf("Expected 4 free slots, got %d", p.Len())
	}

	for want := 1; want <= 4; want++ {
		if got := p.take(); got != want {
			t.Errorf("Expected slot %d, got %d", want, got)
		}
	}

	if p.Len() != 0 {
		t.Errorf("Expected 0 free slots, got %d", p.Len())
	}
}

func TestSlotPoolReleaseKeepsSmallestFirst(t *testing.T) {
	p := newSlotPool(5)
	for i := 0; i < 5; i++ {
		p.take()
	}

	p.release(4)
	p.release(2)
	p.release(5)

	for _, want := range []int{2, 4, 5} {
		if got := p.take(); got != want {
			t.Errorf("Expected slot %d, got %d", want, got)
		}
	}
}

func TestSlotPoolPrefersFreedOverFresh(t *testing.T) {
	p := newSlotPool(5)
	p.take()
	p.take()
	p.take()

	p.release(2)

	for _, want := range []int{2, 4, 5} {
		if got := p.take(); got != want {
			t.Errorf("Expected slot %d, got %d", want, got)
		}
	}
}

func TestSlotPoolExtend(t *testing.T) {
	p := newSlotPool(2)
	p.take()
	p.extend(3)

	if p.Len() != 4 {
		t.Fatalf("Expected 4 free slots, got %d", p.Len())
	}

	p.release(1)
	for _, want := range []int{1, 2, 3, 4, 5} {
		if got := p.take(); got != want {
			t.Errorf("Expected slot %d, got %d", want, got)
		}
	}
}

func TestSlotPoolHugeTotalIsLazy(t *testing.T) {
	p := newSlotPool(math.MaxInt)

	if p.Len() != math.MaxInt {
		t.Fatalf("Expected %d free slots, got %d", math.MaxInt, p.Len())
	}
	if got := p.take(); got != 1 {
		t.Errorf("Expected slot 1, got %d", got)
	}
	if p.Len() != math.MaxInt-1 {
		t.Errorf("Expected %d free slots, got %d", math.MaxInt-1, p.Len())
	}
}
