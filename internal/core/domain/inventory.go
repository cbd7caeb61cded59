package domain

import "fmt"

type Capacity struct {
	Lower  int
	Upper  int
	Middle int
	RAC    int
}

func (c Capacity) For(class BerthClass) int {
	switch class {
	case BerthLower:
		return c.Lower
	case BerthUpper:
		return c.Upper
	case BerthMiddle:
		return c.Middle
	case BerthRAC:
		return c.RAC
	}
	return 0
}

func (c Capacity) Validate() error {
	for _, class := range []BerthClass{BerthLower, BerthUpper, BerthMiddle, BerthRAC} {
		if c.For(class) < 0 {
			return fmt.Errorf("capacity for %s must not be negative", class)
		}
	}
	return nil
}

type classInventory struct {
	capacity  int
	available int
	held      []bool
}

// SeatInventory tracks remaining seats per class. Each class also records
// which numbered slots are held so that freed slots are handed out again
// before higher ones.
type SeatInventory struct {
	classes map[BerthClass]*classInventory
}

func NewSeatInventory(c Capacity) *SeatInventory {
	inv := &SeatInventory{classes: make(map[BerthClass]*classInventory, 4)}
	for _, class := range []BerthClass{BerthLower, BerthUpper, BerthMiddle, BerthRAC} {
		n := c.For(class)
		inv.classes[class] = &classInventory{
			capacity:  n,
			available: n,
			held:      make([]bool, n),
		}
	}
	return inv
}

func (inv *SeatInventory) Available(class BerthClass) int {
	if ci, ok := inv.classes[class]; ok {
		return ci.available
	}
	return 0
}

func (inv *SeatInventory) Capacity(class BerthClass) int {
	if ci, ok := inv.classes[class]; ok {
		return ci.capacity
	}
	return 0
}

// Grant takes one seat of the class and returns its 1-based slot number.
func (inv *SeatInventory) Grant(class BerthClass) (int, bool) {
	ci, ok := inv.classes[class]
	if !ok || ci.available == 0 {
		return 0, false
	}

	for i, taken := range ci.held {
		if !taken {
			ci.held[i] = true
			ci.available--
			return i + 1, true
		}
	}

	return 0, false
}

func (inv *SeatInventory) Release(class BerthClass, slot int) error {
	ci, ok := inv.classes[class]
	if !ok {
		return fmt.Errorf("unknown berth class %q", class)
	}

	if slot < 1 || slot > ci.capacity || !ci.held[slot-1] {
		return fmt.Errorf("slot %d of %s is not held", slot, class)
	}

	ci.held[slot-1] = false
	ci.available++

	return nil
}

type ClassAvailability struct {
	Class     BerthClass `json:"class"`
	Capacity  int        `json:"capacity"`
	Available int        `json:"available"`
}

type Availability struct {
	Classes       []ClassAvailability `json:"classes"`
	WaitlistCount int                 `json:"waitlist_count"`
}

func (inv *SeatInventory) Snapshot() []ClassAvailability {
	out := make([]ClassAvailability, 0, 4)
	for _, class := range []BerthClass{BerthLower, BerthUpper, BerthMiddle, BerthRAC} {
		ci := inv.classes[class]
		out = append(out, ClassAvailability{Class: class, Capacity: ci.capacity, Available: ci.available})
	}
	return out
}
