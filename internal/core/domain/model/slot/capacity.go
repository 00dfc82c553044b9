package slot

// Capacity is the occupancy of one slot against the configured maximum.
type Capacity struct {
	occupied int
	max      int
}

func NewCapacity(occupied, maxCapacity int) Capacity {
	return Capacity{occupied: occupied, max: maxCapacity}
}

func (c Capacity) Occupied() int    { return c.occupied }
func (c Capacity) MaxCapacity() int { return c.max }

// Available is max - occupied, floored at zero.
func (c Capacity) Available() int {
	return max(c.max-c.occupied, 0)
}

func (c Capacity) IsFull() bool {
	return c.Available() == 0
}
