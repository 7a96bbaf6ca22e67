package aggregation

// dimensionRole keys the dimension x role cross-tab.
type dimensionRole struct {
	dimension string
	role      string
}

// groupRole keys the group x role cross-tab nested within its dimension.
type groupRole struct {
	dimension string
	group     string
	role      string
}

// tallies accumulates sums and counts under a comparable key. Cells are
// created on first add and only ever grown afterwards.
type tallies[K comparable] struct {
	cells map[K]*Tally
}

func newTallies[K comparable]() *tallies[K] {
	return &tallies[K]{cells: make(map[K]*Tally)}
}

func (t *tallies[K]) add(key K, v float64) {
	c, ok := t.cells[key]
	if !ok {
		c = &Tally{}
		t.cells[key] = c
	}
	c.Sum += v
	c.Count++
}

// means returns the plain mean of every populated cell.
func means(t *tallies[string]) map[string]float64 {
	out := make(map[string]float64, len(t.cells))
	for k, c := range t.cells {
		out[k] = c.Mean()
	}
	return out
}

func nestDimensionRoles(t *tallies[dimensionRole]) map[string]map[string]Tally {
	out := make(map[string]map[string]Tally)
	for k, c := range t.cells {
		roles, ok := out[k.dimension]
		if !ok {
			roles = make(map[string]Tally)
			out[k.dimension] = roles
		}
		roles[k.role] = *c
	}
	return out
}

func nestGroupRoles(t *tallies[groupRole]) map[string]map[string]map[string]Tally {
	out := make(map[string]map[string]map[string]Tally)
	for k, c := range t.cells {
		groups, ok := out[k.dimension]
		if !ok {
			groups = make(map[string]map[string]Tally)
			out[k.dimension] = groups
		}
		roles, ok := groups[k.group]
		if !ok {
			roles = make(map[string]Tally)
			groups[k.group] = roles
		}
		roles[k.role] = *c
	}
	return out
}
