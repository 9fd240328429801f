package engine

// SharedHistory is a from-to history table shared by every Lazy-SMP worker,
// letting a good quiet move found by one goroutine immediately influence
// move ordering in the others. Like the transposition table (§4.K), it is
// updated without locks: a torn read during a concurrent write just means a
// slightly stale history score, never a crash.
type SharedHistory struct {
	table [64][64]int
}

// NewSharedHistory creates an empty shared history table.
func NewSharedHistory() *SharedHistory {
	return &SharedHistory{}
}

// Get returns the shared history score for a from-to square pair.
func (h *SharedHistory) Get(from, to int) int {
	return h.table[from][to]
}

// Update adds bonus to the shared history score for a from-to square pair,
// scaling the whole table down if it would overflow the same clamp the
// per-worker history tables use.
func (h *SharedHistory) Update(from, to int, bonus int) {
	h.table[from][to] += bonus
	if h.table[from][to] > 400000 {
		for i := range h.table {
			for j := range h.table[i] {
				h.table[i][j] /= 2
			}
		}
	} else if h.table[from][to] < -400000 {
		h.table[from][to] = -400000
	}
}

// Clear zeroes the shared history table.
func (h *SharedHistory) Clear() {
	h.table = [64][64]int{}
}
