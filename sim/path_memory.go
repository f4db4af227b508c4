package sim

import "fmt"

// PathMemoryError reports a return attempt for a pearl with no recorded path.
// It means a finished pearl showed up somewhere it was never offloaded to.
type PathMemoryError struct {
	PearlID uint32
}

func (e *PathMemoryError) Error() string {
	return fmt.Sprintf("path memory: no recorded path back to the gatekeeper for pearl %d", e.PearlID)
}

// PathMemory records, per pearl, the stack of workers it was offloaded from
// (oldest first). It persists across ticks.
type PathMemory struct {
	stacks map[uint32][]uint32
}

// NewPathMemory creates an empty PathMemory.
func NewPathMemory() *PathMemory {
	return &PathMemory{stacks: make(map[uint32][]uint32)}
}

// Push records that workerID handed pearlID onward.
func (m *PathMemory) Push(pearlID, workerID uint32) {
	m.stacks[pearlID] = append(m.stacks[pearlID], workerID)
}

// Pop removes and returns the most recent worker on pearlID's path.
// Drained stacks are dropped.
func (m *PathMemory) Pop(pearlID uint32) (uint32, error) {
	stack := m.stacks[pearlID]
	if len(stack) == 0 {
		delete(m.stacks, pearlID)
		return 0, &PathMemoryError{PearlID: pearlID}
	}
	top := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	if len(stack) == 0 {
		delete(m.stacks, pearlID)
	} else {
		m.stacks[pearlID] = stack
	}
	return top, nil
}

// Path returns a copy of pearlID's recorded stack, oldest first.
func (m *PathMemory) Path(pearlID uint32) []uint32 {
	stack := m.stacks[pearlID]
	if len(stack) == 0 {
		return nil
	}
	out := make([]uint32, len(stack))
	copy(out, stack)
	return out
}

// Len returns the number of pearls with a non-empty path.
func (m *PathMemory) Len() int {
	return len(m.stacks)
}
