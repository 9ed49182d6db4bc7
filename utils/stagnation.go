package utils

const (
	historySize = 5
	// Longest repeating period detected
	maxCyclePeriod = 3
)

// StagnationTracker remembers recent grid hashes to detect static states and
// short cycles
type StagnationTracker struct {
	history []string
}

// Observe records a generation's hash and reports whether it repeats one of
// the last maxCyclePeriod generations
func (s *StagnationTracker) Observe(hash string) bool {
	stagnant := false
	for i := 1; i <= maxCyclePeriod && i <= len(s.history); i++ {
		if s.history[len(s.history)-i] == hash {
			stagnant = true
			break
		}
	}

	s.history = append(s.history, hash)
	// Keep only the most recent states
	if len(s.history) > historySize {
		s.history = s.history[1:]
	}
	return stagnant
}

// Reset forgets all recorded generations
func (s *StagnationTracker) Reset() {
	s.history = nil
}
