package driven

// ProgressTracker displays progress over a loop of known or unknown length.
type ProgressTracker interface {
	// Begin starts tracking. total <= 0 means unknown.
	Begin(label string, total int)
	Advance()
	Done()
}
