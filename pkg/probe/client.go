package probe

// Unified interface to process probe outcomes
type Client interface {
	ProbeProcess(out Outcome)
}
