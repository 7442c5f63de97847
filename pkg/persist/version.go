package persist

// Version information for the persist module.
const (
	Version              = "1.0.0"
	MinCompatibleVersion = "1.0.0"
)
