package core

// RuntimeConfig contains configuration passed to front ends at startup.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	Seed       int64  // RNG seed for reproducible campaigns
	Difficulty string // Preset name, recorded with each run
	Player     string // SSH user name, empty for local play
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		Seed:       0, // 0 means use current time
		Difficulty: "normal",
	}
}
