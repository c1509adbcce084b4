package core

// RuntimeConfig carries process-level settings into an environment.
type RuntimeConfig struct {
	TickRate int   // Simulation ticks per second (default 50)
	Seed     int64 // RNG seed; 0 means derive from the clock in the platform layer
	ScreenW  int   // Viewer width in characters (viewer only)
	ScreenH  int   // Viewer height in characters (viewer only)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		TickRate: 50,
		Seed:     0,
		ScreenW:  80,
		ScreenH:  24,
	}
}

// DeltaTime returns the fixed timestep in seconds.
func (c RuntimeConfig) DeltaTime() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 50
	}
	return 1.0 / float64(c.TickRate)
}
