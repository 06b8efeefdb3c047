package config

// Values resolved from flags, FLOWPP_* environment variables and the config file
var (
	// DatabasePath is the sqlite attribute cache, empty uses the XDG data directory. --no-cache disables caching.
	DatabasePath string

	// Mods is an osu! mod string like "HDDT"
	Mods string

	// Rate overrides the playback rate implied by mods when positive
	Rate float64

	// Workers is the batch worker count, 0 uses the number of physical cores
	Workers int

	Watch bool
)
