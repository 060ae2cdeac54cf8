package server

import "github.com/raysh454/secrglue/internal/logging"

type Config struct {
	// ListenAddr is the HTTP listen address.
	ListenAddr string

	// DBPath is the SQLite database file; ":memory:" keeps everything in
	// process.
	DBPath string

	// Seed loads the demo data set on start.
	Seed bool

	// SecureCookies marks the csrftoken cookie Secure. Leave off for plain
	// http on localhost.
	SecureCookies bool

	// SearchLimit caps the people search results. Zero means 20.
	SearchLimit int

	Logger logging.Logger
}

// DefaultConfig returns a Config serving the demo data from memory.
func DefaultConfig() Config {
	return Config{
		ListenAddr:  ":8000",
		DBPath:      ":memory:",
		Seed:        true,
		SearchLimit: 20,
	}
}
