package server

// Config holds configuration for the status HTTP server.
type Config struct {
	// Port is the port where the status server will listen.
	Port string `mapstructure:"port" default:"8080"`
}
