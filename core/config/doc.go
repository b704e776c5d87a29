// Package config loads the application configuration from environment
// variables and an optional .env file.
//
// Each subsystem defines its own Config struct with mapstructure and default
// tags; this package composes them and binds the defaults via reflection so
// every key is visible to viper's AutomaticEnv.
package config
