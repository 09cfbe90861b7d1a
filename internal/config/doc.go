// Package config holds the runtime configuration for morguelib.
//
// Configuration comes from three layers: compiled-in defaults, an
// optional .morguelib YAML file found in the working or home
// directory, and CLI flags. Later layers win. The Config struct is
// populated once at startup and passed down by value reference; there
// is no global state.
package config
