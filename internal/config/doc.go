// Package config loads the optional YAML settings file that controls which
// external commands the watcher runs and how often it polls.
package config
