// Package config defines the application configuration structures and
// loading logic. Configuration comes from environment variables (ARUNIKA_
// prefix) and an optional config.yaml, with env vars taking precedence.
package config
