// Package config provides the runtime configuration of the librarian service.
//
// Load reads a YAML file, applies defaults and LIBRARIAN_* environment overrides and validates the result.
// The package also contains the factory functions for PostgreSQL connections using different drivers
// (pgx.Pool, sql.DB, sqlx.DB) and the OpenTelemetry providers and slog logger the service runs with.
//
// This package is part of the shell (infrastructure) layer.
package config
