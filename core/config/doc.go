// Package config loads the application configuration.
//
// Configuration comes from environment variables, optionally seeded from a
// .env file. Defaults are declared next to each field via struct tags and
// bound into Viper by reflection, so a fresh checkout runs against a local
// MySQL with no configuration at all.
//
// Environment variables map onto nested keys with underscores, e.g.
// DATABASE_HOST -> database.host, PIPELINE_BATCH_SIZE -> pipeline.batch_size.
package config
