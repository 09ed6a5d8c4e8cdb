// Package logging builds the structured slog loggers used by gmconf.
// Logs are JSON by default and go to stderr so they never mix with
// configuration documents printed on stdout.
package logging
