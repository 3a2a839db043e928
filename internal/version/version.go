// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Calendar export (JSON/HTML), parallel aggregator, city search
// 0.2.0 - Full Meeus lunar tables, phase solver, topocentric parallax
// 0.1.0 - Initial release: solar events, moon position, TUI dashboard
