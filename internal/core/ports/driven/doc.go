// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - WorksheetGateway / Worksheet: Google Sheets tabs
//   - RecordStore: typed records over a worksheet (sites, fragments, interpreters)
//   - ConfigStore: application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ReconciliationStore: partial registrations are still reported, but not persisted
//   - SnapshotStore: candidates carry no snapshot link and imports skip images
//   - FragmentExtractor: page import is unavailable
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
