// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services never talk to Google Sheets, MinIO or SQLite directly; every
// store is reached through an interface from ports/driven.
package services
