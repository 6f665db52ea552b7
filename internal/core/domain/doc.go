// Package domain defines the core business entities for sinaliza.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Site: A web page fragments were extracted from
//   - Trecho: A fragment of text awaiting a sign-language translation
//   - Interprete: A person who records translation videos
//   - TranslationCandidate: An unassigned fragment enriched for display
//   - Reconciliation: A registration that stopped partway
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
