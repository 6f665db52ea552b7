// Package connectors holds clients for the external services sinaliza
// stores its records in. The google subpackage authenticates against Google
// APIs and its sheets subpackage exposes spreadsheet tabs as worksheets.
package connectors
