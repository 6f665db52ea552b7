// Package google provides shared infrastructure for the Google Sheets store.
//
// This package contains:
//   - A service-account token source built from a JSON key file
//   - The Sheets API service factory
//   - Error mapping from googleapi errors to domain error kinds (401, 403, 404, 429)
//   - Rate limiting to respect the Sheets API quota
//
// # Usage
//
//	ts, err := google.NewServiceAccountTokenSource(ctx, settings.Sheets.CredentialsFile)
//	svc, err := google.NewSheetsService(ctx, ts)
//
// The sheets subpackage builds worksheets on top of the service.
//
// # OAuth2 Scopes
//
//   - https://www.googleapis.com/auth/spreadsheets
//
// The spreadsheet must be shared with the service account's email.
package google
