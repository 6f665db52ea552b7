package domain

// TranslationCandidate is an unassigned fragment enriched with the URL of
// the page it came from, ready to be shown to an interpreter.
type TranslationCandidate struct {
	TrechoID     int
	Conteudo     string
	SnapshotName *string
	SiteID       *int
	SiteURL      string

	// SnapshotURL is a temporary link to the snapshot image.
	// Empty when no snapshot store is configured or the fragment has no snapshot.
	SnapshotURL string
}

// SelectionOptions scopes a translation candidate query.
type SelectionOptions struct {
	// SiteID restricts candidates to one site. Nil means every site.
	SiteID *int

	// ReturnAll returns every qualifying fragment instead of the first one.
	ReturnAll bool
}
