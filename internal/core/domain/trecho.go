package domain

// Column names of the Trecho (fragment) sheet.
const (
	ColTrechoID     = "trecho_id"
	ColTrechoHash   = "trecho_hash"
	ColConteudo     = "conteudo"
	ColInterpreteID = "interprete_id"
	ColSnapshotName = "snapshot_name"
	ColVideoURL     = "video_url"
)

// Trecho is a fragment of page text awaiting a sign-language translation.
// Optional columns are pointers so an empty cell stays distinguishable
// from a zero value.
type Trecho struct {
	TrechoID     *int
	TrechoHash   *string
	Conteudo     string
	SiteID       *int
	InterpreteID *int
	SnapshotName *string
	VideoURL     *string
}

// IsAvailable reports whether the fragment still needs a translation,
// i.e. no interpreter has been assigned to it.
func (t *Trecho) IsAvailable() bool {
	return t.InterpreteID == nil
}

// ID returns the fragment id, or -1 when the row has none.
func (t *Trecho) ID() int {
	if t.TrechoID == nil {
		return -1
	}
	return *t.TrechoID
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
