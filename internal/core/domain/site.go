package domain

// Column names of the Site sheet.
const (
	ColSiteID     = "site_id"
	ColSiteURL    = "site_url"
	ColTrechosIDs = "trechos_ids"
)

// Site is the web page fragments were extracted from.
// Sites are registered externally or through site registration; the
// services only ever append to TrechosIDs.
type Site struct {
	// SiteID is the sheet key.
	SiteID int

	// SiteURL is the address of the page.
	SiteURL string

	// TrechosIDs lists the fragments extracted from this page, in order.
	TrechosIDs IDList
}
