package domain

import "strconv"

// PageFragment is one paragraph extracted from a web page.
type PageFragment struct {
	// Ordinal is the 1-based position of the paragraph among the page's <p>
	// elements. Snapshot images are named after it.
	Ordinal int

	// Text is the paragraph content with whitespace collapsed.
	Text string
}

// ImportRequest describes a page import.
type ImportRequest struct {
	// PageURL is the page to extract fragments from.
	PageURL string

	// SnapshotDir optionally holds highlighted_fragment_<n>.png images.
	SnapshotDir string

	// DryRun extracts and reports without writing.
	DryRun bool
}

// ImportReport summarises a page import.
type ImportReport struct {
	Site        Site
	SiteCreated bool

	// Created lists the ids of the fragments appended.
	Created []int

	// Skipped counts paragraphs already present for the site.
	Skipped int

	// Snapshots counts uploaded snapshot images.
	Snapshots int
}

// ScreenshotFile returns the local image file name for a paragraph ordinal.
func ScreenshotFile(ordinal int) string {
	return "highlighted_fragment_" + strconv.Itoa(ordinal) + ".png"
}

// SnapshotName returns the stored object name for a paragraph of a site.
// Ordinals restart on every page, so the site id keeps names unique.
func SnapshotName(siteID, ordinal int) string {
	return "site" + strconv.Itoa(siteID) + "_" + ScreenshotFile(ordinal)
}
