package ports

// GraphOpener opens a migrated note in the destination application.
type GraphOpener interface {
	// OpenPage opens the page owning the given destination file using the
	// logseq:// URI scheme. The path should be an absolute path to a file
	// within the destination graph.
	OpenPage(destinationPath string) error
}
