package bubbletea

// RenderContent exports the transcript rendering for testing.
func RenderContent(m Model) string {
	return joinBlocks(m.transcript.rebuild(m.search.query()), m.Viewport.Width)
}

// KeyOf exports keyOf for testing.
var KeyOf = keyOf

// Sanitize exports sanitize for testing.
var Sanitize = sanitize
