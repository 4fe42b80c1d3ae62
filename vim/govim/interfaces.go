package govim

// ScreenMapper converts buffer positions to screen cells, honoring display
// width and line wrapping. The editor only uses it to keep the cursor
// visible.
type ScreenMapper interface {
	// ScreenPosition returns the screen row and column of pos when the window
	// starts at buffer row top. Rows above top are negative.
	ScreenPosition(lines LineSource, pos Position, top int) (row, col int)

	// BufferPosition maps a screen cell back to a buffer position
	BufferPosition(lines LineSource, top, row, col int) Position
}

// LineSource is the read-only view of the buffer given to collaborators
type LineSource interface {
	Len() int
	Line(row int) string
}

// FileSystem is the file collaborator. Reads and writes are atomic: they
// either succeed fully or fail.
type FileSystem interface {
	ReadLines(name string) ([]string, error)
	WriteLines(name string, lines []string) error
}

// Presenter receives status text, echoed lines and bell requests. All calls
// are fire-and-forget.
type Presenter interface {
	SetStatus(text string)
	Echo(lines ...string)
	Bell()
}

// Helper renders help text for :help
type Helper interface {
	Help(topic string) ([]string, error)
}

type nopPresenter struct{}

func (nopPresenter) SetStatus(string) {}
func (nopPresenter) Echo(...string)   {}
func (nopPresenter) Bell()            {}
