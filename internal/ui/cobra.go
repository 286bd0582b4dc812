package ui

// CobraOutWriter is cobra's stdout. It looks up Writer() on every write so
// it follows later Configure calls, and drops output in quiet mode.
type CobraOutWriter struct{}

// NewCobraOutWriter creates a new Cobra stdout writer.
func NewCobraOutWriter() *CobraOutWriter {
	return &CobraOutWriter{}
}

func (w *CobraOutWriter) Write(p []byte) (n int, err error) {
	if IsQuiet() {
		return len(p), nil
	}
	return Writer().Write(p)
}

// CobraErrWriter is cobra's stderr; it is never silenced.
type CobraErrWriter struct{}

// NewCobraErrWriter creates a new Cobra stderr writer.
func NewCobraErrWriter() *CobraErrWriter {
	return &CobraErrWriter{}
}

func (w *CobraErrWriter) Write(p []byte) (n int, err error) {
	return ErrWriter().Write(p)
}
