package upload

// StatusSink receives user-facing progress updates from upload and
// job-creation flows. Implementations must tolerate calls from multiple
// goroutines.
type StatusSink interface {
	// Progress publishes the overall progress percentage in [0,100].
	Progress(percent float64)
	// Info publishes a short status message.
	Info(message string)
	// Busy toggles the upload control: true while a batch is in flight.
	Busy(busy bool)
}

// NopStatusSink discards all updates.
type NopStatusSink struct{}

func (NopStatusSink) Progress(float64) {}
func (NopStatusSink) Info(string)      {}
func (NopStatusSink) Busy(bool)        {}

// File is one file handed to an upload flow: a display/object name plus its
// raw contents.
type File struct {
	Name     string
	Contents []byte
}
