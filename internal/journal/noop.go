package journal

// NoopRecorder discards all entries.
type NoopRecorder struct{}

// NewNoopRecorder creates a recorder that does nothing.
func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (*NoopRecorder) RecordOrder(*OrderEntry) error { return nil }
func (*NoopRecorder) Close() error                  { return nil }
