package eventlog

import (
	"os"
	"sync"

	eventlogv1 "github.com/quantfeed/matchcore/internal/domain/eventlog/v1"
	"github.com/quantfeed/matchcore/pkg/errors"
)

// Writer appends events to a flat file, one line per event. The file is
// opened append-only and never rewritten; all events passed to a single
// Record call go out in one write so a submission's trail is not
// interleaved with another's.
type Writer struct {
	mu sync.Mutex
	f  *os.File
}

// NewWriter opens (or creates) the audit trail at path.
func NewWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.NewTracer("open event log").Wrap(err)
	}
	return &Writer{f: f}, nil
}

// Record appends the given events in order. On error nothing should be
// treated as durable.
func (w *Writer) Record(events ...eventlogv1.Event) error {
	if len(events) == 0 {
		return nil
	}

	buf := make([]byte, 0, len(events)*96)
	for _, e := range events {
		buf = e.AppendLine(buf)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.f.Write(buf); err != nil {
		return errors.NewTracer("append event log").Wrap(err)
	}
	return nil
}

// Close closes the underlying file. Record calls after Close fail.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}
