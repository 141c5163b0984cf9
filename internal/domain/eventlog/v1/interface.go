package eventlogv1

// Log defines the interface for the append-only audit trail. Record must
// persist every event or none; the caller commits in-memory state only
// after Record returns nil. The trail is never rewritten and exposes no
// read path.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=eventlogv1_mock
type Log interface {
	Record(events ...Event) error
	Close() error
}
