package depthv1

import "context"

// Store defines the interface for publishing depth snapshots to the
// market-data cache. Write-only: consumers read the cache directly.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=depthv1_mock
type Store interface {
	Store(ctx context.Context, snapshot *Snapshot) error
}
