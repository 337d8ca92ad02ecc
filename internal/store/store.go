package store

import (
	"context"
	"errors"

	"github.com/lumengrid/ledcast/internal/model"
)

// SnapshotKey is the single key the whole panel state is persisted under.
const SnapshotKey = "ledcast:state"

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// SnapshotStore persists the panel state as one JSON document under a single
// key. Save failures are expected to be logged and swallowed by the caller;
// persistence is never allowed to fail an operator action.
type SnapshotStore interface {
	Save(ctx context.Context, snap *model.Snapshot) error
	Load(ctx context.Context) (*model.Snapshot, error)
	Clear(ctx context.Context) error
}
