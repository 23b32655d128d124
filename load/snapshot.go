package load

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/relgraph/model"
)

// SnapshotVersion is the version written by MarshalSnapshot.
const SnapshotVersion = 1

// ErrSnapshotVersion is returned for snapshots written by a newer version.
var ErrSnapshotVersion = errors.New("load: unsupported snapshot version")

// MarshalSnapshot encodes db, with its tables and behaviors, as msgpack.
func MarshalSnapshot(db *model.Database) ([]byte, error) {
	d := &Document{
		Version:   SnapshotVersion,
		Databases: []*Database{NewDatabase(db)},
	}
	if s := db.ParentSchema(); s != nil {
		d.Name = s.Name()
	}
	b, err := msgpack.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("load: encode snapshot: %w", err)
	}
	return b, nil
}

// UnmarshalSnapshot decodes a snapshot written by MarshalSnapshot and
// rebuilds its database.
func UnmarshalSnapshot(buf []byte, opts ...Option) (*model.Database, error) {
	d := &Document{}
	if err := msgpack.Unmarshal(buf, d); err != nil {
		return nil, fmt.Errorf("load: decode snapshot: %w", err)
	}
	if d.Version < 1 || d.Version > SnapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, d.Version)
	}
	if len(d.Databases) != 1 {
		return nil, fmt.Errorf("load: snapshot holds %d databases, want 1", len(d.Databases))
	}
	s, err := d.Build(opts...)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return s.Databases()[0], nil
}
