// Package relaystore persists checkpoint relay progress locally: submitted
// bottom-up bundles and observed quorum events, keyed by subnet and
// height. A relayer restarting against the same store can tell what it
// already submitted without re-querying the parent.
package relaystore

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/bitfsorg/libsubnet-go/checkpoint"
	"github.com/bitfsorg/libsubnet-go/subnetid"
)

var (
	bucketBundles = []byte("bundles")
	bucketQuorum  = []byte("quorum_events")
)

// Store wraps a bbolt database holding relay bookkeeping.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("relaystore: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("relaystore: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketBundles, bucketQuorum} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("relaystore: create buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// recordKey encodes (subnet, height) as subnet string, a separator, and an
// 8-byte big-endian height, so heights within one subnet sort in order.
func recordKey(subnet subnetid.SubnetID, height int64) []byte {
	prefix := subnetPrefix(subnet)
	k := make([]byte, len(prefix)+8)
	copy(k, prefix)
	binary.BigEndian.PutUint64(k[len(prefix):], uint64(height))
	return k
}

func subnetPrefix(subnet subnetid.SubnetID) []byte {
	return append([]byte(subnet.String()), '|')
}

func encodeGob(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeGob(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// PutBundle stores a submitted bundle under its checkpoint's subnet and
// height. Returns ErrDuplicateBundle if one is already stored there.
func (s *Store) PutBundle(bundle checkpoint.Bundle) error {
	key := recordKey(bundle.Checkpoint.Subnet, bundle.Checkpoint.Height)
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketBundles)
		if b.Get(key) != nil {
			return fmt.Errorf("%w: %s height %d", ErrDuplicateBundle,
				bundle.Checkpoint.Subnet, bundle.Checkpoint.Height)
		}
		data, err := encodeGob(bundle)
		if err != nil {
			return fmt.Errorf("relaystore: encode bundle: %w", err)
		}
		if err := b.Put(key, data); err != nil {
			return fmt.Errorf("relaystore: put bundle: %w", err)
		}
		return nil
	})
}

// GetBundle retrieves the bundle stored for a subnet and height.
func (s *Store) GetBundle(subnet subnetid.SubnetID, height int64) (*checkpoint.Bundle, error) {
	var bundle checkpoint.Bundle
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketBundles).Get(recordKey(subnet, height))
		if data == nil {
			return fmt.Errorf("%w: bundle for %s height %d", ErrNotFound, subnet, height)
		}
		if err := decodeGob(data, &bundle); err != nil {
			return fmt.Errorf("relaystore: decode bundle: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bundle, nil
}

// LastBundleHeight returns the greatest height a bundle is stored at for
// the subnet.
func (s *Store) LastBundleHeight(subnet subnetid.SubnetID) (int64, error) {
	prefix := subnetPrefix(subnet)
	var height int64
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketBundles).Cursor()
		var last []byte
		for k, _ := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = c.Next() {
			last = k
		}
		if last == nil {
			return fmt.Errorf("%w: no bundles for %s", ErrNotFound, subnet)
		}
		height = int64(binary.BigEndian.Uint64(last[len(prefix):]))
		return nil
	})
	return height, err
}

// PutQuorumEvents stores the quorum events observed for a subnet at a
// height, replacing any previous record.
func (s *Store) PutQuorumEvents(subnet subnetid.SubnetID, height int64, events []checkpoint.QuorumReachedEvent) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		data, err := encodeGob(events)
		if err != nil {
			return fmt.Errorf("relaystore: encode quorum events: %w", err)
		}
		if err := tx.Bucket(bucketQuorum).Put(recordKey(subnet, height), data); err != nil {
			return fmt.Errorf("relaystore: put quorum events: %w", err)
		}
		return nil
	})
}

// QuorumEvents retrieves the quorum events stored for a subnet and height.
func (s *Store) QuorumEvents(subnet subnetid.SubnetID, height int64) ([]checkpoint.QuorumReachedEvent, error) {
	var events []checkpoint.QuorumReachedEvent
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketQuorum).Get(recordKey(subnet, height))
		if data == nil {
			return fmt.Errorf("%w: quorum events for %s height %d", ErrNotFound, subnet, height)
		}
		if err := decodeGob(data, &events); err != nil {
			return fmt.Errorf("relaystore: decode quorum events: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
