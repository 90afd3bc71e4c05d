package relaystore

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitfsorg/libsubnet-go/address"
	"github.com/bitfsorg/libsubnet-go/checkpoint"
	"github.com/bitfsorg/libsubnet-go/manager"
	"github.com/bitfsorg/libsubnet-go/subnetid"
)

// CachingRelayer wraps a checkpoint relayer with local persistence for one
// subnet: successfully submitted bundles and fetched records are written
// to the store, and bundle/quorum reads are served from it when present.
type CachingRelayer struct {
	inner  manager.BottomUpCheckpointRelayer
	store  *Store
	subnet subnetid.SubnetID
}

// NewCachingRelayer returns a relayer for one subnet over inner and store.
func NewCachingRelayer(inner manager.BottomUpCheckpointRelayer, store *Store, subnet subnetid.SubnetID) *CachingRelayer {
	return &CachingRelayer{inner: inner, store: store, subnet: subnet}
}

var _ manager.BottomUpCheckpointRelayer = (*CachingRelayer)(nil)

// SubmitCheckpoint submits through the inner relayer and records the
// bundle locally on success. A bundle already recorded at that height is
// not resubmitted; replaying a submission after a restart is a no-op.
func (r *CachingRelayer) SubmitCheckpoint(ctx context.Context, submitter address.Address, bundle checkpoint.Bundle) (int64, error) {
	if _, err := r.store.GetBundle(bundle.Checkpoint.Subnet, bundle.Checkpoint.Height); err == nil {
		return 0, fmt.Errorf("%w: height %d", ErrDuplicateBundle, bundle.Checkpoint.Height)
	} else if !errors.Is(err, ErrNotFound) {
		return 0, err
	}

	epoch, err := r.inner.SubmitCheckpoint(ctx, submitter, bundle)
	if err != nil {
		return 0, err
	}
	if err := r.store.PutBundle(bundle); err != nil {
		return 0, fmt.Errorf("submitted at epoch %d but could not be recorded: %w", epoch, err)
	}
	return epoch, nil
}

// CheckpointBundleAt serves from the store when the bundle is already
// recorded, otherwise queries the inner relayer and records the result.
func (r *CachingRelayer) CheckpointBundleAt(ctx context.Context, height int64) (*checkpoint.Bundle, error) {
	bundle, err := r.store.GetBundle(r.subnet, height)
	if err == nil {
		return bundle, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	bundle, err = r.inner.CheckpointBundleAt(ctx, height)
	if err != nil || bundle == nil {
		return bundle, err
	}
	if err := r.store.PutBundle(*bundle); err != nil && !errors.Is(err, ErrDuplicateBundle) {
		return nil, err
	}
	return bundle, nil
}

// QuorumReachedEvents serves from the store when present, otherwise
// queries the inner relayer and records the result.
func (r *CachingRelayer) QuorumReachedEvents(ctx context.Context, height int64) ([]checkpoint.QuorumReachedEvent, error) {
	events, err := r.store.QuorumEvents(r.subnet, height)
	if err == nil {
		return events, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	events, err = r.inner.QuorumReachedEvents(ctx, height)
	if err != nil {
		return nil, err
	}
	if len(events) > 0 {
		if err := r.store.PutQuorumEvents(r.subnet, height, events); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// CheckpointPeriod delegates to the inner relayer.
func (r *CachingRelayer) CheckpointPeriod(ctx context.Context, subnet subnetid.SubnetID) (int64, error) {
	return r.inner.CheckpointPeriod(ctx, subnet)
}

// LastBottomUpCheckpointHeight delegates to the inner relayer.
func (r *CachingRelayer) LastBottomUpCheckpointHeight(ctx context.Context, subnet subnetid.SubnetID) (int64, error) {
	return r.inner.LastBottomUpCheckpointHeight(ctx, subnet)
}

// CurrentEpoch delegates to the inner relayer.
func (r *CachingRelayer) CurrentEpoch(ctx context.Context) (int64, error) {
	return r.inner.CurrentEpoch(ctx)
}

// LastSubmittedHeight reports the greatest height recorded locally for
// the relayer's subnet.
func (r *CachingRelayer) LastSubmittedHeight() (int64, error) {
	return r.store.LastBundleHeight(r.subnet)
}
