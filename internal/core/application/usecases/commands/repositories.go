// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"
	"errors"

	"afrimercato/internal/core/ports"
	"afrimercato/internal/pkg/errs"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest combination of repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// VendorRepoFactory provides access to the vendor repository within a transaction.
	VendorRepoFactory interface {
		VendorRepository() ports.VendorRepository
	}

	// WorkerRepoFactory provides access to the worker repository within a transaction.
	WorkerRepoFactory interface {
		WorkerRepository() ports.WorkerRepository
	}

	// ProposalRepoFactory provides access to the proposal repository within a transaction.
	ProposalRepoFactory interface {
		ProposalRepository() ports.ProposalRepository
	}

	// ProductRepoFactory provides access to the product repository within a transaction.
	ProductRepoFactory interface {
		ProductRepository() ports.ProductRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// VendorUoW manages transactions for vendor registry operations.
	VendorUoW interface {
		TxManager
		VendorRepoFactory
	}

	// VendorUoWFactory creates new vendor unit of work instances.
	VendorUoWFactory interface {
		Create() VendorUoW
	}

	// WorkerUoW manages transactions for worker-only operations.
	WorkerUoW interface {
		TxManager
		WorkerRepoFactory
	}

	// WorkerUoWFactory creates new worker unit of work instances.
	WorkerUoWFactory interface {
		Create() WorkerUoW
	}

	// PlacementUoW manages transactions for order placement, which gates on
	// the vendor's approval and snapshots the catalog.
	PlacementUoW interface {
		TxManager
		OrderRepoFactory
		VendorRepoFactory
		ProductRepoFactory
	}

	// PlacementUoWFactory creates new placement unit of work instances.
	PlacementUoWFactory interface {
		Create() PlacementUoW
	}

	// DispatchUoW manages transactions that touch an order and its workers:
	// assignment, pickup/delivery confirmation, cancellation.
	DispatchUoW interface {
		TxManager
		OrderRepoFactory
		WorkerRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// SubstitutionUoW manages transactions that open a proposal against an
	// order's line item.
	SubstitutionUoW interface {
		TxManager
		OrderRepoFactory
		ProposalRepoFactory
	}

	// SubstitutionUoWFactory creates new substitution unit of work instances.
	SubstitutionUoWFactory interface {
		Create() SubstitutionUoW
	}

	// FulfillmentUoW manages transactions that resolve a proposal, which may
	// complete picking and release the picker.
	FulfillmentUoW interface {
		TxManager
		OrderRepoFactory
		ProposalRepoFactory
		WorkerRepoFactory
	}

	// FulfillmentUoWFactory creates new fulfillment unit of work instances.
	FulfillmentUoWFactory interface {
		Create() FulfillmentUoW
	}
)

// versionConflictRetries bounds how often a handler re-runs its command after
// losing an optimistic concurrency race.
const versionConflictRetries = 3

// retryOnVersionConflict runs the command body, re-running it from scratch
// when the conditional write reports a stale version. The re-run reloads the
// aggregate, so the transition is re-checked against the state the concurrent
// writer left behind instead of blindly retrying the write.
func retryOnVersionConflict(ctx context.Context, run func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < versionConflictRetries; attempt++ {
		err = run(ctx)
		if !errors.Is(err, errs.ErrVersionIsInvalid) {
			return err
		}
	}
	return err
}
