package commands

import (
	"context"
	"time"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/substitution"
	"afrimercato/internal/core/ports"
)

// DefaultProposalTTL is how long a customer has to decide on a substitution
// before the system auto-rejects it.
const DefaultProposalTTL = 10 * time.Minute

// ReportItemIssueCommandHandler opens a substitution proposal for a line
// item the picker cannot fulfill. The item enters substitution-pending in
// the same transaction that persists the proposal, so an open proposal and
// its blocked item never drift apart.
type ReportItemIssueCommandHandler struct {
	uowFactory  SubstitutionUoWFactory
	notifier    ports.Notifier
	proposalTTL time.Duration
}

// NewReportItemIssueCommandHandler creates a handler for issue reports.
// A non-positive proposalTTL falls back to DefaultProposalTTL.
func NewReportItemIssueCommandHandler(
	uowFactory SubstitutionUoWFactory,
	notifier ports.Notifier,
	proposalTTL time.Duration,
) ReportItemIssueCommandHandler {
	if proposalTTL <= 0 {
		proposalTTL = DefaultProposalTTL
	}
	return ReportItemIssueCommandHandler{
		uowFactory:  uowFactory,
		notifier:    notifier,
		proposalTTL: proposalTTL,
	}
}

// Handle processes the issue report and returns the new proposal's
// identifier. Returns order.ErrItemStateConflict when the item is not
// unpicked, which also covers a second report against an already-blocked
// item.
func (h ReportItemIssueCommandHandler) Handle(ctx context.Context, command ReportItemIssueCommand) (kernel.UUID, error) {
	if err := command.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	var proposalID kernel.UUID
	err := retryOnVersionConflict(ctx, func(ctx context.Context) error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		orderRepo := uow.OrderRepository()

		aggregate, err := orderRepo.Get(ctx, command.OrderID())
		if err != nil {
			return err
		}

		item, err := aggregate.Item(command.ItemID())
		if err != nil {
			return err
		}
		originalProductID := item.ProductID()

		if err := aggregate.MarkItemSubstitutionPending(command.PickerID(), command.ItemID()); err != nil {
			return err
		}

		proposal, err := substitution.NewProposal(
			kernel.NewUUID(),
			aggregate.ID(),
			command.ItemID(),
			originalProductID,
			command.IssueType(),
			command.Alternatives(),
			time.Now().UTC().Add(h.proposalTTL),
		)
		if err != nil {
			return err
		}

		if err := uow.ProposalRepository().Add(ctx, proposal); err != nil {
			return err
		}
		if err := orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}

		if err := uow.Commit(ctx); err != nil {
			return err
		}

		proposalID = proposal.ID()
		h.notifier.Notify(ctx, kernel.RoleCustomer, aggregate.ID(), "SUBSTITUTION_PROPOSED")
		return nil
	})

	return proposalID, err
}
