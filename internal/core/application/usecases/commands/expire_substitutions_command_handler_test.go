package commands_test

import (
	"testing"
	"time"

	"afrimercato/internal/core/application/usecases/commands"
	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/core/domain/model/substitution"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpireSubstitutionsCommandHandler_Handle_ExpiresPastDeadline(t *testing.T) {
	ctx := t.Context()
	pickerID := kernel.NewUUID()
	blocked := newTestItem(t, "Peak Milk 1L", 1200)
	unpicked := newTestItem(t, "Bread", 800)
	o := newPickingOrder(t, pickerID, blocked, unpicked)
	require.NoError(t, o.MarkItemSubstitutionPending(pickerID, blocked.ID()))

	proposal, err := substitution.NewProposal(
		kernel.NewUUID(), o.ID(), blocked.ID(), blocked.ProductID(),
		substitution.IssueTypeOutOfStock, nil,
		time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)

	proposalRepo := new(MockProposalRepository)
	orderRepo := new(MockOrderRepository)

	listUow := new(MockUoW)
	mock.InOrder(
		listUow.On("Begin", ctx).Return(nil).Once(),
		listUow.On("ProposalRepository").Return(proposalRepo).Once(),
		proposalRepo.On("GetAllExpired", mock.Anything, mock.Anything).
			Return([]*substitution.Proposal{proposal}, nil).Once(),
		listUow.On("Rollback", ctx).Return(nil).Once(),
	)

	txUow := new(MockUoW)
	mock.InOrder(
		txUow.On("Begin", ctx).Return(nil).Once(),
		txUow.On("OrderRepository").Return(orderRepo).Once(),
		txUow.On("ProposalRepository").Return(proposalRepo).Once(),
		proposalRepo.On("Get", mock.Anything, proposal.ID()).Return(proposal, nil).Once(),
		orderRepo.On("Get", mock.Anything, o.ID()).Return(o, nil).Once(),
		proposalRepo.On("Update", mock.Anything, proposal).Return(nil).Once(),
		orderRepo.On("Update", mock.Anything, o).Return(nil).Once(),
		txUow.On("Commit", ctx).Return(nil).Once(),
		txUow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(listUow).Once()
	factory.On("Create").Return(txUow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", mock.Anything, kernel.RoleCustomer, o.ID(), "SUBSTITUTION_AUTO_REJECTED").Once()
	notifier.On("Notify", mock.Anything, kernel.RolePicker, o.ID(), "SUBSTITUTION_RESOLVED").Once()

	h := commands.NewExpireSubstitutionsCommandHandler(factory, notifier)
	expired, err := h.Handle(ctx, commands.NewExpireSubstitutionsCommand())
	require.NoError(t, err)
	require.Equal(t, 1, expired)

	require.Equal(t, substitution.DecisionRejected, proposal.Decision())
	require.True(t, proposal.TimedOut())
	item, err := o.Item(blocked.ID())
	require.NoError(t, err)
	require.Equal(t, order.ItemStateOutOfStock, item.State())
	require.Equal(t, order.StatusPicking, o.Status())
	require.Equal(t, order.NoteAutoRejectedTimeout, o.LatestEvent().Note())
	notifier.AssertExpectations(t)
	listUow.AssertExpectations(t)
	txUow.AssertExpectations(t)
}

func TestExpireSubstitutionsCommandHandler_Handle_ResolvedMeanwhileIsSkipped(t *testing.T) {
	ctx := t.Context()
	pickerID := kernel.NewUUID()
	blocked := newTestItem(t, "Peak Milk 1L", 1200)
	o := newPickingOrder(t, pickerID, blocked, newTestItem(t, "Bread", 800))
	require.NoError(t, o.MarkItemSubstitutionPending(pickerID, blocked.ID()))

	proposal, err := substitution.NewProposal(
		kernel.NewUUID(), o.ID(), blocked.ID(), blocked.ProductID(),
		substitution.IssueTypeOutOfStock, nil,
		time.Now().UTC().Add(-time.Minute))
	require.NoError(t, err)

	proposalRepo := new(MockProposalRepository)
	orderRepo := new(MockOrderRepository)

	listUow := new(MockUoW)
	mock.InOrder(
		listUow.On("Begin", ctx).Return(nil).Once(),
		listUow.On("ProposalRepository").Return(proposalRepo).Once(),
		proposalRepo.On("GetAllExpired", mock.Anything, mock.Anything).
			Return([]*substitution.Proposal{proposal}, nil).Once(),
		listUow.On("Rollback", ctx).Return(nil).Once(),
	)

	// The customer resolves between the listing and the per-proposal
	// transaction; the sweep must not double-apply.
	require.NoError(t, proposal.Reject())

	txUow := new(MockUoW)
	mock.InOrder(
		txUow.On("Begin", ctx).Return(nil).Once(),
		txUow.On("OrderRepository").Return(orderRepo).Once(),
		txUow.On("ProposalRepository").Return(proposalRepo).Once(),
		proposalRepo.On("Get", mock.Anything, proposal.ID()).Return(proposal, nil).Once(),
		txUow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockFulfillmentUoWFactory)
	factory.On("Create").Return(listUow).Once()
	factory.On("Create").Return(txUow).Once()

	h := commands.NewExpireSubstitutionsCommandHandler(factory, new(MockNotifier))
	expired, err := h.Handle(ctx, commands.NewExpireSubstitutionsCommand())
	require.NoError(t, err)
	require.Equal(t, 0, expired)
	require.False(t, proposal.TimedOut())
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
