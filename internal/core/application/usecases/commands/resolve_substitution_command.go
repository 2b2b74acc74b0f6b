package commands

import (
	"errors"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/guard"
)

var (
	ErrResolveSubstitutionCommandIsNotConstructed = errors.New(
		"ResolveSubstitutionCommand must be created via NewResolveSubstitutionCommand constructor",
	)
	ErrAlternativeIsRequired = errors.New("approval requires an alternative product")
)

// ResolveSubstitutionCommand carries the customer's decision on an open
// substitution proposal.
type ResolveSubstitutionCommand struct { //nolint:recvcheck //using for validation
	proposalID           kernel.UUID
	approve              bool
	alternativeProductID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewResolveSubstitutionCommand creates a command resolving a proposal.
// Approval names the chosen alternative product; rejection carries none.
func NewResolveSubstitutionCommand(proposalID kernel.UUID, approve bool, alternativeProductID *kernel.UUID) (ResolveSubstitutionCommand, error) {
	cmd := ResolveSubstitutionCommand{
		approve: approve,
		guard:   guard.NewConstructorGuard(),
	}

	if err := cmd.setProposalID(proposalID); err != nil {
		return ResolveSubstitutionCommand{}, err
	}

	if approve {
		if alternativeProductID == nil {
			return ResolveSubstitutionCommand{}, ErrAlternativeIsRequired
		}
		if err := alternativeProductID.Validate(); err != nil {
			return ResolveSubstitutionCommand{}, err
		}
		cmd.alternativeProductID = alternativeProductID
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveSubstitutionCommand) Validate() error {
	return c.guard.Validate(ErrResolveSubstitutionCommandIsNotConstructed)
}

// ProposalID returns the proposal being resolved.
func (c ResolveSubstitutionCommand) ProposalID() kernel.UUID {
	return c.proposalID
}

// Approve reports whether the customer accepted an alternative.
func (c ResolveSubstitutionCommand) Approve() bool {
	return c.approve
}

// AlternativeProductID returns the chosen alternative, nil on rejection.
func (c ResolveSubstitutionCommand) AlternativeProductID() *kernel.UUID {
	return c.alternativeProductID
}

func (c *ResolveSubstitutionCommand) setProposalID(proposalID kernel.UUID) error {
	if err := proposalID.Validate(); err != nil {
		return err
	}

	c.proposalID = proposalID
	return nil
}
