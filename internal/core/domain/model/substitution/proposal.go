package substitution

import (
	"errors"
	"fmt"
	"time"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/pkg/errs"
	"afrimercato/internal/pkg/guard"
)

var (
	// ErrProposalIsNotConstructed is returned when using an improperly
	// initialized Proposal.
	ErrProposalIsNotConstructed = errors.New("Proposal must be created via NewProposal constructor")

	// ErrProposalAlreadyResolved is returned when resolving a proposal that
	// already carries a terminal decision. Callers treat it as a benign
	// idempotency collision and report the current state.
	ErrProposalAlreadyResolved = errors.New("proposal is already resolved")

	// ErrAlternativeNotFound is returned when approving with an alternative
	// that was never proposed.
	ErrAlternativeNotFound = errs.NewObjectNotFoundError("alternativeID", nil)

	// ErrDeadlineIsRequired is returned when creating a proposal without a
	// resolution deadline.
	ErrDeadlineIsRequired = errs.NewValueIsRequiredError("deadline")
)

// Alternative is a replacement product a picker proposes for an item,
// ranked by how closely it matches the original.
type Alternative struct {
	productID kernel.UUID
	name      string
	unitPrice kernel.Money
	score     float64
}

// NewAlternative creates a ranked replacement candidate. Score is a match
// quality in [0, 1]; higher is closer to the original product.
func NewAlternative(productID kernel.UUID, name string, unitPrice kernel.Money, score float64) (Alternative, error) {
	if err := productID.Validate(); err != nil {
		return Alternative{}, err
	}
	if name == "" {
		return Alternative{}, errs.NewValueIsRequiredError("name")
	}
	if score < 0 || score > 1 {
		return Alternative{}, errs.NewValueIsOutOfRangeError("score", score, 0.0, 1.0)
	}

	return Alternative{
		productID: productID,
		name:      name,
		unitPrice: unitPrice,
		score:     score,
	}, nil
}

// ProductID returns the candidate product's identifier.
func (a Alternative) ProductID() kernel.UUID {
	return a.productID
}

// Name returns the candidate product's display name.
func (a Alternative) Name() string {
	return a.name
}

// UnitPrice returns the candidate product's price per unit.
func (a Alternative) UnitPrice() kernel.Money {
	return a.unitPrice
}

// Score returns the match quality, higher is better.
func (a Alternative) Score() float64 {
	return a.score
}

// Proposal is the aggregate for one open substitution question. At most one
// open proposal exists per line item; the item stays substitution-pending for
// the proposal's lifetime. A proposal resolves exactly once, by customer
// decision or by deadline expiry, and is immutable afterwards.
type Proposal struct {
	id                kernel.UUID
	orderID           kernel.UUID
	lineItemID        kernel.UUID
	originalProductID kernel.UUID
	issueType         IssueType
	alternatives      []Alternative
	decision          Decision
	chosenProductID   *kernel.UUID
	deadline          time.Time
	resolvedAt        *time.Time
	timedOut          bool

	guard guard.ConstructorGuard
}

// NewProposal creates an open proposal for a line item a picker could not
// pick as ordered. alternatives may be empty: the customer can still only
// reject, which marks the item out of stock.
func NewProposal(
	id, orderID, lineItemID, originalProductID kernel.UUID,
	issueType IssueType,
	alternatives []Alternative,
	deadline time.Time,
) (*Proposal, error) {
	p := &Proposal{
		decision: DecisionPending,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		orderID.Validate(),
		lineItemID.Validate(),
		originalProductID.Validate(),
		issueType.Validate(),
	); err != nil {
		return nil, err
	}
	if deadline.IsZero() {
		return nil, ErrDeadlineIsRequired
	}

	p.orderID = orderID
	p.lineItemID = lineItemID
	p.originalProductID = originalProductID
	p.issueType = issueType
	p.alternatives = alternatives
	p.deadline = deadline
	return p, nil
}

// RestoreProposal reconstructs a proposal aggregate from persistence.
func RestoreProposal(
	id, orderID, lineItemID, originalProductID kernel.UUID,
	issueType IssueType,
	alternatives []Alternative,
	decision Decision,
	chosenProductID *kernel.UUID,
	deadline time.Time,
	resolvedAt *time.Time,
	timedOut bool,
) (*Proposal, error) {
	p, err := NewProposal(id, orderID, lineItemID, originalProductID, issueType, alternatives, deadline)
	if err != nil {
		return nil, err
	}

	if err := decision.Validate(); err != nil {
		return nil, err
	}
	if chosenProductID != nil {
		if err := chosenProductID.Validate(); err != nil {
			return nil, err
		}
	}

	p.decision = decision
	p.chosenProductID = chosenProductID
	p.resolvedAt = resolvedAt
	p.timedOut = timedOut
	return p, nil
}

// Validate ensures the proposal was created through a constructor.
func (p *Proposal) Validate() error {
	if p == nil {
		return ErrProposalIsNotConstructed
	}
	return p.guard.Validate(ErrProposalIsNotConstructed)
}

// ID returns the proposal's unique identifier.
func (p *Proposal) ID() kernel.UUID {
	return p.id
}

// OrderID returns the order the proposal belongs to.
func (p *Proposal) OrderID() kernel.UUID {
	return p.orderID
}

// LineItemID returns the blocked line item.
func (p *Proposal) LineItemID() kernel.UUID {
	return p.lineItemID
}

// OriginalProductID returns the product the picker could not pick.
func (p *Proposal) OriginalProductID() kernel.UUID {
	return p.originalProductID
}

// IssueType returns why the picker raised the proposal.
func (p *Proposal) IssueType() IssueType {
	return p.issueType
}

// Alternatives returns the proposed replacement candidates.
func (p *Proposal) Alternatives() []Alternative {
	return p.alternatives
}

// Decision returns the proposal's current decision.
func (p *Proposal) Decision() Decision {
	return p.decision
}

// ChosenProductID returns the approved alternative's product, nil unless
// the proposal was approved.
func (p *Proposal) ChosenProductID() *kernel.UUID {
	return p.chosenProductID
}

// Deadline returns the moment the proposal auto-rejects if unresolved.
func (p *Proposal) Deadline() time.Time {
	return p.deadline
}

// ResolvedAt returns when the proposal resolved, nil while pending.
func (p *Proposal) ResolvedAt() *time.Time {
	return p.resolvedAt
}

// TimedOut reports whether the rejection came from deadline expiry rather
// than an explicit customer decision.
func (p *Proposal) TimedOut() bool {
	return p.timedOut
}

// IsResolved reports whether the proposal carries a terminal decision.
func (p *Proposal) IsResolved() bool {
	return p.decision != DecisionPending
}

// Alternative finds a proposed candidate by its product identifier.
func (p *Proposal) Alternative(productID kernel.UUID) (Alternative, error) {
	for _, a := range p.alternatives {
		if a.productID.IsEqual(productID) {
			return a, nil
		}
	}
	return Alternative{}, fmt.Errorf("%w: %s", ErrAlternativeNotFound, productID)
}

// Approve resolves the proposal with the customer's chosen alternative.
func (p *Proposal) Approve(alternativeProductID kernel.UUID) (Alternative, error) {
	if p.IsResolved() {
		return Alternative{}, ErrProposalAlreadyResolved
	}

	alt, err := p.Alternative(alternativeProductID)
	if err != nil {
		return Alternative{}, err
	}

	p.decision = DecisionApproved
	p.chosenProductID = &alt.productID
	p.markResolved()
	return alt, nil
}

// Reject resolves the proposal with no replacement. The caller marks the
// line item out of stock and drops it from the order total.
func (p *Proposal) Reject() error {
	if p.IsResolved() {
		return ErrProposalAlreadyResolved
	}

	p.decision = DecisionRejected
	p.markResolved()
	return nil
}

// Expire auto-rejects a proposal whose deadline has passed. It reports
// whether this call resolved the proposal: false for an already-resolved
// proposal or one whose deadline is still ahead, so a sweep firing twice
// never double-applies the rejection.
func (p *Proposal) Expire(now time.Time) bool {
	if p.IsResolved() || now.Before(p.deadline) {
		return false
	}

	p.decision = DecisionRejected
	p.timedOut = true
	p.markResolved()
	return true
}

func (p *Proposal) markResolved() {
	now := time.Now().UTC()
	p.resolvedAt = &now
}

func (p *Proposal) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}
