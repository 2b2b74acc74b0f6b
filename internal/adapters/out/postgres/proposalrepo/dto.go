// Package proposalrepo provides data transfer objects and mapping functions
// for substitution proposal persistence. A proposal spans two tables: the
// proposal row and its suggested alternatives.
package proposalrepo

import (
	"time"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/substitution"

	"github.com/google/uuid"
)

// ProposalDTO represents the database structure for persisting substitution
// proposals. Open proposals have a pending decision and a deadline the
// timeout sweep queries on.
type ProposalDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;index"`
	LineItemID        uuid.UUID `gorm:"type:uuid;index"`
	OriginalProductID uuid.UUID `gorm:"type:uuid"`
	IssueType         int
	Decision          int        `gorm:"index"`
	ChosenProductID   *uuid.UUID `gorm:"type:uuid"`
	Deadline          time.Time  `gorm:"index"`
	ResolvedAt        *time.Time
	TimedOut          bool
}

// TableName specifies the database table name for proposal entities.
func (ProposalDTO) TableName() string {
	return "substitution_proposals"
}

// AlternativeDTO represents one suggested replacement within a proposal.
type AlternativeDTO struct {
	ProposalID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Pos        int       `gorm:"primaryKey"`
	ProductID  uuid.UUID `gorm:"type:uuid"`
	Name       string
	UnitPrice  int64
	Score      float64
}

// TableName specifies the database table name for proposal alternatives.
func (AlternativeDTO) TableName() string {
	return "substitution_alternatives"
}

// fromDomain converts a proposal domain aggregate to its database rows.
func fromDomain(aggregate *substitution.Proposal) (ProposalDTO, []AlternativeDTO) {
	dto := ProposalDTO{
		ID:                aggregate.ID().Bytes(),
		OrderID:           aggregate.OrderID().Bytes(),
		LineItemID:        aggregate.LineItemID().Bytes(),
		OriginalProductID: aggregate.OriginalProductID().Bytes(),
		IssueType:         int(aggregate.IssueType()),
		Decision:          int(aggregate.Decision()),
		ChosenProductID:   uuidPtr(aggregate.ChosenProductID()),
		Deadline:          aggregate.Deadline(),
		ResolvedAt:        aggregate.ResolvedAt(),
		TimedOut:          aggregate.TimedOut(),
	}

	alternatives := make([]AlternativeDTO, 0, len(aggregate.Alternatives()))
	for pos, alt := range aggregate.Alternatives() {
		alternatives = append(alternatives, AlternativeDTO{
			ProposalID: dto.ID,
			Pos:        pos,
			ProductID:  alt.ProductID().Bytes(),
			Name:       alt.Name(),
			UnitPrice:  alt.UnitPrice().Amount(),
			Score:      alt.Score(),
		})
	}

	return dto, alternatives
}

// toDomain converts database rows to a proposal domain aggregate.
// Alternative rows must be ordered by pos.
func toDomain(dto ProposalDTO, altDTOs []AlternativeDTO) (*substitution.Proposal, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	lineItemID, err := kernel.UUIDFromBytes(dto.LineItemID[:])
	if err != nil {
		return nil, err
	}
	originalProductID, err := kernel.UUIDFromBytes(dto.OriginalProductID[:])
	if err != nil {
		return nil, err
	}
	chosenProductID, err := kernelPtr(dto.ChosenProductID)
	if err != nil {
		return nil, err
	}

	alternatives := make([]substitution.Alternative, 0, len(altDTOs))
	for _, altDTO := range altDTOs {
		productID, altErr := kernel.UUIDFromBytes(altDTO.ProductID[:])
		if altErr != nil {
			return nil, altErr
		}
		alt, altErr := substitution.NewAlternative(
			productID,
			altDTO.Name,
			kernel.NewMoney(altDTO.UnitPrice),
			altDTO.Score,
		)
		if altErr != nil {
			return nil, altErr
		}
		alternatives = append(alternatives, alt)
	}

	return substitution.RestoreProposal(
		id, orderID, lineItemID, originalProductID,
		substitution.IssueType(dto.IssueType),
		alternatives,
		substitution.Decision(dto.Decision),
		chosenProductID,
		dto.Deadline,
		dto.ResolvedAt,
		dto.TimedOut,
	)
}

func uuidPtr(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func kernelPtr(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
