package http

import (
	"net/http"

	"afrimercato/internal/core/application/usecases/commands"
	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/substitution"

	"github.com/labstack/echo/v4"
)

// AlternativeInput is one replacement candidate offered by the picker.
type AlternativeInput struct {
	ProductID      string  `json:"product_id"`
	Name           string  `json:"name"`
	UnitPriceMinor int64   `json:"unit_price_minor"`
	Score          float64 `json:"score"`
}

// ReportItemIssueRequest is the body of
// POST /api/v1/orders/:id/items/:itemId/issue.
type ReportItemIssueRequest struct {
	PickerID     string             `json:"picker_id"`
	IssueType    string             `json:"issue_type"`
	Alternatives []AlternativeInput `json:"alternatives"`
}

// ReportItemIssue handles a picker flagging a line item. A substitution
// proposal is opened and its id returned.
func (s *Server) ReportItemIssue(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	itemID, err := pathUUID(ctx, "itemId")
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	var req ReportItemIssueRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	pickerID, err := kernel.UUIDFromString(req.PickerID)
	if err != nil {
		return badRequest(ctx, "Invalid picker id")
	}

	issueType, err := substitution.IssueTypeFromString(req.IssueType)
	if err != nil {
		return badRequest(ctx, "Invalid issue type")
	}

	alternatives := make([]substitution.Alternative, 0, len(req.Alternatives))
	for _, alt := range req.Alternatives {
		productID, altErr := kernel.UUIDFromString(alt.ProductID)
		if altErr != nil {
			return badRequest(ctx, "Invalid alternative product id: "+alt.ProductID)
		}
		alternative, altErr := substitution.NewAlternative(
			productID, alt.Name, kernel.NewMoney(alt.UnitPriceMinor), alt.Score)
		if altErr != nil {
			return fail(ctx, altErr)
		}
		alternatives = append(alternatives, alternative)
	}

	cmd, err := commands.NewReportItemIssueCommand(
		orderID, pickerID, itemID, issueType, alternatives)
	if err != nil {
		return fail(ctx, err)
	}

	proposalID, err := s.reportItemIssueHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{
		"proposal_id": proposalID.String(),
	})
}

// ResolveSubstitutionRequest is the body of
// POST /api/v1/substitutions/:id/resolve. AlternativeProductID is required
// when approving and ignored when rejecting.
type ResolveSubstitutionRequest struct {
	Approve              bool   `json:"approve"`
	AlternativeProductID string `json:"alternative_product_id"`
}

// ResolveSubstitution handles the customer's decision on an open proposal.
func (s *Server) ResolveSubstitution(ctx echo.Context) error {
	proposalID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid proposal id")
	}

	var req ResolveSubstitutionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var alternativeID *kernel.UUID
	if req.AlternativeProductID != "" {
		id, idErr := kernel.UUIDFromString(req.AlternativeProductID)
		if idErr != nil {
			return badRequest(ctx, "Invalid alternative product id")
		}
		alternativeID = &id
	}

	cmd, err := commands.NewResolveSubstitutionCommand(proposalID, req.Approve, alternativeID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.resolveSubstitutionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
