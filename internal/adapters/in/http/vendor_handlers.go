package http

import (
	"net/http"
	"time"

	"afrimercato/internal/core/application/usecases/commands"
	"afrimercato/internal/core/application/usecases/queries"
	"afrimercato/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// SubmitVendorRequest is the body of POST /api/v1/vendors.
type SubmitVendorRequest struct {
	StoreName string `json:"store_name"`
	Category  string `json:"category"`
}

// SubmitVendorResponse returns the identifier assigned to the registration.
type SubmitVendorResponse struct {
	VendorID string `json:"vendor_id"`
	Status   string `json:"status"`
}

// SubmitVendor handles POST /api/v1/vendors - registers a vendor for review.
func (s *Server) SubmitVendor(ctx echo.Context) error {
	var req SubmitVendorRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	vendorID := kernel.NewUUID()
	cmd, err := commands.NewSubmitVendorCommand(vendorID, req.StoreName, req.Category)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.submitVendorHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, SubmitVendorResponse{
		VendorID: vendorID.String(),
		Status:   "Pending",
	})
}

// DecideVendorRequest is the body of POST /api/v1/vendors/:id/decision.
type DecideVendorRequest struct {
	Decision string `json:"decision"`
	Note     string `json:"note"`
}

// DecideVendor handles POST /api/v1/vendors/:id/decision - approves or
// rejects a pending registration.
func (s *Server) DecideVendor(ctx echo.Context) error {
	vendorID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid vendor id")
	}

	var req DecideVendorRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewDecideVendorCommand(
		vendorID, commands.VendorDecision(req.Decision), req.Note)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.decideVendorHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SuspendVendorRequest is the body of POST /api/v1/vendors/:id/suspend.
type SuspendVendorRequest struct {
	Reason string `json:"reason"`
}

// SuspendVendor handles POST /api/v1/vendors/:id/suspend - takes an approved
// storefront offline.
func (s *Server) SuspendVendor(ctx echo.Context) error {
	vendorID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid vendor id")
	}

	var req SuspendVendorRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSuspendVendorCommand(vendorID, req.Reason)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.suspendVendorHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PendingVendor is one row of GET /api/v1/vendors/pending.
type PendingVendor struct {
	VendorID  string `json:"vendor_id"`
	StoreName string `json:"store_name"`
	Category  string `json:"category"`
	CreatedAt string `json:"created_at"`
}

// GetPendingVendors handles GET /api/v1/vendors/pending - the admin review
// queue.
func (s *Server) GetPendingVendors(ctx echo.Context) error {
	vendors, err := s.getPendingVendorsHandler.Handle(
		ctx.Request().Context(), queries.NewGetPendingVendorsQuery())
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]PendingVendor, len(vendors))
	for i, v := range vendors {
		response[i] = PendingVendor{
			VendorID:  v.ID.String(),
			StoreName: v.StoreName,
			Category:  v.Category,
			CreatedAt: v.CreatedAt.Format(time.RFC3339Nano),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
