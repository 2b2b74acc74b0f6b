package http

import (
	"net/http"

	"afrimercato/internal/core/application/usecases/commands"
	"afrimercato/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// RegisterPickerRequest is the body of POST /api/v1/workers/pickers.
type RegisterPickerRequest struct {
	Name     string `json:"name"`
	VendorID string `json:"vendor_id"`
}

// RegisterRiderRequest is the body of POST /api/v1/workers/riders.
type RegisterRiderRequest struct {
	Name string `json:"name"`
	Zone string `json:"zone"`
}

// RegisterWorkerResponse returns the identifier assigned to the worker.
type RegisterWorkerResponse struct {
	WorkerID string `json:"worker_id"`
}

// RegisterPicker handles POST /api/v1/workers/pickers - registers a picker
// affiliated with a vendor's store.
func (s *Server) RegisterPicker(ctx echo.Context) error {
	var req RegisterPickerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	vendorID, err := kernel.UUIDFromString(req.VendorID)
	if err != nil {
		return badRequest(ctx, "Invalid vendor id")
	}

	workerID := kernel.NewUUID()
	cmd, err := commands.NewRegisterPickerCommand(workerID, req.Name, vendorID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.registerWorkerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RegisterWorkerResponse{WorkerID: workerID.String()})
}

// RegisterRider handles POST /api/v1/workers/riders - registers a rider for
// a delivery zone.
func (s *Server) RegisterRider(ctx echo.Context) error {
	var req RegisterRiderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	workerID := kernel.NewUUID()
	cmd, err := commands.NewRegisterRiderCommand(workerID, req.Name, req.Zone)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.registerWorkerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RegisterWorkerResponse{WorkerID: workerID.String()})
}

// SetWorkerStatusRequest is the body of POST /api/v1/workers/:id/status.
type SetWorkerStatusRequest struct {
	Online bool `json:"online"`
}

// SetWorkerStatus handles POST /api/v1/workers/:id/status - toggles a worker
// on or off shift. Going offline mid-order hands the order back to dispatch.
func (s *Server) SetWorkerStatus(ctx echo.Context) error {
	workerID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid worker id")
	}

	var req SetWorkerStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetWorkerStatusCommand(workerID, req.Online)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.setWorkerStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
