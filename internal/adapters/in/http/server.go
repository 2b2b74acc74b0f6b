// Package http exposes the fulfillment use cases over a REST API built on
// echo. Handlers translate requests into commands and queries and map domain
// errors onto HTTP status codes; no business rules live here.
package http

import (
	"errors"
	"net/http"
	"time"

	"afrimercato/internal/core/application/usecases/commands"
	"afrimercato/internal/core/application/usecases/queries"
	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"
	"afrimercato/internal/core/domain/model/substitution"
	"afrimercato/internal/core/domain/model/vendor"
	"afrimercato/internal/core/domain/services"
	"afrimercato/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	submitVendorHandler        commands.SubmitVendorCommandHandler
	decideVendorHandler        commands.DecideVendorCommandHandler
	suspendVendorHandler       commands.SuspendVendorCommandHandler
	registerWorkerHandler      commands.RegisterWorkerCommandHandler
	setWorkerStatusHandler     commands.SetWorkerStatusCommandHandler
	placeOrderHandler          commands.PlaceOrderCommandHandler
	respondToOrderHandler      commands.RespondToOrderCommandHandler
	assignPickerHandler        commands.AssignPickerCommandHandler
	assignRiderHandler         commands.AssignRiderCommandHandler
	startPickingHandler        commands.StartPickingCommandHandler
	pickItemHandler            commands.PickItemCommandHandler
	reportItemIssueHandler     commands.ReportItemIssueCommandHandler
	resolveSubstitutionHandler commands.ResolveSubstitutionCommandHandler
	confirmPickupHandler       commands.ConfirmPickupCommandHandler
	confirmDeliveryHandler     commands.ConfirmDeliveryCommandHandler
	cancelOrderHandler         commands.CancelOrderCommandHandler

	// Query handlers
	getOrderHandler          queries.GetOrderQueryHandler
	getActiveOrdersHandler   queries.GetActiveOrdersQueryHandler
	getPendingVendorsHandler queries.GetPendingVendorsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	submitVendorHandler commands.SubmitVendorCommandHandler,
	decideVendorHandler commands.DecideVendorCommandHandler,
	suspendVendorHandler commands.SuspendVendorCommandHandler,
	registerWorkerHandler commands.RegisterWorkerCommandHandler,
	setWorkerStatusHandler commands.SetWorkerStatusCommandHandler,
	placeOrderHandler commands.PlaceOrderCommandHandler,
	respondToOrderHandler commands.RespondToOrderCommandHandler,
	assignPickerHandler commands.AssignPickerCommandHandler,
	assignRiderHandler commands.AssignRiderCommandHandler,
	startPickingHandler commands.StartPickingCommandHandler,
	pickItemHandler commands.PickItemCommandHandler,
	reportItemIssueHandler commands.ReportItemIssueCommandHandler,
	resolveSubstitutionHandler commands.ResolveSubstitutionCommandHandler,
	confirmPickupHandler commands.ConfirmPickupCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getPendingVendorsHandler queries.GetPendingVendorsQueryHandler,
) *Server {
	return &Server{
		submitVendorHandler:        submitVendorHandler,
		decideVendorHandler:        decideVendorHandler,
		suspendVendorHandler:       suspendVendorHandler,
		registerWorkerHandler:      registerWorkerHandler,
		setWorkerStatusHandler:     setWorkerStatusHandler,
		placeOrderHandler:          placeOrderHandler,
		respondToOrderHandler:      respondToOrderHandler,
		assignPickerHandler:        assignPickerHandler,
		assignRiderHandler:         assignRiderHandler,
		startPickingHandler:        startPickingHandler,
		pickItemHandler:            pickItemHandler,
		reportItemIssueHandler:     reportItemIssueHandler,
		resolveSubstitutionHandler: resolveSubstitutionHandler,
		confirmPickupHandler:       confirmPickupHandler,
		confirmDeliveryHandler:     confirmDeliveryHandler,
		cancelOrderHandler:         cancelOrderHandler,
		getOrderHandler:            getOrderHandler,
		getActiveOrdersHandler:     getActiveOrdersHandler,
		getPendingVendorsHandler:   getPendingVendorsHandler,
	}
}

// RegisterRoutes binds all endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/vendors", s.SubmitVendor)
	api.GET("/vendors/pending", s.GetPendingVendors)
	api.POST("/vendors/:id/decision", s.DecideVendor)
	api.POST("/vendors/:id/suspend", s.SuspendVendor)

	api.POST("/workers/pickers", s.RegisterPicker)
	api.POST("/workers/riders", s.RegisterRider)
	api.POST("/workers/:id/status", s.SetWorkerStatus)

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/response", s.RespondToOrder)
	api.POST("/orders/:id/assign-picker", s.AssignPicker)
	api.POST("/orders/:id/assign-rider", s.AssignRider)
	api.POST("/orders/:id/start-picking", s.StartPicking)
	api.POST("/orders/:id/items/:itemId/pick", s.PickItem)
	api.POST("/orders/:id/items/:itemId/issue", s.ReportItemIssue)
	api.POST("/orders/:id/pickup", s.ConfirmPickup)
	api.POST("/orders/:id/deliver", s.ConfirmDelivery)
	api.POST("/orders/:id/cancel", s.CancelOrder)

	api.POST("/substitutions/:id/resolve", s.ResolveSubstitution)
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// fail maps a domain error onto an HTTP status code.
func fail(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, substitution.ErrAlternativeNotFound):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, order.ErrActorMismatch),
		errors.Is(err, order.ErrItemStateConflict),
		errors.Is(err, order.ErrOverrideReasonRequired),
		errors.Is(err, vendor.ErrVendorNotOrderable),
		errors.Is(err, vendor.ErrInvalidState),
		errors.Is(err, substitution.ErrProposalAlreadyResolved),
		errors.Is(err, services.ErrNoPickerAvailable),
		errors.Is(err, services.ErrNoRiderAvailable):
		status = http.StatusConflict
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

// badRequest rejects a malformed body or path parameter.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// pathUUID parses a UUID path parameter.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// OrderEvent is the wire form of one event-log entry.
type OrderEvent struct {
	At   string `json:"at"`
	Role string `json:"role"`
	From string `json:"from"`
	To   string `json:"to"`
	Note string `json:"note,omitempty"`
}

// OrderStatus is the wire form of a command's outcome: where the order is
// now and the event that put it there.
type OrderStatus struct {
	OrderID       string      `json:"order_id"`
	Status        string      `json:"status"`
	CustomerLabel string      `json:"customer_label"`
	RiderLabel    string      `json:"rider_label"`
	LatestEvent   *OrderEvent `json:"latest_event,omitempty"`
}

// orderStatus answers a successful order command with the order's current
// status and the newest event-log entry.
func (s *Server) orderStatus(ctx echo.Context, orderID kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return fail(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderStatus(resp))
}

func toOrderStatus(resp queries.GetOrderQueryResponse) OrderStatus {
	status := OrderStatus{
		OrderID:       resp.ID.String(),
		Status:        resp.Status,
		CustomerLabel: resp.CustomerLabel,
		RiderLabel:    resp.RiderLabel,
	}
	if len(resp.Events) > 0 {
		latest := toOrderEvent(resp.Events[len(resp.Events)-1])
		status.LatestEvent = &latest
	}
	return status
}

func toOrderEvent(event queries.GetOrderQueryEvent) OrderEvent {
	return OrderEvent{
		At:   event.At.Format(time.RFC3339Nano),
		Role: event.Role,
		From: event.From,
		To:   event.To,
		Note: event.Note,
	}
}
