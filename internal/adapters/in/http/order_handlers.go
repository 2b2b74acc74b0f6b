package http

import (
	"net/http"

	"afrimercato/internal/core/application/usecases/commands"
	"afrimercato/internal/core/application/usecases/queries"
	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// CartLine is one requested product in the checkout body.
type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// PlaceOrderRequest is the body of POST /api/v1/orders.
type PlaceOrderRequest struct {
	CustomerID string     `json:"customer_id"`
	VendorID   string     `json:"vendor_id"`
	Lines      []CartLine `json:"lines"`
}

// RejectedLine reports a cart line the catalog snapshot could not honor.
type RejectedLine struct {
	ProductID string `json:"product_id"`
	Cause     string `json:"cause"`
}

// PlaceOrderResponse is the result of a successful checkout.
type PlaceOrderResponse struct {
	OrderID       string         `json:"order_id"`
	Status        string         `json:"status"`
	PaymentRef    string         `json:"payment_ref"`
	RejectedLines []RejectedLine `json:"rejected_lines,omitempty"`
}

// PlaceOrder handles POST /api/v1/orders - confirms a checkout.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id")
	}
	vendorID, err := kernel.UUIDFromString(req.VendorID)
	if err != nil {
		return badRequest(ctx, "Invalid vendor id")
	}

	lines := make([]services.CartLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		productID, lineErr := kernel.UUIDFromString(line.ProductID)
		if lineErr != nil {
			return badRequest(ctx, "Invalid product id: "+line.ProductID)
		}
		lines = append(lines, services.CartLine{
			ProductID: productID,
			Quantity:  line.Quantity,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewPlaceOrderCommand(orderID, customerID, vendorID, lines)
	if err != nil {
		return fail(ctx, err)
	}

	result, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	response := PlaceOrderResponse{
		OrderID:    orderID.String(),
		Status:     "Placed",
		PaymentRef: result.PaymentRef,
	}
	for _, rejected := range result.RejectedLines {
		response.RejectedLines = append(response.RejectedLines, RejectedLine{
			ProductID: rejected.ProductID.String(),
			Cause:     rejected.Cause.Error(),
		})
	}

	return ctx.JSON(http.StatusCreated, response)
}

// RespondToOrderRequest is the body of POST /api/v1/orders/:id/response.
type RespondToOrderRequest struct {
	Accept bool   `json:"accept"`
	Note   string `json:"note"`
}

// RespondToOrder handles POST /api/v1/orders/:id/response - the vendor
// accepts or rejects a placed order.
func (s *Server) RespondToOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req RespondToOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRespondToOrderCommand(orderID, req.Accept, req.Note)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.respondToOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return s.orderStatus(ctx, orderID)
}

// AssignPicker handles POST /api/v1/orders/:id/assign-picker - dispatches an
// idle picker onto the order.
func (s *Server) AssignPicker(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewAssignPickerCommand(orderID)
	if err != nil {
		return fail(ctx, err)
	}

	if _, err := s.assignPickerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return s.orderStatus(ctx, orderID)
}

// AssignRider handles POST /api/v1/orders/:id/assign-rider - dispatches an
// idle rider onto the order.
func (s *Server) AssignRider(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewAssignRiderCommand(orderID)
	if err != nil {
		return fail(ctx, err)
	}

	if _, err := s.assignRiderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return s.orderStatus(ctx, orderID)
}

// ActorRequest carries the acting worker for pick-flow endpoints.
type ActorRequest struct {
	WorkerID string `json:"worker_id"`
}

// StartPicking handles POST /api/v1/orders/:id/start-picking.
func (s *Server) StartPicking(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	pickerID, err := s.bindActor(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid worker id")
	}

	cmd, err := commands.NewStartPickingCommand(orderID, pickerID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.startPickingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return s.orderStatus(ctx, orderID)
}

// PickItem handles POST /api/v1/orders/:id/items/:itemId/pick.
func (s *Server) PickItem(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}
	itemID, err := pathUUID(ctx, "itemId")
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	pickerID, err := s.bindActor(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid worker id")
	}

	cmd, err := commands.NewPickItemCommand(orderID, pickerID, itemID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.pickItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return s.orderStatus(ctx, orderID)
}

// ConfirmPickup handles POST /api/v1/orders/:id/pickup - the rider takes the
// packed order out.
func (s *Server) ConfirmPickup(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	riderID, err := s.bindActor(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid worker id")
	}

	cmd, err := commands.NewConfirmPickupCommand(orderID, riderID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.confirmPickupHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return s.orderStatus(ctx, orderID)
}

// ConfirmDelivery handles POST /api/v1/orders/:id/deliver.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	riderID, err := s.bindActor(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid worker id")
	}

	cmd, err := commands.NewConfirmDeliveryCommand(orderID, riderID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return s.orderStatus(ctx, orderID)
}

// CancelOrderRequest is the body of POST /api/v1/orders/:id/cancel. Role
// names the acting party; late-stage cancellations additionally require a
// reason.
type CancelOrderRequest struct {
	Role   string `json:"role"`
	Reason string `json:"reason"`
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req CancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	role, err := kernel.RoleFromString(req.Role)
	if err != nil {
		return badRequest(ctx, "Invalid role")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, role, req.Reason)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return s.orderStatus(ctx, orderID)
}

// OrderItem is the wire form of one line item.
type OrderItem struct {
	ItemID               string `json:"item_id"`
	ProductID            string `json:"product_id"`
	Name                 string `json:"name"`
	Quantity             int    `json:"quantity"`
	Unit                 string `json:"unit"`
	UnitPriceMinor       int64  `json:"unit_price_minor"`
	State                string `json:"state"`
	SubstitutedProductID string `json:"substituted_product_id,omitempty"`
}

// OrderDetail is the full read model returned by GET /api/v1/orders/:id.
type OrderDetail struct {
	OrderID       string       `json:"order_id"`
	CustomerID    string       `json:"customer_id"`
	VendorID      string       `json:"vendor_id"`
	Status        string       `json:"status"`
	CustomerLabel string       `json:"customer_label"`
	RiderLabel    string       `json:"rider_label"`
	TotalMinor    int64        `json:"total_minor"`
	Items         []OrderItem  `json:"items"`
	Events        []OrderEvent `json:"events"`
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return fail(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	detail := OrderDetail{
		OrderID:       resp.ID.String(),
		CustomerID:    resp.CustomerID.String(),
		VendorID:      resp.VendorID.String(),
		Status:        resp.Status,
		CustomerLabel: resp.CustomerLabel,
		RiderLabel:    resp.RiderLabel,
		TotalMinor:    resp.TotalMinor,
		Items:         make([]OrderItem, len(resp.Items)),
		Events:        make([]OrderEvent, len(resp.Events)),
	}
	for i, item := range resp.Items {
		detail.Items[i] = OrderItem{
			ItemID:         item.ID.String(),
			ProductID:      item.ProductID.String(),
			Name:           item.Name,
			Quantity:       item.Quantity,
			Unit:           item.Unit,
			UnitPriceMinor: item.UnitPriceMinor,
			State:          item.State,
		}
		if item.SubstitutedProductID != nil {
			detail.Items[i].SubstitutedProductID = item.SubstitutedProductID.String()
		}
	}
	for i, event := range resp.Events {
		detail.Events[i] = toOrderEvent(event)
	}

	return ctx.JSON(http.StatusOK, detail)
}

// ActiveOrder is one row of GET /api/v1/orders/active.
type ActiveOrder struct {
	OrderID  string `json:"order_id"`
	VendorID string `json:"vendor_id"`
	Status   string `json:"status"`
	PickerID string `json:"picker_id,omitempty"`
	RiderID  string `json:"rider_id,omitempty"`
}

// GetActiveOrders handles GET /api/v1/orders/active - the operations
// dashboard listing.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	orders, err := s.getActiveOrdersHandler.Handle(
		ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]ActiveOrder, len(orders))
	for i, o := range orders {
		response[i] = ActiveOrder{
			OrderID:  o.ID.String(),
			VendorID: o.VendorID.String(),
			Status:   o.Status,
		}
		if o.PickerID != nil {
			response[i].PickerID = o.PickerID.String()
		}
		if o.RiderID != nil {
			response[i].RiderID = o.RiderID.String()
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) bindActor(ctx echo.Context) (kernel.UUID, error) {
	var req ActorRequest
	if err := ctx.Bind(&req); err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromString(req.WorkerID)
}
