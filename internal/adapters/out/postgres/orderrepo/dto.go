// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The order aggregate spans three tables: the order row,
// its line items, and its append-only event log.
package orderrepo

import (
	"time"

	"afrimercato/internal/core/domain/model/kernel"
	"afrimercato/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The version column backs the optimistic concurrency check on updates.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index"`
	VendorID   uuid.UUID  `gorm:"type:uuid;index"`
	PickerID   *uuid.UUID `gorm:"type:uuid;index"`
	RiderID    *uuid.UUID `gorm:"type:uuid;index"`
	Status     int        `gorm:"index"`
	Version    int
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line item, including its picking sub-state
// and any substitution applied to it.
type ItemDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID              uuid.UUID `gorm:"type:uuid;index"`
	Pos                  int
	ProductID            uuid.UUID `gorm:"type:uuid"`
	Name                 string
	Quantity             int
	Unit                 string
	UnitPrice            int64
	State                int
	SubstitutedProductID *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for order line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// EventDTO represents one entry of an order's event log. Seq preserves the
// append order within an order.
type EventDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int       `gorm:"primaryKey"`
	At         time.Time
	Role       int
	FromStatus int
	ToStatus   int
	Note       string
}

// TableName specifies the database table name for order events.
func (EventDTO) TableName() string {
	return "order_events"
}

// fromDomain converts an order domain aggregate to its database rows.
func fromDomain(aggregate *order.Order) (OrderDTO, []ItemDTO, []EventDTO) {
	dto := OrderDTO{
		ID:         aggregate.ID().Bytes(),
		CustomerID: aggregate.CustomerID().Bytes(),
		VendorID:   aggregate.VendorID().Bytes(),
		PickerID:   uuidPtr(aggregate.PickerID()),
		RiderID:    uuidPtr(aggregate.RiderID()),
		Status:     int(aggregate.Status()),
		Version:    aggregate.Version(),
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for pos, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			ID:                   item.ID().Bytes(),
			OrderID:              dto.ID,
			Pos:                  pos,
			ProductID:            item.ProductID().Bytes(),
			Name:                 item.Name(),
			Quantity:             item.Quantity(),
			Unit:                 item.Unit(),
			UnitPrice:            item.UnitPrice().Amount(),
			State:                int(item.State()),
			SubstitutedProductID: uuidPtr(item.SubstitutedProductID()),
		})
	}

	events := make([]EventDTO, 0, len(aggregate.Events()))
	for seq, event := range aggregate.Events() {
		events = append(events, EventDTO{
			OrderID:    dto.ID,
			Seq:        seq,
			At:         event.At(),
			Role:       int(event.Role()),
			FromStatus: int(event.From()),
			ToStatus:   int(event.To()),
			Note:       event.Note(),
		})
	}

	return dto, items, events
}

// toDomain converts database rows to an order domain aggregate.
// Event rows must be ordered by seq and item rows by their creation order.
func toDomain(dto OrderDTO, itemDTOs []ItemDTO, eventDTOs []EventDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}
	pickerID, err := kernelPtr(dto.PickerID)
	if err != nil {
		return nil, err
	}
	riderID, err := kernelPtr(dto.RiderID)
	if err != nil {
		return nil, err
	}

	items := make([]*order.LineItem, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	events := make([]order.Event, 0, len(eventDTOs))
	for _, eventDTO := range eventDTOs {
		role := kernel.Role(eventDTO.Role)
		if roleErr := role.Validate(); roleErr != nil {
			return nil, roleErr
		}
		events = append(events, order.RestoreEvent(
			eventDTO.At,
			role,
			order.Status(eventDTO.FromStatus),
			order.Status(eventDTO.ToStatus),
			eventDTO.Note,
		))
	}

	return order.RestoreOrder(
		id, customerID, vendorID,
		items,
		order.Status(dto.Status),
		pickerID, riderID,
		dto.Version,
		events,
	)
}

func itemToDomain(dto ItemDTO) (*order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}
	substitutedProductID, err := kernelPtr(dto.SubstitutedProductID)
	if err != nil {
		return nil, err
	}

	return order.RestoreLineItem(
		id,
		productID,
		dto.Name,
		dto.Quantity,
		dto.Unit,
		kernel.NewMoney(dto.UnitPrice),
		order.ItemState(dto.State),
		substitutedProductID,
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
