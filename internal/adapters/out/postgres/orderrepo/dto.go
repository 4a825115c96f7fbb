// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Lines and audit entries live in child tables loaded together with the
// header; the version column backs the optimistic concurrency check.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Customer     string
	Reference    string
	OrderDate    time.Time
	DeliveryDate time.Time
	Priority     int `gorm:"index"`
	CreatedBy    string
	CreatedAt    time.Time
	TrackingID   string
	Carrier      string
	Status       int `gorm:"index"`
	Version      int

	Lines []LineDTO  `gorm:"foreignKey:OrderID;references:ID"`
	Audit []AuditDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO represents one order line row.
type LineDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID `gorm:"type:uuid;index"`
	SKU                string    `gorm:"size:64;index"`
	OrderedQuantity    int
	UnitPrice          int64
	AllocatedQuantity  int
	DispatchedQuantity int
	DeliveredQuantity  int
	Cancelled          bool
}

// TableName specifies the database table name for order lines.
func (LineDTO) TableName() string {
	return "order_lines"
}

// AuditDTO represents one append-only audit trail row. The serial primary key
// preserves insertion order.
type AuditDTO struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	OccurredAt time.Time
	Actor      string
	FromStatus int
	ToStatus   int
	Note       string
	LineID     *uuid.UUID `gorm:"type:uuid"`
	Quantity   int
}

// TableName specifies the database table name for audit entries.
func (AuditDTO) TableName() string {
	return "order_audit"
}

// fromDomain converts an order domain aggregate to its database representation,
// including its lines and full audit history.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:           aggregate.ID().Bytes(),
		Customer:     aggregate.Customer(),
		Reference:    aggregate.Reference(),
		OrderDate:    aggregate.OrderDate(),
		DeliveryDate: aggregate.DeliveryDate(),
		Priority:     int(aggregate.Priority()),
		CreatedBy:    aggregate.CreatedBy(),
		CreatedAt:    aggregate.CreatedAt(),
		TrackingID:   aggregate.TrackingID(),
		Carrier:      aggregate.Carrier(),
		Status:       int(aggregate.Status()),
		Version:      aggregate.Version(),
	}

	for _, line := range aggregate.Lines() {
		dto.Lines = append(dto.Lines, lineFromDomain(aggregate.ID(), line))
	}

	for _, entry := range aggregate.History() {
		dto.Audit = append(dto.Audit, auditFromDomain(aggregate.ID(), entry))
	}

	return dto
}

func lineFromDomain(orderID kernel.UUID, line *order.Line) LineDTO {
	return LineDTO{
		ID:                 line.ID().Bytes(),
		OrderID:            orderID.Bytes(),
		SKU:                line.SKU().String(),
		OrderedQuantity:    line.OrderedQuantity(),
		UnitPrice:          line.UnitPrice(),
		AllocatedQuantity:  line.AllocatedQuantity(),
		DispatchedQuantity: line.DispatchedQuantity(),
		DeliveredQuantity:  line.DeliveredQuantity(),
		Cancelled:          line.IsCancelled(),
	}
}

func auditFromDomain(orderID kernel.UUID, entry order.AuditEntry) AuditDTO {
	var lineID *uuid.UUID
	if id := entry.LineID(); id != nil {
		raw := id.Bytes()
		lineID = &raw
	}

	return AuditDTO{
		OrderID:    orderID.Bytes(),
		OccurredAt: entry.Timestamp(),
		Actor:      entry.Actor(),
		FromStatus: int(entry.FromStatus()),
		ToStatus:   int(entry.ToStatus()),
		Note:       entry.Note(),
		LineID:     lineID,
		Quantity:   entry.Quantity(),
	}
}

// toDomain converts a database DTO to an order domain aggregate,
// reconstructing lines and audit history through the restore constructors so
// corrupted rows cannot re-enter the domain.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]*order.Line, 0, len(dto.Lines))
	for _, lineDTO := range dto.Lines {
		line, lineErr := lineToDomain(lineDTO)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	history := make([]order.AuditEntry, 0, len(dto.Audit))
	for _, auditDTO := range dto.Audit {
		entry, auditErr := auditToDomain(auditDTO)
		if auditErr != nil {
			return nil, auditErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(
		id,
		dto.Customer, dto.Reference,
		dto.OrderDate, dto.DeliveryDate,
		order.Priority(dto.Priority),
		dto.CreatedBy, dto.CreatedAt,
		dto.TrackingID, dto.Carrier,
		order.Status(dto.Status),
		lines,
		history,
		dto.Version,
	)
}

func lineToDomain(dto LineDTO) (*order.Line, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sku, err := kernel.NewSKU(dto.SKU)
	if err != nil {
		return nil, err
	}

	return order.RestoreLine(
		id, sku,
		dto.OrderedQuantity, dto.UnitPrice,
		dto.AllocatedQuantity, dto.DispatchedQuantity, dto.DeliveredQuantity,
		dto.Cancelled,
	)
}

func auditToDomain(dto AuditDTO) (order.AuditEntry, error) {
	var lineID *kernel.UUID
	if dto.LineID != nil {
		id, err := kernel.UUIDFromBytes((*dto.LineID)[:])
		if err != nil {
			return order.AuditEntry{}, err
		}
		lineID = &id
	}

	return order.RestoreAuditEntry(
		dto.OccurredAt, dto.Actor,
		order.Status(dto.FromStatus), order.Status(dto.ToStatus),
		dto.Note, lineID, dto.Quantity,
	)
}
