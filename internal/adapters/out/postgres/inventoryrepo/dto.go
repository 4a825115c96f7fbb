// Package inventoryrepo provides data transfer objects and mapping functions
// for inventory ledger persistence, keyed by SKU.
package inventoryrepo

import (
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
)

// RecordDTO represents the database structure for one SKU's ledger counters.
// The version column backs the optimistic concurrency check.
type RecordDTO struct {
	SKU          string `gorm:"primaryKey;size:64"`
	Available    int
	Reserved     int
	InProduction int
	Version      int
}

// TableName specifies the database table name for ledger records.
func (RecordDTO) TableName() string {
	return "inventory_records"
}

// fromDomain converts a ledger record to its database representation.
func fromDomain(record *inventory.Record) RecordDTO {
	return RecordDTO{
		SKU:          record.SKU().String(),
		Available:    record.Available(),
		Reserved:     record.Reserved(),
		InProduction: record.InProduction(),
		Version:      record.Version(),
	}
}

// toDomain converts a database DTO to a ledger record, re-validating the
// counter invariants through the restore constructor.
func toDomain(dto RecordDTO) (*inventory.Record, error) {
	sku, err := kernel.NewSKU(dto.SKU)
	if err != nil {
		return nil, err
	}

	return inventory.RestoreRecord(sku, dto.Available, dto.Reserved, dto.InProduction, dto.Version)
}
