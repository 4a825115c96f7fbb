// Package clientproductrepo propagates committed reservation movements to the
// client product catalogue, the downstream consumer of allocation data.
package clientproductrepo

import (
	"context"

	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// ClientProductDTO represents the downstream per-SKU reservation row.
type ClientProductDTO struct {
	SKU              string `gorm:"primaryKey;size:64"`
	ReservedQuantity int
}

// TableName specifies the database table name for client products.
func (ClientProductDTO) TableName() string {
	return "client_products"
}

// GormAllocationHook patches client_products.reserved_quantity after a
// command that moved reservations has committed. Runs outside the command's
// transaction; a failure here is logged by the caller and never undoes the
// committed allocation.
type GormAllocationHook struct {
	db *gorm.DB
}

// NewGormAllocationHook creates the client product reservation hook.
func NewGormAllocationHook(db *gorm.DB) *GormAllocationHook {
	return &GormAllocationHook{db: db}
}

// ReservationsChanged applies each SKU's reservation delta to the catalogue.
// Unknown SKUs get a fresh row carrying the delta.
func (h *GormAllocationHook) ReservationsChanged(ctx context.Context, changes []ports.ReservationChange) error {
	for _, change := range changes {
		result := h.db.WithContext(ctx).Model(&ClientProductDTO{}).
			Where("sku = ?", change.SKU.String()).
			Update("reserved_quantity", gorm.Expr("reserved_quantity + ?", change.Delta))
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			dto := ClientProductDTO{SKU: change.SKU.String(), ReservedQuantity: change.Delta}
			if err := h.db.WithContext(ctx).Create(&dto).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
