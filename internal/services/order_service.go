package services

import (
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/models"
	"gorm.io/gorm"
)

var orderTable = tableSpec{
	Entity:   "Order",
	Table:    "orders",
	IDColumn: "order_id",
	Columns:  []string{"order_id", "address_id", "basket_id", "payment_info_id"},
}

// OrderService relies on the table's foreign keys to reject orders that point
// at a missing address, basket or payment info.
type OrderService struct {
	*EntityService[models.Order]
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{EntityService: newEntityService[models.Order](db, orderTable)}
}
