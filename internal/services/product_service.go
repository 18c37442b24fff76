package services

import (
	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/models"
	"gorm.io/gorm"
)

var productTable = tableSpec{
	Entity:   "Product",
	Table:    "products",
	IDColumn: "product_id",
	Columns:  []string{"product_id", "name", "brand", "description", "price", "quantity"},
}

type ProductService struct {
	*EntityService[models.Product]
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{EntityService: newEntityService[models.Product](db, productTable)}
}
