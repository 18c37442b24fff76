package models

import "time"

const (
	BasketStatusOpen     = "open"
	BasketStatusComplete = "complete"
)

type Basket struct {
	BasketID    int64     `gorm:"column:basket_id;primaryKey" json:"basketId"`
	UserID      int64     `gorm:"column:user_id" json:"userId"`
	DateCreated time.Time `gorm:"column:date_created" json:"dateCreated"`
	Status      string    `gorm:"column:status" json:"status"`
}

func (Basket) TableName() string { return "baskets" }

// BasketItem is one product line in a basket, keyed by (basket, product).
// Rows never hold a zero quantity; reaching zero removes the row.
type BasketItem struct {
	BasketID  int64 `gorm:"column:basket_id;primaryKey" json:"basketId"`
	ProductID int64 `gorm:"column:product_id;primaryKey" json:"productId"`
	Quantity  int   `gorm:"column:quantity" json:"quantity"`
}

func (BasketItem) TableName() string { return "basketproducts" }
