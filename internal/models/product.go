package models

type Product struct {
	ProductID   int64   `gorm:"column:product_id;primaryKey" json:"productId"`
	Name        string  `gorm:"column:name" json:"name"`
	Brand       string  `gorm:"column:brand" json:"brand"`
	Description *string `gorm:"column:description" json:"description"`
	Price       float64 `gorm:"column:price" json:"price"`
	Quantity    int     `gorm:"column:quantity" json:"quantity"`
}

func (Product) TableName() string { return "products" }
