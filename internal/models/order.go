package models

type Order struct {
	OrderID       int64 `gorm:"column:order_id;primaryKey" json:"orderId"`
	AddressID     int64 `gorm:"column:address_id" json:"addressId"`
	BasketID      int64 `gorm:"column:basket_id" json:"basketId"`
	PaymentInfoID int64 `gorm:"column:payment_info_id" json:"paymentInfoId"`
}

func (Order) TableName() string { return "orders" }
