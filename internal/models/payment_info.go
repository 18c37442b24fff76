package models

type PaymentInfo struct {
	PaymentInfoID int64   `gorm:"column:payment_info_id;primaryKey" json:"paymentInfoId"`
	UserID        int64   `gorm:"column:user_id" json:"userId"`
	PaymentMethod *string `gorm:"column:payment_method" json:"paymentMethod"`
	CardNumber    string  `gorm:"column:card_number" json:"cardNumber"`
	ExpiryDate    string  `gorm:"column:expiry_date" json:"expiryDate"`
	CVV           string  `gorm:"column:cvv" json:"cvv"`
	AccountNumber string  `gorm:"column:account_number" json:"accountNumber"`
	IsDefault     bool    `gorm:"column:is_default" json:"isDefault"`
}

func (PaymentInfo) TableName() string { return "paymentinfo" }
