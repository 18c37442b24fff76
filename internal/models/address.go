package models

type Address struct {
	AddressID       int64   `gorm:"column:address_id;primaryKey" json:"addressId"`
	UserID          int64   `gorm:"column:user_id" json:"userId"`
	Line1           string  `gorm:"column:line_1" json:"line1"`
	Line2           *string `gorm:"column:line_2" json:"line2"`
	CityOrTown      *string `gorm:"column:city_or_town" json:"cityOrTown"`
	StateOrProvince *string `gorm:"column:state_or_province" json:"stateOrProvince"`
	PostalCode      string  `gorm:"column:postal_code" json:"postalCode"`
	Country         string  `gorm:"column:country" json:"country"`
	IsDefault       bool    `gorm:"column:is_default" json:"isDefault"`
}

func (Address) TableName() string { return "addresses" }
