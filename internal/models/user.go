package models

// User is a storefront account. Password is write-only and never selected back.
type User struct {
	UserID     int64   `gorm:"column:user_id;primaryKey" json:"userId"`
	FirstName  string  `gorm:"column:first_name" json:"firstName"`
	LastName   string  `gorm:"column:last_name" json:"lastName"`
	IsCustomer bool    `gorm:"column:is_customer" json:"isCustomer"`
	Email      string  `gorm:"column:email" json:"email"`
	Phone      *string `gorm:"column:phone" json:"phone"`
	ProfilePic *string `gorm:"column:profile_pic" json:"profilePic"`
}

func (User) TableName() string { return "users" }
