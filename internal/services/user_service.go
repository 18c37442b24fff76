package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/models"
	"gorm.io/gorm"
)

var userTable = tableSpec{
	Entity:   "User",
	Table:    "users",
	IDColumn: "user_id",
	Columns:  []string{"user_id", "first_name", "last_name", "is_customer", "email", "phone", "profile_pic"},
}

type UserService struct {
	*EntityService[models.User]
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{EntityService: newEntityService[models.User](db, userTable)}
}

// CredentialsMatch reports whether a user with exactly this email and password exists.
func (s *UserService) CredentialsMatch(ctx context.Context, email, password string) (bool, error) {
	ctx, span := startSpan(ctx, userTable.Entity, userTable.Table, "login")
	defer span.End()

	var count int64
	err := s.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM "users" WHERE "email" = ? AND "password" = ?`, email, password).
		Scan(&count).Error
	if err != nil {
		return false, fail(ctx, span, userTable.Entity, "login", nil, err)
	}
	return count > 0, nil
}
