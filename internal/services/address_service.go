package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/models"
	"gorm.io/gorm"
)

var addressTable = tableSpec{
	Entity:   "Address",
	Table:    "addresses",
	IDColumn: "address_id",
	Columns: []string{
		"address_id", "user_id", "line_1", "line_2", "city_or_town",
		"state_or_province", "postal_code", "country", "is_default",
	},
}

type AddressService struct {
	*EntityService[models.Address]
}

func NewAddressService(db *gorm.DB) *AddressService {
	return &AddressService{EntityService: newEntityService[models.Address](db, addressTable)}
}

func (s *AddressService) ListForUser(ctx context.Context, userID int64) ([]models.Address, error) {
	return s.listBy(ctx, "list_for_user", "user_id", userID)
}
