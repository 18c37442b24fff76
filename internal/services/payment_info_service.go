package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/storefront-backend/internal/models"
	"gorm.io/gorm"
)

var paymentInfoTable = tableSpec{
	Entity:   "PaymentInfo",
	Table:    "paymentinfo",
	IDColumn: "payment_info_id",
	Columns: []string{
		"payment_info_id", "user_id", "payment_method", "card_number",
		"expiry_date", "cvv", "account_number", "is_default",
	},
}

type PaymentInfoService struct {
	*EntityService[models.PaymentInfo]
}

func NewPaymentInfoService(db *gorm.DB) *PaymentInfoService {
	return &PaymentInfoService{EntityService: newEntityService[models.PaymentInfo](db, paymentInfoTable)}
}

func (s *PaymentInfoService) ListForUser(ctx context.Context, userID int64) ([]models.PaymentInfo, error) {
	return s.listBy(ctx, "list_for_user", "user_id", userID)
}
