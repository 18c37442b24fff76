package dto

type AddBasketItemRequest struct {
	ProductID *int64 `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

// AdjustBasketItemRequest holds a signed change to a line's quantity.
type AdjustBasketItemRequest struct {
	Quantity *int `json:"quantity"`
}
