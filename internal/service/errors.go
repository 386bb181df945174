package service

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")

	ErrUnknownKind       = errors.New("unknown product kind")
	ErrSlugTaken         = errors.New("slug already taken")
	ErrQuantityInvalid   = errors.New("quantity must be >= 1")
	ErrEmptyCart         = errors.New("cart has no items")
	ErrCartLocked        = errors.New("cart is already in order")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrInvalidBuyingType = errors.New("invalid buying type")

	ErrImageInvalid    = errors.New("image cannot be decoded")
	ErrImageTooLarge   = errors.New("image file exceeds size limit")
	ErrImageResolution = errors.New("image resolution out of bounds")
)
