package models

import "errors"

var (
	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrInvalidStatus    = errors.New("invalid status")
	ErrDuplicateRequest = errors.New("duplicate request in progress")
)
