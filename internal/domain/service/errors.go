package service

import "errors"

var (
	ErrNotFound = errors.New("service not found")

	ErrInternal = errors.New("internal error")
)
