package domain

import "errors"

var (
	ErrAgencyNotFound   = errors.New("agency not found")
	ErrSpaceNotFound    = errors.New("space not found")
	ErrPositionNotFound = errors.New("position not found")
	ErrAgencyExists     = errors.New("agency already exists")
)
