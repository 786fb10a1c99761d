package entity

import "errors"

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrLocationExists   = errors.New("location already saved")
)
