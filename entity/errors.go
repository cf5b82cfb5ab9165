package entity

import "errors"

var (
	ErrWaiterAttached = errors.New("ticket already has a waiter attached")
)
