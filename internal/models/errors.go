package models

import (
	"errors"
)

var (
	ErrGeneral            = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound   = errors.New("there is no")
	ErrInsufficientBudget = errors.New("not enough budget in the envelope to fulfill this transaction")
	ErrTransferFailed     = errors.New("the transfer could not be completed")
	ErrMissingParameter   = errors.New("not all mandatory parameters were included in the request")
	ErrEmailTaken         = errors.New("a user with this email address already exists")
)
