package models

import "errors"

var (
	ErrInvalidPrice     = errors.New("invalid price")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrInvalidBar       = errors.New("invalid bar (high < low)")
	ErrInvalidVolume    = errors.New("invalid volume")
	ErrInvalidSupply    = errors.New("invalid token supply")
	ErrInvalidHolders   = errors.New("invalid holder count")
	ErrInvalidRate      = errors.New("invalid exchange rate")
	ErrDuplicateBar     = errors.New("duplicate bar time key")
)
