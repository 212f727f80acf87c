package services

import "errors"

var (
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrNoPlaysRemaining    = errors.New("no plays remaining")
	ErrNoPrizesAvailable   = errors.New("no prizes available")
	ErrInvalidPrizeConfig  = errors.New("invalid prize configuration")
	ErrInsufficientSymbols = errors.New("insufficient symbol pool")
)
