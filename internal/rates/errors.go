package rates

import "errors"

// ErrInvalidRange is returned when a range query has from after to.
var ErrInvalidRange = errors.New("invalid range: from is after to")

// ErrMalformedRate indicates a rate that is not a non-negative decimal number.
var ErrMalformedRate = errors.New("malformed rate")

// ErrMalformedDate indicates a sheet date that is not a valid calendar date.
var ErrMalformedDate = errors.New("malformed date")

// ErrDuplicateDate indicates two sheets published for the same calendar date.
var ErrDuplicateDate = errors.New("duplicate sheet date")
