package domain

import "errors"

var (
	// ErrNoCyclesDetected is terminal for an analysis run.
	ErrNoCyclesDetected = errors.New("no rate-cut cycles detected")
	ErrEmptySeries      = errors.New("series has no observations")
	ErrUnknownView      = errors.New("unknown view")
)
