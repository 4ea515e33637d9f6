package synth

import "errors"

var (
	// ErrPoolExhausted is returned when a without-replacement sample asks
	// for more items than the pool holds.
	ErrPoolExhausted = errors.New("sample pool exhausted")
	ErrInvalidCount  = errors.New("invalid record count")
	ErrNoHospitals   = errors.New("empty hospital id pool")
	// ErrCatalog marks an incomplete diagnosis to treatment mapping.
	ErrCatalog = errors.New("invalid treatment catalog")
)
