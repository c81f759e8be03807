package jobs

import "github.com/pkg/errors"

var (
	// ErrSourceMissing means the record has no usable input file; jobs treat
	// this as a silent no-op.
	ErrSourceMissing = errors.New("source media missing")
)
