package types

import "errors"

// ErrPrecondition marks an operation invoked before the state it needs exists.
var ErrPrecondition = errors.New("precondition not met")

// MinProgressSteps is the fewest progress updates a synthesis run reports.
const MinProgressSteps = 5
