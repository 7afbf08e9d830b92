package scenario

import (
	"fmt"
	"log"
)

// AssertionMode controls what happens when an expectation fails.
type AssertionMode int

const (
	// AssertionStrict stops the scenario on a failed expectation.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly logs failed expectations and continues.
	AssertionLogOnly
)

// Assertions evaluates scenario expectations.
type Assertions struct {
	Mode   AssertionMode
	Logger *log.Logger
}

// Failf always stops the scenario; it is used for malformed steps and
// unexpected runtime failures.
func (a Assertions) Failf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Assertf reports a failed expectation. In log-only mode the failure
// is logged and the scenario continues.
func (a Assertions) Assertf(format string, args ...any) error {
	if a.Mode == AssertionLogOnly {
		if a.Logger != nil {
			a.Logger.Printf("expectation failed: "+format, args...)
		}
		return nil
	}
	return fmt.Errorf(format, args...)
}
