package motor

import "github.com/pkg/errors"

// NewReleasedError returns an error for an actuation attempt on a motor whose
// resources have already been released.
func NewReleasedError(name string) error {
	return errors.Errorf("motor %q has been released", name)
}
