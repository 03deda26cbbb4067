package board

import (
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
)

// A Constructor builds a board of a particular model.
type Constructor func(logger golog.Logger) (GPIO, error)

var registry = map[string]Constructor{}

// RegisterBoard registers a board model to a constructor.
func RegisterBoard(model string, constructor Constructor) {
	_, old := registry[model]
	if old {
		panic(errors.Errorf("already registered a board with model %q", model))
	}
	registry[model] = constructor
}

// NewBoard constructs a board of the given registered model.
func NewBoard(model string, logger golog.Logger) (GPIO, error) {
	constructor, ok := registry[model]
	if !ok {
		return nil, errors.Errorf("unknown board model %q", model)
	}
	return constructor(logger)
}
