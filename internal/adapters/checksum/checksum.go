package checksum

import (
	"fmt"

	"github.com/iamNilotpal/crcsum/internal/core/domain"
	"github.com/iamNilotpal/crcsum/internal/core/ports"
	validation "github.com/iamNilotpal/crcsum/pkg/errors"
)

const (
	// Bytewise folds one byte per table lookup.
	Bytewise domain.Engine = "bytewise"

	// Bulk folds one aligned 32-bit word per step through the 8x256 tables.
	Bulk domain.Engine = "bulk"
)

// Returns recommended checksum settings.
func DefaultOptions() *domain.ChecksumOptions {
	return &domain.ChecksumOptions{Engine: Bulk}
}

func Validate(input *domain.ChecksumOptions) error {
	if input.Custom == nil {
		switch input.Engine {
		case Bytewise, Bulk:
		default:
			return validation.NewValidationError(
				"engine", input.Engine, fmt.Errorf("unsupported checksum engine: %q", input.Engine),
			)
		}
	}
	return nil
}

// New returns the port selected by opts. A nil opts selects DefaultOptions.
func New(opts *domain.ChecksumOptions) (ports.ChecksumPort, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := Validate(opts); err != nil {
		return nil, err
	}

	if opts.Custom != nil {
		return opts.Custom, nil
	}
	if opts.Engine == Bytewise {
		return NewBytewise(), nil
	}
	return NewBulk(), nil
}
