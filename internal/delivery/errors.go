package delivery

import (
	"fmt"

	"github.com/Vovarama1992/file_converter/internal/domain"
)

func errMissingFile(field string) error {
	return fmt.Errorf("%w: missing form file %q", domain.ErrEmptyInput, field)
}
