package inventory

import (
	"fmt"

	"github.com/pageza/zenkitchen/backend/internal/models"
)

// ValidationError reports malformed input to a mutation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidStateError reports an operation that is not legal for the item's
// current lifecycle state.
type InvalidStateError struct {
	Op     string
	ItemID string
	Status models.ItemStatus
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s item %s: status is %s", e.Op, e.ItemID, e.Status)
}
