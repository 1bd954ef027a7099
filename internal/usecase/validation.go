package usecase

import (
	"fmt"
	"strings"

	"github.com/sensibot/crmsync/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateSyncChatsInput checks the request before any remote call is made.
func ValidateSyncChatsInput(input SyncChatsInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.CRMToken) == "" {
		errors = append(errors, ValidationError{"authorization", "is required"})
	}

	if strings.TrimSpace(input.Phone) == "" {
		errors = append(errors, ValidationError{"to_no", "is required"})
	} else if _, ok := entity.NormalizePhone(input.Phone); !ok {
		errors = append(errors, ValidationError{"to_no", "must be a valid phone number"})
	}

	return errors
}
