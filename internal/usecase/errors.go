package usecase

// Error codes for the reconciliation engine. Every failed pass surfaces
// exactly one of these to the caller; there is no retry anywhere.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeDirectoryNotFound = "DIRECTORY_NOT_FOUND"
	CodeCreationFailed    = "CREATION_FAILED"
	CodeRemoteError       = "REMOTE_ERROR"
)

// DomainError is a business-rule failure: bad input, missing directory
// entries, a creation the CRM refused to acknowledge.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure: network trouble or a remote
// API rejecting the call outright.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
