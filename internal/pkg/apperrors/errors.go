package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Group errors
var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrAlreadyMember      = errors.New("user is already a member of this group")
	ErrInviteNotFound     = errors.New("invite not found")
	ErrInviteInactive     = errors.New("invite is no longer active")
	ErrInviteExpired      = errors.New("invite has expired")
	ErrInviteExhausted    = errors.New("invite has reached its maximum number of uses")
	ErrInviteCodeConflict = errors.New("invite code already exists")
)

// Activity errors
var (
	ErrActivityNotFound  = errors.New("activity not found")
	ErrActivityClosed    = errors.New("activity is closed for submissions")
	ErrAlreadySubmitted  = errors.New("activity has already been submitted")
	ErrAnswerCountWrong  = errors.New("answer count does not match question count")
)

// Question errors
var (
	ErrQuestionNotFound    = errors.New("question not found")
	ErrQuestionInactive    = errors.New("question is not active")
	ErrAlreadyAnswered     = errors.New("question has already been answered")
	ErrInsufficientCredits = errors.New("insufficient question credits")
)

// Chat errors
var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrInsufficientCoins    = errors.New("insufficient coin balance")
	ErrChatUpstream         = errors.New("chat completion provider failed")
)

// Wellness errors
var (
	ErrWellnessRequestNotFound = errors.New("wellness request not found")
	ErrInvalidTurnStatus       = errors.New("invalid turn status")
)

// Misc resource errors
var (
	ErrNewsNotFound        = errors.New("news item not found")
	ErrPlaceNotFound       = errors.New("place not found")
	ErrQuickActionNotFound = errors.New("quick action not found")
)

// Password reset errors
var (
	ErrInvalidPasswordResetToken = errors.New("invalid or expired password reset token")
	ErrPasswordResetTokenUsed    = errors.New("password reset token has already been used")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}
