package services

import "errors"

// Shared errors used across services and the HTTP error mapping.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed    = errors.New("validation failed")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrNameRequired        = errors.New("name is required")
	ErrTeamNotInCategory   = errors.New("team does not belong to the category")
	ErrMatchScoreInvalid   = errors.New("match set scores are invalid")
	ErrMatchSetOrderBroken = errors.New("a set cannot be recorded before the previous one")
	ErrCategoryCompleted   = errors.New("category is already completed")

	// Conflicts
	ErrUserEmailConflict  = errors.New("email address is already in use")
	ErrCategoryConflict   = errors.New("category name is already in use")
	ErrTeamNameConflict   = errors.New("team name is already in use within the category")
	ErrTeamPlayerConflict = errors.New("player is already on the team")

	// Scheduling
	ErrScheduleNotEnoughTeams = errors.New("at least two teams are required to generate a schedule")
	ErrScheduleAlreadyPlayed  = errors.New("schedule has finished matches and cannot be regenerated")

	// Authentication and authorization
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Entity-specific (more context than the generic ErrNotFound)
	ErrUserNotFound     = errors.New("user not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrTeamNotFound     = errors.New("team not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrMatchNotFound    = errors.New("match not found")

	// Optional integrations that may be absent from the deployment
	ErrStorageNotConfigured = errors.New("object storage is not configured")
	ErrSummaryNotConfigured = errors.New("summary generation is not configured")
)
