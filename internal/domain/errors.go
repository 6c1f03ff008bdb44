package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an entity is absent or not visible to the actor
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// NewNotFound creates a not found error for the entity
func NewNotFound(entity, id string) error {
	return &ErrNotFound{Entity: entity, ID: id}
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// PermissionError is returned when the actor's role does not allow the action
type PermissionError struct {
	Action      Action `json:"action"`
	WorkspaceID string `json:"workspace_id"`
	Message     string `json:"message"`
}

// Error implements the error interface
func (e *PermissionError) Error() string {
	return e.Message
}

// NewPermissionError creates a permission error for the action on a workspace
func NewPermissionError(action Action, workspaceID string) *PermissionError {
	return &PermissionError{
		Action:      action,
		WorkspaceID: workspaceID,
		Message:     fmt.Sprintf("permission denied: %s on workspace %s", action, workspaceID),
	}
}

// ErrInvitationExpired is returned when a pending invitation is past its expiry
type ErrInvitationExpired struct {
	InvitationID string
}

func (e *ErrInvitationExpired) Error() string {
	return fmt.Sprintf("invitation %s has expired", e.InvitationID)
}

// ErrAlreadyMember is returned when inviting an existing collaborator
type ErrAlreadyMember struct {
	WorkspaceID string
	Email       string
}

func (e *ErrAlreadyMember) Error() string {
	return fmt.Sprintf("%s is already a member of workspace %s", e.Email, e.WorkspaceID)
}

// ErrDuplicateInvitation is returned when a live pending invitation already exists
type ErrDuplicateInvitation struct {
	WorkspaceID string
	Email       string
}

func (e *ErrDuplicateInvitation) Error() string {
	return fmt.Sprintf("a pending invitation for %s already exists in workspace %s", e.Email, e.WorkspaceID)
}

// ErrConflict is a uniqueness or state violation that has no idempotent resolution
type ErrConflict struct {
	Entity  string
	Message string
}

func (e *ErrConflict) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.Entity, e.Message)
}

// ErrDependencyUnavailable wraps failures to reach the backing store or change feed
type ErrDependencyUnavailable struct {
	Dependency string
	Err        error
}

func (e *ErrDependencyUnavailable) Error() string {
	return fmt.Sprintf("%s unavailable: %v", e.Dependency, e.Err)
}

func (e *ErrDependencyUnavailable) Unwrap() error {
	return e.Err
}

// ErrRateLimited is returned when an actor exceeds an action quota
type ErrRateLimited struct {
	Action     string
	RetryAfter int // seconds
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("too many %s requests, retry in %ds", e.Action, e.RetryAfter)
}

// DeletionStepError reports the workspace deletion step that failed.
// Steps before it completed, the workspace row is still present.
type DeletionStepError struct {
	WorkspaceID string
	Step        DeletionStep
	Err         error
}

func (e *DeletionStepError) Error() string {
	return fmt.Sprintf("workspace %s deletion failed at step %s: %v", e.WorkspaceID, e.Step, e.Err)
}

func (e *DeletionStepError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	var target *ErrNotFound
	return errors.As(err, &target)
}

func IsPermissionDenied(err error) bool {
	var target *PermissionError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsExpired(err error) bool {
	var target *ErrInvitationExpired
	return errors.As(err, &target)
}

func IsAlreadyMember(err error) bool {
	var target *ErrAlreadyMember
	return errors.As(err, &target)
}

func IsDuplicateInvitation(err error) bool {
	var target *ErrDuplicateInvitation
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target *ErrConflict
	return errors.As(err, &target)
}

func IsDependencyUnavailable(err error) bool {
	var target *ErrDependencyUnavailable
	return errors.As(err, &target)
}

func IsRateLimited(err error) bool {
	var target *ErrRateLimited
	return errors.As(err, &target)
}
