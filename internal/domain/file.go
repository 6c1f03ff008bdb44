package domain

import (
	"context"
	"path"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_file_repository.go -package mocks github.com/docspace/docspace/internal/domain FileRepository
//go:generate mockgen -destination mocks/mock_file_version_repository.go -package mocks github.com/docspace/docspace/internal/domain FileVersionRepository

const (
	// MaxFilenameLength bounds user supplied names
	MaxFilenameLength = 255
	// MaxContentSize bounds a single file body
	MaxContentSize = 5 << 20
)

// File is a text document inside a workspace
type File struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Filename    string    `json:"filename"`
	Content     string    `json:"content"`
	FileType    string    `json:"file_type"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FileVersion is an immutable snapshot of a file's content
type FileVersion struct {
	ID            string    `json:"id"`
	FileID        string    `json:"file_id"`
	Content       string    `json:"content"`
	VersionNumber int64     `json:"version_number"`
	ChangeSummary *string   `json:"change_summary,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// FileTypeFromName derives the file type from the extension, markdown by default
func FileTypeFromName(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	switch ext {
	case "":
		return "markdown"
	case "md", "markdown":
		return "markdown"
	default:
		return ext
	}
}

// FileRepository persists the live row of each file
type FileRepository interface {
	Create(ctx context.Context, file *File) error
	GetByID(ctx context.Context, id string) (*File, error)
	ListByWorkspace(ctx context.Context, workspaceID string) ([]*File, error)
	// UpdateContent overwrites the content and stamps updated_at
	UpdateContent(ctx context.Context, id, content string) (*File, error)
	Rename(ctx context.Context, id, filename string) (*File, error)
	Delete(ctx context.Context, id string) error
}

// FileVersionRepository is the append-only version log
type FileVersionRepository interface {
	// Append assigns the next version number for the file and inserts the row.
	// It fails with *ErrConflict when another writer took the same number.
	Append(ctx context.Context, version *FileVersion) error
	GetByID(ctx context.Context, id string) (*FileVersion, error)
	// ListByFile returns versions newest first
	ListByFile(ctx context.Context, fileID string) ([]*FileVersion, error)
	DeleteByFile(ctx context.Context, fileID string) (int64, error)
}

type CreateFileRequest struct {
	WorkspaceID string `json:"workspace_id"`
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	FileType    string `json:"file_type"`
}

func (r *CreateFileRequest) Validate() error {
	if err := validateID("workspace_id", r.WorkspaceID); err != nil {
		return err
	}
	if err := validateFilename(r.Filename); err != nil {
		return err
	}
	if len(r.Content) > MaxContentSize {
		return NewValidationError("content is too large")
	}
	if r.FileType == "" {
		r.FileType = FileTypeFromName(r.Filename)
	}
	return nil
}

type FileIDRequest struct {
	FileID string `json:"file_id"`
}

func (r *FileIDRequest) Validate() error {
	return validateID("file_id", r.FileID)
}

// WatchFileRequest opens a change stream on one file of a workspace
type WatchFileRequest struct {
	WorkspaceID string `json:"workspace_id"`
	FileID      string `json:"file_id"`
}

func (r *WatchFileRequest) Validate() error {
	if err := validateID("workspace_id", r.WorkspaceID); err != nil {
		return err
	}
	return validateID("file_id", r.FileID)
}

type SaveFileRequest struct {
	FileID        string  `json:"file_id"`
	Content       string  `json:"content"`
	ChangeSummary *string `json:"change_summary,omitempty"`
}

func (r *SaveFileRequest) Validate() error {
	if err := validateID("file_id", r.FileID); err != nil {
		return err
	}
	if len(r.Content) > MaxContentSize {
		return NewValidationError("content is too large")
	}
	return nil
}

type RenameFileRequest struct {
	FileID   string `json:"file_id"`
	Filename string `json:"filename"`
}

func (r *RenameFileRequest) Validate() error {
	if err := validateID("file_id", r.FileID); err != nil {
		return err
	}
	r.Filename = strings.TrimSpace(r.Filename)
	return validateFilename(r.Filename)
}

type RestoreVersionRequest struct {
	FileID    string `json:"file_id"`
	VersionID string `json:"version_id"`
}

func (r *RestoreVersionRequest) Validate() error {
	if err := validateID("file_id", r.FileID); err != nil {
		return err
	}
	return validateID("version_id", r.VersionID)
}

type ClearHistoryRequest struct {
	FileID  string `json:"file_id"`
	Confirm bool   `json:"confirm"`
}

// Validate requires an explicit confirmation, clearing history cannot be undone
func (r *ClearHistoryRequest) Validate() error {
	if err := validateID("file_id", r.FileID); err != nil {
		return err
	}
	if !r.Confirm {
		return NewValidationError("confirm must be true to clear version history")
	}
	return nil
}

type DiffRequest struct {
	FileID        string `json:"file_id"`
	FromVersionID string `json:"from_version_id"`
	ToVersionID   string `json:"to_version_id,omitempty"`
}

func (r *DiffRequest) Validate() error {
	if err := validateID("file_id", r.FileID); err != nil {
		return err
	}
	if err := validateID("from_version_id", r.FromVersionID); err != nil {
		return err
	}
	if r.ToVersionID != "" {
		return validateID("to_version_id", r.ToVersionID)
	}
	return nil
}

func validateFilename(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return NewValidationError("filename is required")
	}
	if len(trimmed) > MaxFilenameLength {
		return NewValidationError("filename is too long")
	}
	if strings.ContainsAny(trimmed, "/\\\x00") {
		return NewValidationError("filename must not contain path separators")
	}
	return nil
}
