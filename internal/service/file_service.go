package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/logger"
	"github.com/docspace/docspace/pkg/textdiff"
	"github.com/docspace/docspace/pkg/tracing"
)

// maxVersionAttempts bounds retries after losing a version numbering race
const maxVersionAttempts = 3

const initialVersionSummary = "Initial version"

type FileService struct {
	files    domain.FileRepository
	versions domain.FileVersionRepository
	access   domain.AccessService
	activity domain.ActivityRepository
	logger   logger.Logger
}

func NewFileService(
	files domain.FileRepository,
	versions domain.FileVersionRepository,
	access domain.AccessService,
	activity domain.ActivityRepository,
	logger logger.Logger,
) *FileService {
	return &FileService{
		files:    files,
		versions: versions,
		access:   access,
		activity: activity,
		logger:   logger,
	}
}

// CreateFile stores the file and records its content as version 1
func (s *FileService) CreateFile(ctx context.Context, actorID string, req *domain.CreateFileRequest) (*domain.File, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.access.Authorize(ctx, actorID, req.WorkspaceID, domain.ActionCreateFile); err != nil {
		return nil, err
	}

	fileType := req.FileType
	if fileType == "" {
		fileType = domain.FileTypeFromName(req.Filename)
	}
	file := &domain.File{
		ID:          uuid.New().String(),
		WorkspaceID: req.WorkspaceID,
		Filename:    req.Filename,
		Content:     req.Content,
		FileType:    fileType,
		CreatedBy:   actorID,
	}
	if err := s.files.Create(ctx, file); err != nil {
		s.logger.WithField("workspace_id", req.WorkspaceID).WithField("error", err.Error()).Error("Failed to create file")
		return nil, err
	}

	summary := initialVersionSummary
	if _, err := s.appendVersion(ctx, file.ID, req.Content, actorID, &summary); err != nil {
		s.logger.WithField("file_id", file.ID).WithField("error", err.Error()).Error("Failed to record initial version")
		return nil, err
	}

	recordActivity(ctx, s.activity, s.logger, file.WorkspaceID, actorID, domain.ActivityFileCreated, file.ID, file.Filename)
	return file, nil
}

// loadFile reads the file and authorizes the action against the workspace it belongs to
func (s *FileService) loadFile(ctx context.Context, actorID, fileID string, action domain.Action) (*domain.File, error) {
	req := &domain.FileIDRequest{FileID: fileID}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if _, err := s.access.Authorize(ctx, actorID, file.WorkspaceID, action); err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFound("file", fileID)
		}
		return nil, err
	}
	return file, nil
}

func (s *FileService) GetFile(ctx context.Context, actorID, fileID string) (*domain.File, error) {
	return s.loadFile(ctx, actorID, fileID, domain.ActionReadFiles)
}

func (s *FileService) ListFiles(ctx context.Context, actorID, workspaceID string) ([]*domain.File, error) {
	req := &domain.WorkspaceIDRequest{WorkspaceID: workspaceID}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.access.Authorize(ctx, actorID, workspaceID, domain.ActionReadFiles); err != nil {
		return nil, err
	}

	files, err := s.files.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []*domain.File{}
	}
	return files, nil
}

// SaveContent writes the live content first and then appends a version.
// Subscribers see the file update before the version row.
func (s *FileService) SaveContent(ctx context.Context, actorID, fileID, content string, summary *string) (result *domain.SaveResult, err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "FileService", "SaveContent")
	defer func() { tracing.EndSpan(span, err) }()
	tracing.AddAttribute(ctx, "file_id", fileID)

	req := &domain.SaveFileRequest{FileID: fileID, Content: content, ChangeSummary: summary}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.loadFile(ctx, actorID, fileID, domain.ActionUpdateFile); err != nil {
		return nil, err
	}

	file, err := s.files.UpdateContent(ctx, fileID, content)
	if err != nil {
		s.logger.WithField("file_id", fileID).WithField("error", err.Error()).Error("Failed to save file content")
		return nil, err
	}

	version, err := s.appendVersion(ctx, fileID, content, actorID, summary)
	if err != nil {
		return nil, err
	}
	return &domain.SaveResult{File: file, Version: version}, nil
}

func (s *FileService) RenameFile(ctx context.Context, actorID, fileID, filename string) (*domain.File, error) {
	req := &domain.RenameFileRequest{FileID: fileID, Filename: filename}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	file, err := s.loadFile(ctx, actorID, fileID, domain.ActionUpdateFile)
	if err != nil {
		return nil, err
	}

	renamed, err := s.files.Rename(ctx, fileID, req.Filename)
	if err != nil {
		return nil, err
	}
	recordActivity(ctx, s.activity, s.logger, file.WorkspaceID, actorID, domain.ActivityFileRenamed, fileID, file.Filename+" -> "+renamed.Filename)
	return renamed, nil
}

// DeleteFile removes the file's versions and then the file
func (s *FileService) DeleteFile(ctx context.Context, actorID, fileID string) error {
	file, err := s.loadFile(ctx, actorID, fileID, domain.ActionDeleteFile)
	if err != nil {
		return err
	}
	if err := s.files.Delete(ctx, fileID); err != nil {
		s.logger.WithField("file_id", fileID).WithField("error", err.Error()).Error("Failed to delete file")
		return err
	}
	recordActivity(ctx, s.activity, s.logger, file.WorkspaceID, actorID, domain.ActivityFileDeleted, fileID, file.Filename)
	return nil
}

func (s *FileService) CreateVersion(ctx context.Context, actorID, fileID, content string, summary *string) (*domain.FileVersion, error) {
	req := &domain.SaveFileRequest{FileID: fileID, Content: content, ChangeSummary: summary}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.loadFile(ctx, actorID, fileID, domain.ActionCreateVersion); err != nil {
		return nil, err
	}
	return s.appendVersion(ctx, fileID, content, actorID, summary)
}

// appendVersion retries when a concurrent append took the same number
func (s *FileService) appendVersion(ctx context.Context, fileID, content, authorID string, summary *string) (*domain.FileVersion, error) {
	for attempt := 1; attempt <= maxVersionAttempts; attempt++ {
		version := &domain.FileVersion{
			ID:            uuid.New().String(),
			FileID:        fileID,
			Content:       content,
			ChangeSummary: summary,
			CreatedBy:     authorID,
		}
		err := s.versions.Append(ctx, version)
		if err == nil {
			return version, nil
		}
		if !domain.IsConflict(err) {
			s.logger.WithField("file_id", fileID).WithField("error", err.Error()).Error("Failed to append file version")
			return nil, err
		}
		s.logger.WithField("file_id", fileID).WithField("attempt", attempt).Debug("Version number taken, retrying")
	}

	s.logger.WithField("file_id", fileID).Warn("Gave up allocating a version number")
	return nil, &domain.ErrConflict{
		Entity:  "file_version",
		Message: fmt.Sprintf("could not allocate a version number after %d attempts", maxVersionAttempts),
	}
}

// ListVersions returns the file's versions newest first
func (s *FileService) ListVersions(ctx context.Context, actorID, fileID string) ([]*domain.FileVersion, error) {
	if _, err := s.loadFile(ctx, actorID, fileID, domain.ActionReadFiles); err != nil {
		return nil, err
	}
	versions, err := s.versions.ListByFile(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if versions == nil {
		versions = []*domain.FileVersion{}
	}
	return versions, nil
}

// loadVersion fetches a version and checks it belongs to the file
func (s *FileService) loadVersion(ctx context.Context, fileID, versionID string) (*domain.FileVersion, error) {
	version, err := s.versions.GetByID(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if version.FileID != fileID {
		return nil, domain.NewNotFound("file_version", versionID)
	}
	return version, nil
}

// RestoreVersion copies a version's content into the live file. Versions are left untouched.
func (s *FileService) RestoreVersion(ctx context.Context, actorID, fileID, versionID string) (*domain.File, error) {
	req := &domain.RestoreVersionRequest{FileID: fileID, VersionID: versionID}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	file, err := s.loadFile(ctx, actorID, fileID, domain.ActionRestoreVersion)
	if err != nil {
		return nil, err
	}
	version, err := s.loadVersion(ctx, fileID, versionID)
	if err != nil {
		return nil, err
	}

	restored, err := s.files.UpdateContent(ctx, fileID, version.Content)
	if err != nil {
		s.logger.WithField("file_id", fileID).WithField("version_id", versionID).WithField("error", err.Error()).Error("Failed to restore version")
		return nil, err
	}
	recordActivity(ctx, s.activity, s.logger, file.WorkspaceID, actorID, domain.ActivityVersionRestore, fileID, fmt.Sprintf("v%d", version.VersionNumber))
	return restored, nil
}

// ClearHistory deletes every version of the file. confirm must be true.
func (s *FileService) ClearHistory(ctx context.Context, actorID, fileID string, confirm bool) (int64, error) {
	req := &domain.ClearHistoryRequest{FileID: fileID, Confirm: confirm}
	if err := req.Validate(); err != nil {
		return 0, err
	}
	file, err := s.loadFile(ctx, actorID, fileID, domain.ActionClearVersionHistory)
	if err != nil {
		return 0, err
	}

	n, err := s.versions.DeleteByFile(ctx, fileID)
	if err != nil {
		s.logger.WithField("file_id", fileID).WithField("error", err.Error()).Error("Failed to clear version history")
		return 0, err
	}
	recordActivity(ctx, s.activity, s.logger, file.WorkspaceID, actorID, domain.ActivityHistoryCleared, fileID, fmt.Sprintf("%d versions", n))
	return n, nil
}

// Diff compares a version with another version, or with the live content when no target is given
func (s *FileService) Diff(ctx context.Context, actorID string, req *domain.DiffRequest) ([]textdiff.Line, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	file, err := s.loadFile(ctx, actorID, req.FileID, domain.ActionReadFiles)
	if err != nil {
		return nil, err
	}

	from, err := s.loadVersion(ctx, req.FileID, req.FromVersionID)
	if err != nil {
		return nil, err
	}
	target := file.Content
	if req.ToVersionID != "" {
		to, err := s.loadVersion(ctx, req.FileID, req.ToVersionID)
		if err != nil {
			return nil, err
		}
		target = to.Content
	}
	return textdiff.Lines(from.Content, target), nil
}
