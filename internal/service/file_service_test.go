package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/internal/domain/mocks"
	"github.com/docspace/docspace/pkg/logger"
	"github.com/docspace/docspace/pkg/textdiff"
)

type fileServiceMocks struct {
	files    *mocks.MockFileRepository
	versions *mocks.MockFileVersionRepository
	access   *mocks.MockAccessService
	activity *mocks.MockActivityRepository
}

func setupFileServiceTest(t *testing.T) (*FileService, *fileServiceMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &fileServiceMocks{
		files:    mocks.NewMockFileRepository(ctrl),
		versions: mocks.NewMockFileVersionRepository(ctrl),
		access:   mocks.NewMockAccessService(ctrl),
		activity: mocks.NewMockActivityRepository(ctrl),
	}
	return NewFileService(m.files, m.versions, m.access, m.activity, logger.NewTestLogger(t)), m
}

func testFile() *domain.File {
	return &domain.File{ID: testFileID, WorkspaceID: testWorkspaceID, Filename: "notes.md", Content: "v1", FileType: "markdown"}
}

func versionConflict() error {
	return &domain.ErrConflict{Entity: "file_version", Message: "version number taken"}
}

func TestFileService_CreateVersion_Retry(t *testing.T) {
	ctx := context.Background()

	t.Run("retries after losing the numbering race", func(t *testing.T) {
		svc, m := setupFileServiceTest(t)
		m.files.EXPECT().GetByID(gomock.Any(), testFileID).Return(testFile(), nil)
		m.access.EXPECT().Authorize(gomock.Any(), "bob", testWorkspaceID, domain.ActionCreateVersion).Return(ownerSnapshot(), nil)

		var ids []string
		gomock.InOrder(
			m.versions.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, v *domain.FileVersion) error {
				ids = append(ids, v.ID)
				return versionConflict()
			}),
			m.versions.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, v *domain.FileVersion) error {
				ids = append(ids, v.ID)
				v.VersionNumber = 8
				return nil
			}),
		)

		v, err := svc.CreateVersion(ctx, "bob", testFileID, "v2", nil)
		require.NoError(t, err)
		assert.Equal(t, int64(8), v.VersionNumber)
		require.Len(t, ids, 2)
		assert.NotEqual(t, ids[0], ids[1])
	})

	t.Run("gives up after three conflicts", func(t *testing.T) {
		svc, m := setupFileServiceTest(t)
		m.files.EXPECT().GetByID(gomock.Any(), testFileID).Return(testFile(), nil)
		m.access.EXPECT().Authorize(gomock.Any(), "bob", testWorkspaceID, domain.ActionCreateVersion).Return(ownerSnapshot(), nil)
		m.versions.EXPECT().Append(gomock.Any(), gomock.Any()).Return(versionConflict()).Times(maxVersionAttempts)

		_, err := svc.CreateVersion(ctx, "bob", testFileID, "v2", nil)
		require.Error(t, err)
		assert.True(t, domain.IsConflict(err))
	})

	t.Run("other errors are not retried", func(t *testing.T) {
		svc, m := setupFileServiceTest(t)
		m.files.EXPECT().GetByID(gomock.Any(), testFileID).Return(testFile(), nil)
		m.access.EXPECT().Authorize(gomock.Any(), "bob", testWorkspaceID, domain.ActionCreateVersion).Return(ownerSnapshot(), nil)
		m.versions.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).Times(1)

		_, err := svc.CreateVersion(ctx, "bob", testFileID, "v2", nil)
		require.Error(t, err)
		assert.False(t, domain.IsConflict(err))
	})

	t.Run("viewer cannot create versions", func(t *testing.T) {
		svc, m := setupFileServiceTest(t)
		m.files.EXPECT().GetByID(gomock.Any(), testFileID).Return(testFile(), nil)
		m.access.EXPECT().Authorize(gomock.Any(), "carol", testWorkspaceID, domain.ActionCreateVersion).
			Return(nil, domain.NewPermissionError(domain.ActionCreateVersion, testWorkspaceID))

		_, err := svc.CreateVersion(ctx, "carol", testFileID, "v2", nil)
		assert.True(t, domain.IsPermissionDenied(err))
	})
}

func TestFileService_FileInOtherWorkspaceIsHidden(t *testing.T) {
	ctx := context.Background()
	svc, m := setupFileServiceTest(t)

	m.files.EXPECT().GetByID(gomock.Any(), testFileID).Return(testFile(), nil)
	m.access.EXPECT().Authorize(gomock.Any(), "mallory", testWorkspaceID, domain.ActionReadFiles).
		Return(nil, domain.NewNotFound("workspace", testWorkspaceID))

	_, err := svc.GetFile(ctx, "mallory", testFileID)
	require.Error(t, err)
	var nf *domain.ErrNotFound
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "file", nf.Entity)
}

func TestFileService_RestoreVersion_ForeignVersion(t *testing.T) {
	ctx := context.Background()
	svc, m := setupFileServiceTest(t)

	m.files.EXPECT().GetByID(gomock.Any(), testFileID).Return(testFile(), nil)
	m.access.EXPECT().Authorize(gomock.Any(), "alice", testWorkspaceID, domain.ActionRestoreVersion).Return(ownerSnapshot(), nil)
	m.versions.EXPECT().GetByID(gomock.Any(), testVersionID).Return(&domain.FileVersion{ID: testVersionID, FileID: testOtherID, Content: "secret"}, nil)

	_, err := svc.RestoreVersion(ctx, "alice", testFileID, testVersionID)
	assert.True(t, domain.IsNotFound(err))
}

func TestFileService_ClearHistory_RequiresConfirm(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupFileServiceTest(t)

	_, err := svc.ClearHistory(ctx, "alice", testFileID, false)
	assert.True(t, domain.IsValidation(err))
}

func TestFileService_VersionLifecycle(t *testing.T) {
	ctx := context.Background()
	sc := newScenario(t, nil)
	sc.signIn(t, "alice", "alice@x.com")
	sc.signIn(t, "bob", "bob@x.com")
	sc.signIn(t, "carol", "carol@x.com")
	ws := sc.workspace(t, "alice")
	_, err := sc.workspaces.AddCollaborator(ctx, "alice", &domain.AddCollaboratorRequest{WorkspaceID: ws.ID, UserID: "bob", Role: domain.RoleEditor})
	require.NoError(t, err)
	_, err = sc.workspaces.AddCollaborator(ctx, "alice", &domain.AddCollaboratorRequest{WorkspaceID: ws.ID, UserID: "carol", Role: domain.RoleViewer})
	require.NoError(t, err)

	file, err := sc.files.CreateFile(ctx, "bob", &domain.CreateFileRequest{WorkspaceID: ws.ID, Filename: "plan.md", Content: "v1"})
	require.NoError(t, err)
	assert.Equal(t, "markdown", file.FileType)

	_, err = sc.files.CreateFile(ctx, "carol", &domain.CreateFileRequest{WorkspaceID: ws.ID, Filename: "nope.md"})
	assert.True(t, domain.IsPermissionDenied(err))

	for _, content := range []string{"v2", "v3"} {
		_, err := sc.files.SaveContent(ctx, "bob", file.ID, content, nil)
		require.NoError(t, err)
	}

	versions, err := sc.files.ListVersions(ctx, "carol", file.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{versions[0].VersionNumber, versions[1].VersionNumber, versions[2].VersionNumber})
	require.NotNil(t, versions[2].ChangeSummary)
	assert.Equal(t, "Initial version", *versions[2].ChangeSummary)

	first := versions[2]

	_, err = sc.files.RestoreVersion(ctx, "bob", file.ID, first.ID)
	assert.True(t, domain.IsPermissionDenied(err), "restore is owner only")

	restored, err := sc.files.RestoreVersion(ctx, "alice", file.ID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "v1", restored.Content)

	after, err := sc.files.ListVersions(ctx, "alice", file.ID)
	require.NoError(t, err)
	assert.Equal(t, versions, after, "restore must not touch versions")

	diff, err := sc.files.Diff(ctx, "carol", &domain.DiffRequest{FileID: file.ID, FromVersionID: versions[0].ID})
	require.NoError(t, err)
	assert.Equal(t, []textdiff.Line{
		{Kind: textdiff.Removed, Text: "v3", OldLine: 1},
		{Kind: textdiff.Added, Text: "v1", NewLine: 1},
	}, diff)

	_, err = sc.files.ClearHistory(ctx, "bob", file.ID, true)
	assert.True(t, domain.IsPermissionDenied(err))

	n, err := sc.files.ClearHistory(ctx, "alice", file.ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// saving after a clear starts a fresh history
	saved, err := sc.files.SaveContent(ctx, "bob", file.ID, "v4", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.Version.VersionNumber)

	renamed, err := sc.files.RenameFile(ctx, "bob", file.ID, " plan.txt ")
	require.NoError(t, err)
	assert.Equal(t, "plan.txt", renamed.Filename)
	assert.Equal(t, "txt", renamed.FileType)

	require.NoError(t, sc.files.DeleteFile(ctx, "bob", file.ID))
	_, err = sc.files.GetFile(ctx, "bob", file.ID)
	assert.True(t, domain.IsNotFound(err))

	activity, err := sc.workspaces.ListActivity(ctx, "carol", ws.ID, 0)
	require.NoError(t, err)
	kinds := make([]domain.ActivityKind, 0, len(activity))
	for _, e := range activity {
		kinds = append(kinds, e.Kind)
	}
	assert.Contains(t, kinds, domain.ActivityFileCreated)
	assert.Contains(t, kinds, domain.ActivityVersionRestore)
	assert.Contains(t, kinds, domain.ActivityHistoryCleared)
	assert.Contains(t, kinds, domain.ActivityFileDeleted)
}
