package http

import (
	"net/http"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/textdiff"
)

func testFile(content string) *domain.File {
	return &domain.File{
		ID:          testFileID,
		WorkspaceID: testWorkspaceID,
		Filename:    "notes.md",
		Content:     content,
		FileType:    "markdown",
		CreatedBy:   "alice",
	}
}

func TestFileHandler_ListAndGet(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		mux, m := setupHandlerTest(t)
		m.files.EXPECT().ListFiles(gomock.Any(), "alice", testWorkspaceID).Return([]*domain.File{testFile("a")}, nil)

		w := doRequest(mux, http.MethodGet, "/api/files.list?workspace_id="+testWorkspaceID, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody(t, w)["files"], 1)
	})

	t.Run("get", func(t *testing.T) {
		mux, m := setupHandlerTest(t)
		m.files.EXPECT().GetFile(gomock.Any(), "alice", testFileID).Return(testFile("# Title"), nil)

		w := doRequest(mux, http.MethodGet, "/api/files.get?file_id="+testFileID, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "# Title", decodeBody(t, w)["file"].(map[string]interface{})["content"])
	})

	t.Run("get missing id", func(t *testing.T) {
		mux, _ := setupHandlerTest(t)
		w := doRequest(mux, http.MethodGet, "/api/files.get", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFileHandler_Create(t *testing.T) {
	mux, m := setupHandlerTest(t)
	m.files.EXPECT().
		CreateFile(gomock.Any(), "alice", &domain.CreateFileRequest{WorkspaceID: testWorkspaceID, Filename: "notes.md", Content: "a"}).
		Return(testFile("a"), nil)

	w := doRequest(mux, http.MethodPost, "/api/files.create",
		`{"workspace_id":"`+testWorkspaceID+`","filename":"notes.md","content":"a"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestFileHandler_Save(t *testing.T) {
	t.Run("saves with a summary", func(t *testing.T) {
		mux, m := setupHandlerTest(t)
		summary := "fix typo"
		m.files.EXPECT().SaveContent(gomock.Any(), "alice", testFileID, "b", &summary).
			Return(&domain.SaveResult{
				File:    testFile("b"),
				Version: &domain.FileVersion{ID: testVersionID, FileID: testFileID, Content: "b", VersionNumber: 2},
			}, nil)

		w := doRequest(mux, http.MethodPost, "/api/files.save",
			`{"file_id":"`+testFileID+`","content":"b","change_summary":"fix typo"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 2, decodeBody(t, w)["version"].(map[string]interface{})["version_number"])
	})

	t.Run("saves without a summary", func(t *testing.T) {
		mux, m := setupHandlerTest(t)
		m.files.EXPECT().SaveContent(gomock.Any(), "alice", testFileID, "b", gomock.Nil()).
			Return(&domain.SaveResult{File: testFile("b")}, nil)

		w := doRequest(mux, http.MethodPost, "/api/files.save", `{"file_id":"`+testFileID+`","content":"b"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("viewer cannot save", func(t *testing.T) {
		mux, m := setupHandlerTest(t)
		m.files.EXPECT().SaveContent(gomock.Any(), "alice", testFileID, "b", gomock.Nil()).
			Return(nil, domain.NewPermissionError(domain.ActionUpdateFile, testWorkspaceID))

		w := doRequest(mux, http.MethodPost, "/api/files.save", `{"file_id":"`+testFileID+`","content":"b"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("version number race", func(t *testing.T) {
		mux, m := setupHandlerTest(t)
		m.files.EXPECT().SaveContent(gomock.Any(), "alice", testFileID, "b", gomock.Nil()).
			Return(nil, &domain.ErrConflict{Entity: "file_version", Message: "version number already taken"})

		w := doRequest(mux, http.MethodPost, "/api/files.save", `{"file_id":"`+testFileID+`","content":"b"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestFileHandler_RenameAndDelete(t *testing.T) {
	t.Run("rename", func(t *testing.T) {
		mux, m := setupHandlerTest(t)
		renamed := testFile("a")
		renamed.Filename = "todo.md"
		m.files.EXPECT().RenameFile(gomock.Any(), "alice", testFileID, "todo.md").Return(renamed, nil)

		w := doRequest(mux, http.MethodPost, "/api/files.rename", `{"file_id":"`+testFileID+`","filename":" todo.md "}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		mux, m := setupHandlerTest(t)
		m.files.EXPECT().DeleteFile(gomock.Any(), "alice", testFileID).Return(nil)

		w := doRequest(mux, http.MethodPost, "/api/files.delete", `{"file_id":"`+testFileID+`"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "deleted", decodeBody(t, w)["status"])
	})
}

func TestFileHandler_History(t *testing.T) {
	t.Run("versions", func(t *testing.T) {
		mux, m := setupHandlerTest(t)
		m.files.EXPECT().ListVersions(gomock.Any(), "alice", testFileID).Return([]*domain.FileVersion{
			{ID: testVersionID, FileID: testFileID, VersionNumber: 3},
		}, nil)

		w := doRequest(mux, http.MethodGet, "/api/files.versions?file_id="+testFileID, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody(t, w)["versions"], 1)
	})

	t.Run("restore", func(t *testing.T) {
		mux, m := setupHandlerTest(t)
		m.files.EXPECT().RestoreVersion(gomock.Any(), "alice", testFileID, testVersionID).Return(testFile("old"), nil)

		w := doRequest(mux, http.MethodPost, "/api/files.restore",
			`{"file_id":"`+testFileID+`","version_id":"`+testVersionID+`"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("restore by non owner", func(t *testing.T) {
		mux, m := setupHandlerTest(t)
		m.files.EXPECT().RestoreVersion(gomock.Any(), "alice", testFileID, testVersionID).
			Return(nil, domain.NewPermissionError(domain.ActionRestoreVersion, testWorkspaceID))

		w := doRequest(mux, http.MethodPost, "/api/files.restore",
			`{"file_id":"`+testFileID+`","version_id":"`+testVersionID+`"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("clear history", func(t *testing.T) {
		mux, m := setupHandlerTest(t)
		m.files.EXPECT().ClearHistory(gomock.Any(), "alice", testFileID, true).Return(int64(4), nil)

		w := doRequest(mux, http.MethodPost, "/api/files.clearHistory", `{"file_id":"`+testFileID+`","confirm":true}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.EqualValues(t, 4, decodeBody(t, w)["deleted"])
	})

	t.Run("clear history needs confirmation", func(t *testing.T) {
		mux, _ := setupHandlerTest(t)
		w := doRequest(mux, http.MethodPost, "/api/files.clearHistory", `{"file_id":"`+testFileID+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("diff", func(t *testing.T) {
		mux, m := setupHandlerTest(t)
		m.files.EXPECT().Diff(gomock.Any(), "alice", &domain.DiffRequest{FileID: testFileID, FromVersionID: testVersionID}).
			Return([]textdiff.Line{{Kind: textdiff.Added, Text: "new line", NewLine: 2}}, nil)

		w := doRequest(mux, http.MethodGet, "/api/files.diff?file_id="+testFileID+"&from_version_id="+testVersionID, "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decodeBody(t, w)["lines"], 1)
	})
}
