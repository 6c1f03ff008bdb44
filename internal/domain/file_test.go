package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTypeFromName(t *testing.T) {
	assert.Equal(t, "markdown", FileTypeFromName("notes"))
	assert.Equal(t, "markdown", FileTypeFromName("README.MD"))
	assert.Equal(t, "txt", FileTypeFromName("todo.txt"))
}

func TestCreateFileRequest_Validate(t *testing.T) {
	ws := "5f0c8a55-2f9a-4d0c-9b1d-3c3f0e6f7a11"

	req := &CreateFileRequest{WorkspaceID: ws, Filename: "plan.md"}
	require.NoError(t, req.Validate())
	assert.Equal(t, "markdown", req.FileType)

	for name, filename := range map[string]string{
		"empty":     "  ",
		"separator": "a/b.md",
		"too long":  strings.Repeat("a", MaxFilenameLength+1),
	} {
		t.Run(name, func(t *testing.T) {
			req := &CreateFileRequest{WorkspaceID: ws, Filename: filename}
			assert.True(t, IsValidation(req.Validate()))
		})
	}
}

func TestDiffRequest_Validate(t *testing.T) {
	id := "5f0c8a55-2f9a-4d0c-9b1d-3c3f0e6f7a11"
	assert.NoError(t, (&DiffRequest{FileID: id, FromVersionID: id}).Validate())
	assert.Error(t, (&DiffRequest{FileID: id}).Validate())
	assert.Error(t, (&DiffRequest{FileID: id, FromVersionID: id, ToVersionID: "x"}).Validate())
}

func TestClearHistoryRequest_RequiresConfirm(t *testing.T) {
	id := "3b241101-e2bb-4255-8caf-4136c566a962"

	req := &ClearHistoryRequest{FileID: id}
	assert.True(t, IsValidation(req.Validate()))

	req.Confirm = true
	assert.NoError(t, req.Validate())
}
