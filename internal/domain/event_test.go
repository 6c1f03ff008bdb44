package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChangeEvent_Validate(t *testing.T) {
	file := &File{ID: "f1", WorkspaceID: "ws-1"}

	assert.NoError(t, NewFileChange(OpUpdate, file).Validate())

	t.Run("unknown op", func(t *testing.T) {
		evt := NewFileChange(ChangeOp("upsert"), file)
		assert.Error(t, evt.Validate())
	})

	t.Run("row does not match table", func(t *testing.T) {
		evt := ChangeEvent{Op: OpInsert, Table: TableInvitations, File: file}
		assert.Error(t, evt.Validate())
	})

	t.Run("two rows", func(t *testing.T) {
		evt := ChangeEvent{Op: OpInsert, Table: TableFiles, File: file, Invitation: &Invitation{}}
		assert.Error(t, evt.Validate())
	})

	t.Run("no row", func(t *testing.T) {
		evt := ChangeEvent{Op: OpDelete, Table: TableFiles}
		assert.Error(t, evt.Validate())
	})
}

func TestChangeEvent_Column(t *testing.T) {
	file := NewFileChange(OpUpdate, &File{ID: "f1", WorkspaceID: "ws-1"})
	v, ok := file.Column("id")
	assert.True(t, ok)
	assert.Equal(t, "f1", v)
	v, ok = file.Column("workspace_id")
	assert.True(t, ok)
	assert.Equal(t, "ws-1", v)
	_, ok = file.Column("content")
	assert.False(t, ok)

	inv := NewInvitationChange(OpInsert, &Invitation{ID: "i1", WorkspaceID: "ws-1", InviteeEmail: "Bob@X.com"})
	v, ok = inv.Column("invitee_email")
	assert.True(t, ok)
	assert.Equal(t, "bob@x.com", v)
	_, ok = inv.Column("invitee_id")
	assert.False(t, ok)

	version := ChangeEvent{Op: OpInsert, Table: TableFileVersions, FileVersion: &FileVersion{ID: "v1", FileID: "f1"}}
	v, ok = version.Column("file_id")
	assert.True(t, ok)
	assert.Equal(t, "f1", v)
}

func TestTable_IsValid(t *testing.T) {
	assert.True(t, TableFiles.IsValid())
	assert.False(t, Table("chat_messages").IsValid())
}
