package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func snapshotFor(role Role) AccessSnapshot {
	ws := &Workspace{ID: "ws-1", OwnerID: "owner-1"}
	if role == "" {
		return AccessSnapshot{Workspace: ws}
	}
	return AccessSnapshot{
		Workspace:    ws,
		Collaborator: &Collaborator{WorkspaceID: "ws-1", UserID: "user-1", Role: role},
	}
}

func TestCanPerform_RoleMatrix(t *testing.T) {
	tests := []struct {
		action Action
		viewer bool
		editor bool
		owner  bool
	}{
		{ActionReadFiles, true, true, true},
		{ActionReadMessages, true, true, true},
		{ActionReadCollaborators, true, true, true},
		{ActionCreateFile, false, true, true},
		{ActionUpdateFile, false, true, true},
		{ActionDeleteFile, false, true, true},
		{ActionCreateVersion, false, true, true},
		{ActionSendMessage, false, true, true},
		{ActionDeleteWorkspace, false, false, true},
		{ActionManageCollaborators, false, false, true},
		{ActionInviteMembers, false, false, true},
		{ActionClearChatHistory, false, false, true},
		{ActionClearVersionHistory, false, false, true},
		{ActionRestoreVersion, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.viewer, CanPerform(snapshotFor(RoleViewer), "user-1", tt.action), "viewer")
			assert.Equal(t, tt.editor, CanPerform(snapshotFor(RoleEditor), "user-1", tt.action), "editor")
			assert.Equal(t, tt.owner, CanPerform(snapshotFor(RoleOwner), "user-1", tt.action), "owner")
		})
	}
}

func TestCanPerform_RoleMonotonicity(t *testing.T) {
	for _, action := range Actions() {
		viewer := CanPerform(snapshotFor(RoleViewer), "user-1", action)
		editor := CanPerform(snapshotFor(RoleEditor), "user-1", action)
		owner := CanPerform(snapshotFor(RoleOwner), "user-1", action)

		if viewer {
			assert.True(t, editor, "editor must be allowed %s when viewer is", action)
		}
		if editor {
			assert.True(t, owner, "owner must be allowed %s when editor is", action)
		}
	}
}

func TestCanPerform_WorkspaceOwnerWithoutRow(t *testing.T) {
	snap := snapshotFor("")
	for _, action := range Actions() {
		assert.True(t, CanPerform(snap, "owner-1", action), "owner_id must be allowed %s", action)
	}
}

func TestCanPerform_WorkspaceOwnerWithStaleRow(t *testing.T) {
	snap := AccessSnapshot{
		Workspace:    &Workspace{ID: "ws-1", OwnerID: "owner-1"},
		Collaborator: &Collaborator{WorkspaceID: "ws-1", UserID: "owner-1", Role: RoleViewer},
	}
	assert.True(t, CanPerform(snap, "owner-1", ActionDeleteWorkspace))
}

func TestCanPerform_Denials(t *testing.T) {
	t.Run("non member", func(t *testing.T) {
		assert.False(t, CanPerform(snapshotFor(""), "stranger", ActionReadFiles))
	})

	t.Run("collaborator row of another user", func(t *testing.T) {
		assert.False(t, CanPerform(snapshotFor(RoleOwner), "someone-else", ActionReadFiles))
	})

	t.Run("collaborator row of another workspace", func(t *testing.T) {
		snap := AccessSnapshot{
			Workspace:    &Workspace{ID: "ws-1", OwnerID: "owner-1"},
			Collaborator: &Collaborator{WorkspaceID: "ws-2", UserID: "user-1", Role: RoleOwner},
		}
		assert.False(t, CanPerform(snap, "user-1", ActionReadFiles))
	})

	t.Run("unknown role", func(t *testing.T) {
		assert.False(t, CanPerform(snapshotFor(Role("admin")), "user-1", ActionReadFiles))
	})

	t.Run("unknown action", func(t *testing.T) {
		assert.False(t, CanPerform(snapshotFor(RoleOwner), "user-1", Action("launch_rockets")))
	})

	t.Run("missing workspace", func(t *testing.T) {
		assert.False(t, CanPerform(AccessSnapshot{}, "user-1", ActionReadFiles))
	})

	t.Run("empty actor", func(t *testing.T) {
		snap := AccessSnapshot{Workspace: &Workspace{ID: "ws-1", OwnerID: ""}}
		assert.False(t, CanPerform(snap, "", ActionReadFiles))
	})
}

func TestAction_IsSensitive(t *testing.T) {
	assert.True(t, ActionInviteMembers.IsSensitive())
	assert.True(t, ActionManageCollaborators.IsSensitive())
	assert.True(t, ActionDeleteWorkspace.IsSensitive())
	assert.True(t, Action("unknown").IsSensitive())
	assert.False(t, ActionReadFiles.IsSensitive())
	assert.False(t, ActionUpdateFile.IsSensitive())
}

func TestRole_AtLeast(t *testing.T) {
	assert.True(t, RoleOwner.AtLeast(RoleEditor))
	assert.True(t, RoleEditor.AtLeast(RoleEditor))
	assert.False(t, RoleViewer.AtLeast(RoleEditor))
	assert.False(t, Role("").AtLeast(Role("")))
}
