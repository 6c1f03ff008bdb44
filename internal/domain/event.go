package domain

import (
	"fmt"
	"time"
)

// ChangeOp is the row operation reported by the change feed
type ChangeOp string

const (
	OpInsert ChangeOp = "insert"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)

// IsValid reports whether op is one of the three row operations
func (op ChangeOp) IsValid() bool {
	return op == OpInsert || op == OpUpdate || op == OpDelete
}

// Table identifies the entity a change event carries
type Table string

const (
	TableWorkspaces    Table = "workspaces"
	TableCollaborators Table = "collaborators"
	TableInvitations   Table = "invitations"
	TableFiles         Table = "files"
	TableFileVersions  Table = "file_versions"
)

// IsValid reports whether t is a table the feed publishes
func (t Table) IsValid() bool {
	switch t {
	case TableWorkspaces, TableCollaborators, TableInvitations, TableFiles, TableFileVersions:
		return true
	}
	return false
}

// ChangeEvent is a typed row change. Exactly one row pointer is set and it
// matches Table.
type ChangeEvent struct {
	Op           ChangeOp
	Table        Table
	Workspace    *Workspace
	Collaborator *Collaborator
	Invitation   *Invitation
	File         *File
	FileVersion  *FileVersion
	// Synthetic marks events injected by a manual refetch rather than the feed
	Synthetic bool
	// ContentOmitted is set when the feed dropped a large content column and
	// the row must be re-read before its content is used
	ContentOmitted bool
	ReceivedAt     time.Time
}

// Validate checks the union invariant
func (e ChangeEvent) Validate() error {
	if !e.Op.IsValid() {
		return fmt.Errorf("unknown change operation %q", e.Op)
	}
	set := 0
	var want bool
	for _, present := range []struct {
		table Table
		ok    bool
	}{
		{TableWorkspaces, e.Workspace != nil},
		{TableCollaborators, e.Collaborator != nil},
		{TableInvitations, e.Invitation != nil},
		{TableFiles, e.File != nil},
		{TableFileVersions, e.FileVersion != nil},
	} {
		if present.ok {
			set++
			if present.table == e.Table {
				want = true
			}
		}
	}
	if set != 1 || !want {
		return fmt.Errorf("change event for %s must carry exactly one %s row", e.Table, e.Table)
	}
	return nil
}

// Column returns the value of a filterable column of the carried row
func (e ChangeEvent) Column(name string) (string, bool) {
	switch {
	case e.File != nil:
		switch name {
		case "id":
			return e.File.ID, true
		case "workspace_id":
			return e.File.WorkspaceID, true
		}
	case e.FileVersion != nil:
		switch name {
		case "id":
			return e.FileVersion.ID, true
		case "file_id":
			return e.FileVersion.FileID, true
		}
	case e.Invitation != nil:
		switch name {
		case "id":
			return e.Invitation.ID, true
		case "workspace_id":
			return e.Invitation.WorkspaceID, true
		case "invitee_email":
			return NormalizeEmail(e.Invitation.InviteeEmail), true
		case "invitee_id":
			if e.Invitation.InviteeID == nil {
				return "", false
			}
			return *e.Invitation.InviteeID, true
		}
	case e.Collaborator != nil:
		switch name {
		case "workspace_id":
			return e.Collaborator.WorkspaceID, true
		case "user_id":
			return e.Collaborator.UserID, true
		}
	case e.Workspace != nil:
		switch name {
		case "id":
			return e.Workspace.ID, true
		case "owner_id":
			return e.Workspace.OwnerID, true
		}
	}
	return "", false
}

// NewFileChange builds a file event
func NewFileChange(op ChangeOp, file *File) ChangeEvent {
	return ChangeEvent{Op: op, Table: TableFiles, File: file, ReceivedAt: time.Now().UTC()}
}

// NewInvitationChange builds an invitation event
func NewInvitationChange(op ChangeOp, inv *Invitation) ChangeEvent {
	return ChangeEvent{Op: op, Table: TableInvitations, Invitation: inv, ReceivedAt: time.Now().UTC()}
}
