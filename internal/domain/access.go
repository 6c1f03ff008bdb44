package domain

// Action is an operation gated by the access evaluator
type Action string

const (
	ActionReadFiles           Action = "read_files"
	ActionReadMessages        Action = "read_messages"
	ActionReadCollaborators   Action = "read_collaborators"
	ActionCreateFile          Action = "create_file"
	ActionUpdateFile          Action = "update_file"
	ActionDeleteFile          Action = "delete_file"
	ActionCreateVersion       Action = "create_version"
	ActionSendMessage         Action = "send_message"
	ActionDeleteWorkspace     Action = "delete_workspace"
	ActionManageCollaborators Action = "manage_collaborators"
	ActionInviteMembers       Action = "invite_members"
	ActionClearChatHistory    Action = "clear_chat_history"
	ActionClearVersionHistory Action = "clear_version_history"
	ActionRestoreVersion      Action = "restore_version"
	ActionUpdateWorkspace     Action = "update_workspace"
)

// minimumRole is the weakest role allowed to perform each action
var minimumRole = map[Action]Role{
	ActionReadFiles:           RoleViewer,
	ActionReadMessages:        RoleViewer,
	ActionReadCollaborators:   RoleViewer,
	ActionCreateFile:          RoleEditor,
	ActionUpdateFile:          RoleEditor,
	ActionDeleteFile:          RoleEditor,
	ActionCreateVersion:       RoleEditor,
	ActionSendMessage:         RoleEditor,
	ActionDeleteWorkspace:     RoleOwner,
	ActionManageCollaborators: RoleOwner,
	ActionInviteMembers:       RoleOwner,
	ActionClearChatHistory:    RoleOwner,
	ActionClearVersionHistory: RoleOwner,
	ActionRestoreVersion:      RoleOwner,
	ActionUpdateWorkspace:     RoleOwner,
}

// Actions lists every gated action
func Actions() []Action {
	out := make([]Action, 0, len(minimumRole))
	for a := range minimumRole {
		out = append(out, a)
	}
	return out
}

// MinimumRole returns the weakest role for an action, false for unknown actions
func MinimumRole(action Action) (Role, bool) {
	r, ok := minimumRole[action]
	return r, ok
}

// IsSensitive reports whether an action must be evaluated against a freshly read snapshot
func (a Action) IsSensitive() bool {
	r, ok := minimumRole[a]
	return !ok || r == RoleOwner
}

// AccessSnapshot is the role state needed to evaluate one actor in one workspace.
// Collaborator is nil when the actor has no membership row.
type AccessSnapshot struct {
	Workspace    *Workspace    `json:"workspace"`
	Collaborator *Collaborator `json:"collaborator,omitempty"`
}

// EffectiveRole resolves the actor's role. The workspace owner is always owner,
// whatever their collaborator row says.
func (s AccessSnapshot) EffectiveRole(actorID string) (Role, bool) {
	if s.Workspace == nil || actorID == "" {
		return "", false
	}
	if s.Workspace.OwnerID == actorID {
		return RoleOwner, true
	}
	if s.Collaborator == nil || s.Collaborator.UserID != actorID || s.Collaborator.WorkspaceID != s.Workspace.ID {
		return "", false
	}
	if !s.Collaborator.Role.IsValid() {
		return "", false
	}
	return s.Collaborator.Role, true
}

// CanPerform evaluates an action against a snapshot without side effects
func CanPerform(s AccessSnapshot, actorID string, action Action) bool {
	required, ok := minimumRole[action]
	if !ok {
		return false
	}
	role, ok := s.EffectiveRole(actorID)
	if !ok {
		return false
	}
	return role.AtLeast(required)
}
