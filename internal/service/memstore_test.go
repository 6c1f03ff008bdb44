package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/mailer"
)

// memStore is an in-memory backing store for scenario tests. It mimics the
// constraints the SQL schema enforces: unique collaborator pairs, one pending
// invitation per (workspace, email) and unique version numbers per file.
type memStore struct {
	mu            sync.Mutex
	now           func() time.Time
	users         map[string]*domain.User
	workspaces    map[string]*domain.Workspace
	collaborators map[string]*domain.Collaborator
	invitations   map[string]*domain.Invitation
	files         map[string]*domain.File
	versions      map[string]*domain.FileVersion
	activity      []*domain.ActivityEntry
}

func newMemStore() *memStore {
	return &memStore{
		now:           func() time.Time { return time.Now().UTC() },
		users:         map[string]*domain.User{},
		workspaces:    map[string]*domain.Workspace{},
		collaborators: map[string]*domain.Collaborator{},
		invitations:   map[string]*domain.Invitation{},
		files:         map[string]*domain.File{},
		versions:      map[string]*domain.FileVersion{},
	}
}

func collabKey(workspaceID, userID string) string { return workspaceID + "/" + userID }

func copyInvitation(inv *domain.Invitation) *domain.Invitation {
	c := *inv
	if inv.InviteeID != nil {
		id := *inv.InviteeID
		c.InviteeID = &id
	}
	return &c
}

type memUsers struct{ s *memStore }
type memWorkspaces struct{ s *memStore }
type memCollaborators struct{ s *memStore }
type memInvitations struct{ s *memStore }
type memFiles struct{ s *memStore }
type memVersions struct{ s *memStore }
type memActivity struct{ s *memStore }
type memCleanup struct{ s *memStore }

func (r memUsers) Upsert(_ context.Context, user *domain.User) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if existing, ok := r.s.users[user.ID]; ok {
		existing.Email = user.Email
		if user.DisplayName != "" {
			existing.DisplayName = user.DisplayName
		}
		*user = *existing
		return false, nil
	}
	for _, u := range r.s.users {
		if u.Email == domain.NormalizeEmail(user.Email) {
			return false, &domain.ErrConflict{Entity: "user", Message: "email already registered"}
		}
	}
	now := r.s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	c := *user
	r.s.users[user.ID] = &c
	return true, nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.NewNotFound("user", id)
	}
	c := *u
	return &c, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if domain.NormalizeEmail(u.Email) == domain.NormalizeEmail(email) {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.NewNotFound("user", email)
}

func (r memWorkspaces) Create(_ context.Context, ws *domain.Workspace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	ws.CreatedAt, ws.UpdatedAt = now, now
	c := *ws
	r.s.workspaces[ws.ID] = &c
	r.s.collaborators[collabKey(ws.ID, ws.OwnerID)] = &domain.Collaborator{
		WorkspaceID: ws.ID, UserID: ws.OwnerID, Role: domain.RoleOwner, CreatedAt: now, UpdatedAt: now,
	}
	return nil
}

func (r memWorkspaces) GetByID(_ context.Context, id string) (*domain.Workspace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ws, ok := r.s.workspaces[id]
	if !ok {
		return nil, domain.NewNotFound("workspace", id)
	}
	c := *ws
	return &c, nil
}

func (r memWorkspaces) ListVisibleTo(_ context.Context, userID string) ([]*domain.Workspace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Workspace
	for _, ws := range r.s.workspaces {
		_, member := r.s.collaborators[collabKey(ws.ID, userID)]
		if ws.OwnerID == userID || member {
			c := *ws
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r memWorkspaces) Update(_ context.Context, ws *domain.Workspace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.workspaces[ws.ID]
	if !ok {
		return domain.NewNotFound("workspace", ws.ID)
	}
	existing.Name, existing.Description, existing.UpdatedAt = ws.Name, ws.Description, r.s.now()
	return nil
}

func (r memCollaborators) Add(_ context.Context, c *domain.Collaborator) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := collabKey(c.WorkspaceID, c.UserID)
	if _, ok := r.s.collaborators[key]; ok {
		return &domain.ErrConflict{Entity: "collaborator", Message: "already exists"}
	}
	now := r.s.now()
	c.CreatedAt, c.UpdatedAt = now, now
	cp := *c
	r.s.collaborators[key] = &cp
	return nil
}

func (r memCollaborators) EnsureOwner(_ context.Context, workspaceID, userID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := collabKey(workspaceID, userID)
	if c, ok := r.s.collaborators[key]; ok {
		if c.Role == domain.RoleOwner {
			return false, nil
		}
		c.Role = domain.RoleOwner
		return true, nil
	}
	now := r.s.now()
	r.s.collaborators[key] = &domain.Collaborator{WorkspaceID: workspaceID, UserID: userID, Role: domain.RoleOwner, CreatedAt: now, UpdatedAt: now}
	return true, nil
}

func (r memCollaborators) Get(_ context.Context, workspaceID, userID string) (*domain.Collaborator, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.collaborators[collabKey(workspaceID, userID)]
	if !ok {
		return nil, domain.NewNotFound("collaborator", userID)
	}
	cp := *c
	return &cp, nil
}

func (r memCollaborators) List(_ context.Context, workspaceID string) ([]*domain.CollaboratorWithUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.CollaboratorWithUser
	for _, c := range r.s.collaborators {
		if c.WorkspaceID != workspaceID {
			continue
		}
		row := &domain.CollaboratorWithUser{Collaborator: *c}
		if u, ok := r.s.users[c.UserID]; ok {
			row.Email, row.DisplayName = u.Email, u.DisplayName
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r memCollaborators) UpdateRole(_ context.Context, workspaceID, userID string, role domain.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.collaborators[collabKey(workspaceID, userID)]
	if !ok {
		return domain.NewNotFound("collaborator", userID)
	}
	c.Role = role
	return nil
}

func (r memCollaborators) Remove(_ context.Context, workspaceID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := collabKey(workspaceID, userID)
	if _, ok := r.s.collaborators[key]; !ok {
		return domain.NewNotFound("collaborator", userID)
	}
	delete(r.s.collaborators, key)
	return nil
}

func (r memInvitations) Create(_ context.Context, inv *domain.Invitation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.invitations {
		if existing.WorkspaceID == inv.WorkspaceID && existing.Status == domain.InvitationPending &&
			domain.NormalizeEmail(existing.InviteeEmail) == domain.NormalizeEmail(inv.InviteeEmail) {
			return &domain.ErrDuplicateInvitation{WorkspaceID: inv.WorkspaceID, Email: inv.InviteeEmail}
		}
	}
	now := r.s.now()
	inv.CreatedAt, inv.UpdatedAt = now, now
	r.s.invitations[inv.ID] = copyInvitation(inv)
	return nil
}

func (r memInvitations) GetByID(_ context.Context, id string) (*domain.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invitations[id]
	if !ok {
		return nil, domain.NewNotFound("invitation", id)
	}
	return copyInvitation(inv), nil
}

func (r memInvitations) GetByToken(_ context.Context, token string) (*domain.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, inv := range r.s.invitations {
		if inv.Token == token {
			return copyInvitation(inv), nil
		}
	}
	return nil, domain.NewNotFound("invitation", "token")
}

func (r memInvitations) FindByWorkspaceAndEmail(_ context.Context, workspaceID, email string) (*domain.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var found *domain.Invitation
	for _, inv := range r.s.invitations {
		if inv.WorkspaceID != workspaceID || domain.NormalizeEmail(inv.InviteeEmail) != domain.NormalizeEmail(email) {
			continue
		}
		if found == nil || inv.Status == domain.InvitationPending {
			found = inv
		}
	}
	if found == nil {
		return nil, domain.NewNotFound("invitation", email)
	}
	return copyInvitation(found), nil
}

func (r memInvitations) ListByWorkspace(_ context.Context, workspaceID string) ([]*domain.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Invitation
	for _, inv := range r.s.invitations {
		if inv.WorkspaceID == workspaceID {
			out = append(out, copyInvitation(inv))
		}
	}
	return out, nil
}

func (r memInvitations) ListPendingForUser(_ context.Context, userID, email string) ([]*domain.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.Invitation
	for _, inv := range r.s.invitations {
		if inv.Status == domain.InvitationPending && inv.IsAddressedTo(userID, email) {
			out = append(out, copyInvitation(inv))
		}
	}
	return out, nil
}

func (r memInvitations) TransitionStatus(_ context.Context, id string, to domain.InvitationStatus, inviteeID *string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invitations[id]
	if !ok || inv.Status != domain.InvitationPending {
		return false, nil
	}
	inv.Status = to
	inv.UpdatedAt = r.s.now()
	if inviteeID != nil {
		v := *inviteeID
		inv.InviteeID = &v
	}
	return true, nil
}

func (r memInvitations) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.invitations[id]; !ok {
		return domain.NewNotFound("invitation", id)
	}
	delete(r.s.invitations, id)
	return nil
}

func (r memInvitations) DeleteForMember(_ context.Context, workspaceID, userID, email string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, inv := range r.s.invitations {
		if inv.WorkspaceID == workspaceID && inv.IsAddressedTo(userID, email) {
			delete(r.s.invitations, id)
			n++
		}
	}
	return n, nil
}

func (r memInvitations) DeletePendingForEmail(_ context.Context, workspaceID, email string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, inv := range r.s.invitations {
		if inv.WorkspaceID == workspaceID && inv.Status == domain.InvitationPending &&
			domain.NormalizeEmail(inv.InviteeEmail) == domain.NormalizeEmail(email) {
			delete(r.s.invitations, id)
			n++
		}
	}
	return n, nil
}

func (r memInvitations) ExpirePending(_ context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, inv := range r.s.invitations {
		if inv.Status == domain.InvitationPending && !now.Before(inv.ExpiresAt) {
			inv.Status = domain.InvitationExpired
			n++
		}
	}
	return n, nil
}

func (r memInvitations) PurgeExpired(_ context.Context, olderThan time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, inv := range r.s.invitations {
		if inv.Status == domain.InvitationExpired && inv.ExpiresAt.Before(olderThan) {
			delete(r.s.invitations, id)
			n++
		}
	}
	return n, nil
}

func (r memInvitations) LinkInvitee(_ context.Context, userID, email string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, inv := range r.s.invitations {
		if inv.Status == domain.InvitationPending && inv.InviteeID == nil &&
			domain.NormalizeEmail(inv.InviteeEmail) == domain.NormalizeEmail(email) {
			id := userID
			inv.InviteeID = &id
			n++
		}
	}
	return n, nil
}

func (r memFiles) Create(_ context.Context, f *domain.File) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.now()
	f.CreatedAt, f.UpdatedAt = now, now
	c := *f
	r.s.files[f.ID] = &c
	return nil
}

func (r memFiles) GetByID(_ context.Context, id string) (*domain.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.files[id]
	if !ok {
		return nil, domain.NewNotFound("file", id)
	}
	c := *f
	return &c, nil
}

func (r memFiles) ListByWorkspace(_ context.Context, workspaceID string) ([]*domain.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.File
	for _, f := range r.s.files {
		if f.WorkspaceID == workspaceID {
			c := *f
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Filename < out[j].Filename })
	return out, nil
}

func (r memFiles) UpdateContent(_ context.Context, id, content string) (*domain.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.files[id]
	if !ok {
		return nil, domain.NewNotFound("file", id)
	}
	f.Content = content
	f.UpdatedAt = r.s.now()
	c := *f
	return &c, nil
}

func (r memFiles) Rename(_ context.Context, id, filename string) (*domain.File, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f, ok := r.s.files[id]
	if !ok {
		return nil, domain.NewNotFound("file", id)
	}
	f.Filename = filename
	f.FileType = domain.FileTypeFromName(filename)
	c := *f
	return &c, nil
}

func (r memFiles) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.files[id]; !ok {
		return domain.NewNotFound("file", id)
	}
	for vid, v := range r.s.versions {
		if v.FileID == id {
			delete(r.s.versions, vid)
		}
	}
	delete(r.s.files, id)
	return nil
}

func (r memVersions) Append(_ context.Context, v *domain.FileVersion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var max int64
	for _, existing := range r.s.versions {
		if existing.FileID == v.FileID && existing.VersionNumber > max {
			max = existing.VersionNumber
		}
	}
	v.VersionNumber = max + 1
	v.CreatedAt = r.s.now()
	c := *v
	r.s.versions[v.ID] = &c
	return nil
}

func (r memVersions) GetByID(_ context.Context, id string) (*domain.FileVersion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.versions[id]
	if !ok {
		return nil, domain.NewNotFound("file_version", id)
	}
	c := *v
	return &c, nil
}

func (r memVersions) ListByFile(_ context.Context, fileID string) ([]*domain.FileVersion, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.FileVersion
	for _, v := range r.s.versions {
		if v.FileID == fileID {
			c := *v
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VersionNumber > out[j].VersionNumber })
	return out, nil
}

func (r memVersions) DeleteByFile(_ context.Context, fileID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, v := range r.s.versions {
		if v.FileID == fileID {
			delete(r.s.versions, id)
			n++
		}
	}
	return n, nil
}

func (r memActivity) Record(_ context.Context, e *domain.ActivityEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.CreatedAt = r.s.now()
	c := *e
	r.s.activity = append(r.s.activity, &c)
	return nil
}

func (r memActivity) ListByWorkspace(_ context.Context, workspaceID string, limit int) ([]*domain.ActivityEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.ActivityEntry
	for i := len(r.s.activity) - 1; i >= 0 && len(out) < limit; i-- {
		if r.s.activity[i].WorkspaceID == workspaceID {
			c := *r.s.activity[i]
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r memCleanup) DeleteStep(_ context.Context, workspaceID string, step domain.DeletionStep) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	switch step {
	case domain.StepFileVersions:
		for id, v := range r.s.versions {
			if f, ok := r.s.files[v.FileID]; ok && f.WorkspaceID == workspaceID {
				delete(r.s.versions, id)
				n++
			}
		}
	case domain.StepFiles:
		for id, f := range r.s.files {
			if f.WorkspaceID == workspaceID {
				delete(r.s.files, id)
				n++
			}
		}
	case domain.StepActivityLog:
		kept := r.s.activity[:0]
		for _, e := range r.s.activity {
			if e.WorkspaceID == workspaceID {
				n++
				continue
			}
			kept = append(kept, e)
		}
		r.s.activity = kept
	case domain.StepInvitations:
		for id, inv := range r.s.invitations {
			if inv.WorkspaceID == workspaceID {
				delete(r.s.invitations, id)
				n++
			}
		}
	case domain.StepCollaborators:
		for key, c := range r.s.collaborators {
			if c.WorkspaceID == workspaceID {
				delete(r.s.collaborators, key)
				n++
			}
		}
	case domain.StepWorkspace:
		if _, ok := r.s.workspaces[workspaceID]; ok {
			delete(r.s.workspaces, workspaceID)
			n++
		}
	}
	return n, nil
}

// recordingMailer captures sent messages and can be told to fail
type recordingMailer struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, html, text string) (*mailer.SendResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.sent = append(m.sent, to)
	return &mailer.SendResult{MessageID: "msg-" + to}, nil
}
