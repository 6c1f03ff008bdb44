package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/docspace/docspace/internal/database"
	"github.com/docspace/docspace/internal/domain"
	"github.com/docspace/docspace/pkg/tracing"
)

const pendingInvitationIndex = "invitations_one_pending_idx"

type invitationRepository struct {
	db *sql.DB
}

// NewInvitationRepository creates a new PostgreSQL invitation repository
func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{db: db}
}

var invitationColumns = []string{
	"id", "workspace_id", "inviter_id", "invitee_email", "invitee_id",
	"role", "status", "token", "expires_at", "created_at", "updated_at",
}

func scanInvitation(row rowScanner) (*domain.Invitation, error) {
	var inv domain.Invitation
	var inviteeID sql.NullString
	if err := row.Scan(
		&inv.ID, &inv.WorkspaceID, &inv.InviterID, &inv.InviteeEmail, &inviteeID,
		&inv.Role, &inv.Status, &inv.Token, &inv.ExpiresAt, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if inviteeID.Valid {
		inv.InviteeID = &inviteeID.String
	}
	return &inv, nil
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	inv.InviteeEmail = domain.NormalizeEmail(inv.InviteeEmail)
	if inv.Status == "" {
		inv.Status = domain.InvitationPending
	}

	query, args, err := psql.
		Insert("invitations").
		Columns(invitationColumns...).
		Values(
			inv.ID, inv.WorkspaceID, inv.InviterID, inv.InviteeEmail, inv.InviteeID,
			inv.Role, inv.Status, inv.Token, inv.ExpiresAt, now, now,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if database.IsUniqueViolation(err) {
			if database.ConstraintName(err) == pendingInvitationIndex {
				return &domain.ErrDuplicateInvitation{WorkspaceID: inv.WorkspaceID, Email: inv.InviteeEmail}
			}
			return &domain.ErrConflict{Entity: "invitation", Message: "invitation already exists"}
		}
		return database.Classify(fmt.Errorf("failed to create invitation: %w", err))
	}
	return nil
}

func (r *invitationRepository) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	return r.getOne(ctx, psql.Select(invitationColumns...).From("invitations").Where(sq.Eq{"id": id}), id)
}

func (r *invitationRepository) GetByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	return r.getOne(ctx, psql.Select(invitationColumns...).From("invitations").Where(sq.Eq{"token": token}), "token")
}

// FindByWorkspaceAndEmail prefers the pending row, then the most recent one
func (r *invitationRepository) FindByWorkspaceAndEmail(ctx context.Context, workspaceID, email string) (*domain.Invitation, error) {
	email = domain.NormalizeEmail(email)
	builder := psql.
		Select(invitationColumns...).
		From("invitations").
		Where(sq.Eq{"workspace_id": workspaceID}).
		Where(sq.Expr("LOWER(invitee_email) = ?", email)).
		OrderBy("(status = 'pending') DESC", "created_at DESC").
		Limit(1)
	return r.getOne(ctx, builder, email)
}

func (r *invitationRepository) getOne(ctx context.Context, builder sq.SelectBuilder, key string) (*domain.Invitation, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	inv, err := scanInvitation(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("invitation", key)
	}
	if err != nil {
		return nil, database.Classify(fmt.Errorf("failed to get invitation: %w", err))
	}
	return inv, nil
}

func (r *invitationRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.Invitation, error) {
	return r.list(ctx, psql.
		Select(invitationColumns...).
		From("invitations").
		Where(sq.Eq{"workspace_id": workspaceID}).
		OrderBy("created_at DESC"))
}

// ListPendingForUser matches on invitee id or email
func (r *invitationRepository) ListPendingForUser(ctx context.Context, userID, email string) ([]*domain.Invitation, error) {
	return r.list(ctx, psql.
		Select(invitationColumns...).
		From("invitations").
		Where(sq.Eq{"status": domain.InvitationPending}).
		Where(sq.Or{
			sq.Eq{"invitee_id": userID},
			sq.Expr("LOWER(invitee_email) = ?", domain.NormalizeEmail(email)),
		}).
		OrderBy("created_at DESC"))
}

func (r *invitationRepository) list(ctx context.Context, builder sq.SelectBuilder) ([]*domain.Invitation, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Classify(fmt.Errorf("failed to list invitations: %w", err))
	}
	defer rows.Close()

	var invitations []*domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invitation: %w", err)
		}
		invitations = append(invitations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invitation rows: %w", err)
	}
	return invitations, nil
}

// TransitionStatus is a compare-and-set on status = 'pending', so two
// concurrent responses to one invitation cannot both succeed.
func (r *invitationRepository) TransitionStatus(ctx context.Context, id string, to domain.InvitationStatus, inviteeID *string) (bool, error) {
	ctx, span := tracing.StartServiceSpan(ctx, "InvitationRepository", "TransitionStatus")
	tracing.AddAttribute(ctx, "invitation_id", id)
	tracing.AddAttribute(ctx, "status", string(to))

	builder := psql.
		Update("invitations").
		Set("status", to).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id, "status": domain.InvitationPending})
	if inviteeID != nil {
		builder = builder.Set("invitee_id", *inviteeID)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		tracing.EndSpan(span, err)
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		err = database.Classify(fmt.Errorf("failed to update invitation status: %w", err))
		tracing.EndSpan(span, err)
		return false, err
	}
	n, err := result.RowsAffected()
	tracing.EndSpan(span, err)
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n > 0, nil
}

func (r *invitationRepository) Delete(ctx context.Context, id string) error {
	n, err := r.exec(ctx, psql.Delete("invitations").Where(sq.Eq{"id": id}), "failed to delete invitation")
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NewNotFound("invitation", id)
	}
	return nil
}

func (r *invitationRepository) DeleteForMember(ctx context.Context, workspaceID, userID, email string) (int64, error) {
	return r.exec(ctx, psql.
		Delete("invitations").
		Where(sq.Eq{"workspace_id": workspaceID}).
		Where(sq.Or{
			sq.Eq{"invitee_id": userID},
			sq.Expr("LOWER(invitee_email) = ?", domain.NormalizeEmail(email)),
		}), "failed to delete member invitations")
}

func (r *invitationRepository) DeletePendingForEmail(ctx context.Context, workspaceID, email string) (int64, error) {
	return r.exec(ctx, psql.
		Delete("invitations").
		Where(sq.Eq{"workspace_id": workspaceID, "status": domain.InvitationPending}).
		Where(sq.Expr("LOWER(invitee_email) = ?", domain.NormalizeEmail(email))),
		"failed to delete pending invitations")
}

func (r *invitationRepository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	return r.exec(ctx, psql.
		Update("invitations").
		Set("status", domain.InvitationExpired).
		Set("updated_at", now).
		Where(sq.Eq{"status": domain.InvitationPending}).
		Where(sq.LtOrEq{"expires_at": now}), "failed to expire invitations")
}

func (r *invitationRepository) PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	return r.exec(ctx, psql.
		Delete("invitations").
		Where(sq.Eq{"status": domain.InvitationExpired}).
		Where(sq.Lt{"expires_at": olderThan}), "failed to purge expired invitations")
}

func (r *invitationRepository) LinkInvitee(ctx context.Context, userID, email string) (int64, error) {
	return r.exec(ctx, psql.
		Update("invitations").
		Set("invitee_id", userID).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"status": domain.InvitationPending, "invitee_id": nil}).
		Where(sq.Expr("LOWER(invitee_email) = ?", domain.NormalizeEmail(email))),
		"failed to link invitee")
}

func (r *invitationRepository) exec(ctx context.Context, builder sq.Sqlizer, msg string) (int64, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, database.Classify(fmt.Errorf("%s: %w", msg, err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}
