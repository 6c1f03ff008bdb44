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

const versionNumberConstraint = "file_versions_number_key"

// appendVersionQuery numbers the new row from the current maximum in the same
// statement. Two concurrent appends can compute the same number; the unique
// constraint rejects the loser, which the caller retries.
const appendVersionQuery = `
	INSERT INTO file_versions (id, file_id, content, version_number, change_summary, created_by, created_at)
	SELECT $1::uuid, $2::uuid, $3::text, COALESCE(MAX(version_number), 0) + 1, $4::text, $5::varchar, $6::timestamptz
	FROM file_versions
	WHERE file_id = $2::uuid
	RETURNING version_number`

type fileVersionRepository struct {
	db *sql.DB
}

// NewFileVersionRepository creates a new PostgreSQL file version repository
func NewFileVersionRepository(db *sql.DB) domain.FileVersionRepository {
	return &fileVersionRepository{db: db}
}

var fileVersionColumns = []string{"id", "file_id", "content", "version_number", "change_summary", "created_by", "created_at"}

func scanFileVersion(row rowScanner) (*domain.FileVersion, error) {
	var v domain.FileVersion
	var summary sql.NullString
	if err := row.Scan(&v.ID, &v.FileID, &v.Content, &v.VersionNumber, &summary, &v.CreatedBy, &v.CreatedAt); err != nil {
		return nil, err
	}
	if summary.Valid {
		v.ChangeSummary = &summary.String
	}
	return &v, nil
}

// Append stores the version with the next number for its file and sets
// VersionNumber on success. A lost numbering race surfaces as *ErrConflict.
func (r *fileVersionRepository) Append(ctx context.Context, v *domain.FileVersion) (err error) {
	ctx, span := tracing.StartServiceSpan(ctx, "FileVersionRepository", "Append")
	defer func() { tracing.EndSpan(span, err) }()
	tracing.AddAttribute(ctx, "file_id", v.FileID)

	v.CreatedAt = time.Now().UTC()
	err = r.db.QueryRowContext(ctx, appendVersionQuery,
		v.ID, v.FileID, v.Content, v.ChangeSummary, v.CreatedBy, v.CreatedAt,
	).Scan(&v.VersionNumber)
	if err != nil {
		if database.IsUniqueViolation(err) && database.ConstraintName(err) == versionNumberConstraint {
			return &domain.ErrConflict{Entity: "file_version", Message: "version number already taken"}
		}
		return database.Classify(fmt.Errorf("failed to append file version: %w", err))
	}
	tracing.AddAttribute(ctx, "version_number", v.VersionNumber)
	return nil
}

func (r *fileVersionRepository) GetByID(ctx context.Context, id string) (*domain.FileVersion, error) {
	query, args, err := psql.Select(fileVersionColumns...).From("file_versions").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	v, err := scanFileVersion(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("file_version", id)
	}
	if err != nil {
		return nil, database.Classify(fmt.Errorf("failed to get file version: %w", err))
	}
	return v, nil
}

// ListByFile returns versions newest first
func (r *fileVersionRepository) ListByFile(ctx context.Context, fileID string) ([]*domain.FileVersion, error) {
	query, args, err := psql.
		Select(fileVersionColumns...).
		From("file_versions").
		Where(sq.Eq{"file_id": fileID}).
		OrderBy("version_number DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Classify(fmt.Errorf("failed to list file versions: %w", err))
	}
	defer rows.Close()

	var versions []*domain.FileVersion
	for rows.Next() {
		v, err := scanFileVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file version: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file version rows: %w", err)
	}
	return versions, nil
}

func (r *fileVersionRepository) DeleteByFile(ctx context.Context, fileID string) (int64, error) {
	query, args, err := psql.Delete("file_versions").Where(sq.Eq{"file_id": fileID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, database.Classify(fmt.Errorf("failed to delete file versions: %w", err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}
