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
)

type fileRepository struct {
	db *sql.DB
}

// NewFileRepository creates a new PostgreSQL file repository
func NewFileRepository(db *sql.DB) domain.FileRepository {
	return &fileRepository{db: db}
}

var fileColumns = []string{"id", "workspace_id", "filename", "content", "file_type", "created_by", "created_at", "updated_at"}

func scanFile(row rowScanner) (*domain.File, error) {
	var f domain.File
	if err := row.Scan(&f.ID, &f.WorkspaceID, &f.Filename, &f.Content, &f.FileType, &f.CreatedBy, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fileRepository) Create(ctx context.Context, file *domain.File) error {
	now := time.Now().UTC()
	file.CreatedAt = now
	file.UpdatedAt = now

	query, args, err := psql.
		Insert("files").
		Columns(fileColumns...).
		Values(file.ID, file.WorkspaceID, file.Filename, file.Content, file.FileType, file.CreatedBy, now, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if database.IsUniqueViolation(err) {
			return &domain.ErrConflict{Entity: "file", Message: "file already exists"}
		}
		return database.Classify(fmt.Errorf("failed to create file: %w", err))
	}
	return nil
}

func (r *fileRepository) GetByID(ctx context.Context, id string) (*domain.File, error) {
	query, args, err := psql.Select(fileColumns...).From("files").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return r.one(ctx, id, "failed to get file", query, args)
}

func (r *fileRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]*domain.File, error) {
	query, args, err := psql.
		Select(fileColumns...).
		From("files").
		Where(sq.Eq{"workspace_id": workspaceID}).
		OrderBy("filename ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, database.Classify(fmt.Errorf("failed to list files: %w", err))
	}
	defer rows.Close()

	var files []*domain.File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file rows: %w", err)
	}
	return files, nil
}

// UpdateContent overwrites the live content and returns the updated row
func (r *fileRepository) UpdateContent(ctx context.Context, id, content string) (*domain.File, error) {
	query, args, err := psql.
		Update("files").
		Set("content", content).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(fileColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return r.one(ctx, id, "failed to update file content", query, args)
}

func (r *fileRepository) Rename(ctx context.Context, id, filename string) (*domain.File, error) {
	query, args, err := psql.
		Update("files").
		Set("filename", filename).
		Set("file_type", domain.FileTypeFromName(filename)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(fileColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	return r.one(ctx, id, "failed to rename file", query, args)
}

// Delete removes the file together with its versions
func (r *fileRepository) Delete(ctx context.Context, id string) error {
	return database.WithTx(ctx, r.db, nil, func(ctx context.Context, tx database.DBTX) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM file_versions WHERE file_id = $1", id); err != nil {
			return database.Classify(fmt.Errorf("failed to delete file versions: %w", err))
		}
		result, err := tx.ExecContext(ctx, "DELETE FROM files WHERE id = $1", id)
		if err != nil {
			return database.Classify(fmt.Errorf("failed to delete file: %w", err))
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if n == 0 {
			return domain.NewNotFound("file", id)
		}
		return nil
	})
}

func (r *fileRepository) one(ctx context.Context, id, msg, query string, args []interface{}) (*domain.File, error) {
	f, err := scanFile(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("file", id)
	}
	if err != nil {
		return nil, database.Classify(fmt.Errorf("%s: %w", msg, err))
	}
	return f, nil
}
