package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samialh/ketab/internal/app/models"
	"github.com/samialh/ketab/internal/pkg/apperrors"
	"github.com/samialh/ketab/internal/pkg/logger"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

// IPackageRepository defines mentorship package persistence operations.
type IPackageRepository interface {
	List(ctx context.Context, filters queryfilter.Filters) ([]*models.MentorshipPackage, error)
	GetByID(ctx context.Context, id int64) (*models.MentorshipPackage, error)
	Create(ctx context.Context, pkg *models.MentorshipPackage) (int64, error)
	Update(ctx context.Context, pkg *models.MentorshipPackage) error
	UpdateFields(ctx context.Context, id int64, changes map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// PackageRepository handles mentorship package database operations
type PackageRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPackageRepository creates a new PackageRepository
func NewPackageRepository(db *pgxpool.Pool) *PackageRepository {
	return &PackageRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var packageColumns = []string{
	"id", "writer_id", "writer_name", "name", "sessions_count", "price",
	"description", "session_duration", "benefits",
}

func scanPackage(row pgx.Row) (*models.MentorshipPackage, error) {
	pkg := &models.MentorshipPackage{}
	var benefits []byte
	err := row.Scan(&pkg.ID, &pkg.WriterID, &pkg.WriterName, &pkg.Name,
		&pkg.SessionsCount, &pkg.Price, &pkg.Description, &pkg.SessionDuration,
		&benefits)
	if err != nil {
		return nil, err
	}
	pkg.Benefits = []string{}
	if len(benefits) > 0 {
		if err := json.Unmarshal(benefits, &pkg.Benefits); err != nil {
			return nil, fmt.Errorf("error decoding package benefits: %w", err)
		}
	}
	return pkg, nil
}

// benefitsJSON encodes the benefits list for the jsonb column.
func benefitsJSON(benefits []string) ([]byte, error) {
	if benefits == nil {
		benefits = []string{}
	}
	data, err := json.Marshal(benefits)
	if err != nil {
		return nil, fmt.Errorf("error encoding package benefits: %w", err)
	}
	return data, nil
}

// List retrieves mentorship packages matching the filters.
func (r *PackageRepository) List(ctx context.Context, filters queryfilter.Filters) ([]*models.MentorshipPackage, error) {
	q := applyFilters(r.sb.Select(packageColumns...).From("mentorship_packages"), filters).OrderBy("id ASC")
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list packages query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list packages query")
		return nil, fmt.Errorf("error querying packages: %w", err)
	}
	defer rows.Close()

	pkgs := []*models.MentorshipPackage{}
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning package row: %w", err)
		}
		pkgs = append(pkgs, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating package rows: %w", err)
	}
	return pkgs, nil
}

// GetByID retrieves a mentorship package by id
func (r *PackageRepository) GetByID(ctx context.Context, id int64) (*models.MentorshipPackage, error) {
	sql, args, err := r.sb.Select(packageColumns...).
		From("mentorship_packages").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get package query: %w", err)
	}

	pkg, err := scanPackage(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting package by id: %w", err)
	}
	return pkg, nil
}

// Create inserts a new mentorship package and returns its id.
func (r *PackageRepository) Create(ctx context.Context, pkg *models.MentorshipPackage) (int64, error) {
	benefits, err := benefitsJSON(pkg.Benefits)
	if err != nil {
		return 0, err
	}

	sql, args, err := r.sb.Insert("mentorship_packages").
		Columns("writer_id", "writer_name", "name", "sessions_count", "price",
			"description", "session_duration", "benefits").
		Values(pkg.WriterID, pkg.WriterName, pkg.Name, pkg.SessionsCount,
			pkg.Price, pkg.Description, pkg.SessionDuration, benefits).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create package query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create package query")
		return 0, fmt.Errorf("error creating package: %w", err)
	}
	return id, nil
}

// Update overwrites every client-settable column of a package.
func (r *PackageRepository) Update(ctx context.Context, pkg *models.MentorshipPackage) error {
	benefits, err := benefitsJSON(pkg.Benefits)
	if err != nil {
		return err
	}
	return r.UpdateFields(ctx, pkg.ID, map[string]interface{}{
		"writer_id":        pkg.WriterID,
		"writer_name":      pkg.WriterName,
		"name":             pkg.Name,
		"sessions_count":   pkg.SessionsCount,
		"price":            pkg.Price,
		"description":      pkg.Description,
		"session_duration": pkg.SessionDuration,
		"benefits":         benefits,
	})
}

// UpdateFields applies a partial update.
func (r *PackageRepository) UpdateFields(ctx context.Context, id int64, changes map[string]interface{}) error {
	if len(changes) == 0 {
		exists, err := existsByID(ctx, r.db, r.sb, "mentorship_packages", id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return nil
	}

	sql, args, err := r.sb.Update("mentorship_packages").SetMap(changes).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update package query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("packageID", id).Msg("Error executing update package query")
		return fmt.Errorf("error updating package: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a mentorship package
func (r *PackageRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("mentorship_packages").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete package query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting package: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Exists reports whether a package with the given id exists.
func (r *PackageRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, r.sb, "mentorship_packages", id)
}
