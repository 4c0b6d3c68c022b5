package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samialh/ketab/internal/app/models"
	"github.com/samialh/ketab/internal/pkg/apperrors"
	"github.com/samialh/ketab/internal/pkg/imagedata"
	"github.com/samialh/ketab/internal/pkg/logger"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

// IWriterRepository defines writer profile persistence operations.
type IWriterRepository interface {
	List(ctx context.Context, filters queryfilter.Filters) ([]*models.Writer, error)
	GetByID(ctx context.Context, id int64) (*models.Writer, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Writer, error)
	ExistsForUser(ctx context.Context, userID int64) (bool, error)
	Create(ctx context.Context, writer *models.Writer) (int64, error)
	Update(ctx context.Context, writer *models.Writer) error
	UpdateFields(ctx context.Context, id int64, changes map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// WriterRepository handles writer profile database operations
type WriterRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewWriterRepository creates a new WriterRepository
func NewWriterRepository(db *pgxpool.Pool) *WriterRepository {
	return &WriterRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var writerColumns = []string{
	"id", "user_id", "name", "bio", "image_url", "image_data", "image_mime",
	"specialty", "email", "experience", "achievements", "active",
}

func scanWriter(row pgx.Row) (*models.Writer, error) {
	writer := &models.Writer{}
	var imgData []byte
	var imgMime *string
	err := row.Scan(&writer.ID, &writer.UserID, &writer.Name, &writer.Bio,
		&writer.ImageURL, &imgData, &imgMime, &writer.Specialty, &writer.Email,
		&writer.Experience, &writer.Achievements, &writer.Active)
	if err != nil {
		return nil, err
	}
	if len(imgData) > 0 {
		mime := ""
		if imgMime != nil {
			mime = *imgMime
		}
		writer.Image = imagedata.Load(imgData, mime)
	}
	return writer, nil
}

// List retrieves writer profiles matching the filters.
func (r *WriterRepository) List(ctx context.Context, filters queryfilter.Filters) ([]*models.Writer, error) {
	q := applyFilters(r.sb.Select(writerColumns...).From("writers"), filters).OrderBy("id ASC")
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list writers query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list writers query")
		return nil, fmt.Errorf("error querying writers: %w", err)
	}
	defer rows.Close()

	writers := []*models.Writer{}
	for rows.Next() {
		writer, err := scanWriter(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning writer row: %w", err)
		}
		writers = append(writers, writer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating writer rows: %w", err)
	}
	return writers, nil
}

// GetByID retrieves a writer profile by id
func (r *WriterRepository) GetByID(ctx context.Context, id int64) (*models.Writer, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUserID retrieves the writer profile bound to an account.
func (r *WriterRepository) GetByUserID(ctx context.Context, userID int64) (*models.Writer, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID})
}

func (r *WriterRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.Writer, error) {
	sql, args, err := r.sb.Select(writerColumns...).
		From("writers").
		Where(pred).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get writer query: %w", err)
	}

	writer, err := scanWriter(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting writer: %w", err)
	}
	return writer, nil
}

// ExistsForUser reports whether an account already has a writer profile.
func (r *WriterRepository) ExistsForUser(ctx context.Context, userID int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("writers").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build writer exists query: %w", err)
	}

	var one int
	err = r.db.QueryRow(ctx, sql, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("error checking writer profile existence: %w", err)
	}
	return true, nil
}

// Create inserts a new writer profile and returns its id.
func (r *WriterRepository) Create(ctx context.Context, writer *models.Writer) (int64, error) {
	sql, args, err := r.sb.Insert("writers").
		Columns("user_id", "name", "bio", "image_url", "image_data", "image_mime",
			"specialty", "email", "experience", "achievements", "active").
		Values(writer.UserID, writer.Name, writer.Bio, writer.ImageURL,
			imageBytes(writer.Image), imageMime(writer.Image), writer.Specialty,
			writer.Email, writer.Experience, writer.Achievements, writer.Active).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create writer query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create writer query")
		return 0, fmt.Errorf("error creating writer: %w", err)
	}
	return id, nil
}

// Update overwrites every client-settable column of a writer profile. The
// stored image blob is only replaced when a new one was uploaded.
func (r *WriterRepository) Update(ctx context.Context, writer *models.Writer) error {
	changes := map[string]interface{}{
		"name":         writer.Name,
		"bio":          writer.Bio,
		"image_url":    writer.ImageURL,
		"specialty":    writer.Specialty,
		"email":        writer.Email,
		"experience":   writer.Experience,
		"achievements": writer.Achievements,
		"active":       writer.Active,
	}
	if writer.Image != nil {
		changes["image_data"] = writer.Image.Data
		changes["image_mime"] = writer.Image.MimeType
	}
	return r.UpdateFields(ctx, writer.ID, changes)
}

// UpdateFields applies a partial update.
func (r *WriterRepository) UpdateFields(ctx context.Context, id int64, changes map[string]interface{}) error {
	if len(changes) == 0 {
		exists, err := existsByID(ctx, r.db, r.sb, "writers", id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return nil
	}

	sql, args, err := r.sb.Update("writers").SetMap(changes).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update writer query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("writerID", id).Msg("Error executing update writer query")
		return fmt.Errorf("error updating writer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a writer profile
func (r *WriterRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("writers").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete writer query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting writer: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Exists reports whether a writer with the given id exists.
func (r *WriterRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, r.sb, "writers", id)
}
