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

// ICourseRepository defines course persistence operations.
type ICourseRepository interface {
	List(ctx context.Context, filters queryfilter.Filters) ([]*models.Course, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) (int64, error)
	Update(ctx context.Context, course *models.Course) error
	UpdateFields(ctx context.Context, id int64, changes map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var courseColumns = []string{
	"id", "title", "description", "image_url", "image_data", "image_mime",
	"instructor", "type", "price", "requirements", "category", "duration",
	"level", "published",
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	var imageData []byte
	var imageMime *string
	err := row.Scan(&course.ID, &course.Title, &course.Description, &course.ImageURL,
		&imageData, &imageMime, &course.Instructor, &course.Type, &course.Price,
		&course.Requirements, &course.Category, &course.Duration, &course.Level,
		&course.Published)
	if err != nil {
		return nil, err
	}
	mime := ""
	if imageMime != nil {
		mime = *imageMime
	}
	course.Image = imagedata.Load(imageData, mime)
	return course, nil
}

// List retrieves courses matching the given equality filters.
func (r *CourseRepository) List(ctx context.Context, filters queryfilter.Filters) ([]*models.Course, error) {
	q := applyFilters(r.sb.Select(courseColumns...).From("courses"), filters).OrderBy("id ASC")
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}

// GetByID retrieves a course by id
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by id: %w", err)
	}
	return course, nil
}

// Create inserts a new course and returns its id.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	builder := r.sb.Insert("courses").
		Columns("title", "description", "image_url", "image_data", "image_mime",
			"instructor", "type", "price", "requirements", "category", "duration",
			"level", "published").
		Values(course.Title, course.Description, course.ImageURL, imageBytes(course.Image),
			imageMime(course.Image), course.Instructor, course.Type, course.Price,
			course.Requirements, course.Category, course.Duration, course.Level,
			course.Published).
		Suffix("RETURNING id")

	sql, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create course query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create course query")
		return 0, fmt.Errorf("error creating course: %w", err)
	}
	return id, nil
}

// Update overwrites every client-settable column of an existing course.
// The image blob is only replaced when one is present on the model.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	setMap := map[string]interface{}{
		"title":        course.Title,
		"description":  course.Description,
		"image_url":    course.ImageURL,
		"instructor":   course.Instructor,
		"type":         course.Type,
		"price":        course.Price,
		"requirements": course.Requirements,
		"category":     course.Category,
		"duration":     course.Duration,
		"level":        course.Level,
		"published":    course.Published,
	}
	if course.Image != nil {
		setMap["image_data"] = course.Image.Data
		setMap["image_mime"] = course.Image.MimeType
	}
	return r.exec(ctx, r.sb.Update("courses").SetMap(setMap).Where(squirrel.Eq{"id": course.ID}))
}

// UpdateFields applies a partial update.
func (r *CourseRepository) UpdateFields(ctx context.Context, id int64, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return r.touch(ctx, id)
	}
	return r.exec(ctx, r.sb.Update("courses").SetMap(changes).Where(squirrel.Eq{"id": id}))
}

// Delete removes a course; lessons and subscriptions cascade in the
// schema.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Exists reports whether a course id is present.
func (r *CourseRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, r.sb, "courses", id)
}

// touch verifies the row exists when a PATCH supplies no fields.
func (r *CourseRepository) touch(ctx context.Context, id int64) error {
	exists, err := r.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) exec(ctx context.Context, builder squirrel.UpdateBuilder) error {
	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func imageBytes(img *imagedata.Image) []byte {
	if img == nil {
		return nil
	}
	return img.Data
}

func imageMime(img *imagedata.Image) *string {
	if img == nil {
		return nil
	}
	return &img.MimeType
}

func existsByID(ctx context.Context, db *pgxpool.Pool, sb squirrel.StatementBuilderType, table string, id int64) (bool, error) {
	sql, args, err := sb.Select("1").
		From(table).
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build existence query for %s: %w", table, err)
	}

	var exists bool
	err = db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("error checking existence in %s: %w", table, err)
	}
	return exists, nil
}
