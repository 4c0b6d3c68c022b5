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
	"github.com/samialh/ketab/internal/pkg/logger"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

// ILessonRepository defines lesson persistence operations.
type ILessonRepository interface {
	List(ctx context.Context, filters queryfilter.Filters) ([]*models.Lesson, error)
	GetByID(ctx context.Context, id int64) (*models.Lesson, error)
	Create(ctx context.Context, lesson *models.Lesson) (int64, error)
	Update(ctx context.Context, lesson *models.Lesson) error
	UpdateFields(ctx context.Context, id int64, changes map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// LessonRepository handles lesson database operations
type LessonRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLessonRepository creates a new LessonRepository
func NewLessonRepository(db *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var lessonColumns = []string{
	"id", "course_id", "title", "description", "type", "video_url",
	"content", "is_free", "position", "duration",
}

func scanLesson(row pgx.Row) (*models.Lesson, error) {
	lesson := &models.Lesson{}
	err := row.Scan(&lesson.ID, &lesson.CourseID, &lesson.Title, &lesson.Description,
		&lesson.Type, &lesson.VideoURL, &lesson.Content, &lesson.IsFree,
		&lesson.Order, &lesson.Duration)
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

// List retrieves lessons matching the filters, ordered by position
// ascending within a course regardless of insertion order.
func (r *LessonRepository) List(ctx context.Context, filters queryfilter.Filters) ([]*models.Lesson, error) {
	q := applyFilters(r.sb.Select(lessonColumns...).From("lessons"), filters).
		OrderBy("position ASC", "id ASC")
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list lessons query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list lessons query")
		return nil, fmt.Errorf("error querying lessons: %w", err)
	}
	defer rows.Close()

	lessons := []*models.Lesson{}
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning lesson row: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lesson rows: %w", err)
	}
	return lessons, nil
}

// GetByID retrieves a lesson by id
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*models.Lesson, error) {
	sql, args, err := r.sb.Select(lessonColumns...).
		From("lessons").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get lesson query: %w", err)
	}

	lesson, err := scanLesson(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting lesson by id: %w", err)
	}
	return lesson, nil
}

// Create inserts a new lesson and returns its id.
func (r *LessonRepository) Create(ctx context.Context, lesson *models.Lesson) (int64, error) {
	sql, args, err := r.sb.Insert("lessons").
		Columns("course_id", "title", "description", "type", "video_url",
			"content", "is_free", "position", "duration").
		Values(lesson.CourseID, lesson.Title, lesson.Description, lesson.Type,
			lesson.VideoURL, lesson.Content, lesson.IsFree, lesson.Order, lesson.Duration).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create lesson query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create lesson query")
		return 0, fmt.Errorf("error creating lesson: %w", err)
	}
	return id, nil
}

// Update overwrites every client-settable column of an existing lesson.
func (r *LessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	return r.UpdateFields(ctx, lesson.ID, map[string]interface{}{
		"course_id":   lesson.CourseID,
		"title":       lesson.Title,
		"description": lesson.Description,
		"type":        lesson.Type,
		"video_url":   lesson.VideoURL,
		"content":     lesson.Content,
		"is_free":     lesson.IsFree,
		"position":    lesson.Order,
		"duration":    lesson.Duration,
	})
}

// UpdateFields applies a partial update.
func (r *LessonRepository) UpdateFields(ctx context.Context, id int64, changes map[string]interface{}) error {
	if len(changes) == 0 {
		exists, err := existsByID(ctx, r.db, r.sb, "lessons", id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return nil
	}

	sql, args, err := r.sb.Update("lessons").SetMap(changes).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update lesson query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("lessonID", id).Msg("Error executing update lesson query")
		return fmt.Errorf("error updating lesson: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a lesson
func (r *LessonRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("lessons").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete lesson query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting lesson: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
