package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samialh/ketab/internal/app/models"
	"github.com/samialh/ketab/internal/pkg/apperrors"
	"github.com/samialh/ketab/internal/pkg/logger"
	"github.com/samialh/ketab/internal/pkg/queryfilter"
)

// ISubscriptionRepository defines subscription persistence operations.
type ISubscriptionRepository interface {
	List(ctx context.Context, filters queryfilter.Filters) ([]*models.Subscription, error)
	GetByID(ctx context.Context, id int64) (*models.Subscription, error)
	Create(ctx context.Context, sub *models.Subscription) (int64, error)
	Update(ctx context.Context, sub *models.Subscription) error
	UpdateFields(ctx context.Context, id int64, changes map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// SubscriptionRepository handles subscription database operations
type SubscriptionRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubscriptionRepository creates a new SubscriptionRepository
func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var subscriptionColumns = []string{
	"id", "user_email", "course_id", "course_title", "payment_status",
	"payment_amount", "payment_date", "expiry_date",
}

func scanSubscription(row pgx.Row) (*models.Subscription, error) {
	sub := &models.Subscription{}
	var paymentDate, expiryDate *time.Time
	err := row.Scan(&sub.ID, &sub.UserEmail, &sub.CourseID, &sub.CourseTitle,
		&sub.PaymentStatus, &sub.PaymentAmount, &paymentDate, &expiryDate)
	if err != nil {
		return nil, err
	}
	sub.PaymentDate = toDate(paymentDate)
	sub.ExpiryDate = toDate(expiryDate)
	return sub, nil
}

// toDate converts a nullable scanned timestamp to a calendar date.
func toDate(t *time.Time) *models.Date {
	if t == nil {
		return nil
	}
	return &models.Date{Time: *t}
}

// List retrieves subscriptions matching the filters.
func (r *SubscriptionRepository) List(ctx context.Context, filters queryfilter.Filters) ([]*models.Subscription, error) {
	q := applyFilters(r.sb.Select(subscriptionColumns...).From("subscriptions"), filters).OrderBy("id ASC")
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list subscriptions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list subscriptions query")
		return nil, fmt.Errorf("error querying subscriptions: %w", err)
	}
	defer rows.Close()

	subs := []*models.Subscription{}
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning subscription row: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscription rows: %w", err)
	}
	return subs, nil
}

// GetByID retrieves a subscription by id
func (r *SubscriptionRepository) GetByID(ctx context.Context, id int64) (*models.Subscription, error) {
	sql, args, err := r.sb.Select(subscriptionColumns...).
		From("subscriptions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get subscription query: %w", err)
	}

	sub, err := scanSubscription(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting subscription by id: %w", err)
	}
	return sub, nil
}

// Create inserts a new subscription and returns its id.
func (r *SubscriptionRepository) Create(ctx context.Context, sub *models.Subscription) (int64, error) {
	sql, args, err := r.sb.Insert("subscriptions").
		Columns("user_email", "course_id", "course_title", "payment_status",
			"payment_amount", "payment_date", "expiry_date").
		Values(sub.UserEmail, sub.CourseID, sub.CourseTitle, sub.PaymentStatus,
			sub.PaymentAmount, dateValue(sub.PaymentDate), dateValue(sub.ExpiryDate)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create subscription query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create subscription query")
		return 0, fmt.Errorf("error creating subscription: %w", err)
	}
	return id, nil
}

// dateValue unwraps a nullable date for SQL parameters.
func dateValue(d *models.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.Time
}

// Update overwrites every client-settable column of a subscription.
func (r *SubscriptionRepository) Update(ctx context.Context, sub *models.Subscription) error {
	return r.UpdateFields(ctx, sub.ID, map[string]interface{}{
		"user_email":     sub.UserEmail,
		"course_id":      sub.CourseID,
		"course_title":   sub.CourseTitle,
		"payment_status": sub.PaymentStatus,
		"payment_amount": sub.PaymentAmount,
		"payment_date":   dateValue(sub.PaymentDate),
		"expiry_date":    dateValue(sub.ExpiryDate),
	})
}

// UpdateFields applies a partial update.
func (r *SubscriptionRepository) UpdateFields(ctx context.Context, id int64, changes map[string]interface{}) error {
	if len(changes) == 0 {
		exists, err := existsByID(ctx, r.db, r.sb, "subscriptions", id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return nil
	}

	sql, args, err := r.sb.Update("subscriptions").SetMap(changes).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update subscription query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("subscriptionID", id).Msg("Error executing update subscription query")
		return fmt.Errorf("error updating subscription: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a subscription
func (r *SubscriptionRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("subscriptions").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete subscription query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting subscription: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
