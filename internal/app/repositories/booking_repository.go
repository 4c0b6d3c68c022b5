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

// IBookingRepository defines booking persistence operations.
type IBookingRepository interface {
	List(ctx context.Context, filters queryfilter.Filters) ([]*models.Booking, error)
	GetByID(ctx context.Context, id int64) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) (int64, error)
	Update(ctx context.Context, booking *models.Booking) error
	UpdateFields(ctx context.Context, id int64, changes map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// BookingRepository handles booking database operations
type BookingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var bookingColumns = []string{
	"id", "user_email", "user_name", "writer_id", "writer_name", "writer_email",
	"package_id", "sessions_count", "session_date", "status", "payment_status", "notes",
}

func scanBooking(row pgx.Row) (*models.Booking, error) {
	booking := &models.Booking{}
	err := row.Scan(&booking.ID, &booking.UserEmail, &booking.UserName,
		&booking.WriterID, &booking.WriterName, &booking.WriterEmail,
		&booking.PackageID, &booking.SessionsCount, &booking.SessionDate,
		&booking.Status, &booking.PaymentStatus, &booking.Notes)
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// List retrieves bookings matching the filters.
func (r *BookingRepository) List(ctx context.Context, filters queryfilter.Filters) ([]*models.Booking, error) {
	q := applyFilters(r.sb.Select(bookingColumns...).From("bookings"), filters).OrderBy("id ASC")
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list bookings query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list bookings query")
		return nil, fmt.Errorf("error querying bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*models.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating booking rows: %w", err)
	}
	return bookings, nil
}

// GetByID retrieves a booking by id
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	sql, args, err := r.sb.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get booking query: %w", err)
	}

	booking, err := scanBooking(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting booking by id: %w", err)
	}
	return booking, nil
}

// Create inserts a new booking and returns its id.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) (int64, error) {
	sql, args, err := r.sb.Insert("bookings").
		Columns("user_email", "user_name", "writer_id", "writer_name", "writer_email",
			"package_id", "sessions_count", "session_date", "status", "payment_status", "notes").
		Values(booking.UserEmail, booking.UserName, booking.WriterID, booking.WriterName,
			booking.WriterEmail, booking.PackageID, booking.SessionsCount,
			booking.SessionDate, booking.Status, booking.PaymentStatus, booking.Notes).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create booking query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create booking query")
		return 0, fmt.Errorf("error creating booking: %w", err)
	}
	return id, nil
}

// Update overwrites every client-settable column of a booking.
func (r *BookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return r.UpdateFields(ctx, booking.ID, map[string]interface{}{
		"user_email":     booking.UserEmail,
		"user_name":      booking.UserName,
		"writer_id":      booking.WriterID,
		"writer_name":    booking.WriterName,
		"writer_email":   booking.WriterEmail,
		"package_id":     booking.PackageID,
		"sessions_count": booking.SessionsCount,
		"session_date":   booking.SessionDate,
		"status":         booking.Status,
		"payment_status": booking.PaymentStatus,
		"notes":          booking.Notes,
	})
}

// UpdateFields applies a partial update.
func (r *BookingRepository) UpdateFields(ctx context.Context, id int64, changes map[string]interface{}) error {
	if len(changes) == 0 {
		exists, err := existsByID(ctx, r.db, r.sb, "bookings", id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return nil
	}

	sql, args, err := r.sb.Update("bookings").SetMap(changes).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update booking query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("bookingID", id).Msg("Error executing update booking query")
		return fmt.Errorf("error updating booking: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a booking. Slots referencing it keep their availability
// flag; the FK only nulls their booking_id.
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("bookings").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete booking query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting booking: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Exists reports whether a booking with the given id exists.
func (r *BookingRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return existsByID(ctx, r.db, r.sb, "bookings", id)
}
