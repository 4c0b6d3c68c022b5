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

// ISlotRepository defines available slot persistence operations.
type ISlotRepository interface {
	List(ctx context.Context, filters queryfilter.Filters) ([]*models.AvailableSlot, error)
	GetByID(ctx context.Context, id int64) (*models.AvailableSlot, error)
	Create(ctx context.Context, slot *models.AvailableSlot) (int64, error)
	Update(ctx context.Context, slot *models.AvailableSlot) error
	UpdateFields(ctx context.Context, id int64, changes map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// SlotRepository handles available slot database operations
type SlotRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSlotRepository creates a new SlotRepository
func NewSlotRepository(db *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var slotColumns = []string{
	"id", "writer_id", "package_id", "slot_date", "slot_time", "is_available", "booking_id",
}

func scanSlot(row pgx.Row) (*models.AvailableSlot, error) {
	slot := &models.AvailableSlot{}
	err := row.Scan(&slot.ID, &slot.WriterID, &slot.PackageID, &slot.Date,
		&slot.Time, &slot.IsAvailable, &slot.BookingID)
	if err != nil {
		return nil, err
	}
	return slot, nil
}

// List retrieves slots matching the filters, soonest first.
func (r *SlotRepository) List(ctx context.Context, filters queryfilter.Filters) ([]*models.AvailableSlot, error) {
	// Clients filter on "date"; the column avoids the bare word.
	if v, ok := filters["date"]; ok {
		delete(filters, "date")
		filters["slot_date"] = v
	}
	q := applyFilters(r.sb.Select(slotColumns...).From("available_slots"), filters).
		OrderBy("slot_date ASC", "id ASC")
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list slots query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list slots query")
		return nil, fmt.Errorf("error querying slots: %w", err)
	}
	defer rows.Close()

	slots := []*models.AvailableSlot{}
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning slot row: %w", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slot rows: %w", err)
	}
	return slots, nil
}

// GetByID retrieves a slot by id
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*models.AvailableSlot, error) {
	sql, args, err := r.sb.Select(slotColumns...).
		From("available_slots").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get slot query: %w", err)
	}

	slot, err := scanSlot(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error getting slot by id: %w", err)
	}
	return slot, nil
}

// Create inserts a new slot and returns its id.
func (r *SlotRepository) Create(ctx context.Context, slot *models.AvailableSlot) (int64, error) {
	sql, args, err := r.sb.Insert("available_slots").
		Columns("writer_id", "package_id", "slot_date", "slot_time", "is_available", "booking_id").
		Values(slot.WriterID, slot.PackageID, slot.Date.Time, slot.Time,
			slot.IsAvailable, slot.BookingID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create slot query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create slot query")
		return 0, fmt.Errorf("error creating slot: %w", err)
	}
	return id, nil
}

// Update overwrites every client-settable column of a slot.
func (r *SlotRepository) Update(ctx context.Context, slot *models.AvailableSlot) error {
	return r.UpdateFields(ctx, slot.ID, map[string]interface{}{
		"writer_id":    slot.WriterID,
		"package_id":   slot.PackageID,
		"slot_date":    slot.Date.Time,
		"slot_time":    slot.Time,
		"is_available": slot.IsAvailable,
		"booking_id":   slot.BookingID,
	})
}

// UpdateFields applies a partial update.
func (r *SlotRepository) UpdateFields(ctx context.Context, id int64, changes map[string]interface{}) error {
	if len(changes) == 0 {
		exists, err := existsByID(ctx, r.db, r.sb, "available_slots", id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return nil
	}

	sql, args, err := r.sb.Update("available_slots").SetMap(changes).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update slot query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("slotID", id).Msg("Error executing update slot query")
		return fmt.Errorf("error updating slot: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a slot
func (r *SlotRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("available_slots").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete slot query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting slot: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
