package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/davcho16/flavor-trail/internal/domain/booking"
	"github.com/davcho16/flavor-trail/internal/domain/timeslot"
	"github.com/davcho16/flavor-trail/internal/domain/transaction"
)

type reservationRow struct {
	ID              string    `db:"reservation_id"`
	RestaurantID    string    `db:"restaurant_id"`
	UserName        string    `db:"user_name"`
	ReservationTime time.Time `db:"reservation_time"`
	PartySize       int       `db:"party_size"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// BookingRepository は予約と紐付けのPostgreSQL実装
// 予約時刻は timestamptz で保持し、読み出し時に正規化ゾーンへ変換する
type BookingRepository struct {
	db  *sqlx.DB
	loc *time.Location
}

func NewBookingRepository(db *sqlx.DB, loc *time.Location) *BookingRepository {
	return &BookingRepository{db: db, loc: loc}
}

func (r *BookingRepository) toEntity(row *reservationRow) *booking.Reservation {
	return &booking.Reservation{
		ID:           row.ID,
		RestaurantID: row.RestaurantID,
		UserName:     row.UserName,
		SlotTime:     timeslot.FromTime(row.ReservationTime.In(r.loc)),
		PartySize:    row.PartySize,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, tx transaction.Tx, res *booking.Reservation) error {
	sqlxTx := UnwrapTx(tx)

	query := `INSERT INTO reservations (user_name, reservation_time, party_size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5) RETURNING reservation_id`
	if err := sqlxTx.QueryRowContext(ctx, query,
		res.UserName, res.SlotTime.Time(), res.PartySize, res.CreatedAt, res.UpdatedAt,
	).Scan(&res.ID); err != nil {
		return fmt.Errorf("予約作成に失敗: %w", err)
	}

	if _, err := sqlxTx.ExecContext(ctx,
		`INSERT INTO restaurant_reservations (restaurant_id, reservation_id) VALUES ($1, $2)`,
		res.RestaurantID, res.ID,
	); err != nil {
		return fmt.Errorf("レストラン紐付け作成に失敗: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Reservation, error) {
	var row reservationRow
	query := `SELECT r.reservation_id, rr.restaurant_id, r.user_name, r.reservation_time, r.party_size, r.created_at, r.updated_at
		FROM reservations r
		JOIN restaurant_reservations rr ON r.reservation_id = rr.reservation_id
		WHERE r.reservation_id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrReservationNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	return r.toEntity(&row), nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userName, restaurantID string) ([]*booking.Reservation, error) {
	var rows []reservationRow
	query := `SELECT r.reservation_id, rr.restaurant_id, r.user_name, r.reservation_time, r.party_size, r.created_at, r.updated_at
		FROM reservations r
		JOIN restaurant_reservations rr ON r.reservation_id = rr.reservation_id
		WHERE r.user_name = $1 AND rr.restaurant_id = $2
		ORDER BY r.created_at`
	if err := r.db.SelectContext(ctx, &rows, query, userName, restaurantID); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	result := make([]*booking.Reservation, len(rows))
	for i := range rows {
		result[i] = r.toEntity(&rows[i])
	}
	return result, nil
}

func (r *BookingRepository) Update(ctx context.Context, tx transaction.Tx, res *booking.Reservation) error {
	sqlxTx := UnwrapTx(tx)

	query := `UPDATE reservations SET reservation_time = $1, party_size = $2, updated_at = $3 WHERE reservation_id = $4`
	result, err := sqlxTx.ExecContext(ctx, query, res.SlotTime.Time(), res.PartySize, res.UpdatedAt, res.ID)
	if err != nil {
		return fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return booking.ErrReservationNotFound
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, tx transaction.Tx, id string) error {
	sqlxTx := UnwrapTx(tx)

	// 紐付けと予約の両方を同一トランザクションで削除する
	if _, err := sqlxTx.ExecContext(ctx,
		`DELETE FROM restaurant_reservations WHERE reservation_id = $1`, id,
	); err != nil {
		return fmt.Errorf("レストラン紐付け削除に失敗: %w", err)
	}
	result, err := sqlxTx.ExecContext(ctx, `DELETE FROM reservations WHERE reservation_id = $1`, id)
	if err != nil {
		return fmt.Errorf("予約削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return booking.ErrReservationNotFound
	}
	return nil
}

func (r *BookingRepository) CountActive(ctx context.Context, restaurantID string, at timeslot.SlotTime) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, countActiveQuery, restaurantID, at.Time()); err != nil {
		return 0, fmt.Errorf("スロット予約数取得に失敗: %w", err)
	}
	return count, nil
}

func (r *BookingRepository) CountActiveTx(ctx context.Context, tx transaction.Tx, restaurantID string, at timeslot.SlotTime) (int, error) {
	sqlxTx := UnwrapTx(tx)

	var count int
	if err := sqlxTx.GetContext(ctx, &count, countActiveQuery, restaurantID, at.Time()); err != nil {
		return 0, fmt.Errorf("スロット予約数取得に失敗: %w", err)
	}
	return count, nil
}

const countActiveQuery = `SELECT COUNT(*)
	FROM reservations r
	JOIN restaurant_reservations rr ON r.reservation_id = rr.reservation_id
	WHERE rr.restaurant_id = $1 AND r.reservation_time = $2`

func (r *BookingRepository) CountUpcoming(ctx context.Context, from time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM reservations WHERE reservation_time >= $1`
	if err := r.db.GetContext(ctx, &count, query, from); err != nil {
		return 0, fmt.Errorf("予約総数取得に失敗: %w", err)
	}
	return count, nil
}

var _ booking.Repository = (*BookingRepository)(nil)
