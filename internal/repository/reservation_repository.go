package repository

import (
    "context"
    "database/sql"
    "fmt"
    "time"

    "github.com/iliyamo/restaurant-seat-reservation/internal/model"
)

// ReservationRepo stores reservations in the reservations table.  Seats
// are kept comma-joined in a single column, the way the device app saved
// them; the booked-seat index is never stored and is rebuilt from this
// table on startup.  ReservationRepo implements booking.Persister.  All
// timestamp fields are assumed to be stored in UTC.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo {
    if db == nil {
        panic("nil *sql.DB passed to NewReservationRepo")
    }
    return &ReservationRepo{db: db}
}

const (
    insertReservationSQL = `INSERT INTO reservations (seats, time_slot, name, phone, note, status) VALUES (?, ?, ?, ?, ?, ?)`
    selectTimestampsSQL  = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
    updateStatusSQL      = `UPDATE reservations SET status = ? WHERE id = ?`
    listReservationsSQL  = `SELECT id, seats, time_slot, name, phone, note, status, created_at, updated_at FROM reservations ORDER BY id`
)

// InsertReservation writes r and fills in the generated ID and the
// timestamps assigned by the database.  The insert and the timestamp
// read-back share one transaction, so a failed read leaves no row behind.
func (r *ReservationRepo) InsertReservation(ctx context.Context, res *model.Reservation) error {
    tx, err := r.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer func() { _ = tx.Rollback() }()

    result, err := tx.ExecContext(ctx, insertReservationSQL,
        model.JoinSeats(res.Seats), res.Time, res.Name, res.Phone, res.Note, res.Status)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    // Query back the timestamps so the caller sees the stored values
    var created, updated time.Time
    if err := tx.QueryRowContext(ctx, selectTimestampsSQL, uint64(id)).Scan(&created, &updated); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return err
    }
    res.ID = uint64(id)
    res.CreatedAt, res.UpdatedAt = created, updated
    return nil
}

// UpdateReservationStatus sets the status of reservation id.  It returns
// ErrNotFound when no row matched.
func (r *ReservationRepo) UpdateReservationStatus(ctx context.Context, id uint64, status string) error {
    result, err := r.db.ExecContext(ctx, updateStatusSQL, status, id)
    if err != nil {
        return err
    }
    n, err := result.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return fmt.Errorf("reservation %d: %w", id, ErrNotFound)
    }
    return nil
}

// ListReservations returns every reservation, canceled ones included,
// in insertion order.
func (r *ReservationRepo) ListReservations(ctx context.Context) ([]model.Reservation, error) {
    rows, err := r.db.QueryContext(ctx, listReservationsSQL)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var out []model.Reservation
    for rows.Next() {
        var (
            res   model.Reservation
            seats string
            note  sql.NullString
        )
        if err := rows.Scan(&res.ID, &seats, &res.Time, &res.Name, &res.Phone, &note, &res.Status, &res.CreatedAt, &res.UpdatedAt); err != nil {
            return nil, err
        }
        res.Seats = model.SplitSeats(seats)
        res.Note = note.String
        out = append(out, res)
    }
    return out, rows.Err()
}
