package orders

import (
	"context"
	"errors"

	"github.com/ariefcatur/nirmala-invitations/internal/catalog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo is the Postgres-backed Ledger. seq keeps insertion order.
type Repo struct{ DB *pgxpool.Pool }

const schema = `
CREATE TABLE IF NOT EXISTS invitation_orders (
	seq              BIGSERIAL PRIMARY KEY,
	id               TEXT NOT NULL UNIQUE,
	customer_name    TEXT NOT NULL,
	whatsapp         TEXT NOT NULL,
	email            TEXT NOT NULL,
	catalog_id       TEXT NOT NULL,
	channel          TEXT NOT NULL,
	quantity         BIGINT NOT NULL,
	shipping_address TEXT NOT NULL DEFAULT '',
	groom_parents    TEXT NOT NULL,
	bride_parents    TEXT NOT NULL,
	background_song  TEXT NOT NULL DEFAULT '',
	prewed_photo_ref TEXT NOT NULL DEFAULT '',
	event_date       TEXT NOT NULL,
	event_venue      TEXT NOT NULL,
	map_link         TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL,
	order_date       TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL
)`

const orderColumns = `id, customer_name, whatsapp, email, catalog_id, channel, quantity,
	shipping_address, groom_parents, bride_parents, background_song, prewed_photo_ref,
	event_date, event_venue, map_link, status, order_date, created_at`

func (r *Repo) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.Exec(ctx, schema)
	return err
}

func (r *Repo) Append(ctx context.Context, o Order) error {
	_, err := r.DB.Exec(ctx, `INSERT INTO invitation_orders(`+orderColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		o.ID, o.CustomerName, o.WhatsApp, o.Email, o.CatalogID, string(o.Channel), o.Quantity,
		o.ShippingAddress, o.GroomParents, o.BrideParents, o.BackgroundSong, o.PrewedPhotoRef,
		o.EventDate, o.EventVenue, o.MapLink, string(o.Status), o.OrderDate, o.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateID
	}
	return err
}

func (r *Repo) All(ctx context.Context) ([]Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+orderColumns+` FROM invitation_orders ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id string) (Order, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM invitation_orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	return o, err
}

// SetStatus: lock row (FOR UPDATE) -> cek transisi -> update.
func (r *Repo) SetStatus(ctx context.Context, id string, to Status) (Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o, err := scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM invitation_orders WHERE id=$1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	if !CanTransition(o.Status, to) {
		return Order{}, ErrInvalidTransition
	}
	if _, err := tx.Exec(ctx, `UPDATE invitation_orders SET status=$2 WHERE id=$1`, id, string(to)); err != nil {
		return Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}
	o.Status = to
	return o, nil
}

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o       Order
		channel string
		status  string
	)
	err := row.Scan(&o.ID, &o.CustomerName, &o.WhatsApp, &o.Email, &o.CatalogID, &channel, &o.Quantity,
		&o.ShippingAddress, &o.GroomParents, &o.BrideParents, &o.BackgroundSong, &o.PrewedPhotoRef,
		&o.EventDate, &o.EventVenue, &o.MapLink, &status, &o.OrderDate, &o.CreatedAt)
	if err != nil {
		return Order{}, err
	}
	o.Channel = catalog.Channel(channel)
	o.Status = Status(status)
	return o, nil
}
