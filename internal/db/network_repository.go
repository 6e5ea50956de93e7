package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Flarenzy/ipam-ledger/internal/cidrmath"
	"github.com/Flarenzy/ipam-ledger/internal/domain"
	"github.com/jackc/pgx/v5"
)

type NetworkRepository struct {
	db DBTX
}

func NewNetworkRepository(db DBTX) *NetworkRepository {
	return &NetworkRepository{db: db}
}

func (r *NetworkRepository) List(ctx context.Context) ([]domain.Network, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, base, prefix, description, created_at
		FROM networks
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Network
	for rows.Next() {
		network, err := scanNetwork(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, network)
	}
	return out, rows.Err()
}

func (r *NetworkRepository) FindByID(ctx context.Context, id int64) (domain.Network, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, base, prefix, description, created_at
		FROM networks
		WHERE id = $1`, id)

	network, err := scanNetwork(row)
	if err != nil {
		if isNoRows(err) {
			return domain.Network{}, domain.ErrNetworkNotFound
		}
		return domain.Network{}, err
	}
	return network, nil
}

func (r *NetworkRepository) Create(ctx context.Context, record domain.CreateNetworkRecord) (domain.Network, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO networks (base, prefix, description)
		VALUES ($1, $2, $3)
		RETURNING id, base, prefix, description, created_at`,
		int64(record.Block.Base()), record.Block.Bits(), record.Description)

	return scanNetwork(row)
}

func (r *NetworkRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM networks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanNetwork(row pgx.Row) (domain.Network, error) {
	var (
		id          int64
		base        int64
		prefix      int
		description string
		createdAt   time.Time
	)
	if err := row.Scan(&id, &base, &prefix, &description, &createdAt); err != nil {
		return domain.Network{}, err
	}

	block, err := cidrmath.New(uint32(base), prefix)
	if err != nil {
		return domain.Network{}, fmt.Errorf("network row %d: %w", id, err)
	}
	return domain.Network{
		ID:          id,
		Block:       block,
		Description: description,
		CreatedAt:   createdAt,
	}, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
