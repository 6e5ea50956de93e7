package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Flarenzy/ipam-ledger/internal/cidrmath"
	"github.com/Flarenzy/ipam-ledger/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type AllocationRepository struct {
	db DBTX
}

func NewAllocationRepository(db DBTX) *AllocationRepository {
	return &AllocationRepository{db: db}
}

const allocationColumns = `id, network_id, base, prefix, owner, kind, description, created_at`

func (r *AllocationRepository) ListByNetworkID(ctx context.Context, networkID int64) ([]domain.Allocation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+allocationColumns+`
		FROM allocations
		WHERE network_id = $1
		ORDER BY base, prefix`, networkID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAllocations(rows)
}

func (r *AllocationRepository) FindByIDAndNetwork(ctx context.Context, id domain.AllocationID, networkID int64) (domain.Allocation, error) {
	parsedID, err := parseAllocationID(id)
	if err != nil {
		return domain.Allocation{}, fmt.Errorf("%w: invalid allocation id", domain.ErrInvalidInput)
	}

	row := r.db.QueryRow(ctx, `
		SELECT `+allocationColumns+`
		FROM allocations
		WHERE id = $1 AND network_id = $2`, parsedID, networkID)

	allocation, err := scanAllocation(row)
	if err != nil {
		if isNoRows(err) {
			return domain.Allocation{}, domain.ErrAllocationNotFound
		}
		return domain.Allocation{}, err
	}
	return allocation, nil
}

func (r *AllocationRepository) FindByAddress(ctx context.Context, addr uint32) ([]domain.Allocation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+allocationColumns+`
		FROM allocations
		WHERE base <= $1 AND $1 < base + (1::BIGINT << (32 - prefix))
		ORDER BY created_at DESC, id DESC`, int64(addr))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAllocations(rows)
}

func (r *AllocationRepository) FindByOwner(ctx context.Context, owner string) ([]domain.Allocation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+allocationColumns+`
		FROM allocations
		WHERE owner = $1
		ORDER BY created_at DESC, id DESC`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAllocations(rows)
}

func (r *AllocationRepository) Create(ctx context.Context, record domain.CreateAllocationRecord) (domain.Allocation, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO allocations (network_id, base, prefix, owner, kind, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+allocationColumns,
		record.NetworkID,
		int64(record.Block.Base()),
		record.Block.Bits(),
		record.Owner,
		string(record.Kind),
		record.Description)

	allocation, err := scanAllocation(row)
	if err != nil {
		if isUniqueBlockViolation(err) {
			// Backstop only; the service's free-space accounting should
			// never hand out a block twice.
			return domain.Allocation{}, fmt.Errorf("%w: block %s already recorded", domain.ErrOverlap, record.Block)
		}
		return domain.Allocation{}, err
	}
	return allocation, nil
}

func (r *AllocationRepository) DeleteByBlockAndNetwork(ctx context.Context, networkID int64, block cidrmath.Block) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM allocations
		WHERE network_id = $1 AND base = $2 AND prefix = $3`,
		networkID, int64(block.Base()), block.Bits())
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func collectAllocations(rows pgx.Rows) ([]domain.Allocation, error) {
	var out []domain.Allocation
	for rows.Next() {
		allocation, err := scanAllocation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, allocation)
	}
	return out, rows.Err()
}

func scanAllocation(row pgx.Row) (domain.Allocation, error) {
	var (
		id          pgtype.UUID
		networkID   int64
		base        int64
		prefix      int
		owner       string
		kind        string
		description string
		createdAt   time.Time
	)
	if err := row.Scan(&id, &networkID, &base, &prefix, &owner, &kind, &description, &createdAt); err != nil {
		return domain.Allocation{}, err
	}

	block, err := cidrmath.New(uint32(base), prefix)
	if err != nil {
		return domain.Allocation{}, fmt.Errorf("allocation row %s: %w", id.String(), err)
	}
	return domain.Allocation{
		ID:          domain.AllocationID(id.String()),
		NetworkID:   networkID,
		Block:       block,
		Owner:       owner,
		Kind:        domain.AllocationKind(kind),
		Description: description,
		CreatedAt:   createdAt,
	}, nil
}

func parseAllocationID(id domain.AllocationID) (pgtype.UUID, error) {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return pgtype.UUID{}, err
	}

	var parsed pgtype.UUID
	copy(parsed.Bytes[:], u[:])
	parsed.Valid = true

	return parsed, nil
}

func isUniqueBlockViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.ConstraintName == "unique_allocation_block"
}
