package domain

import (
	"context"

	"github.com/Flarenzy/ipam-ledger/internal/cidrmath"
)

type CreateNetworkRecord struct {
	Block       cidrmath.Block
	Description string
}

type CreateAllocationRecord struct {
	NetworkID   int64
	Block       cidrmath.Block
	Owner       string
	Kind        AllocationKind
	Description string
}

type NetworkRepository interface {
	List(ctx context.Context) ([]Network, error)
	FindByID(ctx context.Context, id int64) (Network, error)
	Create(ctx context.Context, record CreateNetworkRecord) (Network, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type AllocationRepository interface {
	ListByNetworkID(ctx context.Context, networkID int64) ([]Allocation, error)
	FindByIDAndNetwork(ctx context.Context, id AllocationID, networkID int64) (Allocation, error)
	FindByAddress(ctx context.Context, addr uint32) ([]Allocation, error)
	FindByOwner(ctx context.Context, owner string) ([]Allocation, error)
	Create(ctx context.Context, record CreateAllocationRecord) (Allocation, error)
	DeleteByBlockAndNetwork(ctx context.Context, networkID int64, block cidrmath.Block) (bool, error)
}
