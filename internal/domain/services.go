package domain

import (
	"context"

	"github.com/Flarenzy/ipam-ledger/internal/cidrmath"
)

type LedgerService interface {
	ListNetworks(ctx context.Context) ([]Network, error)
	RegisterNetwork(ctx context.Context, input RegisterNetworkInput) (Network, error)
	GetNetwork(ctx context.Context, id int64) (Network, error)
	DeleteNetwork(ctx context.Context, id int64) error
	ListAllocations(ctx context.Context, networkID int64) ([]Allocation, error)
	Allocate(ctx context.Context, networkID int64, input AllocateInput) (Allocation, error)
	Release(ctx context.Context, networkID int64, block cidrmath.Block) error
	ReleaseByID(ctx context.Context, networkID int64, id AllocationID) error
	Find(ctx context.Context, query FindQuery) ([]Allocation, error)
	NetworkReport(ctx context.Context, networkID int64) (NetworkUtilization, error)
	Report(ctx context.Context) (UtilizationReport, error)
}
