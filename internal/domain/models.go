package domain

import (
	"time"

	"github.com/Flarenzy/ipam-ledger/internal/cidrmath"
)

type AllocationID string

type AllocationKind string

const (
	KindStatic  AllocationKind = "static"
	KindDynamic AllocationKind = "dynamic"
)

// Network is a registered root block. Allocations are carved out of its
// address space and never out of anything else.
type Network struct {
	ID          int64
	Block       cidrmath.Block
	Description string
	CreatedAt   time.Time
}

// Allocation is one block carved from its parent network. It holds a value
// copy of the block, not a reference into the network's free space.
type Allocation struct {
	ID          AllocationID
	NetworkID   int64
	Block       cidrmath.Block
	Owner       string
	Kind        AllocationKind
	Description string
	CreatedAt   time.Time
}

// NetworkUtilization is the per-network occupancy summary.
type NetworkUtilization struct {
	NetworkID          int64
	CIDR               string
	Description        string
	TotalAddresses     uint64
	UsableAddresses    uint64
	AllocatedAddresses uint64
	AllocationCount    int
	UtilizationPercent float64
	FreeBlockCount     int
	FreeAddresses      uint64
}

// UtilizationReport aggregates every network plus a consolidated free-space
// summary.
type UtilizationReport struct {
	Networks       []NetworkUtilization
	FreeBlockCount int
	FreeAddresses  uint64
}
