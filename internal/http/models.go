package http

import (
	"fmt"
	"time"

	"github.com/Flarenzy/ipam-ledger/internal/domain"
)

// NetworkResponse is a simplified view returned to clients and used in Swagger.
type NetworkResponse struct {
	ID          int64     `json:"id" example:"1"`
	CIDR        string    `json:"cidr" example:"10.0.0.0/24"`
	Description string    `json:"description" example:"Office network"`
	CreatedAt   time.Time `json:"created_at" example:"2024-05-10T15:04:05Z"`
}

// RegisterNetworkRequest is the payload accepted when registering a network.
type RegisterNetworkRequest struct {
	CIDR        string `json:"cidr" example:"10.0.0.0/24" validate:"required"`
	Description string `json:"description" example:"Office network"`
}

// AllocationResponse is a simplified view returned to clients and used in Swagger.
type AllocationResponse struct {
	ID          string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	NetworkID   int64     `json:"network_id" example:"1"`
	CIDR        string    `json:"cidr" example:"10.0.0.0/25"`
	Owner       string    `json:"owner" example:"web-frontend"`
	Kind        string    `json:"kind" example:"static" enums:"static,dynamic"`
	Description string    `json:"description" example:"frontend pool"`
	CreatedAt   time.Time `json:"created_at" example:"2024-05-10T15:04:05Z"`
}

// CreateAllocationRequest is the payload accepted when carving a block.
// Exactly one of host_count and prefix must be set.
type CreateAllocationRequest struct {
	Owner       string  `json:"owner" example:"web-frontend" validate:"required"`
	Kind        string  `json:"kind" example:"static" enums:"static,dynamic"`
	HostCount   *uint32 `json:"host_count,omitempty" example:"100"`
	Prefix      *int    `json:"prefix,omitempty" example:"25"`
	Description string  `json:"description" example:"frontend pool"`
}

// FindResponse carries every allocation matching a lookup; ambiguity is
// surfaced through the count rather than silently resolved.
type FindResponse struct {
	Count       int                  `json:"count" example:"1"`
	Allocations []AllocationResponse `json:"allocations"`
}

// NetworkReportResponse is the per-network utilization summary.
type NetworkReportResponse struct {
	NetworkID          int64   `json:"network_id" example:"1"`
	CIDR               string  `json:"cidr" example:"10.0.0.0/24"`
	Description        string  `json:"description" example:"Office network"`
	TotalAddresses     uint64  `json:"total_addresses" example:"256"`
	UsableAddresses    uint64  `json:"usable_addresses" example:"254"`
	AllocatedAddresses uint64  `json:"allocated_addresses" example:"188"`
	AllocationCount    int     `json:"allocation_count" example:"2"`
	UtilizationPercent float64 `json:"utilization_percent" example:"74.01"`
	FreeBlockCount     int     `json:"free_block_count" example:"1"`
	FreeAddresses      uint64  `json:"free_addresses" example:"64"`
}

// ReportResponse is the whole-ledger utilization table plus the
// consolidated free-space summary.
type ReportResponse struct {
	Networks       []NetworkReportResponse `json:"networks"`
	FreeBlockCount int                     `json:"free_block_count" example:"3"`
	FreeAddresses  uint64                  `json:"free_addresses" example:"192"`
}

// ErrorResponse is a simple envelope for error messages.
type ErrorResponse struct {
	Error string `json:"error" example:"network not found"`
}

func networkToResponse(n domain.Network) NetworkResponse {
	return NetworkResponse{
		ID:          n.ID,
		CIDR:        n.Block.String(),
		Description: n.Description,
		CreatedAt:   n.CreatedAt,
	}
}

func networksToResponse(networks []domain.Network) []NetworkResponse {
	out := make([]NetworkResponse, 0, len(networks))
	for _, n := range networks {
		out = append(out, networkToResponse(n))
	}
	return out
}

func allocationToResponse(a domain.Allocation) AllocationResponse {
	return AllocationResponse{
		ID:          string(a.ID),
		NetworkID:   a.NetworkID,
		CIDR:        a.Block.String(),
		Owner:       a.Owner,
		Kind:        string(a.Kind),
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
}

func allocationsToResponse(allocations []domain.Allocation) []AllocationResponse {
	out := make([]AllocationResponse, 0, len(allocations))
	for _, a := range allocations {
		out = append(out, allocationToResponse(a))
	}
	return out
}

func networkReportToResponse(u domain.NetworkUtilization) NetworkReportResponse {
	return NetworkReportResponse{
		NetworkID:          u.NetworkID,
		CIDR:               u.CIDR,
		Description:        u.Description,
		TotalAddresses:     u.TotalAddresses,
		UsableAddresses:    u.UsableAddresses,
		AllocatedAddresses: u.AllocatedAddresses,
		AllocationCount:    u.AllocationCount,
		UtilizationPercent: u.UtilizationPercent,
		FreeBlockCount:     u.FreeBlockCount,
		FreeAddresses:      u.FreeAddresses,
	}
}

func reportToResponse(r domain.UtilizationReport) ReportResponse {
	networks := make([]NetworkReportResponse, 0, len(r.Networks))
	for _, u := range r.Networks {
		networks = append(networks, networkReportToResponse(u))
	}
	return ReportResponse{
		Networks:       networks,
		FreeBlockCount: r.FreeBlockCount,
		FreeAddresses:  r.FreeAddresses,
	}
}

func (r CreateAllocationRequest) toInput() (domain.AllocateInput, error) {
	if (r.HostCount == nil) == (r.Prefix == nil) {
		return domain.AllocateInput{}, fmt.Errorf("exactly one of host_count and prefix must be set")
	}

	var size domain.SizeRequest
	if r.HostCount != nil {
		size = domain.HostCountSize(*r.HostCount)
	} else {
		size = domain.PrefixSize(*r.Prefix)
	}

	return domain.AllocateInput{
		Owner:       r.Owner,
		Kind:        domain.AllocationKind(r.Kind),
		Size:        size,
		Description: r.Description,
	}, nil
}
