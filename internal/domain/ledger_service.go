package domain

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Flarenzy/ipam-ledger/internal/alloc"
	"github.com/Flarenzy/ipam-ledger/internal/cidrmath"
)

// ledgerService owns all mutable allocation state. Mutations run under one
// write lock per instance: allocation correctness depends on read-then-write
// atomicity over the free-space set, and the operations are infrequent
// enough that coarse locking is the right trade-off. Reads share a read
// lock so they see consistent snapshots without blocking each other.
type ledgerService struct {
	mu          sync.RWMutex
	networks    NetworkRepository
	allocations AllocationRepository

	// free holds the owned free-space set per network, seeded at
	// registration or rebuilt from the ledger on first use after a
	// restart. Released blocks re-enter their set verbatim and are never
	// coalesced with adjacent free blocks.
	free map[int64]*alloc.FreeSet
}

func NewLedgerService(networks NetworkRepository, allocations AllocationRepository) LedgerService {
	return &ledgerService{
		networks:    networks,
		allocations: allocations,
		free:        make(map[int64]*alloc.FreeSet),
	}
}

func (s *ledgerService) ListNetworks(ctx context.Context) ([]Network, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.networks.List(ctx)
}

func (s *ledgerService) RegisterNetwork(ctx context.Context, input RegisterNetworkInput) (Network, error) {
	block, err := cidrmath.Parse(input.CIDR)
	if err != nil {
		return Network{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.networks.List(ctx)
	if err != nil {
		return Network{}, err
	}
	for _, other := range existing {
		if block.Overlaps(other.Block) {
			return Network{}, fmt.Errorf("%w: %s overlaps registered network %s", ErrOverlap, block, other.Block)
		}
	}

	network, err := s.networks.Create(ctx, CreateNetworkRecord{
		Block:       block,
		Description: input.Description,
	})
	if err != nil {
		return Network{}, err
	}

	s.free[network.ID] = alloc.New(network.Block)
	return network, nil
}

func (s *ledgerService) GetNetwork(ctx context.Context, id int64) (Network, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.networks.FindByID(ctx, id)
}

func (s *ledgerService) DeleteNetwork(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.networks.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNetworkNotFound
	}

	delete(s.free, id)
	return nil
}

func (s *ledgerService) ListAllocations(ctx context.Context, networkID int64) ([]Allocation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, err := s.networks.FindByID(ctx, networkID); err != nil {
		return nil, err
	}
	return s.allocations.ListByNetworkID(ctx, networkID)
}

func (s *ledgerService) Allocate(ctx context.Context, networkID int64, input AllocateInput) (Allocation, error) {
	if input.Owner == "" {
		return Allocation{}, fmt.Errorf("%w: owner is required", ErrInvalidInput)
	}
	if input.Kind != KindStatic && input.Kind != KindDynamic {
		return Allocation{}, fmt.Errorf("%w: unknown allocation kind %q", ErrInvalidInput, input.Kind)
	}
	bits, err := targetBits(input.Size)
	if err != nil {
		return Allocation{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	network, err := s.networks.FindByID(ctx, networkID)
	if err != nil {
		return Allocation{}, err
	}

	free, err := s.freeSetLocked(ctx, network)
	if err != nil {
		return Allocation{}, err
	}

	block, err := free.Take(bits)
	if err != nil {
		if errors.Is(err, alloc.ErrInsufficientSpace) {
			return Allocation{}, fmt.Errorf("%w: no free /%d in %s", ErrInsufficientSpace, bits, network.Block)
		}
		return Allocation{}, err
	}

	allocation, err := s.allocations.Create(ctx, CreateAllocationRecord{
		NetworkID:   networkID,
		Block:       block,
		Owner:       input.Owner,
		Kind:        input.Kind,
		Description: input.Description,
	})
	if err != nil {
		// Nothing was recorded; hand the block straight back.
		free.Release(block)
		return Allocation{}, err
	}

	return allocation, nil
}

func (s *ledgerService) Release(ctx context.Context, networkID int64, block cidrmath.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.releaseLocked(ctx, networkID, block)
}

func (s *ledgerService) ReleaseByID(ctx context.Context, networkID int64, id AllocationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	allocation, err := s.allocations.FindByIDAndNetwork(ctx, id, networkID)
	if err != nil {
		return err
	}
	return s.releaseLocked(ctx, networkID, allocation.Block)
}

// releaseLocked requires an exact base/prefix match with a recorded
// allocation; a containing or contained block is not released.
func (s *ledgerService) releaseLocked(ctx context.Context, networkID int64, block cidrmath.Block) error {
	if _, err := s.networks.FindByID(ctx, networkID); err != nil {
		return err
	}

	deleted, err := s.allocations.DeleteByBlockAndNetwork(ctx, networkID, block)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: %s", ErrAllocationNotFound, block)
	}

	if free, ok := s.free[networkID]; ok {
		free.Release(block)
	}
	return nil
}

func (s *ledgerService) Find(ctx context.Context, query FindQuery) ([]Allocation, error) {
	if (query.Address == "") == (query.Owner == "") {
		return nil, fmt.Errorf("%w: exactly one of address or owner must be set", ErrInvalidInput)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		matches []Allocation
		err     error
	)
	if query.Address != "" {
		block, parseErr := cidrmath.ParseLenient(query.Address)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, parseErr)
		}
		matches, err = s.allocations.FindByAddress(ctx, block.Base())
	} else {
		matches, err = s.allocations.FindByOwner(ctx, query.Owner)
	}
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, ErrAllocationNotFound
	}
	return matches, nil
}

func (s *ledgerService) NetworkReport(ctx context.Context, networkID int64) (NetworkUtilization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	network, err := s.networks.FindByID(ctx, networkID)
	if err != nil {
		return NetworkUtilization{}, err
	}
	return s.utilizationLocked(ctx, network)
}

func (s *ledgerService) Report(ctx context.Context) (UtilizationReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	networks, err := s.networks.List(ctx)
	if err != nil {
		return UtilizationReport{}, err
	}

	report := UtilizationReport{Networks: make([]NetworkUtilization, 0, len(networks))}
	for _, network := range networks {
		u, err := s.utilizationLocked(ctx, network)
		if err != nil {
			return UtilizationReport{}, err
		}
		report.Networks = append(report.Networks, u)
		report.FreeBlockCount += u.FreeBlockCount
		report.FreeAddresses += u.FreeAddresses
	}
	return report, nil
}

func (s *ledgerService) utilizationLocked(ctx context.Context, network Network) (NetworkUtilization, error) {
	allocations, err := s.allocations.ListByNetworkID(ctx, network.ID)
	if err != nil {
		return NetworkUtilization{}, err
	}

	u := NetworkUtilization{
		NetworkID:       network.ID,
		CIDR:            network.Block.String(),
		Description:     network.Description,
		TotalAddresses:  network.Block.Size(),
		UsableAddresses: network.Block.UsableHosts(),
		AllocationCount: len(allocations),
	}
	for _, a := range allocations {
		u.AllocatedAddresses += a.Block.UsableHosts()
	}
	if u.UsableAddresses > 0 {
		u.UtilizationPercent = float64(u.AllocatedAddresses) / float64(u.UsableAddresses) * 100
	}

	if free, ok := s.free[network.ID]; ok {
		u.FreeBlockCount = free.Len()
		u.FreeAddresses = free.FreeAddresses()
	} else {
		// Not warmed up yet; derive without mutating under the read lock.
		rebuilt := alloc.Rebuild(network.Block, allocationBlocks(allocations))
		u.FreeBlockCount = rebuilt.Len()
		u.FreeAddresses = rebuilt.FreeAddresses()
	}
	return u, nil
}

// freeSetLocked returns the network's owned free set, rebuilding it from
// the recorded allocations on first use after a restart. Callers must hold
// the write lock.
func (s *ledgerService) freeSetLocked(ctx context.Context, network Network) (*alloc.FreeSet, error) {
	if free, ok := s.free[network.ID]; ok {
		return free, nil
	}

	allocations, err := s.allocations.ListByNetworkID(ctx, network.ID)
	if err != nil {
		return nil, err
	}
	free := alloc.Rebuild(network.Block, allocationBlocks(allocations))
	s.free[network.ID] = free
	return free, nil
}

func targetBits(size SizeRequest) (int, error) {
	if size.byPrefix {
		if size.prefix < 0 || size.prefix > 32 {
			return 0, fmt.Errorf("%w: prefix length %d", ErrInvalidInput, size.prefix)
		}
		return size.prefix, nil
	}
	bits, err := cidrmath.RequiredPrefix(size.hostCount)
	if err != nil {
		return 0, fmt.Errorf("%w: %d hosts", ErrCapacityExceeded, size.hostCount)
	}
	return bits, nil
}

func allocationBlocks(allocations []Allocation) []cidrmath.Block {
	blocks := make([]cidrmath.Block, 0, len(allocations))
	for _, a := range allocations {
		blocks = append(blocks, a.Block)
	}
	return blocks
}
