package domain

import (
	"context"
	"log/slog"

	"github.com/Flarenzy/ipam-ledger/internal/cidrmath"
)

type loggingLedgerService struct {
	logger *slog.Logger
	next   LedgerService
}

func NewLoggingLedgerService(logger *slog.Logger, next LedgerService) LedgerService {
	if logger == nil || next == nil {
		return next
	}

	return &loggingLedgerService{
		logger: logger,
		next:   next,
	}
}

func (s *loggingLedgerService) ListNetworks(ctx context.Context) ([]Network, error) {
	networks, err := s.next.ListNetworks(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list networks failed", "err", err.Error())
	}
	return networks, err
}

func (s *loggingLedgerService) RegisterNetwork(ctx context.Context, input RegisterNetworkInput) (Network, error) {
	network, err := s.next.RegisterNetwork(ctx, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "register network failed", "cidr", input.CIDR, "err", err.Error())
		return Network{}, err
	}

	s.logger.InfoContext(ctx, "network registered", "id", network.ID, "cidr", network.Block.String())
	return network, nil
}

func (s *loggingLedgerService) GetNetwork(ctx context.Context, id int64) (Network, error) {
	network, err := s.next.GetNetwork(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "get network failed", "id", id, "err", err.Error())
	}
	return network, err
}

func (s *loggingLedgerService) DeleteNetwork(ctx context.Context, id int64) error {
	err := s.next.DeleteNetwork(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "delete network failed", "id", id, "err", err.Error())
		return err
	}

	s.logger.InfoContext(ctx, "network deleted", "id", id)
	return nil
}

func (s *loggingLedgerService) ListAllocations(ctx context.Context, networkID int64) ([]Allocation, error) {
	allocations, err := s.next.ListAllocations(ctx, networkID)
	if err != nil {
		s.logger.ErrorContext(ctx, "list allocations failed", "network_id", networkID, "err", err.Error())
	}
	return allocations, err
}

func (s *loggingLedgerService) Allocate(ctx context.Context, networkID int64, input AllocateInput) (Allocation, error) {
	allocation, err := s.next.Allocate(ctx, networkID, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "allocate failed", "network_id", networkID, "owner", input.Owner, "err", err.Error())
		return Allocation{}, err
	}

	s.logger.InfoContext(ctx, "block allocated",
		"network_id", networkID,
		"block", allocation.Block.String(),
		"owner", allocation.Owner,
		"kind", string(allocation.Kind),
	)
	return allocation, nil
}

func (s *loggingLedgerService) Release(ctx context.Context, networkID int64, block cidrmath.Block) error {
	err := s.next.Release(ctx, networkID, block)
	if err != nil {
		s.logger.ErrorContext(ctx, "release failed", "network_id", networkID, "block", block.String(), "err", err.Error())
		return err
	}

	s.logger.InfoContext(ctx, "block released", "network_id", networkID, "block", block.String())
	return nil
}

func (s *loggingLedgerService) ReleaseByID(ctx context.Context, networkID int64, id AllocationID) error {
	err := s.next.ReleaseByID(ctx, networkID, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "release by id failed", "network_id", networkID, "allocation_id", string(id), "err", err.Error())
		return err
	}

	s.logger.InfoContext(ctx, "block released", "network_id", networkID, "allocation_id", string(id))
	return nil
}

func (s *loggingLedgerService) Find(ctx context.Context, query FindQuery) ([]Allocation, error) {
	allocations, err := s.next.Find(ctx, query)
	if err != nil {
		s.logger.DebugContext(ctx, "find returned no result", "address", query.Address, "owner", query.Owner, "err", err.Error())
	}
	return allocations, err
}

func (s *loggingLedgerService) NetworkReport(ctx context.Context, networkID int64) (NetworkUtilization, error) {
	report, err := s.next.NetworkReport(ctx, networkID)
	if err != nil {
		s.logger.ErrorContext(ctx, "network report failed", "network_id", networkID, "err", err.Error())
	}
	return report, err
}

func (s *loggingLedgerService) Report(ctx context.Context) (UtilizationReport, error) {
	report, err := s.next.Report(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "report failed", "err", err.Error())
	}
	return report, err
}
