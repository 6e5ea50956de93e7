package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Flarenzy/ipam-ledger/internal/cidrmath"
	"github.com/Flarenzy/ipam-ledger/internal/domain"
)

type stubHealthChecker struct {
	err error
}

func (s stubHealthChecker) Ping(context.Context) error {
	return s.err
}

type stubService struct {
	listNetworksFn    func(context.Context) ([]domain.Network, error)
	registerNetworkFn func(context.Context, domain.RegisterNetworkInput) (domain.Network, error)
	getNetworkFn      func(context.Context, int64) (domain.Network, error)
	deleteNetworkFn   func(context.Context, int64) error
	listAllocationsFn func(context.Context, int64) ([]domain.Allocation, error)
	allocateFn        func(context.Context, int64, domain.AllocateInput) (domain.Allocation, error)
	releaseFn         func(context.Context, int64, cidrmath.Block) error
	releaseByIDFn     func(context.Context, int64, domain.AllocationID) error
	findFn            func(context.Context, domain.FindQuery) ([]domain.Allocation, error)
	networkReportFn   func(context.Context, int64) (domain.NetworkUtilization, error)
	reportFn          func(context.Context) (domain.UtilizationReport, error)
}

func (s stubService) ListNetworks(ctx context.Context) ([]domain.Network, error) {
	if s.listNetworksFn == nil {
		return nil, nil
	}
	return s.listNetworksFn(ctx)
}

func (s stubService) RegisterNetwork(ctx context.Context, input domain.RegisterNetworkInput) (domain.Network, error) {
	if s.registerNetworkFn == nil {
		return domain.Network{}, nil
	}
	return s.registerNetworkFn(ctx, input)
}

func (s stubService) GetNetwork(ctx context.Context, id int64) (domain.Network, error) {
	if s.getNetworkFn == nil {
		return domain.Network{}, nil
	}
	return s.getNetworkFn(ctx, id)
}

func (s stubService) DeleteNetwork(ctx context.Context, id int64) error {
	if s.deleteNetworkFn == nil {
		return nil
	}
	return s.deleteNetworkFn(ctx, id)
}

func (s stubService) ListAllocations(ctx context.Context, networkID int64) ([]domain.Allocation, error) {
	if s.listAllocationsFn == nil {
		return nil, nil
	}
	return s.listAllocationsFn(ctx, networkID)
}

func (s stubService) Allocate(ctx context.Context, networkID int64, input domain.AllocateInput) (domain.Allocation, error) {
	if s.allocateFn == nil {
		return domain.Allocation{}, nil
	}
	return s.allocateFn(ctx, networkID, input)
}

func (s stubService) Release(ctx context.Context, networkID int64, block cidrmath.Block) error {
	if s.releaseFn == nil {
		return nil
	}
	return s.releaseFn(ctx, networkID, block)
}

func (s stubService) ReleaseByID(ctx context.Context, networkID int64, id domain.AllocationID) error {
	if s.releaseByIDFn == nil {
		return nil
	}
	return s.releaseByIDFn(ctx, networkID, id)
}

func (s stubService) Find(ctx context.Context, query domain.FindQuery) ([]domain.Allocation, error) {
	if s.findFn == nil {
		return nil, nil
	}
	return s.findFn(ctx, query)
}

func (s stubService) NetworkReport(ctx context.Context, networkID int64) (domain.NetworkUtilization, error) {
	if s.networkReportFn == nil {
		return domain.NetworkUtilization{}, nil
	}
	return s.networkReportFn(ctx, networkID)
}

func (s stubService) Report(ctx context.Context) (domain.UtilizationReport, error) {
	if s.reportFn == nil {
		return domain.UtilizationReport{}, nil
	}
	return s.reportFn(ctx)
}

func newHandlerTestAPI(service domain.LedgerService, healthErr error) *API {
	return NewAPI(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		stubHealthChecker{err: healthErr},
		service,
		nil,
	)
}

func mustBlock(t *testing.T, s string) cidrmath.Block {
	t.Helper()
	b, err := cidrmath.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return b
}

func TestHealthzReturnsOK(t *testing.T) {
	api := newHandlerTestAPI(stubService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestReadyzReturnsServiceUnavailableWhenHealthCheckFails(t *testing.T) {
	api := newHandlerTestAPI(stubService{}, context.Canceled)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
}

func TestRegisterNetworkReturnsCreated(t *testing.T) {
	api := newHandlerTestAPI(stubService{
		registerNetworkFn: func(_ context.Context, input domain.RegisterNetworkInput) (domain.Network, error) {
			b, _ := cidrmath.Parse(input.CIDR)
			return domain.Network{ID: 1, Block: b, Description: input.Description}, nil
		},
	}, nil)

	body := strings.NewReader(`{"cidr": "10.0.0.0/24", "description": "office"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/networks", body)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	var resp NetworkResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.ID != 1 || resp.CIDR != "10.0.0.0/24" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRegisterNetworkMapsOverlapToConflict(t *testing.T) {
	api := newHandlerTestAPI(stubService{
		registerNetworkFn: func(context.Context, domain.RegisterNetworkInput) (domain.Network, error) {
			return domain.Network{}, domain.ErrOverlap
		},
	}, nil)

	body := strings.NewReader(`{"cidr": "10.0.0.128/25"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/networks", body)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestRegisterNetworkMapsInvalidInputToBadRequest(t *testing.T) {
	api := newHandlerTestAPI(stubService{
		registerNetworkFn: func(context.Context, domain.RegisterNetworkInput) (domain.Network, error) {
			return domain.Network{}, domain.ErrInvalidInput
		},
	}, nil)

	body := strings.NewReader(`{"cidr": "not-a-cidr"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/networks", body)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestGetNetworkByIDReturnsNotFound(t *testing.T) {
	api := newHandlerTestAPI(stubService{
		getNetworkFn: func(context.Context, int64) (domain.Network, error) {
			return domain.Network{}, domain.ErrNetworkNotFound
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/networks/42", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestGetNetworkByIDRejectsNonNumericID(t *testing.T) {
	api := newHandlerTestAPI(stubService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/networks/abc", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected %d, got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestCreateAllocationByHostCount(t *testing.T) {
	var gotInput domain.AllocateInput
	api := newHandlerTestAPI(stubService{
		allocateFn: func(_ context.Context, networkID int64, input domain.AllocateInput) (domain.Allocation, error) {
			gotInput = input
			return domain.Allocation{
				ID:        domain.AllocationID("550e8400-e29b-41d4-a716-446655440000"),
				NetworkID: networkID,
				Block:     mustBlock(t, "10.0.0.0/25"),
				Owner:     input.Owner,
				Kind:      input.Kind,
			}, nil
		},
	}, nil)

	body := strings.NewReader(`{"owner": "web-frontend", "kind": "static", "host_count": 100}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/networks/1/allocations", body)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	if gotInput.Owner != "web-frontend" || gotInput.Kind != domain.KindStatic {
		t.Fatalf("unexpected input forwarded to service: %+v", gotInput)
	}

	var resp AllocationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.CIDR != "10.0.0.0/25" {
		t.Fatalf("unexpected allocated cidr: %s", resp.CIDR)
	}
}

func TestCreateAllocationRequiresExactlyOneSize(t *testing.T) {
	api := newHandlerTestAPI(stubService{}, nil)

	for _, body := range []string{
		`{"owner": "h", "kind": "static"}`,
		`{"owner": "h", "kind": "static", "host_count": 10, "prefix": 28}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/networks/1/allocations", strings.NewReader(body))
		rec := httptest.NewRecorder()
		api.Router().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected %d, got %d", body, http.StatusBadRequest, rec.Code)
		}
	}
}

func TestCreateAllocationMapsInsufficientSpaceToConflict(t *testing.T) {
	api := newHandlerTestAPI(stubService{
		allocateFn: func(context.Context, int64, domain.AllocateInput) (domain.Allocation, error) {
			return domain.Allocation{}, domain.ErrInsufficientSpace
		},
	}, nil)

	body := strings.NewReader(`{"owner": "h", "kind": "static", "host_count": 1000}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/networks/1/allocations", body)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestReleaseAllocationReturnsNoContent(t *testing.T) {
	released := false
	api := newHandlerTestAPI(stubService{
		releaseByIDFn: func(_ context.Context, networkID int64, id domain.AllocationID) error {
			released = true
			if networkID != 1 || id != domain.AllocationID("550e8400-e29b-41d4-a716-446655440000") {
				t.Fatalf("unexpected release args: %d %s", networkID, id)
			}
			return nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/networks/1/allocations/550e8400-e29b-41d4-a716-446655440000", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected %d, got %d", http.StatusNoContent, rec.Code)
	}
	if !released {
		t.Fatal("expected service release to be called")
	}
}

func TestReleaseAllocationReturnsNotFound(t *testing.T) {
	api := newHandlerTestAPI(stubService{
		releaseByIDFn: func(context.Context, int64, domain.AllocationID) error {
			return domain.ErrAllocationNotFound
		},
	}, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/networks/1/allocations/550e8400-e29b-41d4-a716-446655440000", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestFindAllocationsSurfacesMatchCount(t *testing.T) {
	api := newHandlerTestAPI(stubService{
		findFn: func(_ context.Context, query domain.FindQuery) ([]domain.Allocation, error) {
			if query.Owner != "web-frontend" {
				t.Fatalf("unexpected query: %+v", query)
			}
			return []domain.Allocation{
				{ID: "a-2", Block: mustBlock(t, "10.0.0.64/26"), Owner: "web-frontend"},
				{ID: "a-1", Block: mustBlock(t, "10.0.0.0/26"), Owner: "web-frontend"},
			}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/allocations?owner=web-frontend", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	var resp FindResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Count != 2 || len(resp.Allocations) != 2 {
		t.Fatalf("expected 2 matches, got %+v", resp)
	}
	if resp.Allocations[0].ID != "a-2" {
		t.Fatalf("expected newest first, got %s", resp.Allocations[0].ID)
	}
}

func TestNetworkReportReturnsUtilization(t *testing.T) {
	api := newHandlerTestAPI(stubService{
		networkReportFn: func(_ context.Context, networkID int64) (domain.NetworkUtilization, error) {
			return domain.NetworkUtilization{
				NetworkID:          networkID,
				CIDR:               "10.0.0.0/24",
				TotalAddresses:     256,
				UsableAddresses:    254,
				AllocatedAddresses: 188,
				AllocationCount:    2,
				UtilizationPercent: 74.01,
				FreeBlockCount:     1,
				FreeAddresses:      64,
			}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/networks/1/report", nil)
	rec := httptest.NewRecorder()
	api.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}

	var resp NetworkReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.AllocatedAddresses != 188 || resp.FreeAddresses != 64 {
		t.Fatalf("unexpected report: %+v", resp)
	}
}
