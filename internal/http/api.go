package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Flarenzy/ipam-ledger/internal/auth"
	"github.com/Flarenzy/ipam-ledger/internal/domain"
	httpSwagger "github.com/swaggo/http-swagger"
)

// HealthChecker reports whether the persistence layer is reachable.
// *pgxpool.Pool satisfies it.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type API struct {
	Logger        *slog.Logger
	Health        HealthChecker
	Service       domain.LedgerService
	Authenticator auth.Authenticator
}

func NewAPI(logger *slog.Logger, health HealthChecker, service domain.LedgerService, authenticator auth.Authenticator) *API {
	return &API{
		Logger:        logger,
		Health:        health,
		Service:       service,
		Authenticator: authenticator,
	}
}

func (a *API) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", a.handleHealthz)
	mux.HandleFunc("/readyz", a.handleReadyz)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("GET /api/v1/networks", a.handleListNetworks)
	mux.HandleFunc("POST /api/v1/networks", a.handleRegisterNetwork)
	mux.HandleFunc("GET /api/v1/networks/{id}", a.handleGetNetworkByID)
	mux.HandleFunc("DELETE /api/v1/networks/{id}", a.handleDeleteNetworkByID)
	mux.HandleFunc("GET /api/v1/networks/{id}/allocations", a.handleListAllocations)
	mux.HandleFunc("POST /api/v1/networks/{id}/allocations", a.handleCreateAllocation)
	mux.HandleFunc("DELETE /api/v1/networks/{id}/allocations/{uuid}", a.handleReleaseAllocation)
	mux.HandleFunc("GET /api/v1/allocations", a.handleFindAllocations)
	mux.HandleFunc("GET /api/v1/report", a.handleReport)
	mux.HandleFunc("GET /api/v1/networks/{id}/report", a.handleNetworkReport)

	return a.withAuth(mux)
}
