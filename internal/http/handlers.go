package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Flarenzy/ipam-ledger/internal/domain"
)

// @Summary Health check
// @Tags health
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// @Summary Readiness check
// @Tags health
// @Success 200 {string} string "ready"
// @Failure 503 {string} string "db unavailable"
// @Router /readyz [get]
func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := a.Health.Ping(ctx); err != nil {
		a.Logger.ErrorContext(ctx, "db ping failed", "err", err.Error())
		http.Error(w, "db unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// @Summary List registered networks
// @Tags networks
// @Produce json
// @Success 200 {array} NetworkResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/networks [get]
func (a *API) handleListNetworks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	networks, err := a.Service.ListNetworks(ctx)
	if err != nil {
		a.respondError(w, r, err, "listing networks")
		return
	}
	a.respond(w, r, http.StatusOK, networksToResponse(networks))
}

// @Summary Register a root network
// @Tags networks
// @Accept json
// @Produce json
// @Param network body RegisterNetworkRequest true "Network payload"
// @Success 201 {object} NetworkResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "overlaps a registered network"
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/networks [post]
func (a *API) handleRegisterNetwork(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := decode[RegisterNetworkRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling network from request", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	network, err := a.Service.RegisterNetwork(ctx, domain.RegisterNetworkInput{
		CIDR:        req.CIDR,
		Description: req.Description,
	})
	if err != nil {
		a.respondError(w, r, err, "registering network")
		return
	}
	a.respond(w, r, http.StatusCreated, networkToResponse(network))
}

// @Summary Get network by ID
// @Tags networks
// @Produce json
// @Param id path int true "Network ID"
// @Success 200 {object} NetworkResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/networks/{id} [get]
func (a *API) handleGetNetworkByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	network, err := a.Service.GetNetwork(ctx, id)
	if err != nil {
		a.respondError(w, r, err, "getting network")
		return
	}
	a.respond(w, r, http.StatusOK, networkToResponse(network))
}

// @Summary Delete network
// @Tags networks
// @Param id path int true "Network ID of the network to delete."
// @Success 204 "No content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/networks/{id} [delete]
func (a *API) handleDeleteNetworkByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	if err := a.Service.DeleteNetwork(ctx, id); err != nil {
		a.respondError(w, r, err, "deleting network")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary List allocations in a network
// @Tags allocations
// @Produce json
// @Param id path int true "Network ID"
// @Success 200 {array} AllocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/networks/{id}/allocations [get]
func (a *API) handleListAllocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	allocations, err := a.Service.ListAllocations(ctx, id)
	if err != nil {
		a.respondError(w, r, err, "listing allocations")
		return
	}
	a.respond(w, r, http.StatusOK, allocationsToResponse(allocations))
}

// @Summary Carve a block out of a network
// @Description Allocates the smallest free block satisfying the request,
// @Description sized either by host count or by explicit prefix length.
// @Tags allocations
// @Accept json
// @Produce json
// @Param id path int true "Network to allocate from."
// @Param payload body CreateAllocationRequest true "Allocation request."
// @Success 201 {object} AllocationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "no free block large enough"
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/networks/{id}/allocations [post]
func (a *API) handleCreateAllocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	req, err := decode[CreateAllocationRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling allocation from request", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	input, err := req.toInput()
	if err != nil {
		a.Logger.DebugContext(ctx, "invalid allocation request", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	allocation, err := a.Service.Allocate(ctx, id, input)
	if err != nil {
		a.respondError(w, r, err, "allocating block")
		return
	}
	a.respond(w, r, http.StatusCreated, allocationToResponse(allocation))
}

// @Summary Release an allocation
// @Description Releases the exact block recorded under the allocation's
// @Description UUID; the freed space becomes allocatable again.
// @Tags allocations
// @Param id path int true "Network the allocation belongs to."
// @Param uuid path string true "UUID of the allocation to release."
// @Success 204 "No content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/networks/{id}/allocations/{uuid} [delete]
func (a *API) handleReleaseAllocation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	allocationID := domain.AllocationID(r.PathValue("uuid"))
	if err := a.Service.ReleaseByID(ctx, id, allocationID); err != nil {
		a.respondError(w, r, err, "releasing allocation")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary Find allocations
// @Description Looks allocations up by the address they cover or by owner
// @Description tag. Multiple matches are returned newest first with their
// @Description count, never silently reduced to one.
// @Tags allocations
// @Produce json
// @Param address query string false "IP address covered by the allocation."
// @Param owner query string false "Owner tag of the allocation."
// @Success 200 {object} FindResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/allocations [get]
func (a *API) handleFindAllocations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := domain.FindQuery{
		Address: r.URL.Query().Get("address"),
		Owner:   r.URL.Query().Get("owner"),
	}

	allocations, err := a.Service.Find(ctx, query)
	if err != nil {
		a.respondError(w, r, err, "finding allocations")
		return
	}
	a.respond(w, r, http.StatusOK, FindResponse{
		Count:       len(allocations),
		Allocations: allocationsToResponse(allocations),
	})
}

// @Summary Utilization report for one network
// @Tags reports
// @Produce json
// @Param id path int true "Network ID"
// @Success 200 {object} NetworkReportResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/networks/{id}/report [get]
func (a *API) handleNetworkReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	report, err := a.Service.NetworkReport(ctx, id)
	if err != nil {
		a.respondError(w, r, err, "building network report")
		return
	}
	a.respond(w, r, http.StatusOK, networkReportToResponse(report))
}

// @Summary Utilization report for the whole ledger
// @Tags reports
// @Produce json
// @Success 200 {object} ReportResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/report [get]
func (a *API) handleReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report, err := a.Service.Report(ctx)
	if err != nil {
		a.respondError(w, r, err, "building report")
		return
	}
	a.respond(w, r, http.StatusOK, reportToResponse(report))
}

func (a *API) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := encode(w, r, status, v); err != nil {
		a.Logger.ErrorContext(r.Context(), "can't respond to client", "err", err.Error())
	}
}

func (a *API) respondError(w http.ResponseWriter, r *http.Request, err error, doing string) {
	status, message := statusForError(err)
	if status == http.StatusInternalServerError {
		a.Logger.ErrorContext(r.Context(), doing, "err", err.Error())
	} else {
		a.Logger.DebugContext(r.Context(), doing, "status", status, "err", err.Error())
	}
	a.respond(w, r, status, ErrorResponse{Error: message})
}

func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrNetworkNotFound):
		return http.StatusNotFound, "network not found"
	case errors.Is(err, domain.ErrAllocationNotFound):
		return http.StatusNotFound, "allocation not found"
	case errors.Is(err, domain.ErrOverlap):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInsufficientSpace):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func parsePathInt64(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(r.PathValue(key), 10, 64)
}
