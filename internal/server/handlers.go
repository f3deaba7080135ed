package server

import (
	"fmt"
	"net/http"

	"carparking/internal/logging"
	"carparking/internal/parking"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	registry    *parking.InstrumentedRegistry
	validator   *RequestValidator
	serviceName string
}

func NewHandler(registry *parking.InstrumentedRegistry, serviceName string) *Handler {
	return &Handler{
		registry:    registry,
		validator:   NewRequestValidator(),
		serviceName: serviceName,
	}
}

func (h *Handler) Welcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, welcomePage)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: h.serviceName,
	})
}

func (h *Handler) ListLots(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	summaries := h.registry.Lots(ctx)
	lots := make([]LotSummary, 0, len(summaries))
	for _, s := range summaries {
		lots = append(lots, LotSummary{
			ID:         s.ID,
			TotalSlots: s.TotalSlots,
			Occupied:   s.Occupied,
			Available:  s.Available,
		})
	}

	WriteSuccess(ctx, w, http.StatusOK, "", LotsResponse{Lots: lots})
}

func (h *Handler) CreateLot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateLotRequest
	if err := h.validator.decodeAndValidate(r, &req); err != nil {
		WriteAppError(ctx, w, err)
		return
	}

	if err := h.registry.CreateLot(ctx, req.ID, req.Size); err != nil {
		logging.Warn(ctx, "create parking lot failed", "lot_id", req.ID, "error", err)
		WriteAppError(ctx, w, err)
		return
	}

	WriteSuccess(ctx, w, http.StatusCreated, "Parking lot created successfully", CreateLotResponse{
		LotID:      req.ID,
		TotalSlots: req.Size,
	})
}

func (h *Handler) ExpandLot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req ExpandLotRequest
	if err := h.validator.decodeAndValidate(r, &req); err != nil {
		WriteAppError(ctx, w, err)
		return
	}

	total, err := h.registry.ExpandLot(ctx, id, req.Size)
	if err != nil {
		WriteAppError(ctx, w, err)
		return
	}

	WriteSuccess(ctx, w, http.StatusOK, "Parking lot expanded", ExpandLotResponse{TotalSlots: total})
}

func (h *Handler) Park(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req ParkRequest
	if err := h.validator.decodeAndValidate(r, &req); err != nil {
		WriteAppError(ctx, w, err)
		return
	}

	slot, err := h.registry.Park(ctx, id, req.RegNo, req.Color)
	if err != nil {
		WriteAppError(ctx, w, err)
		return
	}

	car := parking.NewCar(req.RegNo, req.Color)
	WriteSuccess(ctx, w, http.StatusCreated, fmt.Sprintf("Allocated slot number: %d", slot), ParkResponse{
		Slot:  slot,
		RegNo: car.RegNo,
		Color: car.Color,
	})
}

func (h *Handler) Free(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req FreeSlotRequest
	if err := h.validator.decodeAndValidate(r, &req); err != nil {
		WriteAppError(ctx, w, err)
		return
	}

	if err := h.registry.Free(ctx, id, req.Slot); err != nil {
		WriteAppError(ctx, w, err)
		return
	}

	WriteSuccess(ctx, w, http.StatusOK, fmt.Sprintf("Slot number %d is free", req.Slot), FreeSlotResponse{Slot: req.Slot})
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	occupied, err := h.registry.Status(ctx, id)
	if err != nil {
		WriteAppError(ctx, w, err)
		return
	}

	slots := make([]OccupiedSlot, 0, len(occupied))
	for _, o := range occupied {
		slots = append(slots, OccupiedSlot{Slot: o.Slot, RegNo: o.RegNo, Color: o.Color})
	}

	WriteSuccess(ctx, w, http.StatusOK, "", StatusResponse{Occupied: slots})
}

func (h *Handler) RegNosByColor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	color, ok := h.queryParam(w, r, "color")
	if !ok {
		return
	}

	regNos, err := h.registry.RegNosByColor(ctx, id, color)
	if err != nil {
		WriteAppError(ctx, w, err)
		return
	}

	WriteSuccess(ctx, w, http.StatusOK, "", RegNosResponse{RegNos: regNos})
}

func (h *Handler) SlotsByColor(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	color, ok := h.queryParam(w, r, "color")
	if !ok {
		return
	}

	slots, err := h.registry.SlotsByColor(ctx, id, color)
	if err != nil {
		WriteAppError(ctx, w, err)
		return
	}

	WriteSuccess(ctx, w, http.StatusOK, "", SlotsResponse{Slots: slots})
}

func (h *Handler) SlotByRegNo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	regNo, ok := h.queryParam(w, r, "regNo")
	if !ok {
		return
	}

	slot, found, err := h.registry.SlotByRegNo(ctx, id, regNo)
	if err != nil {
		WriteAppError(ctx, w, err)
		return
	}

	resp := SlotResponse{}
	if found {
		resp.Slot = &slot
	}
	WriteSuccess(ctx, w, http.StatusOK, "", resp)
}

func (h *Handler) ColorCounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	counts, err := h.registry.ColorCounts(ctx, id)
	if err != nil {
		WriteAppError(ctx, w, err)
		return
	}

	WriteSuccess(ctx, w, http.StatusOK, "", counts)
}

func (h *Handler) DeleteLot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.registry.DeleteLot(ctx, id); err != nil {
		WriteAppError(ctx, w, err)
		return
	}

	WriteSuccess(ctx, w, http.StatusOK, "Parking lot deleted", map[string]string{"lotId": id})
}

func (h *Handler) queryParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := r.URL.Query().Get(name)
	if err := h.validator.Var(name, value, "required"); err != nil {
		WriteAppError(r.Context(), w, ValidationFailed(err))
		return "", false
	}
	return value, true
}

const welcomePage = `<!DOCTYPE html>
<html>
<head><title>Car Parking</title></head>
<body>
<h1>Car Parking Service</h1>
<ul>
<li>POST /carparking/create</li>
<li>PATCH /carparking/{id}/expand</li>
<li>POST /carparking/{id}/park</li>
<li>POST /carparking/{id}/free</li>
<li>GET /carparking/{id}/status</li>
<li>GET /carparking/{id}/regnos?color=</li>
<li>GET /carparking/{id}/slots?color=</li>
<li>GET /carparking/{id}/slot?regNo=</li>
<li>GET /carparking/{id}/count_by_color</li>
<li>DELETE /carparking/{id}</li>
</ul>
</body>
</html>
`
