package server

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

type Meta struct {
	TraceID   string `json:"trace_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

type CreateLotRequest struct {
	ID   string `json:"id" validate:"required"`
	Size int    `json:"size" validate:"required,min=1"`
}

type ExpandLotRequest struct {
	Size int `json:"size" validate:"required,min=1"`
}

type ParkRequest struct {
	RegNo string `json:"regNo" validate:"required"`
	Color string `json:"color" validate:"required"`
}

type FreeSlotRequest struct {
	Slot int `json:"slot" validate:"required,min=1"`
}

type CreateLotResponse struct {
	LotID      string `json:"lotId"`
	TotalSlots int    `json:"totalSlots"`
}

type ExpandLotResponse struct {
	TotalSlots int `json:"totalSlots"`
}

type ParkResponse struct {
	Slot  int    `json:"slot"`
	RegNo string `json:"regNo"`
	Color string `json:"color"`
}

type FreeSlotResponse struct {
	Slot int `json:"slot"`
}

type OccupiedSlot struct {
	Slot  int    `json:"slot"`
	RegNo string `json:"regNo"`
	Color string `json:"color"`
}

type StatusResponse struct {
	Occupied []OccupiedSlot `json:"occupied"`
}

type RegNosResponse struct {
	RegNos []string `json:"regNos"`
}

type SlotsResponse struct {
	Slots []int `json:"slots"`
}

// SlotResponse carries a null slot when the car is not parked.
type SlotResponse struct {
	Slot *int `json:"slot"`
}

type LotSummary struct {
	ID         string `json:"id"`
	TotalSlots int    `json:"totalSlots"`
	Occupied   int    `json:"occupied"`
	Available  int    `json:"available"`
}

type LotsResponse struct {
	Lots []LotSummary `json:"lots"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func extractMeta(ctx context.Context) *Meta {
	meta := &Meta{}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		meta.TraceID = span.SpanContext().TraceID().String()
	}

	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		meta.RequestID = reqID
	}

	return meta
}

func WriteSuccess(ctx context.Context, w http.ResponseWriter, status int, message string, data any) {
	WriteJSON(w, status, Response{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    extractMeta(ctx),
	})
}

func WriteError(ctx context.Context, w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, Response{
		Success: false,
		Error:   message,
		Code:    code,
		Meta:    extractMeta(ctx),
	})
}
