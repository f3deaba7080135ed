package parking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedRegistry wraps a LotRegistry with a span and metrics per call.
type InstrumentedRegistry struct {
	*LotRegistry
	tracer trace.Tracer

	operations        metric.Int64Counter
	operationDuration metric.Float64Histogram
	occupiedSlots     metric.Int64UpDownCounter
	totalSlots        metric.Int64UpDownCounter
}

func NewInstrumentedRegistry(registry *LotRegistry, tracer trace.Tracer, meter metric.Meter) (*InstrumentedRegistry, error) {
	operations, err := meter.Int64Counter("carparking.operations",
		metric.WithDescription("Total number of parking lot operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("carparking.operation.duration",
		metric.WithDescription("Duration of parking lot operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	occupiedSlots, err := meter.Int64UpDownCounter("carparking.slots.occupied",
		metric.WithDescription("Current number of occupied parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	totalSlots, err := meter.Int64UpDownCounter("carparking.slots.total",
		metric.WithDescription("Total number of parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	return &InstrumentedRegistry{
		LotRegistry:       registry,
		tracer:            tracer,
		operations:        operations,
		operationDuration: operationDuration,
		occupiedSlots:     occupiedSlots,
		totalSlots:        totalSlots,
	}, nil
}

func (ir *InstrumentedRegistry) CreateLot(ctx context.Context, id string, size int) error {
	ctx, span := ir.start(ctx, "create_lot", id, attribute.Int("lot.size", size))
	defer span.End()
	start := time.Now()

	err := ir.LotRegistry.CreateLot(id, size)
	if err == nil {
		ir.totalSlots.Add(ctx, int64(size), metric.WithAttributes(attribute.String("lot_id", id)))
		span.AddEvent("lot_created")
	}

	ir.finish(ctx, span, "create_lot", start, err)
	return err
}

func (ir *InstrumentedRegistry) ExpandLot(ctx context.Context, id string, size int) (int, error) {
	ctx, span := ir.start(ctx, "expand_lot", id, attribute.Int("lot.extra_slots", size))
	defer span.End()
	start := time.Now()

	total, err := ir.LotRegistry.ExpandLot(id, size)
	if err == nil {
		ir.totalSlots.Add(ctx, int64(size), metric.WithAttributes(attribute.String("lot_id", id)))
		span.SetAttributes(attribute.Int("lot.total_slots", total))
	}

	ir.finish(ctx, span, "expand_lot", start, err)
	return total, err
}

func (ir *InstrumentedRegistry) Park(ctx context.Context, id, regNo, color string) (int, error) {
	ctx, span := ir.start(ctx, "park", id,
		attribute.String("car.registration_number", regNo),
		attribute.String("car.color", color),
	)
	defer span.End()
	start := time.Now()

	span.AddEvent("finding_available_slot")

	slot, err := ir.LotRegistry.Park(id, regNo, color)
	if err == nil {
		span.SetAttributes(attribute.Int("allocated_slot_number", slot))
		span.AddEvent("slot_allocated", trace.WithAttributes(
			attribute.Int("slot_number", slot),
		))
		ir.occupiedSlots.Add(ctx, 1, metric.WithAttributes(attribute.String("lot_id", id)))
	}

	ir.finish(ctx, span, "park", start, err)
	return slot, err
}

func (ir *InstrumentedRegistry) Free(ctx context.Context, id string, slot int) error {
	ctx, span := ir.start(ctx, "free", id, attribute.Int("slot_number", slot))
	defer span.End()
	start := time.Now()

	span.AddEvent("releasing_slot")

	err := ir.LotRegistry.Free(id, slot)
	if err == nil {
		span.AddEvent("slot_released")
		ir.occupiedSlots.Add(ctx, -1, metric.WithAttributes(attribute.String("lot_id", id)))
	}

	ir.finish(ctx, span, "free", start, err)
	return err
}

func (ir *InstrumentedRegistry) Status(ctx context.Context, id string) ([]OccupiedSlot, error) {
	ctx, span := ir.start(ctx, "status", id)
	defer span.End()
	start := time.Now()

	status, err := ir.LotRegistry.Status(id)
	if err == nil {
		span.SetAttributes(attribute.Int("occupied_slots_count", len(status)))
	}

	ir.finish(ctx, span, "status", start, err)
	return status, err
}

func (ir *InstrumentedRegistry) RegNosByColor(ctx context.Context, id, color string) ([]string, error) {
	ctx, span := ir.start(ctx, "regnos_by_color", id, attribute.String("car.color", color))
	defer span.End()
	start := time.Now()

	regNos, err := ir.LotRegistry.RegNosByColor(id, color)
	if err == nil {
		span.SetAttributes(attribute.Int("match_count", len(regNos)))
	}

	ir.finish(ctx, span, "regnos_by_color", start, err)
	return regNos, err
}

func (ir *InstrumentedRegistry) SlotsByColor(ctx context.Context, id, color string) ([]int, error) {
	ctx, span := ir.start(ctx, "slots_by_color", id, attribute.String("car.color", color))
	defer span.End()
	start := time.Now()

	slots, err := ir.LotRegistry.SlotsByColor(id, color)
	if err == nil {
		span.SetAttributes(attribute.Int("match_count", len(slots)))
	}

	ir.finish(ctx, span, "slots_by_color", start, err)
	return slots, err
}

func (ir *InstrumentedRegistry) SlotByRegNo(ctx context.Context, id, regNo string) (int, bool, error) {
	ctx, span := ir.start(ctx, "slot_by_regno", id, attribute.String("car.registration_number", regNo))
	defer span.End()
	start := time.Now()

	slot, found, err := ir.LotRegistry.SlotByRegNo(id, regNo)
	switch {
	case err != nil:
	case found:
		span.AddEvent("car_found", trace.WithAttributes(
			attribute.Int("slot_number", slot),
		))
	default:
		span.AddEvent("car_not_found")
	}

	ir.finish(ctx, span, "slot_by_regno", start, err)
	return slot, found, err
}

func (ir *InstrumentedRegistry) ColorCounts(ctx context.Context, id string) (map[string]int, error) {
	ctx, span := ir.start(ctx, "color_counts", id)
	defer span.End()
	start := time.Now()

	counts, err := ir.LotRegistry.ColorCounts(id)
	if err == nil {
		span.SetAttributes(attribute.Int("color_count", len(counts)))
	}

	ir.finish(ctx, span, "color_counts", start, err)
	return counts, err
}

func (ir *InstrumentedRegistry) DeleteLot(ctx context.Context, id string) error {
	ctx, span := ir.start(ctx, "delete_lot", id)
	defer span.End()
	start := time.Now()

	summary, err := ir.LotRegistry.DeleteLot(id)
	if err == nil {
		lotAttr := metric.WithAttributes(attribute.String("lot_id", id))
		ir.totalSlots.Add(ctx, -int64(summary.TotalSlots), lotAttr)
		ir.occupiedSlots.Add(ctx, -int64(summary.Occupied), lotAttr)
		span.AddEvent("lot_deleted")
	}

	ir.finish(ctx, span, "delete_lot", start, err)
	return err
}

func (ir *InstrumentedRegistry) Lots(ctx context.Context) []LotSummary {
	ctx, span := ir.tracer.Start(ctx, "carparking.list_lots")
	defer span.End()
	start := time.Now()

	lots := ir.LotRegistry.Lots()
	span.SetAttributes(attribute.Int("lot_count", len(lots)))

	ir.finish(ctx, span, "list_lots", start, nil)
	return lots
}

func (ir *InstrumentedRegistry) start(ctx context.Context, op, id string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("lot.id", id))
	return ir.tracer.Start(ctx, "carparking."+op, trace.WithAttributes(attrs...))
}

func (ir *InstrumentedRegistry) finish(ctx context.Context, span trace.Span, op string, start time.Time, err error) {
	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", op),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels, attribute.String("status", "success"))
	}

	ir.operations.Add(ctx, 1, metric.WithAttributes(labels...))
	ir.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))
}
