package parking

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Shell reads one command per line and runs it against the registry.
type Shell struct {
	registry *InstrumentedRegistry
	tracer   trace.Tracer
	scanner  *bufio.Scanner
	out      io.Writer
}

func NewShell(registry *InstrumentedRegistry, tracer trace.Tracer, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		registry: registry,
		tracer:   tracer,
		scanner:  bufio.NewScanner(in),
		out:      out,
	}
}

// Run returns when input is exhausted or ctx is cancelled. Cancellation is
// only observed between lines.
func (s *Shell) Run(ctx context.Context) {
	ctx, span := s.tracer.Start(ctx, "shell.run")
	defer span.End()

	span.AddEvent("shell_started")

	for s.scanner.Scan() {
		if ctx.Err() != nil {
			break
		}

		input := strings.TrimSpace(s.scanner.Text())
		if input == "" {
			continue
		}

		cmdCtx, cmdSpan := s.tracer.Start(ctx, "shell.process_command",
			trace.WithAttributes(attribute.String("command.input", input)))

		s.processCommand(cmdCtx, input)
		cmdSpan.End()
	}

	span.AddEvent("shell_ended")
}

func (s *Shell) processCommand(ctx context.Context, input string) {
	parts := strings.Fields(input)
	command := parts[0]

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("command.name", command))

	switch command {
	case "create_parking_lot":
		s.handleCreateParkingLot(ctx, parts)
	case "expand_parking_lot":
		s.handleExpandParkingLot(ctx, parts)
	case "park":
		s.handlePark(ctx, parts)
	case "leave":
		s.handleLeave(ctx, parts)
	case "status":
		s.handleStatus(ctx, parts)
	case "registration_numbers_for_cars_with_colour":
		s.handleRegNosByColor(ctx, parts)
	case "slot_numbers_for_cars_with_colour":
		s.handleSlotsByColor(ctx, parts)
	case "slot_number_for_registration_number":
		s.handleSlotByRegNo(ctx, parts)
	case "count_by_colour":
		s.handleCountByColor(ctx, parts)
	case "delete_parking_lot":
		s.handleDeleteParkingLot(ctx, parts)
	default:
		span.AddEvent("unknown_command", trace.WithAttributes(
			attribute.String("unknown_command", command),
		))
		s.printf("Unknown command: %s\n", command)
	}
}

func (s *Shell) handleCreateParkingLot(ctx context.Context, parts []string) {
	if !s.checkArgs(ctx, parts, 3, "create_parking_lot <lot_id> <size>") {
		return
	}

	size, ok := s.parsePositive(ctx, parts[2], "size")
	if !ok {
		return
	}

	if err := s.registry.CreateLot(ctx, parts[1], size); err != nil {
		s.printError(err)
		return
	}

	s.printf("Created a parking lot %s with %d slots\n", parts[1], size)
}

func (s *Shell) handleExpandParkingLot(ctx context.Context, parts []string) {
	if !s.checkArgs(ctx, parts, 3, "expand_parking_lot <lot_id> <size>") {
		return
	}

	size, ok := s.parsePositive(ctx, parts[2], "size")
	if !ok {
		return
	}

	total, err := s.registry.ExpandLot(ctx, parts[1], size)
	if err != nil {
		s.printError(err)
		return
	}

	s.printf("Parking lot %s now has %d slots\n", parts[1], total)
}

func (s *Shell) handlePark(ctx context.Context, parts []string) {
	if !s.checkArgs(ctx, parts, 4, "park <lot_id> <registration_number> <color>") {
		return
	}

	slot, err := s.registry.Park(ctx, parts[1], parts[2], parts[3])
	if err != nil {
		if errors.Is(err, ErrFull) {
			s.printf("Sorry, parking lot is full\n")
			return
		}
		s.printError(err)
		return
	}

	s.printf("Allocated slot number: %d\n", slot)
}

func (s *Shell) handleLeave(ctx context.Context, parts []string) {
	if !s.checkArgs(ctx, parts, 3, "leave <lot_id> <slot_number>") {
		return
	}

	slot, ok := s.parsePositive(ctx, parts[2], "slot number")
	if !ok {
		return
	}

	if err := s.registry.Free(ctx, parts[1], slot); err != nil {
		s.printError(err)
		return
	}

	s.printf("Slot number %d is free\n", slot)
}

func (s *Shell) handleStatus(ctx context.Context, parts []string) {
	if !s.checkArgs(ctx, parts, 2, "status <lot_id>") {
		return
	}

	status, err := s.registry.Status(ctx, parts[1])
	if err != nil {
		s.printError(err)
		return
	}

	if len(status) == 0 {
		s.printf("Parking lot is empty\n")
		return
	}

	s.printf("Slot No.\tRegistration No\tColour\n")
	for _, slot := range status {
		s.printf("%d\t\t%s\t%s\n", slot.Slot, slot.RegNo, slot.Color)
	}
}

func (s *Shell) handleRegNosByColor(ctx context.Context, parts []string) {
	if !s.checkArgs(ctx, parts, 3, "registration_numbers_for_cars_with_colour <lot_id> <color>") {
		return
	}

	regNos, err := s.registry.RegNosByColor(ctx, parts[1], parts[2])
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.printf("Not found\n")
			return
		}
		s.printError(err)
		return
	}

	s.printf("%s\n", strings.Join(regNos, ", "))
}

func (s *Shell) handleSlotsByColor(ctx context.Context, parts []string) {
	if !s.checkArgs(ctx, parts, 3, "slot_numbers_for_cars_with_colour <lot_id> <color>") {
		return
	}

	slots, err := s.registry.SlotsByColor(ctx, parts[1], parts[2])
	if err != nil {
		s.printError(err)
		return
	}

	if len(slots) == 0 {
		s.printf("Not found\n")
		return
	}

	numbers := make([]string, len(slots))
	for i, slot := range slots {
		numbers[i] = strconv.Itoa(slot)
	}
	s.printf("%s\n", strings.Join(numbers, ", "))
}

func (s *Shell) handleSlotByRegNo(ctx context.Context, parts []string) {
	if !s.checkArgs(ctx, parts, 3, "slot_number_for_registration_number <lot_id> <registration_number>") {
		return
	}

	slot, found, err := s.registry.SlotByRegNo(ctx, parts[1], parts[2])
	if err != nil {
		s.printError(err)
		return
	}

	if !found {
		s.printf("Not found\n")
		return
	}

	s.printf("%d\n", slot)
}

func (s *Shell) handleCountByColor(ctx context.Context, parts []string) {
	if !s.checkArgs(ctx, parts, 2, "count_by_colour <lot_id>") {
		return
	}

	counts, err := s.registry.ColorCounts(ctx, parts[1])
	if err != nil {
		s.printError(err)
		return
	}

	if len(counts) == 0 {
		s.printf("Parking lot is empty\n")
		return
	}

	colors := make([]string, 0, len(counts))
	for color := range counts {
		colors = append(colors, color)
	}
	sort.Strings(colors)

	for _, color := range colors {
		s.printf("%s: %d\n", color, counts[color])
	}
}

func (s *Shell) handleDeleteParkingLot(ctx context.Context, parts []string) {
	if !s.checkArgs(ctx, parts, 2, "delete_parking_lot <lot_id>") {
		return
	}

	if err := s.registry.DeleteLot(ctx, parts[1]); err != nil {
		s.printError(err)
		return
	}

	s.printf("Deleted parking lot %s\n", parts[1])
}

func (s *Shell) checkArgs(ctx context.Context, parts []string, want int, usage string) bool {
	if len(parts) == want {
		return true
	}
	trace.SpanFromContext(ctx).AddEvent("invalid_arguments")
	s.printf("Usage: %s\n", usage)
	return false
}

func (s *Shell) parsePositive(ctx context.Context, raw, name string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		trace.SpanFromContext(ctx).RecordError(fmt.Errorf("invalid %s: %s", name, raw))
		s.printf("Invalid %s\n", name)
		return 0, false
	}
	return n, true
}

func (s *Shell) printError(err error) {
	s.printf("Error: %s\n", err)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
