package parking

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func runShell(t *testing.T, input string) string {
	t.Helper()

	tracer := tracenoop.NewTracerProvider().Tracer("test")
	registry, err := NewInstrumentedRegistry(NewLotRegistry(), tracer, noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	var out bytes.Buffer
	NewShell(registry, tracer, strings.NewReader(input), &out).Run(context.Background())
	return out.String()
}

func TestShellSession(t *testing.T) {
	input := `create_parking_lot L1 3
park L1 AB12 Blue
park L1 CD34 Red
park L1 EF56 blue
park L1 GH78 White
leave L1 1
status L1
registration_numbers_for_cars_with_colour L1 BLUE
slot_numbers_for_cars_with_colour L1 red
slot_number_for_registration_number L1 cd34
slot_number_for_registration_number L1 ZZ99
count_by_colour L1
expand_parking_lot L1 2
park L1 GH78 White
delete_parking_lot L1
status L1
`
	want := `Created a parking lot L1 with 3 slots
Allocated slot number: 1
Allocated slot number: 2
Allocated slot number: 3
Sorry, parking lot is full
Slot number 1 is free
Slot No.	Registration No	Colour
2		cd34	red
3		ef56	blue
ef56
2
2
Not found
blue: 1
red: 1
Parking lot L1 now has 5 slots
Allocated slot number: 1
Deleted parking lot L1
Error: parking lot not found: L1
`
	assert.Equal(t, want, runShell(t, input))
}

func TestShellUsageAndValidation(t *testing.T) {
	input := `park L1
create_parking_lot L1 zero
create_parking_lot L1 0
leave L1 x
fly away
`
	want := `Usage: park <lot_id> <registration_number> <color>
Invalid size
Invalid size
Invalid slot number
Unknown command: fly
`
	assert.Equal(t, want, runShell(t, input))
}

func TestShellColorLookupsOnEmptyLot(t *testing.T) {
	input := `create_parking_lot L1 2
registration_numbers_for_cars_with_colour L1 blue
slot_numbers_for_cars_with_colour L1 blue
count_by_colour L1
status L1
leave L1 1
`
	want := `Created a parking lot L1 with 2 slots
Not found
Not found
Parking lot is empty
Parking lot is empty
Error: slot is not occupied: slot 1
`
	assert.Equal(t, want, runShell(t, input))
}

func TestShellStopsOnCancelledContext(t *testing.T) {
	tracer := tracenoop.NewTracerProvider().Tracer("test")
	registry, err := NewInstrumentedRegistry(NewLotRegistry(), tracer, noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	NewShell(registry, tracer, strings.NewReader("create_parking_lot L1 1\n"), &out).Run(ctx)
	assert.Empty(t, out.String())
}

func TestShellSurvivesOversizedLot(t *testing.T) {
	input := `create_parking_lot L1 9223372036854775807
park L1 AB12 blue
expand_parking_lot L1 1
create_parking_lot L2 9223372036854775808
status L1
`
	want := `Created a parking lot L1 with 9223372036854775807 slots
Allocated slot number: 1
Error: invalid argument: cannot add 1 slots to a lot of 9223372036854775807
Invalid size
Slot No.	Registration No	Colour
1		ab12	blue
`
	assert.Equal(t, want, runShell(t, input))
}
