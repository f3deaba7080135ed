package parking

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrDuplicateLot          = errors.New("parking lot already exists")
	ErrLotNotFound           = errors.New("parking lot not found")
	ErrFull                  = errors.New("parking lot is full")
	ErrDuplicateRegistration = errors.New("car is already parked")
	ErrSlotNotOccupied       = errors.New("slot is not occupied")
	ErrNotFound              = errors.New("no cars found")
)

var errLotClosed = fmt.Errorf("%w: lot was deleted", ErrLotNotFound)
