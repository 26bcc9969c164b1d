package internal

type EventStatus int

const (
	StatusInvalid EventStatus = iota
	StatusOk
	StatusCanceled
)

// Event is the result of a subview, handed back to the table view that
// requested it.
type Event struct {
	Value  string
	Status EventStatus
	Type   RequestType
	ID     int
	Data   any
}

func Canceled(req RequestType) Event {
	return Event{Status: StatusCanceled, Type: req}
}
