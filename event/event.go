// Package event implements the binary trace events written while stepping controllers, and the
// recordings they are stored in.
package event

import (
	"bytes"

	"github.com/oomph-ac/gravctl/internal"
	"github.com/oomph-ac/gravctl/oerror"
	"github.com/oomph-ac/gravctl/utils"
)

const EventsVersion = "1"

const (
	_ = iota
	EventIDStep
	EventIDTransition
	EventIDJump
)

// Event is a single entry of a trace.
type Event interface {
	ID() byte
	Encode() []byte

	// Time returns the simulated time of the event in nanoseconds.
	Time() int64
	// Controller returns the name of the controller the event belongs to.
	Controller() string
}

// NopEvent holds the fields shared by every event.
type NopEvent struct {
	EvTime       int64
	EvController string
}

func (n NopEvent) Time() int64 {
	return n.EvTime
}

func (n NopEvent) Controller() string {
	return n.EvController
}

// ClockTime converts a controller clock in seconds to an event time.
func ClockTime(clock float64) int64 {
	return int64(clock * 1e9)
}

// WriteEventHeader writes the ID, time and controller of the event to the buffer.
func WriteEventHeader(ev Event, buf *bytes.Buffer) {
	buf.WriteByte(ev.ID())
	utils.WriteLInt64(buf, ev.Time())
	utils.WriteString(buf, ev.Controller())
}

// encode encodes the header of the event followed by its body into a new slice.
func encode(ev Event, body func(buf *bytes.Buffer)) []byte {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer internal.BufferPool.Put(buf)

	WriteEventHeader(ev, buf)
	body(buf)
	return bytes.Clone(buf.Bytes())
}

// DecodeEvents decodes every event of the data passed.
func DecodeEvents(dat []byte) ([]Event, error) {
	buf := bytes.NewBuffer(dat)

	events := []Event{}
	for buf.Len() > 0 {
		ev, err := DecodeEvent(buf)
		if err != nil {
			return events, oerror.New("error decoding event: %v", err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// DecodeEvent decodes a single event from the buffer.
func DecodeEvent(buf *bytes.Buffer) (Event, error) {
	id, err := buf.ReadByte()
	if err != nil {
		return nil, oerror.New("error reading event ID: %v", err)
	}
	var nop NopEvent
	if nop.EvTime, err = utils.LInt64(buf); err != nil {
		return nil, err
	}
	if nop.EvController, err = utils.String(buf); err != nil {
		return nil, err
	}

	switch id {
	case EventIDStep:
		ev := StepEvent{NopEvent: nop}
		if err := ev.decode(buf); err != nil {
			return nil, err
		}
		return ev, nil
	case EventIDTransition:
		ev := TransitionEvent{NopEvent: nop}
		if err := ev.decode(buf); err != nil {
			return nil, err
		}
		return ev, nil
	case EventIDJump:
		ev := JumpEvent{NopEvent: nop}
		if err := ev.decode(buf); err != nil {
			return nil, err
		}
		return ev, nil
	default:
		return nil, oerror.New("unknown event: %d", id)
	}
}
