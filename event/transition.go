package event

import (
	"bytes"

	"github.com/oomph-ac/gravctl/controller"
	"github.com/oomph-ac/gravctl/oerror"
)

// TransitionEvent is a switch of a controller from one movement mode to another.
type TransitionEvent struct {
	NopEvent

	From, To controller.Mode
}

func (TransitionEvent) ID() byte {
	return EventIDTransition
}

func (ev TransitionEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		buf.WriteByte(byte(ev.From))
		buf.WriteByte(byte(ev.To))
	})
}

func (ev *TransitionEvent) decode(buf *bytes.Buffer) error {
	modes := buf.Next(2)
	if len(modes) != 2 {
		return oerror.New("unexpected end of TransitionEvent")
	}
	ev.From, ev.To = controller.Mode(modes[0]), controller.Mode(modes[1])
	return nil
}
