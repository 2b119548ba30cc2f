package event

import (
	"bytes"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/controller"
	"github.com/oomph-ac/gravctl/oerror"
	"github.com/oomph-ac/gravctl/utils"
)

// StepEvent is the state of a controller at the end of a physics step.
type StepEvent struct {
	NopEvent

	Mode     controller.Mode
	Grounded bool
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Up       mgl32.Vec3
}

func (StepEvent) ID() byte {
	return EventIDStep
}

func (ev StepEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		buf.WriteByte(byte(ev.Mode))
		if ev.Grounded {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
		utils.WriteVec3(buf, ev.Position)
		utils.WriteVec3(buf, ev.Velocity)
		utils.WriteVec3(buf, ev.Up)
	})
}

func (ev *StepEvent) decode(buf *bytes.Buffer) (err error) {
	flags := buf.Next(2)
	if len(flags) != 2 {
		return oerror.New("unexpected end of StepEvent")
	}
	ev.Mode, ev.Grounded = controller.Mode(flags[0]), flags[1] == 1
	if ev.Position, err = utils.Vec3(buf); err != nil {
		return err
	}
	if ev.Velocity, err = utils.Vec3(buf); err != nil {
		return err
	}
	ev.Up, err = utils.Vec3(buf)
	return err
}
