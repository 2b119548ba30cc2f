package event

import (
	"bytes"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/utils"
)

// JumpEvent is a jump impulse applied to a controller.
type JumpEvent struct {
	NopEvent

	Impulse mgl32.Vec3
}

func (JumpEvent) ID() byte {
	return EventIDJump
}

func (ev JumpEvent) Encode() []byte {
	return encode(ev, func(buf *bytes.Buffer) {
		utils.WriteVec3(buf, ev.Impulse)
	})
}

func (ev *JumpEvent) decode(buf *bytes.Buffer) (err error) {
	ev.Impulse, err = utils.Vec3(buf)
	return err
}
