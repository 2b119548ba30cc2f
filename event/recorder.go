package event

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/disgoorg/json"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/controller"
	"github.com/oomph-ac/gravctl/oerror"
	"github.com/oomph-ac/gravctl/utils"
	"github.com/sasha-s/go-deadlock"
	"github.com/zeebo/xxh3"
	"go.uber.org/atomic"
)

// maxEventSize is the largest encoded event a recording may hold.
const maxEventSize = 64 << 10

// Header describes the simulation a recording was made of.
type Header struct {
	Scenario      string    `json:"scenario"`
	Controllers   []string  `json:"controllers"`
	FixedTimeStep float32   `json:"fixed_time_step"`
	Started       time.Time `json:"started"`
}

// Recorder writes events to a recording. The recording starts with a version line and a JSON
// header line, followed by length prefixed events and a trailer holding the xxh3 checksum of
// every event. A Recorder is a controller.Handler and may be shared by controllers stepped on
// different goroutines.
type Recorder struct {
	w      *bufio.Writer
	hash   *xxh3.Hasher
	recent *utils.CircularQueue[Event]
	count  int
	err    error
	closed atomic.Bool

	mu deadlock.Mutex
}

// NewRecorder writes the header of a recording to w and returns a Recorder writing events after
// it. The last recent events are kept in memory.
func NewRecorder(w io.Writer, h Header, recent int) (*Recorder, error) {
	enc, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("encode recording header: %w", err)
	}
	r := &Recorder{
		w:      bufio.NewWriter(w),
		hash:   xxh3.New(),
		recent: utils.NewCircularQueue[Event](recent, nil),
	}

	// The version goes first so that readers can reject recordings they cannot decode.
	r.w.WriteString(EventsVersion + "\n")
	r.w.Write(enc)
	if err := r.w.WriteByte('\n'); err != nil {
		return nil, fmt.Errorf("write recording header: %w", err)
	}
	return r, nil
}

// Record appends the event to the recording. Errors are kept and returned by Close.
func (r *Recorder) Record(ev Event) {
	if r.closed.Load() {
		return
	}
	dat := ev.Encode()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return
	}
	var length [4]byte
	binary.LittleEndian.PutUint32(length[:], uint32(len(dat)))
	r.w.Write(length[:])
	if _, err := r.w.Write(dat); err != nil {
		r.err = fmt.Errorf("write event: %w", err)
		return
	}
	r.hash.Write(dat)
	r.count++
	if r.recent.Cap() > 0 {
		r.recent.Append(ev)
	}
}

// Count returns the amount of events recorded.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Recent returns the last events recorded, oldest first.
func (r *Recorder) Recent() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]Event, 0, r.recent.Len())
	for ev := range r.recent.Iter() {
		events = append(events, ev)
	}
	return events
}

// Checksum returns the checksum of the events recorded so far.
func (r *Recorder) Checksum() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hash.Sum64()
}

// Close writes the trailer of the recording and flushes it. The underlying writer is not closed.
func (r *Recorder) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return oerror.New("recorder already closed")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	var trailer [12]byte
	binary.LittleEndian.PutUint64(trailer[4:], r.hash.Sum64())
	r.w.Write(trailer[:])
	if err := r.w.Flush(); err != nil {
		return fmt.Errorf("flush recording: %w", err)
	}
	return nil
}

func (r *Recorder) HandleModeChange(c *controller.Controller, from, to controller.Mode) {
	r.Record(TransitionEvent{NopEvent: nopEvent(c), From: from, To: to})
}

func (r *Recorder) HandleJump(c *controller.Controller, impulse mgl32.Vec3) {
	r.Record(JumpEvent{NopEvent: nopEvent(c), Impulse: impulse})
}

func (r *Recorder) HandleFixedUpdate(c *controller.Controller) {
	r.Record(StepEvent{
		NopEvent: nopEvent(c),
		Mode:     c.Mode(),
		Grounded: c.OnGround(),
		Position: c.Position(),
		Velocity: c.Velocity(),
		Up:       c.UpAxis(),
	})
}

func nopEvent(c *controller.Controller) NopEvent {
	return NopEvent{EvTime: ClockTime(c.Clock()), EvController: c.Name()}
}

// Recording is a decoded recording.
type Recording struct {
	Version  string
	Header   Header
	Events   []Event
	Checksum uint64
}

// ReadRecording decodes a recording written by a Recorder. It returns an error if the version of
// the recording is not supported, if it is truncated or if the checksum does not match.
func ReadRecording(r io.Reader) (*Recording, error) {
	br := bufio.NewReader(r)
	version, err := br.ReadString('\n')
	if err != nil {
		return nil, oerror.New("unable to read recording version: %v", err)
	}
	rec := &Recording{Version: version[:len(version)-1], Events: []Event{}}
	if rec.Version != EventsVersion {
		return nil, oerror.New("unsupported recording version: %s", rec.Version)
	}

	header, err := br.ReadBytes('\n')
	if err != nil {
		return nil, oerror.New("unable to read recording header: %v", err)
	}
	if err := json.Unmarshal(header, &rec.Header); err != nil {
		return nil, oerror.New("unable to decode recording header: %v", err)
	}

	hash := xxh3.New()
	var length [4]byte
	for {
		if _, err := io.ReadFull(br, length[:]); err != nil {
			return nil, oerror.New("truncated recording after %d events", len(rec.Events))
		}
		n := binary.LittleEndian.Uint32(length[:])
		if n == 0 {
			break
		}
		if n > maxEventSize {
			return nil, oerror.New("event of %d bytes exceeds the maximum of %d bytes", n, maxEventSize)
		}
		dat := make([]byte, n)
		if _, err := io.ReadFull(br, dat); err != nil {
			return nil, oerror.New("truncated event after %d events", len(rec.Events))
		}
		hash.Write(dat)

		ev, err := DecodeEvent(bytes.NewBuffer(dat))
		if err != nil {
			return nil, oerror.New("unable to decode event: %v", err)
		}
		rec.Events = append(rec.Events, ev)
	}

	var sum [8]byte
	if _, err := io.ReadFull(br, sum[:]); err != nil {
		return nil, oerror.New("missing recording checksum")
	}
	rec.Checksum = binary.LittleEndian.Uint64(sum[:])
	if got := hash.Sum64(); got != rec.Checksum {
		return nil, oerror.New("recording checksum mismatch: expected %x, got %x", rec.Checksum, got)
	}
	return rec, nil
}
