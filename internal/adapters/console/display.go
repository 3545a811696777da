package console

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/greenhouse-controller/internal/domain"
	"github.com/quentinrf/greenhouse-controller/internal/ports"
)

// Display implements ports.Display by writing one line per tick to w
type Display struct {
	mu      sync.Mutex
	w       io.Writer
	pending *ports.Frame
	tags    map[domain.Variable]domain.Warning
}

// NewDisplay creates a display writing to w
func NewDisplay(w io.Writer) *Display {
	return &Display{w: w}
}

// Show prints the previous tick (if any) and starts collecting a new one
func (d *Display) Show(ctx context.Context, frame ports.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.flushLocked(); err != nil {
		return err
	}
	d.pending = &frame
	d.tags = make(map[domain.Variable]domain.Warning, len(domain.Variables))
	return nil
}

// Warn records the warning tag for v in the current tick
func (d *Display) Warn(ctx context.Context, v domain.Variable, w domain.Warning) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == nil {
		return fmt.Errorf("warning for %s before any readings", v)
	}
	d.tags[v] = w
	if w != domain.WarningGood {
		log.Warn().
			Int("tick", d.pending.Tick).
			Str("variable", string(v)).
			Str("state", string(w)).
			Msg("not ideal")
	}
	return nil
}

// Flush prints the tick still being collected
func (d *Display) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flushLocked()
}

func (d *Display) flushLocked() error {
	if d.pending == nil {
		return nil
	}
	line := FormatFrame(*d.pending, d.tags)
	d.pending = nil
	_, err := fmt.Fprintln(d.w, line)
	return err
}

// FormatFrame renders readings and tags as a single line, with unread
// variables shown as a bare dash:
//
//	#3 temperature=27.00°C(high) humidity=65%(good) light=-
func FormatFrame(frame ports.Frame, tags map[domain.Variable]domain.Warning) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d", frame.Tick)

	for _, v := range domain.Variables {
		if slices.Contains(frame.Missing, v) {
			fmt.Fprintf(&b, " %s=-", v)
			continue
		}
		spec, _ := domain.SpecFor(v)
		value, _ := frame.Readings.Value(v)

		tag := "-"
		if w, ok := tags[v]; ok {
			tag = string(w)
		}
		fmt.Fprintf(&b, " %s=%s%s(%s)", v, domain.FormatValue(v, value), spec.Unit, tag)
	}
	return b.String()
}
