package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/quentinrf/greenhouse-controller/internal/domain"
	"github.com/quentinrf/greenhouse-controller/internal/ports"
)

// Input implements ports.SetpointSource over line-oriented text
type Input struct {
	r io.Reader
}

// NewInput reads setpoint lines from r
func NewInput(r io.Reader) *Input {
	return &Input{r: r}
}

// Setpoints parses each line into a batch. Lines that fail to parse are
// logged and dropped.
func (in *Input) Setpoints(ctx context.Context) <-chan []ports.Setpoint {
	out := make(chan []ports.Setpoint)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(in.r)
		for scanner.Scan() {
			batch, err := ParseLine(scanner.Text())
			if err != nil {
				log.Warn().Err(err).Str("line", scanner.Text()).Msg("invalid setpoint input")
				continue
			}
			if len(batch) == 0 {
				continue
			}
			select {
			case out <- batch:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			log.Error().Err(err).Msg("failed to read setpoint input")
		}
	}()

	return out
}

// ParseLine parses `temperature=22.5 humidity=70`, `clear` or `clear light`.
// A line sets at most one target per variable.
func ParseLine(line string) ([]ports.Setpoint, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil, nil
	}

	if strings.EqualFold(fields[0], "clear") {
		targets := domain.Variables
		if len(fields) > 1 {
			targets = nil
			for _, name := range fields[1:] {
				v, err := domain.ParseVariable(name)
				if err != nil {
					return nil, err
				}
				targets = append(targets, v)
			}
		}
		batch := make([]ports.Setpoint, 0, len(targets))
		for _, v := range targets {
			batch = append(batch, ports.Setpoint{Variable: v, Clear: true})
		}
		return batch, nil
	}

	seen := make(map[domain.Variable]bool, len(domain.Variables))
	batch := make([]ports.Setpoint, 0, len(fields))
	for _, field := range fields {
		sp, err := ParseAssignment(field)
		if err != nil {
			return nil, err
		}
		if seen[sp.Variable] {
			return nil, fmt.Errorf("%s set twice", sp.Variable)
		}
		seen[sp.Variable] = true
		batch = append(batch, sp)
	}
	return batch, nil
}

// ParseAssignment parses one `name=value` pair
func ParseAssignment(field string) (ports.Setpoint, error) {
	name, text, ok := strings.Cut(field, "=")
	if !ok {
		return ports.Setpoint{}, fmt.Errorf("expected name=value, got %q", field)
	}
	v, err := domain.ParseVariable(name)
	if err != nil {
		return ports.Setpoint{}, err
	}
	value, err := domain.ParseValue(v, text)
	if err != nil {
		return ports.Setpoint{}, err
	}
	return ports.Setpoint{Variable: v, Value: value}, nil
}
