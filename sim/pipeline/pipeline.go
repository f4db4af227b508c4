// Package pipeline runs the per-tick read/decide/write loop.
package pipeline

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	sim "github.com/inference-sim/pearlsim/sim"
	"github.com/inference-sim/pearlsim/sim/wire"
)

// Pipeline turns a stream of state lines into a stream of action lines.
type Pipeline struct {
	router *sim.Router
	graphs sim.GraphCache
	ticks  int
}

// New creates a Pipeline around router.
func New(router *sim.Router) *Pipeline {
	return &Pipeline{router: router}
}

// Ticks returns the number of lines processed successfully.
func (p *Pipeline) Ticks() int {
	return p.ticks
}

// GraphCacheHits returns how many ticks reused the previous neighbor graph.
func (p *Pipeline) GraphCacheHits() int {
	return p.graphs.Hits()
}

// Step decides the actions for one decoded state.
func (p *Pipeline) Step(state *sim.State) (sim.ActionSet, error) {
	graph, err := p.graphs.Get(state.NeighborMap, state.Workers)
	if err != nil {
		return nil, err
	}
	return p.router.DecideActions(state, graph)
}

// Run reads newline-delimited states from r and writes one action line per
// state to w. It returns nil at end of input. Any error stops the loop
// before the failing tick's line is written.
func (p *Pipeline) Run(r io.Reader, w io.Writer) error {
	reader := bufio.NewReader(r)
	out := bufio.NewWriter(w)
	for {
		line, readErr := reader.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("reading input: %w", readErr)
		}
		if len(bytes.TrimSpace(line)) > 0 {
			if err := p.processLine(line, out); err != nil {
				return fmt.Errorf("tick %d: %w", p.ticks+1, err)
			}
		}
		if readErr != nil {
			return nil
		}
	}
}

func (p *Pipeline) processLine(line []byte, out *bufio.Writer) error {
	state, err := wire.DecodeState(line)
	if err != nil {
		return err
	}
	actions, err := p.Step(state)
	if err != nil {
		return err
	}
	encoded, err := wire.EncodeActions(actions)
	if err != nil {
		return err
	}
	if _, err := out.Write(append(encoded, '\n')); err != nil {
		return fmt.Errorf("writing actions: %w", err)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("writing actions: %w", err)
	}
	p.ticks++
	logrus.Debugf("[tick %07d] %d workers, %d actions", p.ticks, len(state.Workers), len(actions))
	return nil
}
