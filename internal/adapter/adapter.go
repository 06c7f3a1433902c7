// Package adapter orchestrates the full layout pipeline spec.md §4.5
// describes: it builds an indexed graph from a host graph, runs Rank,
// writes ranks back, runs the collaborators that mutate the host graph
// around that boundary (acyclic orientation, self-edges, nesting and
// border dummies, edge normalization), rebuilds a fresh indexed graph,
// runs Order and Position, writes the result back, and finally denormalizes
// everything in reverse. It is grounded on the teacher's
// cmd/analyzer/main.go "wire config -> stage A -> stage B -> stage C" shape,
// reimplemented as phase functions instead of package-level wiring since
// there is no service container here — just a pipeline over one host graph.
package adapter

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/graphlayout/dagre/internal/acyclic"
	"github.com/graphlayout/dagre/internal/border"
	"github.com/graphlayout/dagre/internal/generic"
	"github.com/graphlayout/dagre/internal/hostgraph"
	"github.com/graphlayout/dagre/internal/layout"
	"github.com/graphlayout/dagre/internal/nesting"
	"github.com/graphlayout/dagre/internal/normalize"
	"github.com/graphlayout/dagre/internal/selfedge"
	appErrors "github.com/graphlayout/dagre/pkg/errors"
)

var tracer = otel.Tracer("dagre/layout")

// Progress receives one notification per phase boundary: the caption named
// in spec.md §6's progress surface, and the phase's position within the
// overall run. additionalProgress is always 1 here — no phase reports
// partial completion of its own work.
type Progress func(caption string, mainProgress, additionalProgress float64)

// PhaseTiming records how long one named phase took, for diagnostic output
// (spec.md §6's "optional diagnostic timing output").
type PhaseTiming struct {
	Caption  string
	Duration time.Duration
}

// Result is returned by Run alongside any error: phase timings, the total
// wall-clock duration of the call, and any non-fatal warnings a phase
// raised along the way (spec.md §7's "infeasible layout" kind never aborts
// the run, so it surfaces here instead of as an error).
type Result struct {
	Phases   []PhaseTiming
	Total    time.Duration
	Warnings []*appErrors.AppError
}

// Options configures one Run call.
type Options struct {
	NodeSep, EdgeSep, RankSep int
	Progress                  Progress

	// MaxNodes caps the host graph's node count before any phase runs; 0
	// means unlimited. Exceeding it is spec.md §7's "capacity exhaustion"
	// kind, reported as a fatal error rather than a warning.
	MaxNodes int
}

// captions lists the progress caption sequence in order, per spec.md §6.
var captions = []string{"", "rank", "Normalize.run", "order", "position", "undo"}

// Run executes the full layout pipeline over h in place. On error, h is
// left either completely untouched (if the error occurred before any
// phase's write-back) or in the state of the last phase that completed
// fully (spec.md §7's propagation policy) — never partially written.
func Run(ctx context.Context, h *hostgraph.Graph, opts Options) (*Result, error) {
	start := time.Now()
	result := &Result{}
	var step int

	if opts.MaxNodes > 0 && len(h.Nodes()) > opts.MaxNodes {
		return result, appErrors.New(appErrors.CodeCapacityExhausted,
			fmt.Sprintf("host graph has %d nodes, exceeding the configured limit of %d", len(h.Nodes()), opts.MaxNodes))
	}

	emit := func() {
		if opts.Progress != nil {
			caption := ""
			if step < len(captions) {
				caption = captions[step]
			}
			opts.Progress(caption, float64(step)/float64(len(captions)), 1)
		}
	}

	phase := func(caption string, fn func(context.Context) error) error {
		spanCtx, span := tracer.Start(ctx, caption)
		defer span.End()
		if err := spanCtx.Err(); err != nil {
			return appErrors.Wrap(appErrors.CodeTimeout, "context cancelled before phase "+caption, err)
		}
		t0 := time.Now()
		err := fn(spanCtx)
		result.Phases = append(result.Phases, PhaseTiming{Caption: caption, Duration: time.Since(t0)})
		return err
	}

	compound := h.HasCompound()
	rankDir := h.Config.RankDir
	swapped := rankDir == "lr" || rankDir == "rl"

	emit()
	step++

	if swapped {
		swapAllWidthHeight(h)
	}

	reversed := acyclic.Run(h)
	removedSelf := selfedge.Run(h)
	nestAdded := nesting.Run(h)

	var g *layout.Graph
	if err := phase("rank", func(context.Context) error {
		var err error
		g, err = layout.Build(h, compound)
		if err != nil {
			return appErrors.Wrap(appErrors.CodeMalformedInput, "building indexed graph for rank", err)
		}
		if exhausted := layout.Rank(g); exhausted {
			result.Warnings = append(result.Warnings, appErrors.New(appErrors.CodeInfeasibleLayout,
				"rank pivot loop hit its safety bound; using the last feasible ranking"))
		}
		layout.WriteBack(g, h)
		return nil
	}); err != nil {
		return result, err
	}
	emit()
	step++

	borderAdded := border.Run(h)

	var chains []normalize.Chain
	if err := phase("Normalize.run", func(context.Context) error {
		var err error
		chains, err = normalize.Run(h)
		if err != nil {
			return appErrors.Wrap(appErrors.CodeNormalizeError, "normalizing long edges", err)
		}
		return nil
	}); err != nil {
		return result, err
	}
	emit()
	step++

	var g2 *layout.Graph
	if err := phase("order", func(context.Context) error {
		var err error
		g2, err = layout.Build(h, compound)
		if err != nil {
			return appErrors.Wrap(appErrors.CodeMalformedInput, "building indexed graph for order", err)
		}
		layout.Order(g2)
		layout.WriteBack(g2, h)
		return nil
	}); err != nil {
		return result, err
	}
	emit()
	step++

	if err := phase("position", func(context.Context) error {
		if compound {
			generic.Position(g2, opts.NodeSep, opts.EdgeSep, opts.RankSep)
		} else {
			layout.Position(g2, opts.NodeSep, opts.EdgeSep, opts.RankSep)
		}
		layout.WriteBack(g2, h)
		return nil
	}); err != nil {
		return result, err
	}
	emit()
	step++

	if err := phase("undo", func(context.Context) error {
		if swapped {
			restoreAllWidthHeight(h)
		}
		if rankDir == "bt" || rankDir == "rl" {
			reverseY(h)
		}
		if swapped {
			swapXY(h)
		}

		if err := normalize.Undo(h, chains); err != nil {
			return appErrors.Wrap(appErrors.CodeNormalizeError, "denormalizing long edges", err)
		}
		border.Undo(h, borderAdded)
		nesting.Undo(h, nestAdded)
		selfedge.Undo(h, removedSelf)
		acyclic.Undo(h, reversed)
		return nil
	}); err != nil {
		return result, err
	}
	emit()

	result.Total = time.Since(start)
	return result, nil
}

func swapAllWidthHeight(h *hostgraph.Graph) {
	for _, n := range h.Nodes() {
		n.Width, n.Height = n.Height, n.Width
	}
}

func restoreAllWidthHeight(h *hostgraph.Graph) {
	swapAllWidthHeight(h)
}

func reverseY(h *hostgraph.Graph) {
	nodes := h.Nodes()
	if len(nodes) == 0 {
		return
	}
	for _, n := range nodes {
		n.Y = -n.Y
	}
	minY := nodes[0].Y
	for _, n := range nodes {
		if n.Y < minY {
			minY = n.Y
		}
	}
	for _, n := range nodes {
		n.Y -= minY
	}
}

func swapXY(h *hostgraph.Graph) {
	for _, n := range h.Nodes() {
		n.X, n.Y = n.Y, n.X
	}
}
