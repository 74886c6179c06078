// Package pipeline orders the analysis stages, gates each one on its
// prerequisites and owns the single in-memory session.
package pipeline

import (
	"fmt"
	"slices"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
)

// StageID names a stage output held by the session.
type StageID string

const (
	StageVideos          StageID = "videos"
	StageChannelAnalysis StageID = "channel_analysis"
	StageComments        StageID = "comments"
	StagePainPoints      StageID = "pain_points"
	StageInsight         StageID = "insight"
	StageMonetization    StageID = "monetization"
	StageProduct         StageID = "product"
	StageBVP             StageID = "bvp"
	StageFunnel          StageID = "funnel"
	StageReport          StageID = "report"
)

// Order is the pipeline order of all stages.
var Order = []StageID{
	StageVideos,
	StageChannelAnalysis,
	StageComments,
	StagePainPoints,
	StageInsight,
	StageMonetization,
	StageProduct,
	StageBVP,
	StageFunnel,
	StageReport,
}

// DefaultEdges maps each stage to the stages it reads.
var DefaultEdges = map[StageID][]StageID{
	StageVideos:          nil,
	StageChannelAnalysis: {StageVideos},
	StageComments:        {StageVideos},
	StagePainPoints:      {StageComments},
	StageInsight:         {StageChannelAnalysis, StagePainPoints},
	StageMonetization:    {StageInsight},
	StageProduct:         {StageInsight},
	StageBVP:             {StageProduct, StageInsight},
	StageFunnel:          {StageInsight, StageProduct, StageBVP},
	StageReport:          {StageChannelAnalysis, StagePainPoints, StageInsight, StageBVP, StageFunnel},
}

// Graph is an acyclic stage dependency graph.
type Graph struct {
	order []StageID
	deps  map[StageID][]StageID
	rdeps map[StageID][]StageID
}

// NewGraph validates edges against order. Every dependency must be a known
// stage that comes earlier in order, which also rules out cycles.
func NewGraph(order []StageID, edges map[StageID][]StageID) (*Graph, error) {
	pos := make(map[StageID]int, len(order))
	for i, s := range order {
		if _, dup := pos[s]; dup {
			return nil, fmt.Errorf("stage %s listed twice", s)
		}
		pos[s] = i
	}
	g := &Graph{
		order: slices.Clone(order),
		deps:  make(map[StageID][]StageID, len(order)),
		rdeps: make(map[StageID][]StageID, len(order)),
	}
	for s, deps := range edges {
		ps, ok := pos[s]
		if !ok {
			return nil, fmt.Errorf("edge from unknown stage %s", s)
		}
		for _, d := range deps {
			pd, ok := pos[d]
			if !ok {
				return nil, fmt.Errorf("stage %s depends on unknown stage %s", s, d)
			}
			if pd >= ps {
				return nil, fmt.Errorf("stage %s depends on later stage %s", s, d)
			}
			g.deps[s] = append(g.deps[s], d)
			g.rdeps[d] = append(g.rdeps[d], s)
		}
	}
	return g, nil
}

// MustDefaultGraph builds the graph of Order and DefaultEdges.
func MustDefaultGraph() *Graph {
	g, err := NewGraph(Order, DefaultEdges)
	if err != nil {
		panic(err)
	}
	return g
}

// Stages returns all stages in pipeline order.
func (g *Graph) Stages() []StageID {
	return slices.Clone(g.order)
}

// Requires returns the direct prerequisites of s.
func (g *Graph) Requires(s StageID) []StageID {
	return slices.Clone(g.deps[s])
}

// Check reports a *engine.PrerequisiteError listing the direct
// prerequisites of s that present says are absent.
func (g *Graph) Check(s StageID, present func(StageID) bool) error {
	var missing []string
	for _, d := range g.deps[s] {
		if !present(d) {
			missing = append(missing, string(d))
		}
	}
	if len(missing) > 0 {
		return &engine.PrerequisiteError{Stage: string(s), Missing: missing}
	}
	return nil
}

// Dependents returns every stage that transitively reads s, in pipeline order.
func (g *Graph) Dependents(s StageID) []StageID {
	seen := map[StageID]bool{}
	stack := slices.Clone(g.rdeps[s])
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[n] {
			continue
		}
		seen[n] = true
		stack = append(stack, g.rdeps[n]...)
	}
	var out []StageID
	for _, st := range g.order {
		if seen[st] {
			out = append(out, st)
		}
	}
	return out
}
