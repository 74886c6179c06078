package pipeline

import (
	"slices"
	"time"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/report"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/sources"
	"github.com/google/uuid"
)

// Artifact is the opaque text output of one LLM-backed stage.
type Artifact struct {
	Stage     StageID           `json:"stage"`
	Text      string            `json:"text"`
	Inputs    []StageID         `json:"inputs,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// State is the furthest milestone the session has reached.
type State string

const (
	StateIdle              State = "idle"
	StateLocked            State = "locked"
	StateCatalogReady      State = "catalog_ready"
	StateCommentsReady     State = "comments_ready"
	StateInsightReady      State = "insight_ready"
	StateMonetizationReady State = "monetization_ready"
	StateBvpReady          State = "bvp_ready"
	StateFunnelReady       State = "funnel_ready"
	StateComplete          State = "complete"
)

// Session is everything produced for one locked channel.
type Session struct {
	ID        string
	Channel   engine.Channel
	CreatedAt time.Time

	videos    *sources.VideoListing
	comments  *sources.CommentSet
	questions []engine.Comment
	product   ProductDescription
	export    *report.DocumentRef
	artifacts map[StageID]Artifact
	inputs    map[StageID][]StageID
	gaps      map[StageID]string
}

func newSession(ch engine.Channel, now time.Time) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Channel:   ch,
		CreatedAt: now,
		artifacts: map[StageID]Artifact{},
		inputs:    map[StageID][]StageID{},
		gaps:      map[StageID]string{},
	}
}

// Has reports whether the output of stage id is present.
func (s *Session) Has(id StageID) bool {
	if s == nil {
		return false
	}
	switch id {
	case StageVideos:
		return s.videos != nil
	case StageComments:
		return s.comments != nil
	case StageProduct:
		return s.product != nil
	case StageReport:
		return s.export != nil
	}
	_, ok := s.artifacts[id]
	return ok
}

// Artifact returns the text output of an LLM-backed stage.
func (s *Session) Artifact(id StageID) (Artifact, bool) {
	a, ok := s.artifacts[id]
	return a, ok
}

// State derives the milestone from the outputs present.
func (s *Session) State() State {
	if s == nil {
		return StateIdle
	}
	catalog := s.Has(StageVideos) && s.Has(StageChannelAnalysis)
	comments := catalog && s.Has(StageComments) && s.Has(StagePainPoints)
	switch {
	case s.Has(StageReport):
		return StateComplete
	case s.Has(StageFunnel):
		return StateFunnelReady
	case s.Has(StageBVP):
		return StateBvpReady
	case s.Has(StageMonetization):
		return StateMonetizationReady
	case s.Has(StageInsight):
		return StateInsightReady
	case comments:
		return StateCommentsReady
	case catalog:
		return StateCatalogReady
	}
	return StateLocked
}

func (s *Session) discard(id StageID) {
	switch id {
	case StageVideos:
		s.videos = nil
	case StageComments:
		s.comments = nil
		s.questions = nil
	case StageProduct:
		s.product = nil
	case StageReport:
		s.export = nil
	default:
		delete(s.artifacts, id)
	}
	delete(s.inputs, id)
	delete(s.gaps, id)
}

// invalidate discards every present output derived from id, following graph
// edges and the inputs each output recorded when stored. It returns the
// discarded stages in pipeline order.
func (s *Session) invalidate(g *Graph, id StageID) []StageID {
	stale := map[StageID]bool{}
	queue := []StageID{id}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, d := range g.Dependents(n) {
			if !stale[d] {
				stale[d] = true
				queue = append(queue, d)
			}
		}
		for st, in := range s.inputs {
			if !stale[st] && slices.Contains(in, n) {
				stale[st] = true
				queue = append(queue, st)
			}
		}
	}

	var dropped []StageID
	for _, st := range g.Stages() {
		if st != id && stale[st] && s.Has(st) {
			s.discard(st)
			dropped = append(dropped, st)
		}
	}
	return dropped
}

// put replaces the output of id: dependents are discarded first, then apply
// stores the new value and its provenance is recorded.
func (s *Session) put(g *Graph, id StageID, inputs []StageID, apply func()) []StageID {
	dropped := s.invalidate(g, id)
	s.discard(id)
	apply()
	s.inputs[id] = inputs
	return dropped
}
