package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/report"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/sources"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/stages"
)

// reportLabels are the section headings of the exported report.
var reportLabels = []struct {
	stage StageID
	label string
}{
	{StageChannelAnalysis, "頻道受眾分析"},
	{StagePainPoints, "粉絲痛點洞察"},
	{StageInsight, "目標客群 Insight"},
	{StageMonetization, "商業變現建議"},
	{StageBVP, "品牌價值主張 (BVP)"},
	{StageFunnel, "行銷 Funnel 分析"},
}

// Table selects a tabular export.
type Table string

const (
	TableVideos   Table = "videos"
	TableComments Table = "comments"
)

// Status is a read-only view of the session.
type Status struct {
	SessionID string              `json:"session_id,omitempty"`
	Channel   *engine.Channel     `json:"channel,omitempty"`
	State     State               `json:"state"`
	Present   []StageID           `json:"present"`
	Runnable  []StageID           `json:"runnable"`
	Gaps      map[StageID]string  `json:"gaps,omitempty"`
	Product   string              `json:"product_source,omitempty"`
	Report    *report.DocumentRef `json:"report,omitempty"`
}

// CommentsResult is the outcome of FetchComments.
type CommentsResult struct {
	Set       sources.CommentSet `json:"set"`
	Questions []engine.Comment   `json:"questions"`
	Dropped   []StageID          `json:"dropped,omitempty"`
}

// FunnelRequest scopes AnalyzeFunnel. An empty Product falls back to the
// category the insight was written for.
type FunnelRequest struct {
	Segment stages.AudienceSegment
	Product stages.ProductCategory
	Start   stages.FunnelStage
	End     stages.FunnelStage
}

// Machine runs the pipeline for one session at a time.
// Every operation holds mu for its full duration.
type Machine struct {
	mu       sync.Mutex
	graph    *Graph
	catalog  *sources.Catalog
	comments *sources.CommentCollector
	runner   *stages.Runner
	exporter *report.Exporter
	now      func() time.Time

	session *Session
}

// NewMachine wires the pipeline to its collaborators.
func NewMachine(platform sources.Platform, llm engine.Completer, exporter *report.Exporter) *Machine {
	return &Machine{
		graph:    MustDefaultGraph(),
		catalog:  sources.NewCatalog(platform),
		comments: sources.NewCommentCollector(platform),
		runner:   stages.NewRunner(llm),
		exporter: exporter,
		now:      time.Now,
	}
}

// gate returns the session if stage may run now.
func (m *Machine) gate(stage StageID) (*Session, error) {
	if m.session == nil {
		return nil, engine.ErrNoSession
	}
	if err := m.graph.Check(stage, m.session.Has); err != nil {
		return nil, err
	}
	return m.session, nil
}

func (m *Machine) putArtifact(s *Session, stage StageID, text string, params map[string]string) (Artifact, []StageID) {
	a := Artifact{
		Stage:     stage,
		Text:      text,
		Inputs:    m.graph.Requires(stage),
		Params:    params,
		CreatedAt: m.now(),
	}
	dropped := s.put(m.graph, stage, a.Inputs, func() { s.artifacts[stage] = a })
	logDropped(stage, dropped)
	return a, dropped
}

func logDropped(stage StageID, dropped []StageID) {
	if len(dropped) == 0 {
		return
	}
	names := make([]string, len(dropped))
	for i, d := range dropped {
		names[i] = string(d)
	}
	slog.Info("pipeline: downstream discarded", slog.String("stage", string(stage)), slog.String("dropped", strings.Join(names, ",")))
}

// Lock resolves channelID and starts a fresh session for it. Any previous
// session is discarded, even for the same channel. When the channel cannot
// be resolved the current session is left as it was.
func (m *Machine) Lock(ctx context.Context, channelID string) (Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch, err := m.catalog.Resolve(ctx, channelID)
	if err != nil {
		return m.status(), err
	}
	prev := ""
	if m.session != nil {
		prev = m.session.ID
	}
	m.session = newSession(ch, m.now())
	slog.Info("pipeline: channel locked",
		slog.String("channel_id", ch.ID), slog.String("session", m.session.ID), slog.String("replaced", prev))
	return m.status(), nil
}

// FetchVideos collects the channel catalog, capped at limit (<= 0 uses the
// configured cap). A partial catalog is kept and returned with its
// *engine.PartialCollectionError; a catalog with no videos and an error is
// not stored.
func (m *Machine) FetchVideos(ctx context.Context, limit int) (sources.VideoListing, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.gate(StageVideos)
	if err != nil {
		return sources.VideoListing{}, err
	}
	listing, err := m.catalog.ListVideos(ctx, s.Channel.UploadsRef, limit)
	var partial *engine.PartialCollectionError
	if err != nil && (!errors.As(err, &partial) || len(listing.Videos) == 0) {
		return listing, err
	}
	dropped := s.put(m.graph, StageVideos, nil, func() { s.videos = &listing })
	logDropped(StageVideos, dropped)
	if partial != nil {
		s.gaps[StageVideos] = partial.Error()
	}
	return listing, err
}

// AnalyzeChannel runs the channel and audience analysis over the catalog.
func (m *Machine) AnalyzeChannel(ctx context.Context) (Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.gate(StageChannelAnalysis)
	if err != nil {
		return Artifact{}, err
	}
	text, err := m.runner.AnalyzeChannel(ctx, s.Channel.ID, s.videos.Videos)
	if err != nil {
		return Artifact{}, err
	}
	a, _ := m.putArtifact(s, StageChannelAnalysis, text, map[string]string{
		"videos": strconv.Itoa(len(s.videos.Videos)),
	})
	return a, nil
}

// FetchComments collects comments on videos published within windowDays and
// filters the question-like ones. Comments written under the channel's own
// title are excluded. A set with skipped videos is kept and returned with its
// *engine.PartialCollectionError.
func (m *Machine) FetchComments(ctx context.Context, windowDays int, progress sources.ProgressFunc) (CommentsResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.gate(StageComments)
	if err != nil {
		return CommentsResult{}, err
	}
	set, err := m.comments.Collect(ctx, s.videos.Videos, windowDays, s.Channel.Title, progress)
	var partial *engine.PartialCollectionError
	if err != nil && !errors.As(err, &partial) {
		return CommentsResult{}, err
	}
	questions := engine.FilterQuestions(set.Comments)
	dropped := s.put(m.graph, StageComments, []StageID{StageVideos}, func() {
		s.comments = &set
		s.questions = questions
	})
	logDropped(StageComments, dropped)
	if partial != nil {
		s.gaps[StageComments] = partial.Error()
	}
	return CommentsResult{Set: set, Questions: questions, Dropped: dropped}, err
}

// AnalyzePainPoints analyses the question comments. With none it stores
// engine.PlaceholderNoQuestions and the pipeline moves on.
func (m *Machine) AnalyzePainPoints(ctx context.Context) (Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.gate(StagePainPoints)
	if err != nil {
		return Artifact{}, err
	}
	text, err := m.runner.AnalyzePainPoints(ctx, s.Channel.ID, s.questions)
	if err != nil {
		return Artifact{}, err
	}
	a, _ := m.putArtifact(s, StagePainPoints, text, map[string]string{
		"questions": strconv.Itoa(len(s.questions)),
	})
	return a, nil
}

// AnalyzeInsight writes the target-audience insight for product.
func (m *Machine) AnalyzeInsight(ctx context.Context, product stages.ProductCategory) (Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.gate(StageInsight)
	if err != nil {
		return Artifact{}, err
	}
	channel, _ := s.Artifact(StageChannelAnalysis)
	pain, _ := s.Artifact(StagePainPoints)
	text, err := m.runner.AnalyzeInsight(ctx, product, channel.Text, pain.Text)
	if err != nil {
		return Artifact{}, err
	}
	a, _ := m.putArtifact(s, StageInsight, text, map[string]string{"product": string(product)})
	return a, nil
}

// insightProduct is the category the current insight was written for.
func insightProduct(s *Session) stages.ProductCategory {
	a, _ := s.Artifact(StageInsight)
	return stages.ProductCategory(a.Params["product"])
}

// SuggestMonetization proposes product ideas. An empty product reuses the
// insight's category.
func (m *Machine) SuggestMonetization(ctx context.Context, product stages.ProductCategory) (Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.gate(StageMonetization)
	if err != nil {
		return Artifact{}, err
	}
	if product == "" {
		product = insightProduct(s)
	}
	insight, _ := s.Artifact(StageInsight)
	text, err := m.runner.SuggestMonetization(ctx, product, insight.Text)
	if err != nil {
		return Artifact{}, err
	}
	a, _ := m.putArtifact(s, StageMonetization, text, map[string]string{"product": string(product)})
	return a, nil
}

// UseMonetizationAsProduct takes the monetization output as the product
// description. Regenerating monetization later discards it.
func (m *Machine) UseMonetizationAsProduct() (ProductDescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.gate(StageProduct)
	if err != nil {
		return nil, err
	}
	money, ok := s.Artifact(StageMonetization)
	if !ok {
		return nil, &engine.PrerequisiteError{Stage: string(StageProduct), Missing: []string{string(StageMonetization)}}
	}
	return m.putProduct(s, GeneratedProduct{Description: money.Text}), nil
}

// SetProductDescription stores an operator-written product description.
// It does not need the monetization stage.
func (m *Machine) SetProductDescription(text string) (ProductDescription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.gate(StageProduct)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &engine.ValidationError{Field: "product_description", Reason: "required"}
	}
	return m.putProduct(s, ManualProduct{Description: text}), nil
}

func (m *Machine) putProduct(s *Session, p ProductDescription) ProductDescription {
	dropped := s.put(m.graph, StageProduct, p.inputs(), func() { s.product = p })
	logDropped(StageProduct, dropped)
	return p
}

// BuildBVP writes the brand value proposition for the current product.
func (m *Machine) BuildBVP(ctx context.Context) (Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.gate(StageBVP)
	if err != nil {
		return Artifact{}, err
	}
	insight, _ := s.Artifact(StageInsight)
	text, err := m.runner.BuildBVP(ctx, s.product.Text(), insight.Text)
	if err != nil {
		return Artifact{}, err
	}
	a, _ := m.putArtifact(s, StageBVP, text, map[string]string{"product_source": s.product.Source()})
	return a, nil
}

// AnalyzeFunnel writes the barrier and driver analysis for req.
func (m *Machine) AnalyzeFunnel(ctx context.Context, req FunnelRequest) (Artifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.gate(StageFunnel)
	if err != nil {
		return Artifact{}, err
	}
	if req.Product == "" {
		req.Product = insightProduct(s)
	}
	if req.Segment == "" {
		req.Segment = stages.SegmentCommunityFree
	}
	kol := s.Channel.Title
	if kol == "" {
		kol = s.Channel.ID
	}
	params := stages.FunnelParams{KOL: kol, Segment: req.Segment, Product: req.Product, Start: req.Start, End: req.End}
	insight, _ := s.Artifact(StageInsight)
	bvp, _ := s.Artifact(StageBVP)
	text, err := m.runner.AnalyzeFunnel(ctx, params, insight.Text, s.product.Text(), bvp.Text)
	if err != nil {
		return Artifact{}, err
	}
	a, _ := m.putArtifact(s, StageFunnel, text, map[string]string{
		"segment": string(req.Segment),
		"product": string(req.Product),
		"start":   strconv.Itoa(int(req.Start)),
		"end":     strconv.Itoa(int(req.End)),
	})
	return a, nil
}

// Sections returns the report sections present, in pipeline order.
func (s *Session) Sections() []report.Section {
	var out []report.Section
	for _, l := range reportLabels {
		if a, ok := s.Artifact(l.stage); ok {
			out = append(out, report.Section{Label: l.label, Text: a.Text})
		}
	}
	return out
}

// Export composes the report and stores it, sharing it with recipient when
// given. A sharing failure still completes the session: the document ref is
// kept and returned with the *report.ShareError.
func (m *Machine) Export(ctx context.Context, recipient string) (report.DocumentRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, err := m.gate(StageReport)
	if err != nil {
		return report.DocumentRef{}, err
	}
	if m.exporter == nil {
		return report.DocumentRef{}, report.ErrStoreNotConfigured
	}
	name := s.Channel.Title
	if name == "" {
		name = s.Channel.ID
	}
	ref, err := m.exporter.Export(ctx, report.DocumentTitle(name), s.Sections(), recipient)
	if ref.ID == "" {
		return ref, err
	}
	s.put(m.graph, StageReport, m.graph.Requires(StageReport), func() { s.export = &ref })
	if err != nil {
		s.gaps[StageReport] = err.Error()
	}
	return ref, err
}

// ExportTable writes the video catalog or the comment set as CSV.
func (m *Machine) ExportTable(kind Table, w io.Writer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return engine.ErrNoSession
	}
	s := m.session
	switch kind {
	case TableVideos:
		if !s.Has(StageVideos) {
			return &engine.PrerequisiteError{Stage: "table:" + string(kind), Missing: []string{string(StageVideos)}}
		}
		return report.WriteVideosCSV(w, s.videos.Videos)
	case TableComments:
		if !s.Has(StageComments) {
			return &engine.PrerequisiteError{Stage: "table:" + string(kind), Missing: []string{string(StageComments)}}
		}
		return report.WriteCommentsCSV(w, s.comments.Comments)
	}
	return &engine.ValidationError{Field: "table", Reason: fmt.Sprintf("unknown table %q (want videos or comments)", kind)}
}

// Status describes the current session.
func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status()
}

func (m *Machine) status() Status {
	s := m.session
	st := Status{State: s.State(), Present: []StageID{}, Runnable: []StageID{}}
	if s == nil {
		return st
	}
	ch := s.Channel
	st.SessionID = s.ID
	st.Channel = &ch
	for _, id := range m.graph.Stages() {
		if s.Has(id) {
			st.Present = append(st.Present, id)
		} else if m.graph.Check(id, s.Has) == nil {
			st.Runnable = append(st.Runnable, id)
		}
	}
	if len(s.gaps) > 0 {
		st.Gaps = maps.Clone(s.gaps)
	}
	if s.product != nil {
		st.Product = s.product.Source()
	}
	if s.export != nil {
		ref := *s.export
		st.Report = &ref
	}
	return st
}

// Artifact returns a copy of a stored stage output.
func (m *Machine) Artifact(stage StageID) (Artifact, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return Artifact{}, false
	}
	return m.session.Artifact(stage)
}

// Reset discards the session.
func (m *Machine) Reset() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session != nil {
		slog.Info("pipeline: session reset", slog.String("session", m.session.ID))
	}
	m.session = nil
	return m.status()
}
