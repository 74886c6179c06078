package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/anatolykoptev/go_ytinsight/internal/engine"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/report"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/sources"
	"github.com/anatolykoptev/go_ytinsight/internal/engine/stages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeChannel struct {
	channel  engine.Channel
	videos   []engine.Video
	comments map[string][]engine.Comment
}

type fakePlatform struct {
	channels map[string]*fakeChannel
}

func newPlatform() *fakePlatform {
	return &fakePlatform{channels: map[string]*fakeChannel{}}
}

// add registers a channel with n videos published daysAgo+i days back.
func (p *fakePlatform) add(id, title string, n, daysAgo int, comments ...string) {
	fc := &fakeChannel{
		channel:  engine.Channel{ID: id, UploadsRef: "UU" + id, Title: title},
		comments: map[string][]engine.Comment{},
	}
	now := time.Now().UTC()
	for i := range n {
		vid := id + "-v" + strconv.Itoa(i)
		fc.videos = append(fc.videos, engine.Video{
			ID:          vid,
			Title:       "影片 " + strconv.Itoa(i),
			PublishedAt: now.AddDate(0, 0, -(daysAgo + i)),
			ViewCount:   int64(1000 - i),
		})
		for _, c := range comments {
			fc.comments[vid] = append(fc.comments[vid], engine.Comment{VideoID: vid, Author: "fan", Text: c})
		}
		fc.comments[vid] = append(fc.comments[vid], engine.Comment{VideoID: vid, Author: title, Text: "謝謝大家怎麼這麼好"})
	}
	p.channels[id] = fc
}

func (p *fakePlatform) byUploads(ref string) *fakeChannel {
	for _, c := range p.channels {
		if c.channel.UploadsRef == ref {
			return c
		}
	}
	return nil
}

func (p *fakePlatform) Channel(_ context.Context, id string) (engine.Channel, error) {
	c, ok := p.channels[id]
	if !ok {
		return engine.Channel{}, fmt.Errorf("%w: %s", engine.ErrChannelNotFound, id)
	}
	return c.channel, nil
}

func (p *fakePlatform) PlaylistVideoIDs(_ context.Context, ref, _ string) (sources.Page[string], error) {
	var page sources.Page[string]
	if c := p.byUploads(ref); c != nil {
		for _, v := range c.videos {
			page.Items = append(page.Items, v.ID)
		}
	}
	return page, nil
}

func (p *fakePlatform) Videos(_ context.Context, ids []string) ([]engine.Video, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []engine.Video
	for _, c := range p.channels {
		for _, v := range c.videos {
			if want[v.ID] {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

func (p *fakePlatform) CommentThreads(_ context.Context, videoID, _ string) (sources.Page[engine.Comment], error) {
	for _, c := range p.channels {
		if cm, ok := c.comments[videoID]; ok {
			return sources.Page[engine.Comment]{Items: cm}, nil
		}
	}
	return sources.Page[engine.Comment]{}, nil
}

// scriptLLM answers every prompt with a numbered marker. failOn makes
// prompts containing that text fail.
type scriptLLM struct {
	calls  int
	failOn string
}

func (s *scriptLLM) Complete(_ context.Context, prompt string) (string, error) {
	s.calls++
	if s.failOn != "" && strings.Contains(prompt, s.failOn) {
		return "", errors.New("model unavailable")
	}
	return "ANSWER-" + strconv.Itoa(s.calls), nil
}

type docStore struct {
	shareErr error
	text     string
}

func (d *docStore) CreateDocument(_ context.Context, title, _ string) (report.DocumentRef, error) {
	return report.DocumentRef{ID: "doc1", URL: report.DocumentURL("doc1"), Title: title}, nil
}

func (d *docStore) InsertText(_ context.Context, _, text string) error {
	d.text = text
	return nil
}

func (d *docStore) GrantAccess(_ context.Context, _, _, _ string) error { return d.shareErr }

type harness struct {
	m     *Machine
	llm   *scriptLLM
	store *docStore
	plat  *fakePlatform
}

func newHarness() *harness {
	plat := newPlatform()
	plat.add("UC1", "阿明", 5, 1, "這個怎麼操作？", "讚")
	plat.add("UC2", "小華", 3, 1, "如何開始？")
	plat.add("UCold", "老頻道", 3, 400, "怎麼辦？")
	llm := &scriptLLM{}
	store := &docStore{}
	return &harness{
		m:     NewMachine(plat, llm, report.NewExporter(store, "", "")),
		llm:   llm,
		store: store,
		plat:  plat,
	}
}

// runToInsight drives the machine to InsightReady.
func (h *harness) runToInsight(t *testing.T, channel string) {
	t.Helper()
	ctx := context.Background()
	_, err := h.m.Lock(ctx, channel)
	require.NoError(t, err)
	_, err = h.m.FetchVideos(ctx, 0)
	require.NoError(t, err)
	_, err = h.m.AnalyzeChannel(ctx)
	require.NoError(t, err)
	_, err = h.m.FetchComments(ctx, 180, nil)
	require.NoError(t, err)
	_, err = h.m.AnalyzePainPoints(ctx)
	require.NoError(t, err)
	_, err = h.m.AnalyzeInsight(ctx, stages.CategoryOnlineCourse)
	require.NoError(t, err)
	require.Equal(t, StateInsightReady, h.m.Status().State)
}

// --- tests ---

func TestMachine_FullRun(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	assert.Equal(t, StateIdle, h.m.Status().State)
	_, err := h.m.Lock(ctx, "UC1")
	require.NoError(t, err)
	assert.Equal(t, StateLocked, h.m.Status().State)

	listing, err := h.m.FetchVideos(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, listing.Videos, 5)
	_, err = h.m.AnalyzeChannel(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateCatalogReady, h.m.Status().State)

	res, err := h.m.FetchComments(ctx, 180, nil)
	require.NoError(t, err)
	assert.Len(t, res.Set.Comments, 10, "channel's own comments excluded")
	assert.Len(t, res.Questions, 5, "only 這個怎麼操作？ qualifies on each video")
	_, err = h.m.AnalyzePainPoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateCommentsReady, h.m.Status().State)

	_, err = h.m.AnalyzeInsight(ctx, stages.CategoryApp)
	require.NoError(t, err)
	assert.Equal(t, StateInsightReady, h.m.Status().State)

	_, err = h.m.SuggestMonetization(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, StateMonetizationReady, h.m.Status().State)

	p, err := h.m.UseMonetizationAsProduct()
	require.NoError(t, err)
	assert.Equal(t, "generated", p.Source())

	_, err = h.m.BuildBVP(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateBvpReady, h.m.Status().State)

	_, err = h.m.AnalyzeFunnel(ctx, FunnelRequest{Start: stages.FunnelUnaware, End: stages.FunnelTrial})
	require.NoError(t, err)
	assert.Equal(t, StateFunnelReady, h.m.Status().State)

	ref, err := h.m.Export(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, "阿明_YouTube頻道AI策略分析報告", ref.Title)
	st := h.m.Status()
	assert.Equal(t, StateComplete, st.State)
	require.NotNil(t, st.Report)
	assert.Equal(t, "doc1", st.Report.ID)

	last := -1
	for _, l := range reportLabels {
		a, ok := h.m.Artifact(l.stage)
		require.True(t, ok, l.stage)
		idx := strings.Index(h.store.text, "## "+l.label+"\n\n"+a.Text)
		require.GreaterOrEqual(t, idx, 0, l.label)
		assert.Greater(t, idx, last)
		last = idx
	}
}

func TestMachine_Gating(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	_, err := h.m.FetchVideos(ctx, 0)
	assert.ErrorIs(t, err, engine.ErrNoSession)

	_, err = h.m.Lock(ctx, "UC1")
	require.NoError(t, err)

	_, err = h.m.AnalyzeChannel(ctx)
	var pe *engine.PrerequisiteError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, []string{"videos"}, pe.Missing)

	_, err = h.m.FetchComments(ctx, 180, nil)
	assert.ErrorIs(t, err, engine.ErrPrerequisiteMissing)
	_, err = h.m.AnalyzeInsight(ctx, stages.CategoryApp)
	assert.ErrorIs(t, err, engine.ErrPrerequisiteMissing)
	_, err = h.m.BuildBVP(ctx)
	assert.ErrorIs(t, err, engine.ErrPrerequisiteMissing)
	_, err = h.m.SetProductDescription("x")
	assert.ErrorIs(t, err, engine.ErrPrerequisiteMissing)
	_, err = h.m.Export(ctx, "")
	assert.ErrorIs(t, err, engine.ErrPrerequisiteMissing)
	assert.Zero(t, h.llm.calls, "gated stages never reach the model")
}

func TestMachine_LockResets(t *testing.T) {
	h := newHarness()
	h.runToInsight(t, "UC1")
	first := h.m.Status()

	st, err := h.m.Lock(context.Background(), "UC2")
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, st.SessionID)
	assert.Equal(t, StateLocked, st.State)
	assert.Empty(t, st.Present, "new channel starts with nothing")
	assert.Equal(t, "小華", st.Channel.Title)
	_, ok := h.m.Artifact(StageInsight)
	assert.False(t, ok)
}

func TestMachine_LockNotFoundKeepsSession(t *testing.T) {
	h := newHarness()
	h.runToInsight(t, "UC1")
	before := h.m.Status()

	st, err := h.m.Lock(context.Background(), "UCmissing")
	assert.ErrorIs(t, err, engine.ErrChannelNotFound)
	assert.Equal(t, before.SessionID, st.SessionID)
	assert.Equal(t, StateInsightReady, st.State)
}

func TestMachine_SkipMonetization(t *testing.T) {
	h := newHarness()
	h.runToInsight(t, "UC1")
	ctx := context.Background()

	_, err := h.m.UseMonetizationAsProduct()
	assert.ErrorIs(t, err, engine.ErrPrerequisiteMissing, "generated product needs monetization")

	p, err := h.m.SetProductDescription("  8 堂入門線上課程，附社群問答  ")
	require.NoError(t, err)
	assert.Equal(t, "manual", p.Source())
	assert.Equal(t, "8 堂入門線上課程，附社群問答", p.Text())

	_, err = h.m.BuildBVP(ctx)
	require.NoError(t, err)
	st := h.m.Status()
	assert.Equal(t, StateBvpReady, st.State)
	assert.NotContains(t, st.Present, StageMonetization)

	_, err = h.m.AnalyzeFunnel(ctx, FunnelRequest{Segment: stages.SegmentAppPaid, Start: stages.FunnelFirstPurchase, End: stages.FunnelAdvocate})
	require.NoError(t, err)
	_, err = h.m.Export(ctx, "")
	require.NoError(t, err)
	assert.NotContains(t, h.store.text, "商業變現建議")
	assert.Equal(t, 5, strings.Count(h.store.text, "========================================"))
}

func TestMachine_InvalidatesDownstream(t *testing.T) {
	h := newHarness()
	h.runToInsight(t, "UC1")
	ctx := context.Background()

	_, err := h.m.SuggestMonetization(ctx, "")
	require.NoError(t, err)
	_, err = h.m.UseMonetizationAsProduct()
	require.NoError(t, err)
	_, err = h.m.BuildBVP(ctx)
	require.NoError(t, err)

	// Regenerating monetization discards the product taken from it.
	_, err = h.m.SuggestMonetization(ctx, stages.CategoryApp)
	require.NoError(t, err)
	st := h.m.Status()
	assert.NotContains(t, st.Present, StageProduct)
	assert.NotContains(t, st.Present, StageBVP)
	assert.Contains(t, st.Present, StageMonetization)

	// A manual product does not depend on monetization.
	_, err = h.m.SetProductDescription("手寫描述")
	require.NoError(t, err)
	_, err = h.m.BuildBVP(ctx)
	require.NoError(t, err)
	_, err = h.m.SuggestMonetization(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, h.m.Status().Present, StageBVP)

	// Re-running the insight discards everything after it.
	_, err = h.m.AnalyzeInsight(ctx, stages.CategoryApp)
	require.NoError(t, err)
	st = h.m.Status()
	assert.Equal(t, StateInsightReady, st.State)
	for _, gone := range []StageID{StageMonetization, StageProduct, StageBVP, StageFunnel, StageReport} {
		assert.NotContains(t, st.Present, gone)
	}
	assert.Contains(t, st.Present, StagePainPoints)

	// Re-fetching videos discards every analysis.
	_, err = h.m.FetchVideos(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []StageID{StageVideos}, h.m.Status().Present)
}

func TestMachine_EmptyWindowPlaceholder(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	_, err := h.m.Lock(ctx, "UCold")
	require.NoError(t, err)
	_, err = h.m.FetchVideos(ctx, 0)
	require.NoError(t, err)
	_, err = h.m.AnalyzeChannel(ctx)
	require.NoError(t, err)
	calls := h.llm.calls

	res, err := h.m.FetchComments(ctx, 180, nil)
	require.NoError(t, err)
	assert.Zero(t, res.Set.Qualifying)
	assert.Empty(t, res.Set.Comments)

	a, err := h.m.AnalyzePainPoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, engine.PlaceholderNoQuestions, a.Text)
	assert.Equal(t, calls, h.llm.calls)
	assert.Equal(t, StateCommentsReady, h.m.Status().State)

	_, err = h.m.AnalyzeInsight(ctx, stages.CategoryOnlineCourse)
	assert.NoError(t, err, "pipeline advances past the placeholder")
}

func TestMachine_FailedStageLeavesSession(t *testing.T) {
	h := newHarness()
	h.runToInsight(t, "UC1")
	ctx := context.Background()
	before, _ := h.m.Artifact(StageInsight)

	h.llm.failOn = "目標客群洞察"
	_, err := h.m.AnalyzeInsight(ctx, stages.CategoryApp)
	var ext *engine.ExternalCallError
	require.ErrorAs(t, err, &ext)
	assert.Contains(t, err.Error(), "model unavailable")

	after, ok := h.m.Artifact(StageInsight)
	require.True(t, ok)
	assert.Equal(t, before, after)
	assert.Equal(t, StateInsightReady, h.m.Status().State)
}

func TestMachine_FunnelValidation(t *testing.T) {
	h := newHarness()
	h.runToInsight(t, "UC1")
	ctx := context.Background()
	_, err := h.m.SetProductDescription("d")
	require.NoError(t, err)
	_, err = h.m.BuildBVP(ctx)
	require.NoError(t, err)

	_, err = h.m.AnalyzeFunnel(ctx, FunnelRequest{Start: stages.FunnelRepeat, End: stages.FunnelAware})
	var ve *engine.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.NotContains(t, h.m.Status().Present, StageFunnel)
}

func TestMachine_PartialShare(t *testing.T) {
	h := newHarness()
	h.runToInsight(t, "UC1")
	ctx := context.Background()
	_, err := h.m.SetProductDescription("d")
	require.NoError(t, err)
	_, err = h.m.BuildBVP(ctx)
	require.NoError(t, err)
	_, err = h.m.AnalyzeFunnel(ctx, FunnelRequest{Start: stages.FunnelUnaware, End: stages.FunnelAware})
	require.NoError(t, err)

	h.store.shareErr = errors.New("no such user")
	ref, err := h.m.Export(ctx, "ghost@example.com")
	var se *report.ShareError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "doc1", ref.ID)

	st := h.m.Status()
	assert.Equal(t, StateComplete, st.State, "document exists even though sharing failed")
	assert.Contains(t, st.Gaps[StageReport], "no such user")
}

func TestMachine_ExportTable(t *testing.T) {
	h := newHarness()
	ctx := context.Background()
	var buf bytes.Buffer

	assert.ErrorIs(t, h.m.ExportTable(TableVideos, &buf), engine.ErrNoSession)

	_, err := h.m.Lock(ctx, "UC2")
	require.NoError(t, err)
	assert.ErrorIs(t, h.m.ExportTable(TableVideos, &buf), engine.ErrPrerequisiteMissing)

	_, err = h.m.FetchVideos(ctx, 0)
	require.NoError(t, err)
	require.NoError(t, h.m.ExportTable(TableVideos, &buf))
	assert.Equal(t, 4, strings.Count(buf.String(), "\n"), "header plus three videos")

	assert.Error(t, h.m.ExportTable(Table("playlists"), &buf))
}

func TestMachine_Reset(t *testing.T) {
	h := newHarness()
	h.runToInsight(t, "UC1")
	st := h.m.Reset()
	assert.Equal(t, StateIdle, st.State)
	assert.Empty(t, st.SessionID)
	_, err := h.m.AnalyzeChannel(context.Background())
	assert.ErrorIs(t, err, engine.ErrNoSession)
}
