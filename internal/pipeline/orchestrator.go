// Package pipeline sequences the full analysis: ingest, claim extraction,
// embedding, dedup, scoring, arbitration, reputation update, and UI
// assembly.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mvasconcelos/horaculo/internal/adapters/ai"
	"github.com/mvasconcelos/horaculo/internal/analysis"
	"github.com/mvasconcelos/horaculo/internal/arbiter"
	"github.com/mvasconcelos/horaculo/internal/memory"
	"github.com/mvasconcelos/horaculo/pkg/logger"
	"github.com/mvasconcelos/horaculo/pkg/models"
)

// The two valid empty outcomes. Callers map them to {error: code} payloads.
var (
	ErrNoData   = errors.New("NO_DATA")
	ErrFiltered = errors.New("FILTERED")
)

// Ingestor retrieves raw signals for a query
type Ingestor interface {
	Fetch(ctx context.Context, query string) []models.Signal
}

// Embedder produces unit vectors per text
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Summarizer produces the strategic analysis
type Summarizer interface {
	Summarize(ctx context.Context, payload ai.Payload) (string, error)
}

// Alerter delivers outbound notifications, best-effort
type Alerter interface {
	Notify(ctx context.Context, text string) error
}

// ResultCache memoizes full analysis payloads
type ResultCache interface {
	Get(ctx context.Context, query string) (*models.Analysis, bool)
	Set(ctx context.Context, query string, analysis *models.Analysis)
}

// Pipeline is the request-scoped analysis orchestrator. Persistent stores
// are the only shared mutable state; one Pipeline serves concurrent
// requests.
type Pipeline struct {
	ingest     Ingestor
	embedder   Embedder
	sentiment  analysis.Classifier
	store      memory.Store
	updater    *memory.Updater
	results    ResultCache
	summarizer Summarizer
	alerts     Alerter

	dedupeThreshold float64
	copyThreshold   float64
}

// New creates new analysis pipeline. results, summarizer, and alerts may
// be nil; the corresponding capability is skipped.
func New(
	ingest Ingestor,
	embedder Embedder,
	sentiment analysis.Classifier,
	store memory.Store,
	locker memory.KeyLocker,
	results ResultCache,
	summarizer Summarizer,
	alerts Alerter,
) *Pipeline {
	return &Pipeline{
		ingest:          ingest,
		embedder:        embedder,
		sentiment:       sentiment,
		store:           store,
		updater:         memory.NewUpdater(store, locker),
		results:         results,
		summarizer:      summarizer,
		alerts:          alerts,
		dedupeThreshold: analysis.DefaultDedupeThreshold,
		copyThreshold:   arbiter.DefaultCopyThreshold,
	}
}

// RunQuery executes the full pipeline for a free-text query
func (p *Pipeline) RunQuery(ctx context.Context, query string, useLLM bool) (*models.Analysis, error) {
	start := time.Now()
	logger.Info("query started", zap.String("query", query))

	if p.results != nil {
		if cached, ok := p.results.Get(ctx, query); ok {
			return cached, nil
		}
	}

	signals := p.ingest.Fetch(ctx, query)
	if len(signals) == 0 {
		return nil, ErrNoData
	}

	texts := make([]string, len(signals))
	for i, s := range signals {
		texts[i] = s.Text
	}

	vectors, err := p.embedder.EmbedBatch(ctx, ExtractClaims(texts))
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}

	kept, keptVecs := analysis.Dedupe(signals, vectors, p.dedupeThreshold)
	if len(kept) == 0 {
		return nil, ErrFiltered
	}

	keptTexts := make([]string, len(kept))
	keptSources := make([]string, len(kept))
	for i, s := range kept {
		keptTexts[i] = s.Text
		keptSources[i] = s.Source
	}

	sentiments := analysis.SentimentScores(ctx, p.sentiment, keptTexts)

	credibility := make([]float64, len(kept))
	for i, src := range keptSources {
		credibility[i] = memory.Credibility(ctx, p.store, src)
	}

	clusterLabels := analysis.Cluster(keptVecs, analysis.ChooseK(len(keptVecs)))

	engine := arbiter.NewEngine(p.copyThreshold)
	verdicts := engine.AnalyzeBatch(keptVecs, keptSources)

	winnerIdx, globalEntropy := arbiter.SelectWinner(verdicts, credibility)
	finalVerdict := verdicts[winnerIdx]
	winnerSource := keptSources[winnerIdx]

	// A canceled request must not touch reputation.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	p.updater.Apply(ctx, keptSources, winnerSource, finalVerdict.SourceScores)

	coordinationScore := analysis.Coordination(keptSources)
	psych := AnalyzePsychology(sentiments, finalVerdict.Intensity, coordinationScore)

	trust := memory.Credibility(ctx, p.store, winnerSource)
	eden := models.EdenSignal{
		Detected:   trust > 0.85 && finalVerdict.Intensity < 0.5,
		Confidence: trust,
	}
	if trust > 0.85 {
		eden.Source = &winnerSource
	}

	hardData := ExtractHardData(keptTexts)
	summary := p.summarize(ctx, query, useLLM, keptTexts, keptSources, clusterLabels, finalVerdict, eden, psych, hardData, globalEntropy)

	p.recordEvent(ctx, query, hardData, finalVerdict.Explanation)

	result := &models.Analysis{
		Verdict: models.VerdictSummary{
			WinnerSource: winnerSource,
			Intensity:    finalVerdict.Intensity,
			Entropy:      globalEntropy,
			Inconclusive: globalEntropy > 1.8,
		},
		EdenSignal: eden,
		Psychology: psych,
		Summary:    summary,
		HardData:   hardData,
		UI:         p.assembleUI(ctx, kept, sentiments, clusterLabels, eden, finalVerdict, psych, coordinationScore, globalEntropy, summary, hardData, start),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	if p.results != nil {
		p.results.Set(ctx, query, result)
	}

	if p.alerts != nil && (eden.Detected || finalVerdict.Intensity > 0.6) {
		alertText := truncate(summary, 200)
		alertCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := p.alerts.Notify(alertCtx, fmt.Sprintf("🚨 EDEN SIGNAL\n%s\n%s", query, alertText)); err != nil {
			logger.Warn("alert delivery failed", zap.Error(err))
		}
		cancel()
	}

	logger.Info("query completed",
		zap.String("query", query),
		zap.String("winner", winnerSource),
		zap.Float64("intensity", finalVerdict.Intensity),
		zap.Int("sources", len(kept)),
		zap.Duration("duration", time.Since(start)),
	)

	return result, nil
}

// summarize picks the strategic LLM path when requested and available,
// falling back to the local summary on any failure.
func (p *Pipeline) summarize(
	ctx context.Context,
	query string,
	useLLM bool,
	keptTexts, keptSources []string,
	clusterLabels []int,
	verdict models.Verdict,
	eden models.EdenSignal,
	psych models.Psychology,
	hardData models.HardData,
	entropy float64,
) string {
	if !useLLM || p.summarizer == nil {
		return LocalSummary(keptTexts)
	}

	sieved := make([]string, len(keptTexts))
	for i, t := range keptTexts {
		sieved[i] = TokenSieve(t)
	}

	edenSource := ""
	if eden.Source != nil {
		edenSource = *eden.Source
	}

	payload := ai.Payload{
		RawTexts:       sieved,
		Verdict:        verdict.Explanation,
		Intensity:      verdict.Intensity,
		EdenDetected:   eden.Detected,
		EdenSource:     edenSource,
		Mood:           psych.Mood,
		IsCrowded:      psych.IsCrowded,
		HardData:       TokenSieve(FormatHardData(hardData)),
		ClusterContext: TokenSieve(clusterContext(keptTexts, keptSources, clusterLabels)),
		MemoryContext:  TokenSieve(p.memoryContext(ctx, query)),
		Entropy:        entropy,
	}

	summary, err := p.summarizer.Summarize(ctx, payload)
	if err != nil {
		logger.Warn("strategic summary failed, using local fallback", zap.Error(err))
		return LocalSummary(keptTexts)
	}
	return summary
}

// memoryContext folds similar past events into prompt context
func (p *Pipeline) memoryContext(ctx context.Context, query string) string {
	events, err := p.store.SimilarEvents(ctx, query, 2)
	if err != nil {
		logger.Warn("similar events lookup failed", zap.Error(err))
		return ""
	}

	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, fmt.Sprintf("%s: %s", e.Query, e.VerdictSummary))
	}
	return strings.Join(lines, "\n")
}

// recordEvent appends the run to the analysis history; failures do not
// fail the request.
func (p *Pipeline) recordEvent(ctx context.Context, query string, hardData models.HardData, verdictSummary string) {
	payload, err := json.Marshal(hardData)
	if err != nil {
		logger.Error("failed to serialize hard data for history", zap.Error(err))
		return
	}
	if err := p.store.StoreEvent(ctx, query, string(payload), verdictSummary); err != nil {
		logger.Error("failed to store event history", zap.Error(err))
	}
}

// clusterContext renders up to two representatives per cluster
func clusterContext(texts, sources []string, labels []int) string {
	groups := make(map[int][]string)
	for i, cid := range labels {
		if len(groups[cid]) >= 2 {
			continue
		}
		text := truncate(texts[i], 160)
		groups[cid] = append(groups[cid], fmt.Sprintf("[%s] %s", sources[i], text))
	}

	ids := make([]int, 0, len(groups))
	for cid := range groups {
		ids = append(ids, cid)
	}
	sort.Ints(ids)

	lines := make([]string, 0, len(ids))
	for _, cid := range ids {
		lines = append(lines, fmt.Sprintf("Grupo %d: %s", cid, strings.Join(groups[cid], " | ")))
	}
	return strings.Join(lines, "\n")
}

// assembleUI builds the four UI screens
func (p *Pipeline) assembleUI(
	ctx context.Context,
	kept []models.Signal,
	sentiments []float64,
	clusterLabels []int,
	eden models.EdenSignal,
	verdict models.Verdict,
	psych models.Psychology,
	coordinationScore, entropy float64,
	summary string,
	hardData models.HardData,
	start time.Time,
) models.UIPayload {
	points := make([]models.ArbitragePoint, len(kept))
	for i, s := range kept {
		cred := 0.5
		if weight, ok, err := p.store.TrustedWeight(ctx, s.Source); err == nil && ok {
			cred = weight
		}
		label := truncate(s.Title, 50)
		points[i] = models.ArbitragePoint{
			Source:      s.Source,
			Sentiment:   sentiments[i],
			Credibility: cred,
			Label:       label,
		}
	}

	return models.UIPayload{
		ScreenArbitrage: models.ScreenArbitrage{
			Points:         points,
			EdenDetected:   eden.Detected,
			EdenSource:     eden.Source,
			IntensityScore: verdict.Intensity,
		},
		ScreenIntelligence: models.ScreenIntelligence{
			Clusters:          clusterGroups(kept, sentiments, clusterLabels),
			CoordinationScore: coordinationScore,
		},
		ScreenStress: models.ScreenStress{
			Entropy:   entropy,
			Mood:      psych.Mood,
			IsTrap:    psych.IsTrap,
			IsCrowded: psych.IsCrowded,
			Asymmetry: psych.AsymmetryLevel,
		},
		ScreenPortal: models.ScreenPortal{
			Summary:  summary,
			HardData: hardData,
			Meta: models.PortalMeta{
				ExecutionTime: fmt.Sprintf("%.2fs", time.Since(start).Seconds()),
				SourcesCount:  len(kept),
			},
		},
	}
}

// clusterGroups aggregates sources and mean sentiment per cluster label
func clusterGroups(kept []models.Signal, sentiments []float64, labels []int) []models.ClusterGroup {
	byID := make(map[int]*models.ClusterGroup)
	counts := make(map[int]int)

	for i, cid := range labels {
		group, ok := byID[cid]
		if !ok {
			group = &models.ClusterGroup{ID: cid, Sources: []string{}}
			byID[cid] = group
		}
		group.Sources = append(group.Sources, kept[i].Source)
		group.SentimentAvg += sentiments[i]
		counts[cid]++
	}

	ids := make([]int, 0, len(byID))
	for cid := range byID {
		ids = append(ids, cid)
	}
	sort.Ints(ids)

	groups := make([]models.ClusterGroup, 0, len(ids))
	for _, cid := range ids {
		g := byID[cid]
		g.SentimentAvg /= float64(counts[cid])
		groups = append(groups, *g)
	}
	return groups
}
