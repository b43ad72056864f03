// Package analysis turns FFLogs reports into phase progression statistics.
package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"fightprog/internal/fflogs"
	"fightprog/internal/phases"
	"fightprog/internal/stats"
)

// Client analyses reports against a fixed set of phase definitions. It is safe for concurrent use.
type Client struct {
	source      fflogs.Source
	definitions *phases.Collection
	concurrency int
}

type Option func(*Client)

// WithConcurrency bounds how many fights of one report are analysed at once. Values below one
// mean sequential.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n < 1 {
			n = 1
		}
		c.concurrency = n
	}
}

func NewClient(source fflogs.Source, definitions *phases.Collection, opts ...Option) *Client {
	c := &Client{
		source:      source,
		definitions: definitions,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Definitions exposes the loaded phase definitions.
func (c *Client) Definitions() *phases.Collection { return c.definitions }

// FightPredicate selects which fights of a report to analyse.
type FightPredicate func(fflogs.FightSummary) bool

// ByName selects fights whose name is exactly name.
func ByName(name string) FightPredicate {
	return func(f fflogs.FightSummary) bool {
		return f.Name != nil && *f.Name == name
	}
}

// ByID selects a single fight.
func ByID(id int64) FightPredicate {
	return func(f fflogs.FightSummary) bool { return f.ID == id }
}

// Analyse summarises every pull of encounter in a report.
func (c *Client) Analyse(ctx context.Context, codeOrURL, encounter string) (*stats.ReportSummary, error) {
	a, err := c.AnalyseEncounter(ctx, codeOrURL, encounter)
	if err != nil {
		return nil, err
	}
	return &a.Summary, nil
}

// EncounterAnalysis is the outcome of analysing one encounter of a report: every pull in report
// order and their summary.
type EncounterAnalysis struct {
	ReportCode string
	Fights     []stats.FightStatistics
	Summary    stats.ReportSummary
}

// AnalyseEncounter is Analyse keeping the per-pull statistics. A report without a pull of
// encounter is ErrNoMatchingFights.
func (c *Client) AnalyseEncounter(ctx context.Context, codeOrURL, encounter string) (*EncounterAnalysis, error) {
	code, err := ParseReportCode(codeOrURL)
	if err != nil {
		return nil, err
	}

	fights, err := c.AnalyseReport(ctx, code, ByName(encounter))
	if err != nil {
		return nil, err
	}
	if len(fights) == 0 {
		return nil, fmt.Errorf("report %s: %w", code, ErrNoMatchingFights)
	}

	return &EncounterAnalysis{
		ReportCode: code,
		Fights:     fights,
		Summary:    stats.Summarise(fights),
	}, nil
}

// AnalyseFightByID analyses one fight of a report identified by its id.
func (c *Client) AnalyseFightByID(ctx context.Context, codeOrURL string, fightID int64) (*stats.FightStatistics, error) {
	code, err := ParseReportCode(codeOrURL)
	if err != nil {
		return nil, err
	}

	fights, err := c.AnalyseReport(ctx, code, ByID(fightID))
	if err != nil {
		return nil, err
	}
	if len(fights) == 0 {
		return nil, fmt.Errorf("report %s fight %d: %w", code, fightID, ErrNoMatchingFights)
	}
	return &fights[0], nil
}

type job struct {
	fight     fflogs.FightSummary
	encounter phases.Encounter
}

// AnalyseReport analyses every fight of a report matching pred, in report order. Every matching
// fight must be labelled and have phase definitions before any of them is analysed. The first
// failing fight fails the whole report.
func (c *Client) AnalyseReport(ctx context.Context, reportCode string, pred FightPredicate) ([]stats.FightStatistics, error) {
	logger := log.With().Str("request", uuid.NewString()).Str("report", reportCode).Logger()
	ctx = logger.WithContext(ctx)

	list, err := c.source.FetchFights(ctx, reportCode)
	if err != nil {
		return nil, fmt.Errorf("report %s: %w", reportCode, asSourceError(err))
	}
	if list.Start == nil || list.End == nil {
		return nil, fmt.Errorf("report %s: %w", reportCode, ErrUnspecifiedFightTime)
	}
	reportStart := *list.Start

	var jobs []job
	for _, f := range list.Fights {
		if !pred(f) {
			continue
		}
		enc, err := c.lookup(f)
		if err != nil {
			return nil, fmt.Errorf("report %s fight %d: %w", reportCode, f.ID, err)
		}
		jobs = append(jobs, job{fight: f, encounter: enc})
	}
	logger.Info().Int("fights", len(jobs)).Int("concurrency", c.concurrency).Msg("Analysing report")

	results := make([]stats.FightStatistics, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, j := range jobs {
		g.Go(func() error {
			fs, err := c.analyse(gctx, reportCode, j.fight, reportStart, j.encounter)
			if err != nil {
				return err
			}
			results[i] = fs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info().Int("fights", len(results)).Msg("Report analysis complete")
	return results, nil
}

// AnalyseFight analyses one already identified fight. reportStart is the report's wall-clock
// start in epoch milliseconds.
func (c *Client) AnalyseFight(ctx context.Context, reportCode string, fight fflogs.FightSummary, reportStart uint64) (*stats.FightStatistics, error) {
	enc, err := c.lookup(fight)
	if err != nil {
		return nil, fmt.Errorf("report %s fight %d: %w", reportCode, fight.ID, err)
	}
	fs, err := c.analyse(ctx, reportCode, fight, reportStart, enc)
	if err != nil {
		return nil, err
	}
	return &fs, nil
}

func (c *Client) lookup(fight fflogs.FightSummary) (phases.Encounter, error) {
	if fight.Name == nil {
		return phases.Encounter{}, ErrUnlabeledFight
	}
	enc, ok := c.definitions.Get(*fight.Name)
	if !ok {
		return phases.Encounter{}, &UnknownFightError{Name: *fight.Name}
	}
	return enc, nil
}

func (c *Client) analyse(ctx context.Context, reportCode string, fight fflogs.FightSummary, reportStart uint64, enc phases.Encounter) (stats.FightStatistics, error) {
	logger := contextLogger(ctx).With().Int64("fight", fight.ID).Logger()
	logger.Debug().Str("encounter", enc.Name).Uint64("start", fight.StartTime).Uint64("end", fight.EndTime).Msg("Analysing fight")

	resolved, err := phases.Assemble(ctx, c.source, reportCode, enc.Phases, fight.StartTime, fight.EndTime)
	if err != nil {
		return stats.FightStatistics{}, fmt.Errorf("report %s fight %d: %w", reportCode, fight.ID, asSourceError(err))
	}
	phases.Backfill(resolved)
	progress := phases.Classify(resolved, enc.Phases, fight.EndTime)

	fs := stats.NewFightStatistics(reportCode, fight, reportStart, enc, progress)
	if last, ok := fs.Furthest(); ok {
		logger.Debug().Str("phase", last.PhaseName).Stringer("status", last.Status).Msg("Fight analysed")
	}
	return fs, nil
}

func contextLogger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}
