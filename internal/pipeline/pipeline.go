package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/pfrederiksen/wnba-box-scores/internal/boxscore"
	"github.com/pfrederiksen/wnba-box-scores/internal/logger"
	"github.com/pfrederiksen/wnba-box-scores/internal/sink"
)

// Metric names recorded during a run.
const (
	MetricGamesDiscovered = "games.discovered"
	MetricGamesExtracted  = "games.extracted"
	MetricGamesFailed     = "games.failed"
	MetricRowsAppended    = "rows.appended"
	TimingScoreboard      = "fetch.scoreboard"
	TimingBoxScore        = "fetch.boxscore"
	TimingSinkAppend      = "sink.append"
)

// Source discovers a day's games and extracts their rows.
type Source interface {
	GameIDs(ctx context.Context, date boxscore.ReportDate) ([]boxscore.GameID, error)
	BoxScore(ctx context.Context, id boxscore.GameID, date boxscore.ReportDate) (boxscore.Row, error)
}

// Options tune a Pipeline. Zero values use the local clock and location.
type Options struct {
	Location *time.Location
	Now      func() time.Time
	Metrics  *logger.Metrics
}

// Pipeline runs discovery, extraction and storage for one report date
type Pipeline struct {
	source  Source
	sink    sink.Sink
	log     *logger.Logger
	metrics *logger.Metrics
	now     func() time.Time
	loc     *time.Location
}

// Report summarizes a run, including the parts that completed before an error.
type Report struct {
	Date     boxscore.ReportDate `json:"date"`
	GameIDs  []boxscore.GameID   `json:"game_ids"`
	Result   *boxscore.RunResult `json:"result"`
	Failures []*ExtractionError  `json:"failures"`
	Ack      sink.Ack            `json:"ack"`
	Metrics  logger.Snapshot     `json:"metrics"`
}

// New creates a Pipeline.
func New(source Source, s sink.Sink, log *logger.Logger, opts Options) *Pipeline {
	p := &Pipeline{
		source:  source,
		sink:    s,
		log:     log,
		metrics: opts.Metrics,
		now:     opts.Now,
		loc:     opts.Location,
	}
	if p.log == nil {
		p.log = logger.Discard()
	}
	if p.metrics == nil {
		p.metrics = logger.NewMetrics()
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.loc == nil {
		p.loc = time.Local
	}
	return p
}

// Run ingests yesterday's games. The returned report is never nil.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	return p.run(ctx, boxscore.Yesterday(p.now(), p.loc))
}

func (p *Pipeline) run(ctx context.Context, date boxscore.ReportDate) (report *Report, err error) {
	report = &Report{
		Date:     date,
		GameIDs:  make([]boxscore.GameID, 0),
		Result:   boxscore.NewRunResult(date),
		Failures: make([]*ExtractionError, 0),
	}
	defer func() {
		report.Metrics = p.metrics.Snapshot()
		p.log.Info("Run finished", report.Metrics.Fields())
	}()

	p.log.Info("Run started", logger.Fields{"date": date.String()})

	ids, err := p.discover(ctx, date)
	if err != nil {
		p.log.Error("Game ID discovery failed", logger.Fields{"date": date.String()}, err)
		return report, fmt.Errorf("discovering games for %s: %w", date, err)
	}
	report.GameIDs = ids

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		row, err := p.extract(ctx, id, date)
		if err != nil {
			eErr := &ExtractionError{GameID: id, Err: err}
			report.Failures = append(report.Failures, eErr)
			p.metrics.IncrCounter(MetricGamesFailed)
			p.log.Warn("Box score extraction failed", logger.Fields{"game_id": string(id)}, err)
			continue
		}

		report.Result.Append(row)
		p.metrics.IncrCounter(MetricGamesExtracted)
		p.log.Info("Box score extracted", logger.Fields{
			"game_id":   string(id),
			"away_team": row.Away.Team,
			"home_team": row.Home.Team,
		})
	}

	ack, err := p.store(ctx, report.Result)
	if err != nil {
		p.log.Error("Appending rows failed", logger.Fields{"rows": report.Result.Len()}, err)
		return report, fmt.Errorf("appending rows: %w", err)
	}
	report.Ack = ack

	p.metrics.AddCounter(MetricRowsAppended, int64(ack.Rows))
	p.log.Info("Rows appended", logger.Fields{
		"rows":          ack.Rows,
		"updated_range": ack.UpdatedRange,
		"dry_run":       ack.DryRun,
	})

	return report, nil
}

func (p *Pipeline) discover(ctx context.Context, date boxscore.ReportDate) ([]boxscore.GameID, error) {
	defer p.metrics.StartTimer(TimingScoreboard)()

	ids, err := p.source.GameIDs(ctx, date)
	if err != nil {
		return nil, err
	}

	p.metrics.AddCounter(MetricGamesDiscovered, int64(len(ids)))
	p.log.Info("Game IDs discovered", logger.Fields{
		"date":     date.String(),
		"count":    len(ids),
		"game_ids": ids,
	})
	return ids, nil
}

func (p *Pipeline) extract(ctx context.Context, id boxscore.GameID, date boxscore.ReportDate) (boxscore.Row, error) {
	defer p.metrics.StartTimer(TimingBoxScore)()
	return p.source.BoxScore(ctx, id, date)
}

func (p *Pipeline) store(ctx context.Context, result *boxscore.RunResult) (sink.Ack, error) {
	defer p.metrics.StartTimer(TimingSinkAppend)()
	return p.sink.Append(ctx, result)
}
