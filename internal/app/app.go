package app

import (
	"context"
	"time"

	"brigid/internal/logger"
	"brigid/internal/memory"
	"brigid/pkg/flamewhisper"
)

const logModule = "app"

// Analysis outcomes reported to the Recorder.
const (
	OutcomeFlame   = "flame"
	OutcomeNoFlame = "no_flame"
	OutcomeError   = "error"
)

// Recorder receives analysis and export events. *metrics.Metrics satisfies it.
type Recorder interface {
	ObserveAnalysis(outcome string, d time.Duration)
	ExportDone()
}

type nopRecorder struct{}

func (nopRecorder) ObserveAnalysis(string, time.Duration) {}
func (nopRecorder) ExportDone()                          {}

// State is everything a front end carries between user actions.
type State struct {
	Current *flamewhisper.Snapshot
	Report  flamewhisper.Report
}

// Export is a rendered snapshot ready to be offered as a download.
type Export struct {
	Filename string
	PNG      []byte
}

// App wires the analysis core to snapshot memory.
type App struct {
	Memory   *memory.Memory
	Recorder Recorder
	Now      func() time.Time
}

// New creates an App. rec may be nil.
func New(mem *memory.Memory, rec Recorder) *App {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &App{Memory: mem, Recorder: rec, Now: time.Now}
}

// Analyze decodes and analyzes imageSrc (a data URI or raw image bytes) and
// returns the new state with it as the current snapshot. A decode failure
// leaves state untouched.
func (a *App) Analyze(ctx context.Context, state State, imageSrc string) (State, flamewhisper.Analysis, error) {
	start := time.Now()
	analysis, err := flamewhisper.AnalyzeBytes(ctx, []byte(imageSrc))
	elapsed := time.Since(start)
	if err != nil {
		a.Recorder.ObserveAnalysis(OutcomeError, elapsed)
		logger.Warn(logModule, "analysis failed: %v", err)
		return state, flamewhisper.Analysis{}, err
	}

	outcome := OutcomeNoFlame
	if analysis.Report.Detected {
		outcome = OutcomeFlame
	}
	a.Recorder.ObserveAnalysis(outcome, elapsed)
	logger.Debug(logModule, "analyzed %dx%d in %s: %s", analysis.Width, analysis.Height, elapsed, analysis.Report)

	snapshot := flamewhisper.NewSnapshot(imageSrc, analysis.Report, a.Now())
	return State{Current: &snapshot, Report: analysis.Report}, analysis, nil
}

// SaveCurrent stores the current snapshot. It reports false, doing nothing,
// when there is no current snapshot.
func (a *App) SaveCurrent(state State) bool {
	if state.Current == nil {
		return false
	}
	a.Memory.Save(*state.Current)
	return true
}

// History lists saved snapshots, newest first.
func (a *App) History() []flamewhisper.Snapshot {
	return a.Memory.Load()
}

// DeleteSaved removes the saved snapshot at index.
func (a *App) DeleteSaved(index int) {
	a.Memory.Delete(index)
}

// ExportCurrent renders the current snapshot. ok is false when there is
// nothing to export.
func (a *App) ExportCurrent(state State) (exp Export, ok bool, err error) {
	if state.Current == nil {
		return Export{}, false, nil
	}
	return a.export(*state.Current)
}

// ExportSaved renders the saved snapshot at index. ok is false when the
// index does not exist.
func (a *App) ExportSaved(index int) (exp Export, ok bool, err error) {
	saved := a.Memory.Load()
	if index < 0 || index >= len(saved) {
		return Export{}, false, nil
	}
	return a.export(saved[index])
}

func (a *App) export(s flamewhisper.Snapshot) (Export, bool, error) {
	data, err := flamewhisper.ExportPNG(s)
	if err != nil {
		logger.Warn(logModule, "export of %s failed: %v", s.ID, err)
		return Export{}, true, err
	}
	a.Recorder.ExportDone()
	return Export{Filename: flamewhisper.ExportFilename(s.Time), PNG: data}, true, nil
}
