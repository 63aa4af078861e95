//go:build js && wasm

package main

import (
	"context"
	"sync"
	"syscall/js"
	"time"

	"brigid/internal/app"
	"brigid/internal/logger"
	"brigid/internal/memory"
	"brigid/pkg/flamewhisper"
)

// session holds the page's state between calls from JavaScript.
type session struct {
	mu    sync.Mutex
	app   *app.App
	state app.State
}

func main() {
	logger.Init(logger.INFO, nil)

	var store memory.KV
	ls, err := memory.NewLocalStorage()
	if err != nil {
		logger.Warn("wasm", "%v; snapshots will not survive a reload", err)
		store = memory.NewMapStore()
	} else {
		store = ls
	}

	s := &session{app: app.New(memory.New(store, nil), nil)}
	js.Global().Set("analyzeFlame", js.FuncOf(s.analyzeFlame))
	js.Global().Set("saveSnapshot", js.FuncOf(s.saveSnapshot))
	js.Global().Set("loadSnapshots", js.FuncOf(s.loadSnapshots))
	js.Global().Set("deleteSnapshot", js.FuncOf(s.deleteSnapshot))
	js.Global().Set("exportSnapshot", js.FuncOf(s.exportSnapshot))
	js.Global().Set("exportSaved", js.FuncOf(s.exportSaved))
	select {} // block forever
}

// analyzeFlame(dataURI) returns a Promise resolving to the report.
func (s *session) analyzeFlame(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeString {
		return rejected("usage: analyzeFlame(dataURI)")
	}
	imageSrc := args[0].String()

	handler := js.FuncOf(func(this js.Value, p []js.Value) interface{} {
		resolve, reject := p[0], p[1]
		go func() {
			// One analysis at a time, in call order
			s.mu.Lock()
			defer s.mu.Unlock()

			state, analysis, err := s.app.Analyze(context.Background(), s.state, imageSrc)
			if err != nil {
				reject.Invoke(jsError(err.Error()))
				return
			}
			s.state = state
			resolve.Invoke(js.ValueOf(reportResult(analysis)))
		}()
		return nil
	})
	defer handler.Release()
	return js.Global().Get("Promise").New(handler)
}

func (s *session) saveSnapshot(this js.Value, args []js.Value) interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app.SaveCurrent(s.state)
}

func (s *session) loadSnapshots(this js.Value, args []js.Value) interface{} {
	saved := s.app.History()
	out := make([]interface{}, len(saved))
	for i, snap := range saved {
		out[i] = map[string]interface{}{
			"id":         snap.ID,
			"imageSrc":   snap.ImageSrc,
			"reportText": snap.ReportText,
			"time":       snap.Time.Format(time.RFC3339),
		}
	}
	return js.ValueOf(out)
}

func (s *session) deleteSnapshot(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeNumber {
		return nil
	}
	s.app.DeleteSaved(args[0].Int())
	return nil
}

// exportSnapshot() returns {filename, data: Uint8Array} for the current
// snapshot, or null when there is none.
func (s *session) exportSnapshot(this js.Value, args []js.Value) interface{} {
	s.mu.Lock()
	state := s.state
	s.mu.Unlock()
	return exportResult(s.app.ExportCurrent(state))
}

func (s *session) exportSaved(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeNumber {
		return js.Null()
	}
	return exportResult(s.app.ExportSaved(args[0].Int()))
}

func exportResult(exp app.Export, ok bool, err error) interface{} {
	if err != nil {
		return errorResult(err.Error())
	}
	if !ok {
		return js.Null()
	}
	data := js.Global().Get("Uint8Array").New(len(exp.PNG))
	js.CopyBytesToJS(data, exp.PNG)
	return js.ValueOf(map[string]interface{}{
		"filename": exp.Filename,
		"data":     data,
	})
}

func reportResult(a flamewhisper.Analysis) map[string]interface{} {
	r := a.Report
	return map[string]interface{}{
		"width":     a.Width,
		"height":    a.Height,
		"detected":  r.Detected,
		"text":      r.Text(),
		"html":      r.HTML(),
		"shape":     r.Shape.String(),
		"balance":   r.Balance.String(),
		"stability": r.Stability.String(),
		"widthPct":  r.WidthPct(),
		"heightPct": r.HeightPct(),
	}
}

func rejected(msg string) js.Value {
	return js.Global().Get("Promise").Call("reject", jsError(msg))
}

func jsError(msg string) js.Value {
	return js.Global().Get("Error").New(msg)
}

func errorResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{
		"error": msg,
	})
}
