package ui

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"panelscope/adapters/excel"
	"panelscope/domain/compare"
)

type insightResponse struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// handleInsights writes the markdown comparison summary and its HTML
// rendering in one response; the client picks whichever it can display.
func (a *App) handleInsights(w http.ResponseWriter, r *http.Request) {
	var data compare.ClusterComparisonData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		respondBadRequest(w, "invalid comparison data: "+err.Error())
		return
	}

	md := a.insights.Write(data)

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	html := markdown.ToHTML([]byte(md), p, renderer)

	respondJSON(w, http.StatusOK, insightResponse{Markdown: md, HTML: string(html)})
}

// handleExport streams the comparison workbook as an xlsx attachment.
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	var data compare.ClusterComparisonData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		respondBadRequest(w, "invalid comparison data: "+err.Error())
		return
	}

	filename := fmt.Sprintf("comparison_%d_vs_%d.xlsx", data.GroupA.ID, data.GroupB.ID)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := (excel.ReportWriter{}).Write(w, data); err != nil {
		// Headers are gone; all we can do is log.
		a.log.Error("export failed: " + err.Error())
	}
}

// handleEvents streams collection-change notifications as SSE. Clients use
// it instead of polling the collections on a timer.
func (a *App) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondBadRequest(w, "streaming unsupported")
		return
	}

	changes, cancel := a.notifier.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case change, open := <-changes:
			if !open {
				return
			}
			payload, _ := json.Marshal(change)
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
