package main

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/nevindra/pagesum"
	"github.com/nevindra/pagesum/internal/app"
	"github.com/nevindra/pagesum/internal/config"
	"github.com/nevindra/pagesum/report"
)

//go:embed templates/page.html
var templates embed.FS

var page = template.Must(template.ParseFS(templates, "templates/page.html"))

// pageData is everything the page template renders.
type pageData struct {
	Form         pagesum.RunOptions
	MinSentences int
	MaxSentences int
	Message      string
	Result       template.HTML
	Summary      string
}

type handler struct {
	app       *app.App
	maxUpload int64
	logger    *slog.Logger
}

func newHandler(a *app.App, maxUpload int64, logger *slog.Logger) *handler {
	return &handler{app: a, maxUpload: maxUpload, logger: logger}
}

func (h *handler) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("POST /summarize", h.handleSummarize)
	mux.HandleFunc("POST /download", h.handleDownload)
	mux.HandleFunc("GET /healthz", handleHealth)
	return mux
}

func (h *handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.newPage(h.app.Defaults))
}

func (h *handler) handleSummarize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.fail(w, http.StatusRequestEntityTooLarge, h.app.Defaults, "The uploaded file is too large.")
			return
		}
		h.fail(w, http.StatusBadRequest, h.app.Defaults, "Could not read the upload.")
		return
	}

	opts, msg := h.formOptions(r)
	if msg != "" {
		h.fail(w, http.StatusBadRequest, opts, msg)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.fail(w, http.StatusBadRequest, opts, "Please upload a PDF file.")
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		h.fail(w, http.StatusBadRequest, opts, "Could not read the upload.")
		return
	}

	res, err := h.app.Pipeline.Run(r.Context(), content, opts)
	if err != nil {
		h.fail(w, statusFor(err), opts, report.Message(err))
		return
	}
	out, err := report.HTML(res)
	if err != nil {
		h.logger.Error("render result", "error", err)
		h.fail(w, http.StatusInternalServerError, opts, "Could not render the result.")
		return
	}

	data := h.newPage(opts)
	data.Result = template.HTML(out)
	data.Summary = res.Summary
	h.render(w, http.StatusOK, data)
}

func (h *handler) handleDownload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.SummaryFilename+`"`)
	// Browsers submit textarea and hidden-field newlines as CRLF.
	io.WriteString(w, strings.ReplaceAll(r.PostFormValue("summary"), "\r\n", "\n"))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok")
}

// formOptions reads the form fields over the configured defaults. A non-empty
// message means the form is invalid and the pipeline must not run.
func (h *handler) formOptions(r *http.Request) (pagesum.RunOptions, string) {
	opts := h.app.Defaults
	fields := []struct {
		name string
		dst  *int
	}{
		{"start", &opts.Range.Start},
		{"end", &opts.Range.End},
		{"sentences", &opts.Sentences},
	}
	for _, f := range fields {
		v := r.FormValue(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, "Page numbers and summary length must be whole numbers."
		}
		*f.dst = n
	}
	if opts.Range.Start < 1 || opts.Range.End < opts.Range.Start {
		return opts, report.InvalidRangeMessage
	}
	if opts.Sentences < config.MinSentences || opts.Sentences > config.MaxSentences {
		return opts, "Summary length must be between 1 and 20 sentences."
	}
	return opts, ""
}

func statusFor(err error) int {
	var rangeErr *pagesum.ErrInvalidRange
	var docErr *pagesum.ErrDocument
	switch {
	case errors.As(err, &rangeErr):
		return http.StatusBadRequest
	case errors.As(err, &docErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (h *handler) newPage(opts pagesum.RunOptions) pageData {
	return pageData{Form: opts, MinSentences: config.MinSentences, MaxSentences: config.MaxSentences}
}

func (h *handler) fail(w http.ResponseWriter, code int, opts pagesum.RunOptions, msg string) {
	data := h.newPage(opts)
	data.Message = msg
	h.render(w, code, data)
}

func (h *handler) render(w http.ResponseWriter, code int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := page.Execute(w, data); err != nil {
		h.logger.Error("render page", "error", err)
	}
}
