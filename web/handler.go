// Package web serves the prediction form, the evaluation metrics and the
// dataset table over HTTP.
//
// Routes:
//
//	GET  /            form, metrics and dataset table
//	POST /predict     runs one prediction from the submitted form
//	GET  /plot.png    holdout actual vs predicted scatter
//	GET  /api/model   fitted coefficients as scikit-learn JSON
//	POST /api/predict JSON prediction for the same five inputs
//	GET  /healthz     liveness
package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ezoic/perfindex/dataset"
	"github.com/ezoic/perfindex/form"
	"github.com/ezoic/perfindex/pipeline"
	"github.com/ezoic/perfindex/pkg/errors"
	"github.com/ezoic/perfindex/pkg/log"
)

// Handler serves one trained pipeline.Result.
type Handler struct {
	result *pipeline.Result
	logger log.Logger

	columns []string
	rows    []dataset.Record

	plotOnce sync.Once
	plotPNG  []byte
	plotErr  error
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger overrides the handler logger.
func WithLogger(l log.Logger) HandlerOption {
	return func(h *Handler) { h.logger = l }
}

// NewHandler creates a Handler for res.
func NewHandler(res *pipeline.Result, opts ...HandlerOption) *Handler {
	h := &Handler{
		result:  res,
		logger:  log.GetLoggerWithName("web"),
		columns: res.Dataset.Columns(),
		rows:    res.Dataset.Records(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the chi router with middleware installed.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", h.handleIndex)
	r.Post("/predict", h.handlePredict)
	r.Get("/plot.png", h.handlePlot)
	r.Get("/healthz", h.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/model", h.handleModel)
		r.Post("/predict", h.handleAPIPredict)
	})
	return r
}

func (h *Handler) page(in form.Input) PageData {
	return PageData{
		Input:      in,
		Evaluation: h.result.Evaluation,
		Columns:    h.columns,
		Rows:       h.rows,
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	templ.Handler(IndexPage(h.page(form.Default()))).ServeHTTP(w, r)
}

func (h *Handler) handlePredict(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, form.Default(), errors.NewValidationError("form", "unreadable body", err.Error()))
		return
	}
	in, err := form.Parse(r.PostForm)
	if err != nil {
		h.renderError(w, r, form.Default(), err)
		return
	}

	pred, err := h.result.Predict(in)
	if err != nil {
		h.logger.Error("Prediction failed", err, log.RequestIDKey, middleware.GetReqID(r.Context()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.logger.Info("Prediction served",
		log.OperationKey, log.OperationPredict,
		log.PhaseKey, log.PhaseInference,
		log.PredsKey, pred,
		log.RequestIDKey, middleware.GetReqID(r.Context()),
	)

	data := h.page(in)
	data.Prediction = &pred
	templ.Handler(IndexPage(data)).ServeHTTP(w, r)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, in form.Input, err error) {
	h.logger.Warn("Rejected input", err, log.RequestIDKey, middleware.GetReqID(r.Context()))
	data := h.page(in)
	data.Error = err.Error()
	templ.Handler(IndexPage(data), templ.WithStatus(http.StatusBadRequest)).ServeHTTP(w, r)
}

func (h *Handler) handlePlot(w http.ResponseWriter, r *http.Request) {
	h.plotOnce.Do(func() {
		var buf bytes.Buffer
		h.plotErr = writeHoldoutPlot(&buf, h.result.TestPredictions())
		h.plotPNG = buf.Bytes()
	})
	if h.plotErr != nil {
		h.logger.Error("Plot rendering failed", h.plotErr)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(h.plotPNG)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) handleModel(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := h.result.Model.ExportToSKLearnWriter(&buf); err != nil {
		h.logger.Error("Model export failed", err)
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(buf.Bytes())
}

type predictResponse struct {
	Input        form.Input             `json:"input"`
	Prediction   float64                `json:"prediction"`
	Evaluation   pipeline.Evaluation    `json:"evaluation"`
	Coefficients []pipeline.Coefficient `json:"coefficients"`
}

func (h *Handler) handleAPIPredict(w http.ResponseWriter, r *http.Request) {
	in := form.Default()
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSONError(w, http.StatusBadRequest, errors.NewValidationError("body", "must be a JSON object", err.Error()))
		return
	}
	in = in.Clamp()

	pred, err := h.result.Predict(in)
	if err != nil {
		var vErr *errors.ValidationError
		if errors.As(err, &vErr) {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		h.logger.Error("Prediction failed", err, log.RequestIDKey, middleware.GetReqID(r.Context()))
		writeJSONError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{
		Input:        in,
		Prediction:   pred,
		Evaluation:   h.result.Evaluation,
		Coefficients: h.result.Coefficients(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
