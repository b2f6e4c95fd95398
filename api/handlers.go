package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"quotecalc/core/lookup"
	"quotecalc/core/output"
	"quotecalc/core/quote"
	qerrors "quotecalc/internal/errors"
	"quotecalc/internal/logging"
	"quotecalc/internal/metrics"
)

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	store := s.engine.Store()
	s.writeJSON(w, HealthResponse{
		Status:            "healthy",
		Version:           s.opts.Version,
		Time:              s.now().UTC().Format(time.RFC3339),
		TablesFingerprint: store.Fingerprint(),
		TablesLoadedAt:    store.LoadedAt(),
		TablesSource:      store.Source(),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":     s.opts.Version,
		"engine":      "quotecalc",
		"api_version": "v1",
	}, http.StatusOK)
}

// handleCountries handles GET /api/countries
func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, CountriesResponse{Countries: s.engine.Store().CountryNames()}, http.StatusOK)
}

// handleOptions handles GET /api/options?country=&labor_type=
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.writeJSON(w, lookup.Options(s.engine.Store(), q.Get("country"), q.Get("labor_type")), http.StatusOK)
}

// handleQuote handles POST /api/quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	res, err := s.compute(w, r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, res, http.StatusOK)
}

// handleExport handles POST /api/quote/export?format=xlsx|pdf
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := output.Format(r.URL.Query().Get("format"))
	if format != output.FormatXLSX && format != output.FormatPDF {
		s.writeError(w, string(qerrors.TypeInput), "format must be xlsx or pdf", http.StatusBadRequest)
		return
	}

	res, err := s.compute(w, r)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	f, err := output.New(format, s.opts.Render)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	var buf bytes.Buffer
	if err := f.Render(&buf, res); err != nil {
		s.writeErr(w, qerrors.Internal("render "+string(format), err))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.QuoteID+"."+format.Extension()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Warn("write export", zap.Error(err))
	}
}

// compute decodes and validates the request body and prices it
func (s *Server) compute(w http.ResponseWriter, r *http.Request) (*quote.Result, error) {
	var req QuoteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, qerrors.Wrap(qerrors.TypeInput, "invalid JSON body: "+err.Error(), err)
	}

	in, err := req.Draft.Inputs()
	if err != nil {
		return nil, err
	}
	if in.Currency == "" {
		in.Currency = s.opts.DefaultCurrency
	}
	in = in.WithDefaults(s.opts.IDPrefix, s.now())
	if err := in.Validate(); err != nil {
		return nil, err
	}

	engine := s.engine
	if req.ApplyContingency != nil {
		opts := engine.Options()
		opts.ApplyContingency = *req.ApplyContingency
		engine = engine.WithOptions(opts)
	}
	res := engine.Compute(in)
	metrics.RecordQuote(metrics.CountryLabel(res.Country, engine.Store().CountryNames()), res.Currency, res.Fallbacks)
	return res, nil
}
