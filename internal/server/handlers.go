package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/philipparndt/powdercalc/pkg/estimate"
	"github.com/philipparndt/powdercalc/pkg/orientation"
	"github.com/philipparndt/powdercalc/pkg/pricing"
)

// multipartMemory is how much of an uploaded form is held in memory.
const multipartMemory = 32 << 20

var errBadRequest = errors.New("bad request")

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handlePrinters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Settings().Profiles)
}

func (s *Server) handlePricing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Settings().Pricing)
}

func (s *Server) handlePricingUpdate(w http.ResponseWriter, r *http.Request) {
	currency := pricing.ParseCurrency(chi.URLParam(r, "currency"))

	var prices pricing.Prices
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&prices); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid prices: %w", err))
		return
	}

	s.mu.Lock()
	table := s.settings.Pricing.Clone()
	err := table.Set(currency, prices)
	if err == nil {
		s.settings.Pricing = table
	}
	s.mu.Unlock()

	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, s.Settings().Pricing)
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	settings, err := s.requestSettings(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	name, buf, err := readUpload(r)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	report, err := estimate.FromSTL(r.Context(), name, buf, settings)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleEstimateManual(w http.ResponseWriter, r *http.Request) {
	settings, err := s.requestSettings(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var in estimate.ManualInput
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid manual input: %w", err))
		return
	}

	report, err := estimate.FromManual(in, settings)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// readUpload returns the STL bytes of a raw or multipart request body
func readUpload(r *http.Request) (string, []byte, error) {
	name := r.URL.Query().Get("name")

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		buf, err := io.ReadAll(r.Body)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read body: %w", err)
		}
		return name, buf, nil
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return "", nil, fmt.Errorf("failed to read form: %w", err)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		return "", nil, fmt.Errorf("%w: missing form field \"file\"", errBadRequest)
	}
	defer file.Close()

	buf, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if name == "" {
		name = header.Filename
	}
	return name, buf, nil
}

// requestSettings overlays the query parameters of r onto the defaults
func (s *Server) requestSettings(r *http.Request) (estimate.Settings, error) {
	settings := s.Settings()
	q := r.URL.Query()

	if v := q.Get("currency"); v != "" {
		settings.Currency = pricing.ParseCurrency(v)
	}
	if v := q.Get("glaze"); v != "" {
		glaze, err := strconv.ParseBool(v)
		if err != nil {
			return settings, fmt.Errorf("glaze must be true or false, got %q", v)
		}
		settings.IncludeGlaze = glaze
	}
	if v := q.Get("orientation"); v != "" {
		t, err := orientation.ParseType(v)
		if err != nil {
			return settings, err
		}
		settings.Orientation = t
	}
	for _, p := range []struct {
		key string
		dst *float64
	}{
		{"wall_margin", &settings.Packing.WallMargin},
		{"spacing", &settings.Packing.ObjectSpacing},
	} {
		v := strings.TrimSpace(q.Get(p.key))
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return settings, fmt.Errorf("%s must be numeric, got %q", p.key, v)
		}
		*p.dst = f
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}
