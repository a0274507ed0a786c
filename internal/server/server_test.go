package server

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/powdercalc/pkg/estimate"
	"github.com/philipparndt/powdercalc/pkg/geometry"
	"github.com/philipparndt/powdercalc/pkg/pricing"
	"github.com/philipparndt/powdercalc/pkg/printer"
	"github.com/philipparndt/powdercalc/pkg/stl/stltest"
)

func do(t *testing.T, srv http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	return rr
}

func decodeReport(t *testing.T, rr *httptest.ResponseRecorder) estimate.Report {
	t.Helper()
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var report estimate.Report
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&report))
	return report
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body.Error
}

func boxSTL() []byte {
	return stltest.Binary(stltest.Box(geometry.NewVector3(0, 0, 0), 40, 30, 20))
}

func TestHealthz(t *testing.T) {
	rr := do(t, New(estimate.DefaultSettings()), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok\n", rr.Body.String())
}

func TestPrinters(t *testing.T) {
	rr := do(t, New(estimate.DefaultSettings()), httptest.NewRequest(http.MethodGet, "/printers", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var profiles []printer.Profile
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&profiles))
	assert.Equal(t, printer.All(), profiles)
}

func TestEstimate_RawBody(t *testing.T) {
	srv := New(estimate.DefaultSettings())
	req := httptest.NewRequest(http.MethodPost, "/estimate?name=box.stl&currency=eur", bytes.NewReader(boxSTL()))
	req.Header.Set("Content-Type", "application/octet-stream")

	report := decodeReport(t, do(t, srv, req))
	assert.Equal(t, "box.stl", report.Name)
	assert.Equal(t, pricing.EUR, report.Currency)
	assert.InDelta(t, 24.0, report.VolumeCm3, 1e-6)
	require.Len(t, report.Printers, 2)
	assert.Equal(t, 252, report.Printers[0].Packing.TotalObjects)
	assert.Len(t, report.Printers[0].Positions, 252)
}

func TestEstimate_Multipart(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "upload.stl")
	require.NoError(t, err)
	_, err = fw.Write(boxSTL())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/estimate?orientation=vertical", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	report := decodeReport(t, do(t, New(estimate.DefaultSettings()), req))
	assert.Equal(t, "upload.stl", report.Name)
	assert.Equal(t, "vertical", string(report.Orientation.Type))
	assert.Equal(t, 40.0, report.Orientation.Active().Height)
}

func TestEstimate_MultipartMissingField(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/estimate", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rr := do(t, New(estimate.DefaultSettings()), req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, errorMessage(t, rr), `"file"`)
}

func TestEstimate_Errors(t *testing.T) {
	tooLarge := make([]byte, 84)
	binary.LittleEndian.PutUint32(tooLarge[80:], 1_000_001)

	tests := []struct {
		name   string
		query  string
		body   []byte
		status int
	}{
		{"too many triangles", "", tooLarge, http.StatusRequestEntityTooLarge},
		{"truncated", "", boxSTL()[:300], http.StatusUnprocessableEntity},
		{"empty body", "", nil, http.StatusUnprocessableEntity},
		{"unknown currency", "?currency=xyz", boxSTL(), http.StatusBadRequest},
		{"bad glaze", "?glaze=maybe", boxSTL(), http.StatusBadRequest},
		{"bad orientation", "?orientation=sideways", boxSTL(), http.StatusBadRequest},
		{"zero spacing", "?spacing=0", boxSTL(), http.StatusBadRequest},
		{"non-numeric margin", "?wall_margin=wide", boxSTL(), http.StatusBadRequest},
	}
	srv := New(estimate.DefaultSettings())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/estimate"+tt.query, bytes.NewReader(tt.body))
			rr := do(t, srv, req)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.NotEmpty(t, errorMessage(t, rr))
		})
	}
}

func TestEstimateManual(t *testing.T) {
	srv := New(estimate.DefaultSettings())
	body := `{"volume_cm3": 50, "width": 40, "depth": 30, "height": 20}`
	req := httptest.NewRequest(http.MethodPost, "/estimate/manual?glaze=false", strings.NewReader(body))

	report := decodeReport(t, do(t, srv, req))
	assert.Equal(t, estimate.SourceManual, report.Source)
	assert.Zero(t, report.Cost.Glaze)
	assert.Equal(t, "7 × 6 × 6", report.Printers[0].Packing.Arrangement)
	assert.InDelta(t, 252*report.Cost.Total, report.Printers[0].BatchCost, 1e-9)
}

func TestEstimateManual_Errors(t *testing.T) {
	srv := New(estimate.DefaultSettings())

	rr := do(t, srv, httptest.NewRequest(http.MethodPost, "/estimate/manual",
		strings.NewReader(`{"volume_cm3": 0, "width": 40, "depth": 30, "height": 20}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = do(t, srv, httptest.NewRequest(http.MethodPost, "/estimate/manual", strings.NewReader(`{"volume_cm3": "lots"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, srv, httptest.NewRequest(http.MethodPost, "/estimate/manual", strings.NewReader(`{"weight": 3}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPricingUpdate(t *testing.T) {
	srv := New(estimate.DefaultSettings())

	req := httptest.NewRequest(http.MethodPut, "/pricing/usd",
		strings.NewReader(`{"powder": 200, "binder": 0, "silica": 0, "glaze": 0}`))
	rr := do(t, srv, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var table pricing.Table
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&table))
	assert.Equal(t, pricing.Prices{Powder: 200}, table[pricing.USD])
	assert.Equal(t, pricing.DefaultTable()[pricing.EUR], table[pricing.EUR])

	// 50 cm³ uses 0.1 kg of powder
	manual := httptest.NewRequest(http.MethodPost, "/estimate/manual",
		strings.NewReader(`{"volume_cm3": 50, "width": 40, "depth": 30, "height": 20}`))
	report := decodeReport(t, do(t, srv, manual))
	assert.InDelta(t, 20.0, report.Cost.Total, 1e-9)

	rr = do(t, srv, httptest.NewRequest(http.MethodGet, "/pricing", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&table))
	assert.Equal(t, 200.0, table[pricing.USD].Powder)
}

func TestPricingUpdate_Errors(t *testing.T) {
	srv := New(estimate.DefaultSettings())

	rr := do(t, srv, httptest.NewRequest(http.MethodPut, "/pricing/usd", strings.NewReader(`{"powder": -1}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, srv, httptest.NewRequest(http.MethodPut, "/pricing/usd", strings.NewReader(`not json`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	assert.Equal(t, pricing.DefaultTable()[pricing.USD], srv.Settings().Pricing[pricing.USD])
}

func TestNew_CopiesPricing(t *testing.T) {
	s := estimate.DefaultSettings()
	srv := New(s)
	s.Pricing[pricing.USD] = pricing.Prices{}

	assert.Equal(t, pricing.DefaultTable()[pricing.USD], srv.Settings().Pricing[pricing.USD])
}
