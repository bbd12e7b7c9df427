package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/polishai/polish/internal/ai"
	"github.com/polishai/polish/internal/enhance"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubEnhancer struct {
	result *enhance.Result
	err    error
	gotReq enhance.Request
	calls  int
}

func (s *stubEnhancer) Enhance(_ context.Context, req enhance.Request) (*enhance.Result, error) {
	s.calls++
	s.gotReq = req
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestServer(t *testing.T, cfg Config, stub *stubEnhancer) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(cfg, stub, nil, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, Config{}, &stubEnhancer{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(data))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestEnhanceSuccess(t *testing.T) {
	stub := &stubEnhancer{result: &enhance.Result{
		EnhancedText:   "A polished rewrite of the update.",
		OriginalLength: 25,
		EnhancedLength: 33,
		QualityScore:   100,
		Confidence:     100,
		Valid:          true,
		ModelUsed:      "openai/gpt-4o-mini",
		Stages:         1,
		Improvements:   []string{"Improved overall clarity"},
	}}
	srv := newTestServer(t, Config{}, stub)

	resp, data := postJSON(t, srv.URL+"/v1/enhance",
		`{"text":"the update shipped ok i think","type":"professional","tone":"formal","audience":"leadership"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var got enhance.Result
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, *stub.result, got)

	assert.Equal(t, enhance.TypeProfessional, stub.gotReq.Type)
	assert.Equal(t, enhance.ToneFormal, stub.gotReq.Tone)
	assert.Equal(t, "leadership", stub.gotReq.Audience)
}

func TestEnhanceNormalizesUnknownType(t *testing.T) {
	stub := &stubEnhancer{result: &enhance.Result{EnhancedText: "ok then, a rewrite."}}
	srv := newTestServer(t, Config{}, stub)

	resp, _ := postJSON(t, srv.URL+"/v1/enhance", `{"text":"some text to fix","type":"wild","tone":"loud"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, enhance.TypeGeneral, stub.gotReq.Type)
	assert.Equal(t, enhance.Tone(""), stub.gotReq.Tone)
}

func TestEnhanceRejectsBadJSON(t *testing.T) {
	stub := &stubEnhancer{}
	srv := newTestServer(t, Config{}, stub)

	resp, data := postJSON(t, srv.URL+"/v1/enhance", `{"text":`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(data), "invalid request body")
	assert.Zero(t, stub.calls)
}

func TestEnhanceRejectsOversizedBody(t *testing.T) {
	stub := &stubEnhancer{}
	srv := newTestServer(t, Config{}, stub)

	var body bytes.Buffer
	body.WriteString(`{"text":"`)
	body.WriteString(strings.Repeat("a", 70<<10))
	body.WriteString(`"}`)

	resp, _ := postJSON(t, srv.URL+"/v1/enhance", body.String())

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, stub.calls)
}

func TestEnhanceRejectsEmptyText(t *testing.T) {
	srv := newTestServer(t, Config{}, &stubEnhancer{})

	resp, data := postJSON(t, srv.URL+"/v1/enhance", `{"text":"   "}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(data), "text is required")
}

func TestEnhanceMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, Config{}, &stubEnhancer{})

	resp, err := http.Get(srv.URL + "/v1/enhance")
	require.NoError(t, err)
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestEnhanceUpstreamExhausted(t *testing.T) {
	stub := &stubEnhancer{err: &ai.ExhaustedError{
		Attempts: 4,
		Last: &ai.GatewayError{
			Kind:   ai.FailureHTTP,
			Model:  "meta-llama/llama-3.3-70b-instruct",
			Status: http.StatusUnauthorized,
			Detail: "invalid api key",
		},
	}}
	srv := newTestServer(t, Config{}, stub)

	resp, data := postJSON(t, srv.URL+"/v1/enhance", `{"text":"some text to fix"}`)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var body struct {
		Error string `json:"error"`
		Kind  string `json:"kind"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, "http_error", body.Kind)
	assert.Contains(t, body.Error, "status 401")
}

func TestEnhanceConfigError(t *testing.T) {
	stub := &stubEnhancer{err: &ai.ConfigError{Reason: "API key is required"}}
	srv := newTestServer(t, Config{}, stub)

	resp, data := postJSON(t, srv.URL+"/v1/enhance", `{"text":"some text to fix"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(data), "configuration_error")
}

func TestEnhanceOpaqueInternalError(t *testing.T) {
	stub := &stubEnhancer{err: errors.New("boom: secret detail")}
	srv := newTestServer(t, Config{}, stub)

	resp, data := postJSON(t, srv.URL+"/v1/enhance", `{"text":"some text to fix"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(data), "internal error")
	assert.NotContains(t, string(data), "secret detail")
}

func TestEnhanceRateLimited(t *testing.T) {
	stub := &stubEnhancer{result: &enhance.Result{EnhancedText: "ok then, a rewrite."}}
	srv := newTestServer(t, Config{RatePerSecond: 0.0001, Burst: 1}, stub)

	first, _ := postJSON(t, srv.URL+"/v1/enhance", `{"text":"some text to fix"}`)
	require.Equal(t, http.StatusOK, first.StatusCode)

	second, data := postJSON(t, srv.URL+"/v1/enhance", `{"text":"some text to fix"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
	assert.Contains(t, string(data), "too many requests")
}
