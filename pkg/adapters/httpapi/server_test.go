package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	florence "github.com/impact-cms/florence"
	"github.com/impact-cms/florence/pkg/adapters/memory"
	"github.com/impact-cms/florence/pkg/domain"
	"github.com/impact-cms/florence/pkg/llm"
	"github.com/impact-cms/florence/pkg/session"
)

type testStore struct{}

func (testStore) Claims(ctx context.Context) ([]domain.ClaimView, error) {
	return []domain.ClaimView{
		{ID: 1, Number: "WC-1001", Claimant: "Ada Price"},
		{ID: 2, Number: "WC-1002", Claimant: "Ben Okafor"},
		{ID: 3, Number: "WC-1003", Claimant: "Cora Diaz", Closed: true},
	}, nil
}

func (testStore) Claim(ctx context.Context, id int64) (*domain.ClaimView, error) {
	return nil, domain.ErrClaimNotFound
}

func (testStore) Invoices(ctx context.Context, claimID int64) ([]domain.InvoiceView, error) {
	return nil, nil
}

func (testStore) Billables(ctx context.Context, claimID int64) ([]domain.BillableView, error) {
	return nil, nil
}

func (testStore) LatestReport(ctx context.Context, claimID int64) (*domain.ReportView, error) {
	return nil, nil
}

func (testStore) CountReports(ctx context.Context, claimID int64) (int, error) {
	return 0, nil
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	assistant, err := florence.New(testStore{}, florence.WithGenerators(llm.NewMock()))
	require.NoError(t, err)
	srv := NewServer(assistant, session.NewManager(memory.NewStore()), nil)
	return srv.Handler()
}

func postTurn(t *testing.T, h http.Handler, body map[string]any) (int, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/assistant/turn", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w.Code, decoded
}

func TestTurnAssignsSessionAndPersistsState(t *testing.T) {
	h := newTestServer(t)

	code, first := postTurn(t, h, map[string]any{"question": "How many open claims do I have?"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "There are 2 open claims.", first["answer"])
	sessionID, _ := first["session_id"].(string)
	require.NotEmpty(t, sessionID)

	// The follow-up rides on the stored state, not on anything the
	// client sends beyond the session id.
	code, second := postTurn(t, h, map[string]any{
		"session_id": sessionID,
		"question":   "what about closed?",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "There is 1 closed claim.", second["answer"])
	assert.Equal(t, sessionID, second["session_id"])
}

func TestTurnAcceptsClaimContext(t *testing.T) {
	h := newTestServer(t)

	code, resp := postTurn(t, h, map[string]any{
		"question": "How much billing is on this claim?",
		"context":  map[string]any{"claim_id": 1, "page_context": "claim_detail"},
	})
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, resp["answer"], "no invoices")
}

func TestTurnRejectsMalformedBody(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/assistant/turn", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCapabilitiesEndpoint(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/assistant/capabilities", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string][]map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["capabilities"])
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
