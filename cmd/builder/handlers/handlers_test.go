package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hairizuan-noorazman/scenario-builder/draft"
	"github.com/hairizuan-noorazman/scenario-builder/editor"
	"github.com/hairizuan-noorazman/scenario-builder/gateway"
	"github.com/hairizuan-noorazman/scenario-builder/payload"
	"github.com/hairizuan-noorazman/scenario-builder/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	HealthHandler("1.4.0")(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","version":"1.4.0"}`, w.Body.String())
}

func TestSessionMiddleware(t *testing.T) {
	env := setupTestServer(t)

	status, _ := env.do(t, http.MethodGet, "/api/v1/scenario", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, env.sessions.Len())

	// the cookie brings the same session back
	status, _ = env.do(t, http.MethodPut, "/api/v1/scenario/agent-config", map[string]string{"projectName": "Alpha"})
	require.Equal(t, http.StatusOK, status)
	_, body := env.do(t, http.MethodGet, "/api/v1/scenario", nil)
	assert.Equal(t, "Alpha", decodeState(t, body).Scenario.AgentConfig.ProjectName)
	assert.Equal(t, 1, env.sessions.Len())

	// a tampered cookie starts over
	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/api/v1/scenario", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "not-signed"})
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var state stateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	assert.Empty(t, state.Scenario.AgentConfig.ProjectName)
	assert.Equal(t, 2, env.sessions.Len())
	assert.NotEmpty(t, resp.Cookies())

	_, ok := env.log.Find("warn", "invalid session cookie")
	assert.True(t, ok)
}

func TestScenarioHandler_EmptyForm(t *testing.T) {
	env := setupTestServer(t)

	status, body := env.do(t, http.MethodGet, "/api/v1/scenario", nil)
	require.Equal(t, http.StatusOK, status)

	state := decodeState(t, body)
	assert.False(t, state.Valid)
	assert.Empty(t, state.Steps)
	assert.ElementsMatch(t, []string{scenario.SectionAgentConfig, scenario.SectionSteps}, state.Sections)
}

func TestScenarioHandler_UpdateAndReset(t *testing.T) {
	env := setupTestServer(t)

	status, body := env.do(t, http.MethodPut, "/api/v1/scenario/agent-config", map[string]string{
		"startPageUrl": "https://example.com",
		"projectName":  "Proj 1",
		"scenarioName": "Login",
	})
	require.Equal(t, http.StatusOK, status)
	state := decodeState(t, body)
	assert.Equal(t, "https://example.com", state.Scenario.AgentConfig.StartPageURL)
	assert.Equal(t, []string{scenario.SectionSteps}, state.Sections)

	// omitted fields keep their value
	_, body = env.do(t, http.MethodPut, "/api/v1/scenario/agent-config", map[string]string{"scenarioName": "Logout"})
	state = decodeState(t, body)
	assert.Equal(t, "Proj 1", state.Scenario.AgentConfig.ProjectName)
	assert.Equal(t, "Logout", state.Scenario.AgentConfig.ScenarioName)

	status, _ = env.do(t, http.MethodPut, "/api/v1/scenario/agent-config", "{not json")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = env.do(t, http.MethodPost, "/api/v1/scenario/reset", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decodeState(t, body).Scenario.AgentConfig.ProjectName)
}

func TestStepHandler_AddMoveRemove(t *testing.T) {
	env := setupTestServer(t)

	for i := 0; i < 3; i++ {
		status, _ := env.do(t, http.MethodPost, "/api/v1/steps", nil)
		require.Equal(t, http.StatusCreated, status)
	}

	ids := func(s stateResponse) []string {
		var out []string
		for i, step := range s.Steps {
			assert.Equal(t, i+1, step.StepNumber)
			out = append(out, step.ID)
		}
		return out
	}

	_, body := env.do(t, http.MethodGet, "/api/v1/scenario", nil)
	initial := ids(decodeState(t, body))
	require.Len(t, initial, 3)

	status, body := env.do(t, http.MethodPost, "/api/v1/steps/move", map[string]int{"from": 0, "to": 2})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{initial[1], initial[2], initial[0]}, ids(decodeState(t, body)))

	// dropped outside the list
	_, body = env.do(t, http.MethodPost, "/api/v1/steps/move", `{"source":{"index":0},"destination":null}`)
	assert.Equal(t, []string{initial[1], initial[2], initial[0]}, ids(decodeState(t, body)))

	_, body = env.do(t, http.MethodPost, "/api/v1/steps/move", `{"source":{"index":2},"destination":{"index":0}}`)
	assert.Equal(t, initial, ids(decodeState(t, body)))

	status, _ = env.do(t, http.MethodPost, "/api/v1/steps/move", `{}`)
	assert.Equal(t, http.StatusBadRequest, status)

	// out of range removal leaves the list alone
	status, body = env.do(t, http.MethodDelete, "/api/v1/steps/7", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decodeState(t, body).Steps, 3)

	_, body = env.do(t, http.MethodDelete, "/api/v1/steps/0", nil)
	assert.Equal(t, initial[1:], ids(decodeState(t, body)))
}

func TestStepHandler_FieldsAndToggles(t *testing.T) {
	env := setupTestServer(t)

	_, body := env.do(t, http.MethodPost, "/api/v1/steps", nil)
	stepID := decodeState(t, body).Steps[0].ID

	status, body := env.do(t, http.MethodPut, "/api/v1/steps/"+stepID, map[string]string{"actionType": "click"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "click", decodeState(t, body).Steps[0].ActionType)

	status, body = env.do(t, http.MethodPost, "/api/v1/steps/"+stepID+"/parameters", scenario.Parameter{Key: "user", Value: "bob"})
	require.Equal(t, http.StatusCreated, status)
	paramID := decodeState(t, body).Steps[0].ParameterFields[0].ID

	status, _ = env.do(t, http.MethodPut, "/api/v1/steps/"+stepID+"/parameters/"+paramID, scenario.Parameter{Key: "user", Value: "alice", IsSecret: true})
	require.Equal(t, http.StatusOK, status)

	status, body = env.do(t, http.MethodPost, "/api/v1/steps/"+stepID+"/expected-results", nil)
	require.Equal(t, http.StatusCreated, status)
	state := decodeState(t, body)
	resultID := state.Steps[0].ResultFields[0].ID
	assert.Contains(t, fieldPaths(state), "steps.0.expectedResults.0.description")

	status, body = env.do(t, http.MethodPut, "/api/v1/steps/"+stepID+"/expected-results/"+resultID, scenario.ExpectedResult{Description: "Done"})
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, fieldPaths(decodeState(t, body)), "steps.0.expectedResults.0.description")

	status, body = env.do(t, http.MethodDelete, "/api/v1/steps/"+stepID+"/parameters/"+paramID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decodeState(t, body).Steps[0].ParameterFields)

	status, _ = env.do(t, http.MethodDelete, "/api/v1/steps/"+stepID+"/parameters/"+paramID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.do(t, http.MethodDelete, "/api/v1/steps/"+stepID+"/expected-results/"+resultID, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = env.do(t, http.MethodPost, "/api/v1/steps/"+stepID+"/toggle", nil)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, decodeState(t, body).Steps[0].Expanded)

	_, body = env.do(t, http.MethodPost, "/api/v1/steps/toggle-all", nil)
	state = decodeState(t, body)
	assert.True(t, state.Steps[0].Expanded)
	assert.True(t, state.AllExpanded)

	status, _ = env.do(t, http.MethodPost, "/api/v1/steps/missing/toggle", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestStepHandler_ClearRequiresConfirmation(t *testing.T) {
	env := setupTestServer(t)
	env.do(t, http.MethodPost, "/api/v1/steps", nil)

	status, _ := env.do(t, http.MethodDelete, "/api/v1/steps", nil)
	assert.Equal(t, http.StatusPreconditionRequired, status)

	_, body := env.do(t, http.MethodGet, "/api/v1/scenario", nil)
	assert.Len(t, decodeState(t, body).Steps, 1)

	status, body = env.do(t, http.MethodDelete, "/api/v1/steps?confirmed=true", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decodeState(t, body).Steps)
}

func TestDraftHandler(t *testing.T) {
	env := setupTestServer(t)
	env.do(t, http.MethodPut, "/api/v1/scenario/agent-config", map[string]string{"projectName": "Saved"})

	status, body := env.do(t, http.MethodPost, "/api/v1/drafts", SaveDraftRequest{Name: "   "})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, draft.ErrEmptyName.Error(), decodeError(t, body).Error)

	status, body = env.do(t, http.MethodPost, "/api/v1/drafts", SaveDraftRequest{Name: "A"})
	require.Equal(t, http.StatusCreated, status)
	var entry draft.Entry
	require.NoError(t, json.Unmarshal(body, &entry))
	assert.Equal(t, draft.Entry{Key: "test-scenario-A", Name: "A"}, entry)

	status, body = env.do(t, http.MethodGet, "/api/v1/drafts", nil)
	require.Equal(t, http.StatusOK, status)
	var list DraftListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 1, list.Total)

	env.do(t, http.MethodPost, "/api/v1/scenario/reset", nil)

	status, body = env.do(t, http.MethodPost, "/api/v1/drafts/load", LoadDraftRequest{Key: entry.Key})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Saved", decodeState(t, body).Scenario.AgentConfig.ProjectName)

	status, _ = env.do(t, http.MethodPost, "/api/v1/drafts/load", LoadDraftRequest{Key: "test-scenario-missing"})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.do(t, http.MethodDelete, "/api/v1/drafts/"+entry.Key, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, http.MethodDelete, "/api/v1/drafts/"+entry.Key, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestDraftHandler_DeleteKeyWithSlash(t *testing.T) {
	env := setupTestServer(t)

	status, _ := env.do(t, http.MethodPost, "/api/v1/drafts", SaveDraftRequest{Name: "checkout/guest"})
	require.Equal(t, http.StatusCreated, status)

	status, _ = env.do(t, http.MethodDelete, "/api/v1/drafts/test-scenario-checkout/guest", nil)
	require.Equal(t, http.StatusOK, status)

	status, body := env.do(t, http.MethodGet, "/api/v1/drafts", nil)
	require.Equal(t, http.StatusOK, status)
	var list DraftListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Zero(t, list.Total)
}

func TestHealthRoute(t *testing.T) {
	env := setupTestServer(t)

	status, body := env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"healthy","version":"test"}`, string(body))
}

func TestTransferHandler(t *testing.T) {
	env := setupTestServer(t)

	status, body := env.do(t, http.MethodPost, "/api/v1/import", "{oops")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decodeError(t, body).Error, "malformed JSON")

	status, _ = env.do(t, http.MethodPost, "/api/v1/import", `{"unrelated":true}`)
	assert.Equal(t, http.StatusBadRequest, status)

	wire := `{
		"start_page": "https://example.com",
		"name": "Login Test",
		"project_name": "Proj_1",
		"case_steps": [
			{"action": "Click Login", "number": 1, "expected_results": ["User is logged in"],
			 "parameters": [{"key": "user", "value": "bob", "is_secret": false}]}
		]
	}`
	status, body = env.do(t, http.MethodPost, "/api/v1/import", wire)
	require.Equal(t, http.StatusOK, status)

	var imported struct {
		Format payload.Format `json:"format"`
		State  stateResponse  `json:"state"`
	}
	require.NoError(t, json.Unmarshal(body, &imported))
	assert.Equal(t, payload.FormatWire, imported.Format)
	assert.True(t, imported.State.Valid)
	assert.Equal(t, "step-1", imported.State.Steps[0].ID)

	status, body = env.do(t, http.MethodGet, "/api/v1/export", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, wire, string(body))

	status, body = env.do(t, http.MethodGet, "/api/v1/export?format=ui", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"agentConfig"`)

	status, _ = env.do(t, http.MethodGet, "/api/v1/export?format=yaml", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestSubmitHandler(t *testing.T) {
	env := setupTestServer(t)

	status, body := env.do(t, http.MethodPost, "/api/v1/submit?confirmed=true", nil)
	require.Equal(t, http.StatusUnprocessableEntity, status)
	resp := decodeError(t, body)
	assert.NotEmpty(t, resp.Fields)
	assert.Contains(t, resp.Error, scenario.ErrValidation.Error())

	_, body = env.do(t, http.MethodPost, "/api/v1/import", `{
		"agentConfig": {"startPageUrl": "https://example.com", "projectName": "Proj_1", "scenarioName": "Login Test"},
		"steps": [{"actionType": "Click Login", "expectedResults": [], "parameters": []}]
	}`)
	require.True(t, decodeState(t, mustField(t, body, "state")).Valid)

	status, _ = env.do(t, http.MethodPost, "/api/v1/submit", nil)
	assert.Equal(t, http.StatusPreconditionRequired, status)
	assert.Empty(t, env.received)

	status, body = env.do(t, http.MethodPost, "/api/v1/submit?confirmed=true", nil)
	require.Equal(t, http.StatusOK, status, string(body))

	var result gateway.Result
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, gateway.KindData, result.Kind)
	assert.JSONEq(t, `{"run_id":"r-1"}`, string(result.Data))

	sent := <-env.received
	assert.Contains(t, string(sent), `"case_steps"`)
	assert.NotContains(t, string(sent), "code_writer_model")
}

func TestCertificateHandler(t *testing.T) {
	env := setupTestServer(t)

	status, body := env.do(t, http.MethodGet, "/api/v1/certificates", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"unknown","available":false}`, string(body))

	_, body = env.do(t, http.MethodPost, "/api/v1/certificates/check", nil)
	assert.JSONEq(t, `{"status":"missing","available":false}`, string(body))

	ctx := context.Background()
	require.NoError(t, env.blobs.Put(ctx, "cert.pem", strings.NewReader("cert")))
	require.NoError(t, env.blobs.Put(ctx, "key.pem", strings.NewReader("key")))

	_, body = env.do(t, http.MethodPost, "/api/v1/certificates/check", nil)
	assert.JSONEq(t, `{"status":"loaded","available":true}`, string(body))
}

func TestCatalogHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	w := httptest.NewRecorder()

	CatalogHandler(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp CatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, scenario.ModelOptions, resp.Models)
	assert.Equal(t, scenario.ActionTypes, resp.ActionTypes)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("%w: steps", scenario.ErrValidation), want: http.StatusUnprocessableEntity},
		{err: scenario.ErrStepNotFound, want: http.StatusNotFound},
		{err: draft.ErrDraftNotFound, want: http.StatusNotFound},
		{err: draft.ErrEmptyName, want: http.StatusBadRequest},
		{err: draft.ErrCorruptedDraft, want: http.StatusUnprocessableEntity},
		{err: payload.ErrMalformedJSON, want: http.StatusBadRequest},
		{err: editor.ErrNotConfirmed, want: http.StatusPreconditionRequired},
		{err: gateway.ErrSubmissionInProgress, want: http.StatusConflict},
		{err: editor.ErrNoSubmitter, want: http.StatusServiceUnavailable},
		{err: &gateway.RemoteError{StatusCode: 500, Message: "boom"}, want: http.StatusBadGateway},
		{err: &gateway.TransportError{Endpoint: "http://x", Err: errors.New("refused")}, want: http.StatusBadGateway},
		{err: errors.New("disk on fire"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func fieldPaths(s stateResponse) []string {
	paths := make([]string, 0, len(s.Errors))
	for _, e := range s.Errors {
		paths = append(paths, e.Path)
	}
	return paths
}

func mustField(t *testing.T, data []byte, name string) []byte {
	t.Helper()
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))
	raw, ok := fields[name]
	require.True(t, ok, "missing field %q", name)
	return raw
}
