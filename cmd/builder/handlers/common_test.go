package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hairizuan-noorazman/scenario-builder/certs"
	"github.com/hairizuan-noorazman/scenario-builder/draft"
	"github.com/hairizuan-noorazman/scenario-builder/editor"
	"github.com/hairizuan-noorazman/scenario-builder/gateway"
	"github.com/hairizuan-noorazman/scenario-builder/internal/uuidutil"
	"github.com/hairizuan-noorazman/scenario-builder/logger"
	"github.com/hairizuan-noorazman/scenario-builder/session"
	"github.com/hairizuan-noorazman/scenario-builder/storage"
	"github.com/hairizuan-noorazman/scenario-builder/testutil"
	"github.com/stretchr/testify/require"
)

const testCookieName = "scenario_session"

type testEnv struct {
	server   *httptest.Server
	client   *http.Client
	sessions *session.Manager
	blobs    storage.BlobStorage
	log      *logger.TestLogger
	received chan []byte
}

// setupTestServer wires the API against in-memory sqlite drafts, a
// temporary certificate directory and a fake code-generation service.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	log := logger.NewTestLogger()
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &draft.Draft{})
	drafts := draft.NewMySQLStore(db, log)

	blobs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	monitor := certs.NewMonitor()
	loader := certs.NewLoader(blobs, monitor, log)

	received := make(chan []byte, 4)
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- body
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"run_id":"r-1"}`))
	}))
	t.Cleanup(remote.Close)

	client, err := gateway.New(gateway.Config{BaseURL: remote.URL}, log, gateway.WithCertificateStatus(monitor))
	require.NoError(t, err)

	sessions := session.NewManager(time.Hour, func() *editor.Editor {
		return editor.New(log,
			editor.WithDraftStore(drafts),
			editor.WithSubmitter(client.Clone()),
			editor.WithIDGenerator(uuidutil.NewSequence("id")),
		)
	}, log)

	router := NewRouter(RouterConfig{
		Sessions:     sessions,
		CertLoader:   loader,
		CertMonitor:  monitor,
		CookieName:   testCookieName,
		CookieSecret: "test-secret-with-at-least-32-characters",
		Logger:       log,
		Version:      "test",
	})
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		server:   server,
		client:   &http.Client{Jar: jar},
		sessions: sessions,
		blobs:    blobs,
		log:      log,
		received: received,
	}
}

// do sends a request with an optional JSON body and returns the status and
// raw response body.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, e.server.URL+path, reader)
	require.NoError(t, err)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

// stateResponse mirrors the parts of editor.State the tests look at.
type stateResponse struct {
	Scenario struct {
		AgentConfig struct {
			ProjectName  string `json:"projectName"`
			ScenarioName string `json:"scenarioName"`
			StartPageURL string `json:"startPageUrl"`
		} `json:"agentConfig"`
	} `json:"scenario"`
	Steps []struct {
		ID              string `json:"id"`
		StepNumber      int    `json:"stepNumber"`
		ActionType      string `json:"actionType"`
		Expanded        bool   `json:"expanded"`
		ParameterFields []struct {
			ID string `json:"id"`
		} `json:"parameterFields"`
		ResultFields []struct {
			ID string `json:"id"`
		} `json:"expectedResultFields"`
	} `json:"steps"`
	Errors []struct {
		Path    string `json:"path"`
		Message string `json:"message"`
	} `json:"errors"`
	Sections    []string `json:"sections"`
	Valid       bool     `json:"valid"`
	AllExpanded bool     `json:"allExpanded"`
}

func decodeState(t *testing.T, data []byte) stateResponse {
	t.Helper()
	var s stateResponse
	require.NoError(t, json.Unmarshal(data, &s), string(data))
	return s
}

func decodeError(t *testing.T, data []byte) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.Unmarshal(data, &e), string(data))
	return e
}
