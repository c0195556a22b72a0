package fireplan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Thorongil80/fireplan-alarm-divera/internal/domain/alarm"
)

// recordedRegister captures one call to the registration endpoint.
type recordedRegister struct {
	method string
	path   string
	apiKey string
}

// recordedAlarm captures one call to the alarm endpoint.
type recordedAlarm struct {
	method      string
	token       string
	contentType string
	record      alarm.OutboundAlarm
}

// fakeAPI is a minimal Fireplan endpoint recording what the client sent.
// Assertions happen in the tests, never inside the handlers.
type fakeAPI struct {
	mu sync.Mutex

	registerStatus int
	token          string
	registers      []recordedRegister

	// alarmStatus decides the response code for the n-th alarm call (1-based).
	alarmStatus func(n int) int
	alarms      []recordedAlarm
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		registerStatus: http.StatusOK,
		token:          "tok-1",
	}
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/Register/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.registers = append(f.registers, recordedRegister{
			method: r.Method,
			path:   r.URL.Path,
			apiKey: r.Header.Get("API-Key"),
		})

		if f.registerStatus != http.StatusOK {
			http.Error(w, "denied", f.registerStatus)

			return
		}

		_ = json.NewEncoder(w).Encode(map[string]string{"utoken": f.token})
	})

	mux.HandleFunc("/Alarmierung", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		var rec alarm.OutboundAlarm

		_ = json.NewDecoder(r.Body).Decode(&rec)

		f.alarms = append(f.alarms, recordedAlarm{
			method:      r.Method,
			token:       r.Header.Get("API-Token"),
			contentType: r.Header.Get("Content-Type"),
			record:      rec,
		})

		status := http.StatusOK
		if f.alarmStatus != nil {
			status = f.alarmStatus(len(f.alarms))
		}

		if status != http.StatusOK {
			http.Error(w, "boom", status)

			return
		}

		_, _ = w.Write([]byte(`"Alarm angelegt"`))
	})

	return mux
}

// fakeNotifier collects audit entries.
type fakeNotifier struct {
	mu      sync.Mutex
	entries []string
}

func (f *fakeNotifier) Submitted(_ context.Context, entry string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append(f.entries, entry)

	return nil
}

// newTestClient builds a client pointed at the fake API.
func newTestClient(t *testing.T, baseURL string, opts ...Option) *Client {
	t.Helper()

	c := NewClient("key-1234", append([]Option{
		WithBaseURL(baseURL),
		WithHTTPClient(&http.Client{Timeout: 5 * time.Second}),
	}, opts...)...)
	t.Cleanup(c.Close)

	return c
}

// testRecords returns two assembled records sharing the same extraction result.
func testRecords() []alarm.OutboundAlarm {
	return alarm.Assemble(alarm.ExtractedFields{
		Einsatznrlst:     "E-123",
		Einsatzstichwort: "FEUER3",
	}, []alarm.Ric{
		{Ric: "1111111", SubRic: "A"},
		{Ric: "2222222", SubRic: "B"},
	})
}

// TestSubmitDeliversRecords verifies the happy path: one registration,
// one POST per record, audit entry and hook per delivery.
func TestSubmitDeliversRecords(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	notifier := &fakeNotifier{}
	hookCalls := 0
	c := newTestClient(t, srv.URL,
		WithNotifier(notifier),
		WithHook(func(context.Context) { hookCalls++ }),
	)

	res, err := c.Submit(context.Background(), "Feuerwehr Musterstadt", testRecords())
	require.NoError(t, err)
	require.Equal(t, Result{Submitted: 2}, res)

	require.Len(t, api.registers, 1)
	require.Equal(t, http.MethodPost, api.registers[0].method)
	require.Equal(t, "/Register/Feuerwehr Musterstadt", api.registers[0].path)
	require.Equal(t, "key-1234", api.registers[0].apiKey)

	require.Len(t, api.alarms, 2)
	for _, call := range api.alarms {
		require.Equal(t, http.MethodPost, call.method)
		require.Equal(t, "tok-1", call.token)
		require.Equal(t, "application/json", call.contentType)
		require.Equal(t, "E-123", call.record.Einsatznrlst)
		require.Equal(t, "FEUER3", call.record.Einsatzstichwort)
	}
	require.Equal(t, "1111111", api.alarms[0].record.Ric)
	require.Equal(t, "2222222", api.alarms[1].record.Ric)

	require.Equal(t, []string{"E-123 - FEUER3", "E-123 - FEUER3"}, notifier.entries)
	require.Equal(t, 2, hookCalls)
}

// TestSubmitPartialFailure verifies one rejected record does not stop the rest.
func TestSubmitPartialFailure(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.alarmStatus = func(n int) int {
		if n == 1 {
			return http.StatusInternalServerError
		}

		return http.StatusOK
	}
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	notifier := &fakeNotifier{}
	c := newTestClient(t, srv.URL, WithNotifier(notifier))

	res, err := c.Submit(context.Background(), "Verwaltung", testRecords())
	require.NoError(t, err)
	require.Equal(t, Result{Submitted: 1, Failed: 1}, res)

	// Both records were attempted, only the delivered one was audited.
	require.Len(t, api.alarms, 2)
	require.Len(t, notifier.entries, 1)
}

// TestSubmitTokenFailure verifies a failed registration aborts the cycle
// before any record is posted.
func TestSubmitTokenFailure(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.registerStatus = http.StatusUnauthorized
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	notifier := &fakeNotifier{}
	hookCalls := 0
	c := newTestClient(t, srv.URL,
		WithNotifier(notifier),
		WithHook(func(context.Context) { hookCalls++ }),
	)

	res, err := c.Submit(context.Background(), "Verwaltung", testRecords())
	require.Error(t, err)
	require.Equal(t, Result{}, res)

	require.Empty(t, api.alarms)
	require.Empty(t, notifier.entries)
	require.Zero(t, hookCalls)
}

// TestSubmitEmptySet verifies an empty record set causes no API traffic.
func TestSubmitEmptySet(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)

	res, err := c.Submit(context.Background(), "Verwaltung", nil)
	require.NoError(t, err)
	require.Equal(t, Result{}, res)
	require.Empty(t, api.registers)
}

// TestTokenReusedAcrossCycles verifies the cached token serves later cycles.
func TestTokenReusedAcrossCycles(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)

	_, err := c.Submit(context.Background(), "Verwaltung", testRecords())
	require.NoError(t, err)

	_, err = c.Submit(context.Background(), "Verwaltung", testRecords())
	require.NoError(t, err)

	require.Len(t, api.registers, 1)
	require.Len(t, api.alarms, 4)
}

// TestTokenEvictedOnUnauthorized verifies a 401 on submission drops the
// cached token so the next cycle registers again.
func TestTokenEvictedOnUnauthorized(t *testing.T) {
	t.Parallel()

	api := newFakeAPI()
	api.alarmStatus = func(int) int { return http.StatusUnauthorized }
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)

	res, err := c.Submit(context.Background(), "Verwaltung", testRecords()[:1])
	require.NoError(t, err)
	require.Equal(t, Result{Failed: 1}, res)

	api.mu.Lock()
	api.alarmStatus = nil
	api.token = "tok-2"
	api.mu.Unlock()

	res, err = c.Submit(context.Background(), "Verwaltung", testRecords()[:1])
	require.NoError(t, err)
	require.Equal(t, Result{Submitted: 1}, res)

	require.Len(t, api.registers, 2)
	require.Equal(t, "tok-2", api.alarms[1].token)
}
