package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/starford/saka/internal/dateservice"
	"github.com/starford/saka/internal/julian"
	"github.com/starford/saka/internal/saka"
)

// testEnv builds a service pinned to 2026-10-14 UTC and a router around it.
// A non-empty authToken enables token mode.
func testEnv(t *testing.T, authToken string) (*dateservice.Service, http.Handler) {
	t.Helper()
	return testEnvWithEvents(t, authToken != "", authToken, nil)
}

func testEnvWithEvents(t *testing.T, authEnabled bool, authToken string, events http.Handler) (*dateservice.Service, http.Handler) {
	t.Helper()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	svc := dateservice.NewService(time.UTC, dateservice.WithNow(func() time.Time { return now }))
	return svc, NewRouter(svc, authEnabled, authToken, events)
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) DateResponse {
	t.Helper()
	var out DateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestToday(t *testing.T) {
	_, router := testEnv(t, "")
	w := get(t, router, "/today")
	if w.Code != http.StatusOK {
		t.Fatalf("today = %d: %s", w.Code, w.Body.String())
	}
	d := decode(t, w)
	if d.Saka != (saka.Date{Year: 1948, Month: 7, Day: 22}) {
		t.Errorf("saka = %v", d.Saka)
	}
	if d.Formatted != "22, Ashwin 1948" {
		t.Errorf("formatted = %q", d.Formatted)
	}
}

func TestSakaEndpoint(t *testing.T) {
	_, router := testEnv(t, "")
	w := get(t, router, "/saka/1932/12/26")
	if w.Code != http.StatusOK {
		t.Fatalf("saka = %d: %s", w.Code, w.Body.String())
	}
	d := decode(t, w)
	if d.Gregorian != (julian.Date{Year: 2011, Month: 3, Day: 17}) {
		t.Errorf("gregorian = %v", d.Gregorian)
	}
	if d.Formatted != "26, Phalguna 1932" {
		t.Errorf("formatted = %q", d.Formatted)
	}
}

func TestGregorianEndpoint(t *testing.T) {
	_, router := testEnv(t, "")
	w := get(t, router, "/gregorian/2011/3/17")
	if w.Code != http.StatusOK {
		t.Fatalf("gregorian = %d: %s", w.Code, w.Body.String())
	}
	if d := decode(t, w); d.Saka != (saka.Date{Year: 1932, Month: 12, Day: 26}) {
		t.Errorf("saka = %v", d.Saka)
	}
}

func TestJulianEndpoint(t *testing.T) {
	_, router := testEnv(t, "")
	w := get(t, router, "/julian/2451544.5")
	if w.Code != http.StatusOK {
		t.Fatalf("julian = %d: %s", w.Code, w.Body.String())
	}
	if d := decode(t, w); d.Gregorian != (julian.Date{Year: 2000, Month: 1, Day: 1}) {
		t.Errorf("gregorian = %v", d.Gregorian)
	}
}

func TestValidationErrors(t *testing.T) {
	_, router := testEnv(t, "")
	for _, tc := range []struct {
		path string
		msg  string
	}{
		{"/saka/1932/13/1", "invalid month: month=13"},
		{"/saka/1932/12/32", "invalid day: day=32"},
		{"/saka/932/12/1", "invalid year: year=932"},
		{"/saka/abc/12/1", "invalid argument: year=abc"},
		{"/gregorian/2023/2/29", "invalid day: day=29"},
		{"/julian/noon", "invalid argument: jd=noon"},
		{"/julian/0", "invalid year"},
		{"/calendar/1932/13", "invalid month"},
	} {
		w := get(t, router, tc.path)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s = %d, want 400", tc.path, w.Code)
			continue
		}
		var body errResponse
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if !strings.Contains(body.Error, tc.msg) {
			t.Errorf("%s error = %q, want %q", tc.path, body.Error, tc.msg)
		}
	}
}

func TestShiftEndpoint(t *testing.T) {
	_, router := testEnv(t, "")
	body, _ := json.Marshal(ShiftRequest{
		Date:   saka.Date{Year: 1932, Month: 12, Day: 5},
		Op:     dateservice.OpAdd,
		Unit:   dateservice.UnitDays,
		Amount: 5,
	})
	req := httptest.NewRequest(http.MethodPost, "/shift", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("shift = %d: %s", w.Code, w.Body.String())
	}
	if d := decode(t, w); d.Saka != (saka.Date{Year: 1932, Month: 12, Day: 10}) {
		t.Errorf("saka = %v", d.Saka)
	}

	for _, raw := range []string{
		`{"date":{"year":1932,"month":12,"day":5},"op":"add","unit":"weeks","amount":1}`,
		`{"date":{"year":1932,"month":12,"day":5},"op":"subtract","unit":"days","amount":-1}`,
		`{"date":{"year":1932,"month":14,"day":5},"op":"add","unit":"days","amount":1}`,
		`not json`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/shift", strings.NewReader(raw))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s = %d, want 400", raw, w.Code)
		}
	}
}

func TestCalendarEndpoint(t *testing.T) {
	_, router := testEnv(t, "")
	w := get(t, router, "/calendar/1932/12")
	if w.Code != http.StatusOK {
		t.Fatalf("calendar = %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q", ct)
	}
	lines := strings.Split(w.Body.String(), "\n")
	if len(lines) < 3 || lines[2] != " 1  2  3  4  5  6  7" {
		t.Errorf("calendar = %q", w.Body.String())
	}

	w = get(t, router, "/calendar/1932/phalguna?format=json")
	if w.Code != http.StatusOK {
		t.Fatalf("calendar json = %d: %s", w.Code, w.Body.String())
	}
	var resp CalendarResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Days != 30 || resp.Name != "Phalguna" || len(resp.Weeks) != 5 || resp.Weeks[0][0] != 1 {
		t.Errorf("grid = %+v", resp.MonthGrid)
	}
	if !strings.Contains(resp.Text, "Phalguna 1932") {
		t.Errorf("text = %q", resp.Text)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	_, router := testEnv(t, "secret123")
	req := httptest.NewRequest(http.MethodGet, "/today", nil)
	req.Header.Set("Authorization", "Bearer secret123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("authed today = %d, want 200", w.Code)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	_, router := testEnv(t, "secret123")
	if w := get(t, router, "/today"); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthed = %d, want 401", w.Code)
	}
}

func TestAuthMiddleware_WrongToken(t *testing.T) {
	_, router := testEnv(t, "secret123")
	req := httptest.NewRequest(http.MethodGet, "/today", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token = %d, want 401", w.Code)
	}
}

// blockingEvents writes stream headers and blocks until the request ends.
var blockingEvents = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.WriteHeader(http.StatusOK)
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
	<-r.Context().Done()
})

func TestEvents_AuthProtected(t *testing.T) {
	_, router := testEnvWithEvents(t, true, "secret", blockingEvents)
	if w := get(t, router, "/events"); w.Code != http.StatusUnauthorized {
		t.Errorf("events no auth = %d, want 401", w.Code)
	}
}

func TestEvents_ValidToken(t *testing.T) {
	_, router := testEnvWithEvents(t, true, "tok", blockingEvents)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/events", nil).WithContext(ctx)
	req.Header.Set("Authorization", "Bearer tok")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("events with token = %d, want 200", w.Code)
	}
}

func TestEvents_NotMounted(t *testing.T) {
	_, router := testEnv(t, "")
	if w := get(t, router, "/events"); w.Code != http.StatusNotFound {
		t.Errorf("events = %d, want 404", w.Code)
	}
}
