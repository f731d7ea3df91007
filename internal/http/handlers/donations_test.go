package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"donationrelay/internal/domain"
	"donationrelay/internal/infra"
	"donationrelay/internal/middleware"
	"donationrelay/internal/relay"
)

type fakeSubmitter struct {
	calls int
	last  domain.DonationRequest
	out   relay.Outcome
}

func (f *fakeSubmitter) Submit(_ context.Context, req domain.DonationRequest) relay.Outcome {
	f.calls++
	f.last = req
	return f.out
}

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/donate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeResult(t *testing.T, rr *httptest.ResponseRecorder) domain.DonationResult {
	t.Helper()
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type = %q, want application/json", ct)
	}
	var res domain.DonationResult
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return res
}

func TestDonatePassesDecodedRequestToRelay(t *testing.T) {
	sub := &fakeSubmitter{out: relay.Outcome{
		Status: http.StatusOK,
		Result: domain.DonationResult{Success: true, Message: domain.MessageDonationProcessed},
	}}
	app := NewApp(sub, infra.NopLogger())

	body := `{"name":"Ada","phone":"0770000000","amount":"15","paymentMethod":"Airtel","pin":"1234","donationNumber":"D-1"}`
	req := jsonRequest(body)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rr := httptest.NewRecorder()
	app.Donate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	res := decodeResult(t, rr)
	if !res.Success || res.Message != domain.MessageDonationProcessed {
		t.Fatalf("unexpected result: %+v", res)
	}
	if sub.calls != 1 {
		t.Fatalf("relay calls = %d, want 1", sub.calls)
	}
	if sub.last.PaymentMethod != domain.MethodAirtel || sub.last.Amount == nil || sub.last.Amount.String() != "15" {
		t.Fatalf("unexpected decoded request: %s", sub.last)
	}
}

func TestDonateWritesRelayStatus(t *testing.T) {
	sub := &fakeSubmitter{out: relay.Outcome{
		Status: http.StatusInternalServerError,
		Result: domain.DonationResult{Success: false, Message: domain.MessagePaymentFailed},
	}}
	app := NewApp(sub, infra.NopLogger())

	rr := httptest.NewRecorder()
	app.Donate(rr, jsonRequest(`{}`))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if res := decodeResult(t, rr); res.Success || res.Message != domain.MessagePaymentFailed {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestDonateRejectsMalformedBody(t *testing.T) {
	for _, body := range []string{``, `not json`, `{"name":`, `{"amount":"abc"}`, `{"amount":""}`, `{"pin":1234}`,
		`{"name":"Ada","phone":770000000,"amount":50,"paymentMethod":"MTN","pin":"1234"}`,
		`{"name":"Ada","phone":"0770000000","amount":true,"paymentMethod":"MTN","pin":"1234"}`,
	} {
		sub := &fakeSubmitter{}
		app := NewApp(sub, infra.NopLogger())

		rr := httptest.NewRecorder()
		app.Donate(rr, jsonRequest(body))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rr.Code)
		}
		if res := decodeResult(t, rr); res.Success || res.Message != domain.MessageFieldsRequired {
			t.Fatalf("body %q: unexpected result %+v", body, res)
		}
		if sub.calls != 0 {
			t.Fatalf("body %q: relay should not be called", body)
		}
	}
}

func TestDonateRequiresJSONContentType(t *testing.T) {
	body := `{"name":"Ada","phone":"0770000000","amount":50,"paymentMethod":"MTN","pin":"1234"}`
	for _, contentType := range []string{"", "text/plain", "application/x-www-form-urlencoded", "application/jsonp", "not a media type"} {
		sub := &fakeSubmitter{out: relay.Outcome{Status: http.StatusOK}}
		app := NewApp(sub, infra.NopLogger())

		req := httptest.NewRequest(http.MethodPost, "/api/donate", strings.NewReader(body))
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		rr := httptest.NewRecorder()
		app.Donate(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("content-type %q: status = %d, want 400", contentType, rr.Code)
		}
		if res := decodeResult(t, rr); res.Success || res.Message != domain.MessageFieldsRequired {
			t.Fatalf("content-type %q: unexpected result %+v", contentType, res)
		}
		if sub.calls != 0 {
			t.Fatalf("content-type %q: relay should not be called", contentType)
		}
	}
}

func TestDonateRejectsOversizedBody(t *testing.T) {
	sub := &fakeSubmitter{}
	app := NewApp(sub, infra.NopLogger())
	h := middleware.BodyLimit(32)(http.HandlerFunc(app.Donate))

	body := `{"name":"` + strings.Repeat("x", 64) + `"}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, jsonRequest(body))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rr.Code)
	}
	if sub.calls != 0 {
		t.Fatalf("relay should not be called")
	}
}

func TestHealth(t *testing.T) {
	app := NewApp(&fakeSubmitter{}, infra.NopLogger())
	rr := httptest.NewRecorder()
	app.Health(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"ok"`) {
		t.Fatalf("unexpected health response: %d %s", rr.Code, rr.Body.String())
	}
}
