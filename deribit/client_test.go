// Copyright (c) 2025 cdrappi

package deribit

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	testingKey    string
	testingSecret string
)

func checkCredentials() bool {
	if len(testingKey) != 0 && len(testingSecret) != 0 {
		return true
	}
	s, err := CredentialsFromFile("deribit-creds.json")
	if err != nil {
		return false
	}
	testingKey = s.Key
	testingSecret = s.Secret
	return len(testingKey) != 0 && len(testingSecret) != 0
}

func serverClient(t *testing.T, key, secret string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(key, secret, &Options{RestURL: server.URL})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestIndex(t *testing.T) {
	c := serverClient(t, "", "", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("index request method = %s, want GET", r.Method)
		}
		if r.URL.Path != "/api/v1/public/index" {
			t.Errorf("index request path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"success": true, "result": {"btc": 15000.0}}`))
	})

	index, err := c.GetIndex(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if want := decimal.NewFromInt(15000); !index.Btc.Equal(want) {
		t.Fatalf("btc index = %v, want %v", index.Btc, want)
	}
}

func TestPrivateWithoutCredentials(t *testing.T) {
	requests := 0
	handler := func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"success": true, "result": {}}`))
	}

	ctx := context.Background()
	req := &OrderRequest{
		Instrument: "BTC-26JAN18",
		Quantity:   10,
		Price:      decimal.RequireFromString("15000.5"),
	}

	for _, creds := range [][2]string{{"", ""}, {"key", ""}, {"", "secret"}} {
		c := serverClient(t, creds[0], creds[1], handler)
		if _, err := c.Buy(ctx, req); !errors.Is(err, ErrCredentials) {
			t.Errorf("key=%q secret=%q: err = %v, want ErrCredentials", creds[0], creds[1], err)
		}
	}
	if requests != 0 {
		t.Fatalf("server saw %d requests, want none", requests)
	}
}

func TestStatusError(t *testing.T) {
	c := serverClient(t, "", "", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	_, err := c.GetInstruments(context.Background())
	statusErr := new(StatusError)
	if !errors.As(err, &statusErr) {
		t.Fatalf("err = %v, want StatusError", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status code = %d, want 500", statusErr.StatusCode)
	}
}

func TestAPIError(t *testing.T) {
	c := serverClient(t, "key", "secret", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "insufficient funds"}`))
	})

	req := &OrderRequest{
		Instrument: "BTC-26JAN18",
		Quantity:   10,
		Price:      decimal.RequireFromString("15000.5"),
	}
	_, err := c.Buy(context.Background(), req)
	apiErr := new(APIError)
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want APIError", err)
	}
	if apiErr.Message != "insufficient funds" {
		t.Fatalf("message = %q, want %q", apiErr.Message, "insufficient funds")
	}
}

func TestTradeHistoryDefaults(t *testing.T) {
	c := serverClient(t, "key", "secret", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("trade history method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/v1/private/tradehistory" {
			t.Errorf("trade history path = %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Error(err)
		}
		if got := r.PostForm.Get("instrument"); got != "all" {
			t.Errorf("instrument = %q, want %q", got, "all")
		}
		if len(r.PostForm) != 1 {
			t.Errorf("form has extra keys: %v", r.PostForm)
		}
		if sig := r.Header.Get("x-deribit-sig"); len(strings.Split(sig, ".")) != 3 {
			t.Errorf("malformed signature header: %q", sig)
		}
		w.Write([]byte(`{"success": true, "result": []}`))
	})

	trades, err := c.GetTradeHistory(context.Background(), "", 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(trades) != 0 {
		t.Fatalf("trades = %v, want none", trades)
	}
}

func TestCancelAllDefaults(t *testing.T) {
	c := serverClient(t, "key", "secret", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Error(err)
		}
		if got := r.PostForm.Get("type"); got != "all" {
			t.Errorf("type = %q, want %q", got, "all")
		}
		if len(r.PostForm) != 1 {
			t.Errorf("form has extra keys: %v", r.PostForm)
		}
		w.Write([]byte(`{"success": true, "message": "cancelled 2 orders"}`))
	})

	res, err := c.CancelAll(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if res.Message != "cancelled 2 orders" {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestAcknowledgement(t *testing.T) {
	c := serverClient(t, "", "", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true}`))
	})

	res, err := c.Do(context.Background(), "/api/v1/public/ping", nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Message != "Ok" {
		t.Fatalf("message = %q, want %q", res.Message, "Ok")
	}
	if len(res.Raw) != 0 {
		t.Fatalf("unexpected result payload: %s", res.Raw)
	}
}

func TestOptionalParameters(t *testing.T) {
	var query map[string][]string
	c := serverClient(t, "", "", func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"success": true, "result": []}`))
	})
	ctx := context.Background()

	if _, err := c.GetLastTrades(ctx, "BTC-26JAN18", 0, 0); err != nil {
		t.Fatal(err)
	}
	if len(query) != 1 || query["instrument"][0] != "BTC-26JAN18" {
		t.Fatalf("query = %v, want instrument only", query)
	}

	if _, err := c.GetLastTrades(ctx, "BTC-26JAN18", 5, 100); err != nil {
		t.Fatal(err)
	}
	if got := query["count"]; len(got) != 1 || got[0] != "5" {
		t.Fatalf("count = %v", got)
	}
	if got := query["since"]; len(got) != 1 || got[0] != "100" {
		t.Fatalf("since = %v", got)
	}
}

func TestOrderParameters(t *testing.T) {
	var form map[string][]string
	c := serverClient(t, "key", "secret", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Error(err)
		}
		form = r.PostForm
		w.Write([]byte(`{"success": true, "result": {"order": {"orderId": 1}}}`))
	})
	ctx := context.Background()

	req := &OrderRequest{
		Instrument: "BTC-26JAN18",
		Quantity:   10,
		Price:      decimal.RequireFromString("15000.5"),
	}
	if _, err := c.Buy(ctx, req); err != nil {
		t.Fatal(err)
	}
	if len(form) != 3 {
		t.Fatalf("form = %v, want instrument/quantity/price only", form)
	}
	if got := form["price"]; got[0] != "15000.5" {
		t.Fatalf("price = %v", got)
	}

	req.PostOnly = true
	req.Label = "test-label"
	result, err := c.Sell(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	if result.Order == nil || result.Order.OrderID != 1 {
		t.Fatalf("order result = %#v", result)
	}
	if got := form["postOnly"]; len(got) != 1 || got[0] != "true" {
		t.Fatalf("postOnly = %v", got)
	}
	if got := form["label"]; len(got) != 1 || got[0] != "test-label" {
		t.Fatalf("label = %v", got)
	}
}

// verifySignature recomputes the signature the way the server does: from the
// transmitted form values, the action path and the header's key and
// timestamp.
func verifySignature(r *http.Request, secret string) bool {
	header := r.Header.Get("x-deribit-sig")
	parts := strings.SplitN(header, ".", 3)
	if len(parts) != 3 {
		return false
	}

	entries := map[string]string{
		"_":       parts[1],
		"_ackey":  parts[0],
		"_acsec":  secret,
		"_action": r.URL.Path,
	}
	for k, vs := range r.PostForm {
		entries[k] = strings.Join(vs, "")
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]string, 0, len(keys))
	for _, k := range keys {
		items = append(items, k+"="+entries[k])
	}
	sum := sha256.Sum256([]byte(strings.Join(items, "&")))
	return parts[2] == base64.StdEncoding.EncodeToString(sum[:])
}

func TestSignatureRoundTrip(t *testing.T) {
	const secret = "access-secret"
	c := serverClient(t, "access-key", secret, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Error(err)
		}
		if !verifySignature(r, secret) {
			t.Error("server-side signature verification failed")
		}
		w.Write([]byte(`{"success": true, "result": {"order": {"orderId": 1}}}`))
	})

	req := &OrderRequest{
		Instrument: "BTC-26JAN18",
		Quantity:   10,
		Price:      decimal.RequireFromString("15000.5"),
		PostOnly:   true,
		Label:      "round-trip",
	}
	if _, err := c.Buy(context.Background(), req); err != nil {
		t.Fatal(err)
	}
}

func TestLive(t *testing.T) {
	if !checkCredentials() {
		t.Skip("no credentials")
		return
	}

	ctx := context.Background()

	c, err := New(testingKey, testingSecret, &Options{RestURL: TestURL})
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			t.Fatal(err)
		}
	}()

	instruments, err := c.GetInstruments(ctx)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("%d instruments", len(instruments))

	index, err := c.GetIndex(ctx)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("index: btc=%v edp=%v", index.Btc, index.Edp)

	account, err := c.GetAccount(ctx)
	if err != nil {
		t.Fatal(err)
	}
	jsdata, _ := json.MarshalIndent(account, "", "  ")
	t.Logf("%s", jsdata)

	var future *Instrument
	for _, in := range instruments {
		if in.Kind == "future" && in.IsActive {
			future = in
			break
		}
	}
	if future == nil {
		t.Skip("no active future instrument")
		return
	}

	// Place a passive bid far below the index so it never fills.
	price := index.Btc.Mul(decimal.RequireFromString("0.5")).Round(0)
	req := &OrderRequest{
		Instrument: future.InstrumentName,
		Quantity:   1,
		Price:      price,
		PostOnly:   true,
		Label:      strings.ReplaceAll(uuid.New().String(), "-", ""),
	}
	created, err := c.Buy(ctx, req)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("created order %d label %s", created.Order.OrderID, created.Order.Label)
	defer func() {
		cancelled, err := c.Cancel(ctx, created.Order.OrderID)
		if err != nil {
			t.Fatal(err)
		}
		t.Logf("cancel-response: %#v", cancelled.Order)
	}()

	open, err := c.GetOpenOrders(ctx, future.InstrumentName, 0)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, order := range open {
		if order.OrderID == created.Order.OrderID {
			found = true
		}
	}
	if !found {
		t.Errorf("order %d not listed among %d open orders", created.Order.OrderID, len(open))
	}
}
