package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ariefcatur/nirmala-invitations/internal/auth"
	"github.com/ariefcatur/nirmala-invitations/internal/catalog"
	"github.com/ariefcatur/nirmala-invitations/internal/orders"
	"github.com/ariefcatur/nirmala-invitations/internal/redisx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	srv *httptest.Server
	mr  *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithLedger(t, orders.NewMemoryLedger())
}

func newTestServerWithLedger(t *testing.T, ledger orders.Ledger) *testServer {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redisx.New(mr.Addr())
	t.Cleanup(func() { _ = rdb.Close() })

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)

	cat := catalog.Default()
	engine := &orders.Engine{
		Catalog:       cat,
		Ledger:        ledger,
		Submitted:     orders.NopPublisher{},
		StatusChanged: orders.NopPublisher{},
		ServiceName:   "test",
	}
	router := NewRouter()
	(&DesignsHandler{Catalog: cat}).Register(router)
	oh := &OrdersHandler{Engine: engine, Redis: rdb}
	oh.Register(router)
	(&AdminHandler{
		Engine:   engine,
		Admin:    auth.Admin{Username: "admin", PasswordHash: string(hash)},
		Sessions: &auth.Sessions{Redis: rdb, TTL: time.Hour},
		Orders:   oh,
	}).Register(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testServer{srv: srv, mr: mr}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.srv.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func printDraft() orders.Draft {
	return orders.Draft{
		CustomerName:    "Sari",
		WhatsApp:        "08123456789",
		Email:           "sari@example.com",
		CatalogID:       "2",
		Channel:         catalog.ChannelPrint,
		Quantity:        120,
		ShippingAddress: "Jl. A",
		GroomParents:    "Bpk. Budi",
		BrideParents:    "Bpk. Joko",
		EventDate:       "2026-12-12",
		EventVenue:      "Gedung Serbaguna",
	}
}

func (ts *testServer) login(t *testing.T) string {
	resp := ts.do(t, http.MethodPost, "/admin/login", "", LoginReq{Username: "admin", Password: "rahasia"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lr := decode[LoginResp](t, resp)
	require.NotEmpty(t, lr.Token)
	assert.Equal(t, 3600, lr.ExpiresIn)
	return lr.Token
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDesigns(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/designs", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]catalog.Entry](t, resp)
	require.Len(t, list, 6)
	assert.Equal(t, "1", list[0].ID)

	resp = ts.do(t, http.MethodGet, "/designs/6", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Traditional Batik Print", decode[catalog.Entry](t, resp).Name)

	resp = ts.do(t, http.MethodGet, "/designs/99", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDesignsFilter(t *testing.T) {
	ts := newTestServer(t)
	ids := func(path string) []string {
		resp := ts.do(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		var out []string
		for _, e := range decode[[]catalog.Entry](t, resp) {
			out = append(out, e.ID)
		}
		return out
	}

	assert.Equal(t, []string{"1", "3", "5", "6"}, ids("/designs?category=Premium"))
	assert.Equal(t, []string{"2", "4", "6"}, ids("/designs?channel=cetak"))
	assert.Equal(t, []string{"1", "3", "5"}, ids("/designs?channel=digital&category=premium"))
	assert.Len(t, ids("/designs?category=All&channel=all"), 6)
	assert.Empty(t, ids("/designs?category=Gold"))

	resp := ts.do(t, http.MethodGet, "/designs?channel=fax", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNewDraft(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/drafts/new", "", nil)
	d := decode[orders.Draft](t, resp)
	assert.Equal(t, catalog.ChannelDigital, d.Channel)
	assert.Equal(t, 1, d.Quantity)

	resp = ts.do(t, http.MethodGet, "/drafts/new?design=4", "", nil)
	d = decode[orders.Draft](t, resp)
	assert.Equal(t, "4", d.CatalogID)
	assert.Equal(t, catalog.ChannelPrint, d.Channel)
	assert.Equal(t, 50, d.Quantity)

	resp = ts.do(t, http.MethodGet, "/drafts/new?design=x", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestValidateAndQuote(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/orders/validate", "", orders.Draft{Channel: catalog.ChannelPrint})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	vr := decode[ValidateResp](t, resp)
	assert.False(t, vr.Valid)
	assert.Len(t, vr.Errors, 10)

	resp = ts.do(t, http.MethodPost, "/orders/validate", "", printDraft())
	vr = decode[ValidateResp](t, resp)
	assert.True(t, vr.Valid)
	assert.Empty(t, vr.Errors)

	resp = ts.do(t, http.MethodPost, "/orders/quote", "", printDraft())
	qr := decode[QuoteResp](t, resp)
	assert.True(t, qr.Computable)
	assert.Equal(t, 300000, qr.Total)

	resp = ts.do(t, http.MethodPost, "/orders/quote", "", orders.NewDraft())
	qr = decode[QuoteResp](t, resp)
	assert.False(t, qr.Computable)
	assert.Zero(t, qr.Total)
}

func TestValidateAcceptsLegacyChannelLabel(t *testing.T) {
	ts := newTestServer(t)
	req, err := http.NewRequest(http.MethodPost, ts.srv.URL+"/orders/validate",
		bytes.NewBufferString(`{"channel":"cetak","quantity":10}`))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	vr := decode[ValidateResp](t, resp)
	assert.Contains(t, vr.Errors, orders.FieldQuantity)
}

func TestSubmitAndLookup(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/orders", "", printDraft())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sr := decode[SubmitResp](t, resp)
	assert.NotEmpty(t, sr.Order.ID)
	assert.Equal(t, orders.StatusPending, sr.Order.Status)
	assert.Equal(t, 300000, sr.Total)

	// served from the ledger once the cache is gone
	ts.mr.FlushAll()
	resp = ts.do(t, http.MethodGet, "/orders/"+sr.Order.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	st := decode[OrderStatusResp](t, resp)
	assert.Equal(t, orders.StatusPending, st.Status)
	assert.True(t, ts.mr.Exists("order_status:"+sr.Order.ID))

	resp = ts.do(t, http.MethodGet, "/orders/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubmitRejections(t *testing.T) {
	ts := newTestServer(t)

	bad := printDraft()
	bad.Quantity = 20
	resp := ts.do(t, http.MethodPost, "/orders", "", bad)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	vr := decode[ValidateResp](t, resp)
	assert.Contains(t, vr.Errors, orders.FieldQuantity)

	unknown := printDraft()
	unknown.CatalogID = "77"
	resp = ts.do(t, http.MethodPost, "/orders", "", unknown)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, ts.srv.URL+"/orders", bytes.NewBufferString("{"))
	require.NoError(t, err)
	raw, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()
	assert.Equal(t, http.StatusBadRequest, raw.StatusCode)
}

func TestAdminRequiresSession(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/admin/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = ts.do(t, http.MethodGet, "/admin/stats", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/admin/login", "", LoginReq{Username: "admin", Password: "nirmala"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminFlow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.login(t)

	resp := ts.do(t, http.MethodGet, "/admin/stats", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, orders.Stats{}, decode[orders.Stats](t, resp))

	digital := printDraft()
	digital.CatalogID = "1"
	digital.Channel = catalog.ChannelDigital
	digital.Quantity = 1
	digital.ShippingAddress = ""
	resp = ts.do(t, http.MethodPost, "/orders", "", digital)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := decode[SubmitResp](t, resp)
	resp = ts.do(t, http.MethodPost, "/orders", "", printDraft())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/admin/orders", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]AdminOrder](t, resp)
	require.Len(t, list, 2)
	assert.Equal(t, first.Order.ID, list[0].ID)
	assert.Equal(t, 150000, list[0].Total)
	assert.Equal(t, 300000, list[1].Total)

	resp = ts.do(t, http.MethodPatch, "/admin/orders/"+first.Order.ID+"/status", token, SetStatusReq{Status: "completed"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, orders.StatusCompleted, decode[AdminOrder](t, resp).Status)

	// cached status follows the admin update
	resp = ts.do(t, http.MethodGet, "/orders/"+first.Order.ID, "", nil)
	assert.Equal(t, orders.StatusCompleted, decode[OrderStatusResp](t, resp).Status)

	resp = ts.do(t, http.MethodPatch, "/admin/orders/"+first.Order.ID+"/status", token, SetStatusReq{Status: "pending"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp = ts.do(t, http.MethodPatch, "/admin/orders/"+first.Order.ID+"/status", token, SetStatusReq{Status: "shipped"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = ts.do(t, http.MethodPatch, "/admin/orders/nope/status", token, SetStatusReq{Status: "completed"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/admin/stats", token, nil)
	assert.Equal(t, orders.Stats{
		TotalOrders:     2,
		PendingOrders:   1,
		CompletedOrders: 1,
		DigitalOrders:   1,
		PrintOrders:     1,
		TotalRevenue:    450000,
	}, decode[orders.Stats](t, resp))

	resp = ts.do(t, http.MethodPost, "/admin/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = ts.do(t, http.MethodGet, "/admin/stats", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

const ledgerSecret = "dial tcp 10.0.0.5:5432: password=s3cret"

// failingLedger breaks every storage call the way an unreachable database would.
type failingLedger struct{}

func (failingLedger) Append(context.Context, orders.Order) error { return errors.New(ledgerSecret) }
func (failingLedger) All(context.Context) ([]orders.Order, error) {
	return nil, errors.New(ledgerSecret)
}
func (failingLedger) Get(context.Context, string) (orders.Order, error) {
	return orders.Order{}, errors.New(ledgerSecret)
}
func (failingLedger) SetStatus(context.Context, string, orders.Status) (orders.Order, error) {
	return orders.Order{}, errors.New(ledgerSecret)
}

func TestStorageFailuresDoNotLeakDetails(t *testing.T) {
	ts := newTestServerWithLedger(t, failingLedger{})
	token := ts.login(t)

	cases := []struct {
		method, path, token string
		body                any
	}{
		{http.MethodPost, "/orders", "", printDraft()},
		{http.MethodGet, "/orders/abc", "", nil},
		{http.MethodGet, "/admin/orders", token, nil},
		{http.MethodGet, "/admin/stats", token, nil},
		{http.MethodPatch, "/admin/orders/abc/status", token, SetStatusReq{Status: "completed"}},
	}
	for _, c := range cases {
		resp := ts.do(t, c.method, c.path, c.token, c.body)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, c.path)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "s3cret", c.path)
		assert.JSONEq(t, `{"error":"internal error"}`, string(raw), c.path)
	}
}
