package bitrixclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bitrixdomain "github.com/vfg2006/deal-mirror-api/infrastructure/integrator/bitrix/domain"
)

type recordedCall struct {
	Path string
	Body map[string]any
}

func newTestServer(t *testing.T, responses map[string]string, calls *[]recordedCall) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		*calls = append(*calls, recordedCall{Path: r.URL.Path, Body: body})

		resp, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if resp == "not-found" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"","error_description":"Not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(resp))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestBitrixClient_ListDeals(t *testing.T) {
	var calls []recordedCall
	srv := newTestServer(t, map[string]string{
		"/rest/1/token/crm.deal.list.json": `{"result":[{"ID":"1","TITLE":"A"},{"ID":"2","TITLE":"B"}],"next":50,"total":120}`,
	}, &calls)

	client := NewClient(srv.URL+"/rest/1/token/", Options{})

	page, err := client.ListDeals(context.Background(), bitrixdomain.ListParams{
		Filter: map[string]any{"CATEGORY_ID": 7},
		Select: []string{"ID", "TITLE"},
		Start:  50,
	})
	require.NoError(t, err)

	assert.Len(t, page.Items, 2)
	assert.Equal(t, "1", page.Items[0]["ID"])
	assert.Equal(t, 120, page.Total)
	assert.Equal(t, 50, page.Next)

	require.Len(t, calls, 1)
	assert.Equal(t, float64(50), calls[0].Body["start"])
	assert.Equal(t, map[string]any{"CATEGORY_ID": float64(7)}, calls[0].Body["filter"])
	assert.Equal(t, []any{"ID", "TITLE"}, calls[0].Body["select"])
}

func TestBitrixClient_ListItems(t *testing.T) {
	var calls []recordedCall
	srv := newTestServer(t, map[string]string{
		"/crm.item.list.json": `{"result":{"items":[{"id":10,"title":"X","entityTypeId":1040}]},"total":1}`,
	}, &calls)

	client := NewClient(srv.URL, Options{})

	page, err := client.ListItems(context.Background(), 1040, bitrixdomain.ListParams{Select: []string{"id"}})
	require.NoError(t, err)

	require.Len(t, page.Items, 1)
	assert.Equal(t, float64(10), page.Items[0]["id"])
	assert.Equal(t, 1, page.Total)
	assert.Zero(t, page.Next)

	require.Len(t, calls, 1)
	assert.Equal(t, float64(1040), calls[0].Body["entityTypeId"])
	assert.NotContains(t, calls[0].Body, "filter")
}

func TestBitrixClient_GetDeal(t *testing.T) {
	var calls []recordedCall
	srv := newTestServer(t, map[string]string{
		"/crm.deal.get.json": `{"result":{"ID":"42","TITLE":"Deal","CATEGORY_ID":"7"}}`,
	}, &calls)

	client := NewClient(srv.URL, Options{})

	record, err := client.GetDeal(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "42", record["ID"])
	assert.Equal(t, float64(42), calls[0].Body["id"])
}

func TestBitrixClient_GetItem(t *testing.T) {
	var calls []recordedCall
	srv := newTestServer(t, map[string]string{
		"/crm.item.get.json": `{"result":{"item":{"id":5,"title":"Item"}}}`,
	}, &calls)

	client := NewClient(srv.URL, Options{})

	record, err := client.GetItem(context.Background(), 1040, 5)
	require.NoError(t, err)
	assert.Equal(t, "Item", record["title"])
	assert.Equal(t, float64(1040), calls[0].Body["entityTypeId"])
}

func TestBitrixClient_Errors(t *testing.T) {
	var calls []recordedCall
	srv := newTestServer(t, map[string]string{
		"/crm.deal.get.json":  "not-found",
		"/crm.deal.list.json": `{"error":"QUERY_LIMIT_EXCEEDED","error_description":"Too many requests"}`,
	}, &calls)

	client := NewClient(srv.URL, Options{})

	_, err := client.GetDeal(context.Background(), 1)
	assert.ErrorIs(t, err, bitrixdomain.ErrNotFound)

	_, err = client.ListDeals(context.Background(), bitrixdomain.ListParams{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, bitrixdomain.ErrNotFound)
	assert.Contains(t, err.Error(), "QUERY_LIMIT_EXCEEDED")

	_, err = client.GetItem(context.Background(), 1, 1)
	assert.Error(t, err, "status 404 sem corpo deve falhar")
}
