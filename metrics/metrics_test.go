package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foxyweb/events"
	"foxyweb/models"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_HandleEvent(t *testing.T) {
	m := New()

	m.handleEvent(context.Background(), events.BalanceChangeEvent{
		UserID: "1", ChangeAmount: 1500, TransactionType: models.TransactionTypeDaily,
	})
	m.handleEvent(context.Background(), events.BalanceChangeEvent{
		UserID: "1", ChangeAmount: -300, TransactionType: models.TransactionTypeStore,
	})
	m.handleEvent(context.Background(), events.ItemPurchasedEvent{
		UserID: "1", ItemID: "halo", ItemType: models.ItemTypeDecoration, Price: 300,
	})

	assert.Equal(t, 1500.0, testutil.ToFloat64(m.CakesCredited.WithLabelValues("daily")))
	assert.Equal(t, 300.0, testutil.ToFloat64(m.CakesDebited.WithLabelValues("store")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ItemsPurchased.WithLabelValues("decoration")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsTotal.WithLabelValues("balance_change")))
}

func TestMetrics_Middleware(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/{lang}/daily", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/br/daily", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/{lang}/daily", "GET", "418")))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "foxyweb_http_requests_total"))
}
