package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/event"
)

func TestObserveRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/user/:uid", "404"))

	ObserveRequest("GET", "/user/:uid", 404, 3*time.Millisecond)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/user/:uid", "404"))
	assert.Equal(t, before+1, after)
}

func TestObserveRequestUnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404"))

	ObserveRequest("GET", "", 404, time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestCommandMonitor(t *testing.T) {
	m := CommandMonitor()
	ok := testutil.ToFloat64(storeCommands.WithLabelValues("find", outcomeSuccess))
	failed := testutil.ToFloat64(storeCommands.WithLabelValues("insert", outcomeFailure))

	m.Succeeded(context.Background(), &event.CommandSucceededEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "find", Duration: time.Millisecond},
	})
	m.Failed(context.Background(), &event.CommandFailedEvent{
		CommandFinishedEvent: event.CommandFinishedEvent{CommandName: "insert", Duration: time.Millisecond},
	})

	assert.Equal(t, ok+1, testutil.ToFloat64(storeCommands.WithLabelValues("find", outcomeSuccess)))
	assert.Equal(t, failed+1, testutil.ToFloat64(storeCommands.WithLabelValues("insert", outcomeFailure)))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveRequest("GET", "/teams", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "team_builder_http_requests_total")
}
