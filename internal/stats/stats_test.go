package stats

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/graphdb/graphdbtest"
)

func scripted() *graphdbtest.Runner {
	return graphdbtest.New().
		Returns(
			graphdbtest.Record("label", "User", "count", int64(3)),
			graphdbtest.Record("label", "Post", "count", int64(2)),
		).
		Returns(
			graphdbtest.Record("type", "FRIENDS_WITH", "count", int64(4)),
			graphdbtest.Record("type", "CREATED", "count", int64(2)),
		)
}

func TestCollector_Collect(t *testing.T) {
	runner := scripted()
	c := NewCollector(runner)
	c.now = func() time.Time { return time.Date(2025, 4, 26, 0, 0, 0, 0, time.UTC) }

	snap, err := c.Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{"User": 3, "Post": 2, "Comment": 0}, snap.Nodes)
	assert.Equal(t, int64(4), snap.Relationships["FRIENDS_WITH"])
	assert.Equal(t, int64(0), snap.Relationships["LIKES"])
	assert.Equal(t, int64(2), snap.Friendships)
	assert.Equal(t, 2025, snap.CollectedAt.Year())

	assert.Equal(t, 3.0, testutil.ToFloat64(nodeGauge.WithLabelValues("User")))
	assert.Equal(t, 0.0, testutil.ToFloat64(relationshipGauge.WithLabelValues("HAS_COMMENT")))

	calls := runner.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "read", calls[0].Mode)
	assert.Contains(t, calls[0].Cypher, "labels(n)")
	assert.Contains(t, calls[1].Cypher, "type(r)")
}

func TestCollector_Errors(t *testing.T) {
	boom := errors.New("unavailable")

	_, err := NewCollector(graphdbtest.New().Fails(boom)).Collect(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "count nodes")

	_, err = NewCollector(graphdbtest.New().Returns().Fails(boom)).Collect(context.Background())
	assert.ErrorContains(t, err, "count relationships")
}

func TestScheduler_StartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(NewCollector(graphdbtest.New()), zap.NewNop())
	assert.Error(t, s.Start("every tuesday"))
	assert.NoError(t, s.Start(""))
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	s := NewScheduler(NewCollector(scripted()), zap.NewNop())
	require.NoError(t, s.Start("@every 1s"))
	t.Cleanup(func() { s.Stop(context.Background()) })

	assert.Eventually(t, func() bool {
		_, ok := s.Latest()
		return ok
	}, 5*time.Second, 50*time.Millisecond)
}

func TestHandler_GetStats(t *testing.T) {
	gin.SetMode(gin.TestMode)

	get := func(t *testing.T, r *gin.Engine) Snapshot {
		t.Helper()
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))
		require.Equal(t, http.StatusOK, w.Code)
		var snap Snapshot
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
		return snap
	}

	t.Run("collects every request without a schedule", func(t *testing.T) {
		runner := graphdbtest.New().
			Returns(graphdbtest.Record("label", "User", "count", int64(1))).
			Returns().
			Returns(graphdbtest.Record("label", "User", "count", int64(5))).
			Returns()
		s := NewScheduler(NewCollector(runner), zap.NewNop())
		require.NoError(t, s.Start(""))
		assert.False(t, s.Scheduled())
		r := gin.New()
		NewHandler(s).RegisterRoutes(r)

		assert.Equal(t, int64(1), get(t, r).Nodes["User"])
		assert.Equal(t, int64(5), get(t, r).Nodes["User"])
		assert.Len(t, runner.Calls(), 4)
	})

	t.Run("serves the scheduled snapshot", func(t *testing.T) {
		runner := scripted()
		s := NewScheduler(NewCollector(runner), zap.NewNop())
		require.NoError(t, s.Start("@every 1h"))
		t.Cleanup(func() { s.Stop(context.Background()) })
		assert.True(t, s.Scheduled())
		r := gin.New()
		NewHandler(s).RegisterRoutes(r)

		// nothing collected yet, so the first request collects
		assert.Equal(t, int64(3), get(t, r).Nodes["User"])
		assert.Equal(t, int64(3), get(t, r).Nodes["User"])
		assert.Len(t, runner.Calls(), 2)
	})

	t.Run("graph unreachable", func(t *testing.T) {
		s := NewScheduler(NewCollector(graphdbtest.New().Fails(errors.New("down"))), zap.NewNop())
		r := gin.New()
		NewHandler(s).RegisterRoutes(r)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
