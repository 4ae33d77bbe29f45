package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pkg.world.dev/lazyecs"
	"pkg.world.dev/lazyecs/assert"
	"pkg.world.dev/lazyecs/server"
	"pkg.world.dev/lazyecs/testutils"
	"pkg.world.dev/lazyecs/types"
)

type Alpha struct{ Value int }

func (Alpha) Name() string { return "alpha" }

type Beta struct{ Value int }

func (Beta) Name() string { return "beta" }

type testServer struct {
	*server.Server
	t     *testing.T
	world *lazyecs.World
	sched *lazyecs.Scheduler
}

func makeTestServer(t *testing.T, opts ...server.Option) *testServer {
	t.Helper()

	world, err := lazyecs.NewWorld(lazyecs.WithNamespace("test"))
	assert.NilError(t, err)
	sched := lazyecs.NewScheduler()

	opts = append(opts, server.WithScheduler(sched))
	srv, err := server.New(world, opts...)
	assert.NilError(t, err)

	return &testServer{Server: srv, t: t, world: world, sched: sched}
}

func (s *testServer) get(path string) *http.Response {
	s.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := s.Test(req)
	assert.NilError(s.t, err)
	return resp
}

func (s *testServer) post(path string, payload any) *http.Response {
	s.t.Helper()
	bz, err := json.Marshal(payload)
	assert.NilError(s.t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(bz))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.Test(req)
	assert.NilError(s.t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	bz, err := io.ReadAll(resp.Body)
	assert.NilError(t, err)
	var out T
	assert.NilError(t, json.Unmarshal(bz, &out))
	return out
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	srv := makeTestServer(t)

	resp := srv.get("/health")
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	health := decodeBody[server.GetHealthResponse](t, resp)
	assert.True(t, health.IsServerRunning)
	assert.Equal(t, health.Namespace, "test")
	assert.Equal(t, health.Tick, uint64(0))

	assert.NilError(t, srv.sched.Run(srv.world, 1.0/60))
	resp = srv.get("/health")
	health = decodeBody[server.GetHealthResponse](t, resp)
	assert.Equal(t, health.Tick, uint64(1))
}

func TestWorldEndpoint(t *testing.T) {
	t.Parallel()
	srv := makeTestServer(t)

	assert.NilError(t, lazyecs.RegisterComponent[Alpha](srv.world))
	assert.NilError(t, lazyecs.RegisterComponent[Beta](srv.world))
	for i := 0; i < 3; i++ {
		_, err := srv.world.Spawn(Alpha{Value: i})
		assert.NilError(t, err)
	}

	resp := srv.get("/world")
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	stats := decodeBody[lazyecs.WorldStats](t, resp)
	assert.Equal(t, stats.Namespace, "test")
	assert.Equal(t, stats.Entities, 3)
	assert.Equal(t, stats.Components["alpha"], 3)
	assert.Equal(t, stats.Components["beta"], 0)
}

func TestDebugStateEndpoint(t *testing.T) {
	t.Parallel()
	srv := makeTestServer(t)

	assert.NilError(t, lazyecs.RegisterComponent[Alpha](srv.world))
	assert.NilError(t, lazyecs.RegisterComponent[Beta](srv.world))
	a, err := srv.world.Spawn(Alpha{Value: 1})
	assert.NilError(t, err)
	both, err := srv.world.Spawn(Alpha{Value: 2}, Beta{Value: 3})
	assert.NilError(t, err)

	resp := srv.get("/debug/state")
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	state := decodeBody[types.EntityStateResponse](t, resp)
	assert.Len(t, state, 2)
	assert.Equal(t, state[0].ID, a)
	assert.Len(t, state[0].Components, 1)
	assert.JSONEq(t, `{"Value":1}`, string(state[0].Components["alpha"]))
	assert.Equal(t, state[1].ID, both)
	assert.Len(t, state[1].Components, 2)
	assert.JSONEq(t, `{"Value":3}`, string(state[1].Components["beta"]))
}

func TestCQLEndpoint(t *testing.T) {
	t.Parallel()
	srv := makeTestServer(t)

	assert.NilError(t, lazyecs.RegisterComponent[Alpha](srv.world))
	assert.NilError(t, lazyecs.RegisterComponent[Beta](srv.world))
	onlyAlpha, err := srv.world.Spawn(Alpha{Value: 1})
	assert.NilError(t, err)
	both, err := srv.world.Spawn(Alpha{Value: 2}, Beta{Value: 3})
	assert.NilError(t, err)

	resp := srv.post("/cql", server.CQLQueryRequest{CQL: "CONTAINS(alpha)"})
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	result := decodeBody[server.CQLQueryResponse](t, resp)
	assert.Len(t, result.Results, 2)

	resp = srv.post("/cql", server.CQLQueryRequest{CQL: "EXACT(alpha)"})
	assert.Equal(t, resp.StatusCode, http.StatusOK)
	result = decodeBody[server.CQLQueryResponse](t, resp)
	assert.Len(t, result.Results, 1)
	assert.Equal(t, result.Results[0].ID, onlyAlpha)

	resp = srv.post("/cql", server.CQLQueryRequest{CQL: "CONTAINS(alpha) & CONTAINS(beta)"})
	result = decodeBody[server.CQLQueryResponse](t, resp)
	assert.Len(t, result.Results, 1)
	assert.Equal(t, result.Results[0].ID, both)
}

func TestCQLEndpointRejectsBadQueries(t *testing.T) {
	t.Parallel()
	srv := makeTestServer(t)
	assert.NilError(t, lazyecs.RegisterComponent[Alpha](srv.world))

	// Unparseable expression.
	resp := srv.post("/cql", server.CQLQueryRequest{CQL: "CONTAINS("})
	assert.Equal(t, resp.StatusCode, http.StatusBadRequest)
	errResp := decodeBody[server.ErrorResponse](t, resp)
	assert.True(t, errResp.Error.Message != "")

	// Unregistered component name.
	resp = srv.post("/cql", server.CQLQueryRequest{CQL: "CONTAINS(gamma)"})
	assert.Equal(t, resp.StatusCode, http.StatusBadRequest)
}

func TestDebugStateSeesDynamicSpawns(t *testing.T) {
	t.Parallel()
	srv := makeTestServer(t)

	assert.NilError(t, lazyecs.RegisterComponent[testutils.SimpleComponent](srv.world))
	srv.sched.MustAddFunc(lazyecs.UpdatePhase, func(w *lazyecs.World, _ float64) error {
		_, err := w.Spawn(testutils.SimpleComponent{Value: 42})
		return err
	})

	for i := 0; i < 3; i++ {
		assert.NilError(t, srv.sched.Run(srv.world, 1.0/60))
	}

	resp := srv.get("/debug/state")
	state := decodeBody[types.EntityStateResponse](t, resp)
	assert.Len(t, state, 3)
}
