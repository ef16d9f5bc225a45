package grpc

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/toursite/internal/logging"
)

type fakeStore struct {
	down atomic.Bool
}

func (f *fakeStore) PingContext(context.Context) error {
	if f.down.Load() {
		return errors.New("store down")
	}
	return nil
}

func startBufconn(t *testing.T, s *GRPCServer) (healthpb.HealthClient, context.CancelFunc, <-chan error) {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		cancel()
		_ = conn.Close()
	})
	return healthpb.NewHealthClient(conn), cancel, done
}

func TestHealth_ServingWhenStoreUp(t *testing.T) {
	s := NewGRPCServer("", logging.Nop(), &fakeStore{})
	client, _, _ := startBufconn(t, s)

	for _, svc := range []string{"", ServiceName} {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: svc})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus(), svc)
	}
}

func TestHealth_NotServingWhenStoreDown(t *testing.T) {
	store := &fakeStore{}
	store.down.Store(true)
	s := NewGRPCServer("", logging.Nop(), store)
	client, _, _ := startBufconn(t, s)

	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestHealth_RecheckedPeriodically(t *testing.T) {
	store := &fakeStore{}
	store.down.Store(true)
	s := NewGRPCServer("", logging.Nop(), store)
	s.checkInterval = 20 * time.Millisecond
	client, _, _ := startBufconn(t, s)

	store.down.Store(false)
	assert.Eventually(t, func() bool {
		resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, 2*time.Second, 20*time.Millisecond)
}

func TestHealth_UnknownService(t *testing.T) {
	s := NewGRPCServer("", logging.Nop(), nil)
	client, _, _ := startBufconn(t, s)

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "nope"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	s := NewGRPCServer("", logging.Nop(), &fakeStore{})
	_, cancel, done := startBufconn(t, s)

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(100 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	s := NewGRPCServer("127.0.0.1:99999", logging.Nop(), nil)
	assert.Error(t, s.Run(context.Background()))
}

func TestRecoverInterceptor(t *testing.T) {
	s := NewGRPCServer("", logging.Nop(), nil)
	info := &grpc.UnaryServerInfo{FullMethod: "/pkg.Service/Boom"}

	_, err := s.recoverInterceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		panic("boom")
	})
	assert.Equal(t, codes.Internal, status.Code(err))

	resp, err := s.recoverInterceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	s := NewGRPCServer("", logging.Nop(), nil)
	info := &grpc.UnaryServerInfo{FullMethod: "/pkg.Service/Fail"}
	want := status.Error(codes.Unavailable, "later")

	_, err := s.loggingInterceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, want
	})
	assert.Equal(t, want, err)
}
