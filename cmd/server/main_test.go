package main

import (
	"net"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feichai0017/resume-parser/pkg/logger"
)

func TestServeReturnsListenerError(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	srv := &http.Server{Addr: busy.Addr().String(), Handler: http.NotFoundHandler()}
	done := make(chan error, 1)
	go func() { done <- serve(srv, make(chan os.Signal), time.Second, logger.Nop()) }()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, busy.Addr().String())
	case <-time.After(5 * time.Second):
		t.Fatal("serve kept running after the listener failed")
	}
}

func TestServeShutsDownOnSignal(t *testing.T) {
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	quit := make(chan os.Signal, 1)
	log := logger.NewTestLogger()

	done := make(chan error, 1)
	go func() { done <- serve(srv, quit, time.Second, log) }()
	quit <- syscall.SIGTERM

	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.Contains(t, log.Messages("INFO"), "Shutting down server...")
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after the signal")
	}
}
