package service

import (
	"errors"
	"testing"

	"github.com/kondzio-p/ftbd-blt/internal/kvstore"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func setupKV(t *testing.T) kvstore.Store {
	t.Helper()

	store, err := kvstore.OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	return zap.New(core), logs
}

var errQuotaExceeded = errors.New("quota exceeded")

// brokenKV reads like an empty store and refuses every write.
type brokenKV struct{}

func (brokenKV) Get(string) ([]byte, error) { return nil, kvstore.ErrNotFound }
func (brokenKV) Set(string, []byte) error   { return errQuotaExceeded }
func (brokenKV) Delete(string) error        { return errQuotaExceeded }
func (brokenKV) Close() error               { return nil }
