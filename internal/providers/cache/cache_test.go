// Copyright (c) 2025 Afonso Barracha
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cache

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRedisCache(t *testing.T) {
	t.Run("Should return nil without a url", func(t *testing.T) {
		assert.Nil(t, NewRedisCache(context.Background(), discardLogger(), ""))
	})

	t.Run("Should share limiter counters through redis", func(t *testing.T) {
		url := os.Getenv("REDIS_TEST_URL")
		if url == "" {
			t.Skip("REDIS_TEST_URL is not set")
		}

		ctx := context.Background()
		c := NewRedisCache(ctx, discardLogger(), url)
		require.NotNil(t, c)
		t.Cleanup(func() {
			require.NoError(t, c.Close())
		})

		require.NoError(t, c.Ping(ctx))

		key := "payloads-cache-test"
		require.NoError(t, c.Storage().Set(key, []byte("1"), time.Minute))
		value, err := c.Storage().Get(key)
		require.NoError(t, err)
		assert.Equal(t, []byte("1"), value)
		require.NoError(t, c.Storage().Delete(key))
	})
}
