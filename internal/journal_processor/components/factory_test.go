package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vending-controller/internal/config"
)

func TestCreateProcessingService(t *testing.T) {
	cfg := &config.Config{WorkerPool: config.WorkerPoolConfig{Size: 4}}

	svc, pool := CreateProcessingService(new(MockJournalRepository), newTestLogger(), cfg)
	require.NotNil(t, pool)
	defer pool.Shutdown(time.Second)

	assert.Same(t, pool, svc)
	assert.Equal(t, 4, pool.Capacity())
}
