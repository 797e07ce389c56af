package pace_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bakuzaci/payattention-sol/internal/pkg/pace"
)

func TestInterval_FirstCallDoesNotWait(t *testing.T) {
	p := pace.NewInterval(time.Hour)
	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestInterval_SpacesSubsequentCalls(t *testing.T) {
	const gap = 30 * time.Millisecond
	p := pace.NewInterval(gap)
	require.NoError(t, p.Wait(context.Background()))

	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), gap/2, "second call should be delayed")
}

func TestInterval_CanceledContext(t *testing.T) {
	p := pace.NewInterval(time.Hour)
	require.NoError(t, p.Wait(context.Background())) // consume the initial slot

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, p.Wait(ctx))
}

func TestInterval_ZeroDisablesPacing(t *testing.T) {
	p := pace.NewInterval(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, p.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
