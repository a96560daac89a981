package shared

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockagent/pkg/errors"
	"stockagent/pkg/logger"
)

type echoArgs struct {
	Text string `json:"text"`
}

type echoResult struct {
	Text string `json:"text"`
}

func TestTimeoutMiddleware(t *testing.T) {
	slow := func(ctx context.Context, args echoArgs) (echoResult, error) {
		<-ctx.Done()
		return echoResult{}, ctx.Err()
	}

	fn := TimeoutMiddleware[echoArgs, echoResult](10*time.Millisecond)("slow_tool", slow)
	_, err := fn(context.Background(), echoArgs{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTimeout))
	assert.Contains(t, err.Error(), "slow_tool")
}

func TestStatsMiddleware_PassesThrough(t *testing.T) {
	echo := func(_ context.Context, args echoArgs) (echoResult, error) {
		return echoResult{Text: args.Text}, nil
	}

	fn := StatsMiddleware[echoArgs, echoResult](logger.Nop())("echo", echo)
	res, err := fn(context.Background(), echoArgs{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", res.Text)
}

func TestToolBuilder_Build(t *testing.T) {
	echo := func(_ context.Context, args echoArgs) (echoResult, error) {
		return echoResult{Text: args.Text}, nil
	}

	tl, err := NewToolBuilder("echo", "Echo the text back", echo, Deps{Log: logger.Nop()}).
		WithTimeout(time.Second).
		WithStats().
		Build()
	require.NoError(t, err)
	assert.Equal(t, "echo", tl.Name())
	assert.Equal(t, "Echo the text back", tl.Description())
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, 1.24, Round(1.235, 2))
	assert.Equal(t, 2.5, PercentChange(500, 512.5))
	assert.Equal(t, 0.0, PercentChange(0, 10))

	assert.Equal(t, "1.5 trillion", Money(1.5e12))
	assert.Equal(t, "210 billion", Money(2.1e11))
	assert.Equal(t, "12.5 million", Money(12.5e6))
	assert.Equal(t, "", Money(0))
	assert.Equal(t, "1,234,567", Count(1234567))
	assert.Equal(t, "BRK.B", NormalizeSymbol(" brk.b "))
}
