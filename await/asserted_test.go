package await

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUntilAssertedPassesOnceAssertionsHold(t *testing.T) {
	clock := newFakeClock()
	status := []string{"available", "available", "sold"}
	calls := 0

	out, err := UntilAsserted(func(t require.TestingT) {
		current := status[calls]
		calls++
		require.Equal(t, "sold", current)
		assert.NotEmpty(t, current)
	}, DefaultConfig, WithClock(clock))

	require.NoError(t, err)
	assert.True(t, out.OK())
	assert.Equal(t, 3, out.Attempts)
	assert.Empty(t, out.Value)
}

func TestUntilAssertedRetriesFailedAssertionsEvenWhenNotIgnoringErrors(t *testing.T) {
	clock := newFakeClock()
	calls := 0
	cfg := Config{Timeout: 10 * time.Second, Interval: time.Second}

	out, err := UntilAsserted(func(t require.TestingT) {
		calls++
		assert.Equal(t, 5, calls)
	}, cfg, WithClock(clock))

	require.NoError(t, err)
	assert.True(t, out.OK())
	assert.Equal(t, 5, out.Attempts)
}

func TestUntilAssertedTimeoutReportsLastFailures(t *testing.T) {
	clock := newFakeClock()
	cfg := Config{Timeout: 9 * time.Second, Interval: 3 * time.Second}

	out, err := UntilAsserted(func(t require.TestingT) {
		assert.Equal(t, "sold", "available", "status")
		assert.Fail(t, "no tags")
	}, cfg, WithClock(clock), WithDescription("updated pet"))

	require.NoError(t, err)
	assert.Equal(t, TimedOut, out.Kind)
	assert.Len(t, out.Value, 2)

	var assertionErr *AssertionError
	require.True(t, errors.As(out.Err(), &assertionErr))
	assert.Len(t, assertionErr.Failures, 2)
	assert.Contains(t, out.Err().Error(), "updated pet")
	assert.Contains(t, out.Err().Error(), "no tags")
}

func TestUntilAssertedTreatsPanicsAsErrors(t *testing.T) {
	clock := newFakeClock()
	cfg := Config{Timeout: 3 * time.Second, Interval: time.Second}
	check := func(t require.TestingT) {
		var pet *struct{ Name string }
		_ = pet.Name
	}

	_, err := UntilAsserted(check, cfg, WithClock(clock))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic during assertions")

	out, err := UntilAsserted(check, DefaultConfig.WithTimeout(cfg.Timeout), WithClock(newFakeClock()))
	require.NoError(t, err)
	assert.Equal(t, TimedOut, out.Kind)
	assert.Contains(t, out.LastErr.Error(), "panic during assertions")
}
