package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNow(t *testing.T) {
	now := Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(TimestampPrecision))
	assert.True(t, now.Equal(now.Round(TimestampPrecision)))
}
