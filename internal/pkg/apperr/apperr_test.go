package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSample = Conflict("ROOM_UNAVAILABLE", "room unavailable")

func TestSentinelSurvivesWithMessage(t *testing.T) {
	err := errSample.WithMessage("Room %s is fully occupied (%d/%d)", "101", 2, 2)

	assert.ErrorIs(t, err, errSample)
	assert.Equal(t, "Room 101 is fully occupied (2/2)", err.Error())
	assert.True(t, IsConflict(err))
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("create booking: %w", NotFound("ROOM_NOT_FOUND", "Room not found"))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, IsNotFound(nil))
}

func TestTransientIsRetryable(t *testing.T) {
	err := Transient("database unavailable", errors.New("conn reset"))

	assert.True(t, IsRetryable(err))
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Contains(t, err.Error(), "conn reset")
	assert.False(t, IsRetryable(Internal("x", nil)))
}
