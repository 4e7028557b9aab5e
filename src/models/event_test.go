package models

import (
	"anc/src/types"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventPhase(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	upcoming := Event{StartDate: now.Add(48 * time.Hour)}
	assert.Equal(t, types.EVENT_UPCOMING, upcoming.Phase(now))

	end := now.Add(24 * time.Hour)
	ongoing := Event{StartDate: now.Add(-time.Hour), EndDate: &end}
	assert.Equal(t, types.EVENT_ONGOING, ongoing.Phase(now))

	pastEnd := now.Add(-time.Hour)
	past := Event{StartDate: now.Add(-48 * time.Hour), EndDate: &pastEnd}
	assert.Equal(t, types.EVENT_PAST, past.Phase(now))

	// Without an end date the event is over once the start has passed.
	openEnded := Event{StartDate: now.Add(-time.Hour)}
	assert.Equal(t, types.EVENT_PAST, openEnded.Phase(now))
}
