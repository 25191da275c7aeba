package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    RunStatus
		to      RunStatus
		allowed bool
	}{
		{RunStatusPending, RunStatusProcessing, true},
		{RunStatusPending, RunStatusCompleted, true},
		{RunStatusPending, RunStatusFailed, true},
		{RunStatusProcessing, RunStatusCompleted, true},
		{RunStatusProcessing, RunStatusFailed, true},
		{RunStatusProcessing, RunStatusPending, false},
		{RunStatusCompleted, RunStatusProcessing, false},
		{RunStatusCompleted, RunStatusFailed, false},
		{RunStatusFailed, RunStatusCompleted, false},
		{RunStatusFailed, RunStatusProcessing, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestRunStatus_IsTerminal(t *testing.T) {
	assert.False(t, RunStatusPending.IsTerminal())
	assert.False(t, RunStatusProcessing.IsTerminal())
	assert.True(t, RunStatusCompleted.IsTerminal())
	assert.True(t, RunStatusFailed.IsTerminal())
}
