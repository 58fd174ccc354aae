package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndRemoveJob(t *testing.T) {
	s := NewEventScheduler()

	require.NoError(t, s.AddJob("pool-stats", "* * * * *", func() {}))
	assert.Error(t, s.AddJob("pool-stats", "* * * * *", func() {}))
	assert.Error(t, s.AddJob("broken", "not a cron", func() {}))

	jobs := s.ListJobs()
	require.Contains(t, jobs, "pool-stats")
	assert.Equal(t, "* * * * *", jobs["pool-stats"].CronExpr)
	assert.Nil(t, jobs["pool-stats"].LastRun)
	assert.NotNil(t, jobs["pool-stats"].NextRun)

	require.NoError(t, s.RemoveJob("pool-stats"))
	assert.Error(t, s.RemoveJob("pool-stats"))
	assert.Empty(t, s.ListJobs())
}

func TestStartStop(t *testing.T) {
	s := NewEventScheduler()
	assert.False(t, s.IsRunning())

	s.Start()
	s.Start()
	assert.True(t, s.IsRunning())

	s.Stop()
	assert.False(t, s.IsRunning())
}
