package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadStatusIsValid(t *testing.T) {
	for _, s := range LeadStatuses {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, LeadStatus("").IsValid())
	assert.False(t, LeadStatus("Lead").IsValid())
	assert.False(t, LeadStatus("cliente").IsValid())
}

func TestTaskEnumsAreClosed(t *testing.T) {
	assert.True(t, TaskTypeChiamate.IsValid())
	assert.False(t, TaskType("chiamate").IsValid())

	assert.True(t, TaskPriorityUrgente.IsValid())
	assert.False(t, TaskPriority("critica").IsValid())

	assert.True(t, TaskStatusInCorso.IsValid())
	assert.False(t, TaskStatus("done").IsValid())
}
