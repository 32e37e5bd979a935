package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntityEvent(t *testing.T) {
	ev, err := NewEntityEvent("guest", "created", "g1", map[string]string{"first_name": "Sarah"})

	require.NoError(t, err)
	assert.Equal(t, "guest_created", ev.Type)
	assert.Equal(t, "guest", ev.Entity)
	assert.Equal(t, "g1", ev.EntityID)
	assert.JSONEq(t, `{"first_name":"Sarah"}`, string(ev.Data))
	assert.False(t, ev.OccurredAt.IsZero())
}

func TestNewEntityEvent_WithoutRecord(t *testing.T) {
	ev, err := NewEntityEvent("payment", "deleted", "p1", nil)

	require.NoError(t, err)
	assert.Nil(t, ev.Data)

	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"data"`)
}

func TestNewEntityEvent_Unencodable(t *testing.T) {
	_, err := NewEntityEvent("guest", "created", "g1", make(chan int))

	assert.Error(t, err)
}
