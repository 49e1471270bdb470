package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-tracker/internal/models"
)

func TestGetEventQueues(t *testing.T) {
	queues := GetEventQueues()

	require.Len(t, queues, 2)
	assert.Equal(t, "finance.subscriptions", queues[0].QueueName)
	assert.Equal(t, "subscription.*", queues[0].RoutingKey)
	assert.Equal(t, models.EventAccountSettled, queues[1].RoutingKey)

	seen := map[string]bool{}
	for _, q := range queues {
		assert.Falsef(t, seen[q.QueueName], "duplicate queue name: %s", q.QueueName)
		seen[q.QueueName] = true
	}
}
