package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainhub/internal/platform/config"
)

func TestNewProducerDisabledWithoutBrokers(t *testing.T) {
	p, err := NewProducer(config.KafkaConfig{AuditTopic: "trainhub.audit"}, nil)
	require.NoError(t, err)
	assert.Nil(t, p)
}
