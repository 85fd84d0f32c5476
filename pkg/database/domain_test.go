package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnection_UseSentinel(t *testing.T) {
	assert.False(t, Connection{Addr: "localhost:6379"}.UseSentinel())
	assert.True(t, Connection{MasterName: "mymaster", SentinelAddrs: []string{"s1:26379"}}.UseSentinel())
}
