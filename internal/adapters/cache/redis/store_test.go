package redis

import (
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestKeyNamespace(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()

	assert.Equal(t, "softpet:pets:list", NewWithClient(client, " softpet ").key("pets:list"))
	assert.Equal(t, "pets:list", NewWithClient(client, "").key("pets:list"))
}
