package main

import (
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MixinNetwork/zkgroup-go/logger"
)

func TestRun(t *testing.T) {
	assert := assert.New(t)

	cfg, err := LoadFile("vectors.toml")
	require.Nil(t, err)
	v, err := cfg.Vectors()
	require.Nil(t, err)
	backend, err := logger.New("", "ERROR", true)
	require.Nil(t, err)

	first, err := Run(v, backend.GetLogger("test"))
	require.Nil(t, err)
	second, err := Run(v, backend.GetLogger("test"))
	require.Nil(t, err)
	assert.Equal(first, second)

	names := make(map[string]bool)
	for _, vec := range first {
		assert.NotEmpty(vec.Hex, vec.Name)
		names[vec.Name] = true
		log.Println(vec.Name, vec.Hex)
	}
	assert.Len(names, len(first))
	assert.True(names["auth_credential_presentation"])
	assert.True(names["receipt_credential_presentation"])
	assert.True(names["profile_key_version"])
	assert.True(names["notary_signature"])

	v.Issue[0] ^= 0x01
	third, err := Run(v, backend.GetLogger("test"))
	require.Nil(t, err)
	assert.Equal(first[0], third[0])
	assert.NotEqual(first, third)
}
