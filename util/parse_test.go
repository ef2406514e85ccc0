package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKeyValueLines(t *testing.T) {
	kv := ParseKeyValueLines([]string{
		"MemTotal:       16303780 kB",
		"",
		"nr_free_pages 12345",
		"lonely",
	})

	assert.Equal(t, "16303780 kB", kv["MemTotal"])
	assert.Equal(t, "12345", kv["nr_free_pages"])
	assert.Contains(t, kv, "lonely")
	assert.Empty(t, kv["lonely"])
}

func TestParseUint64_StripsKB(t *testing.T) {
	assert.Equal(t, uint64(1234), ParseUint64(" 1234 kB"))
	assert.Equal(t, uint64(0), ParseUint64("garbage"))
}
