package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "#icon", Truncate("#icon", 10))
	assert.Equal(t, "#descr...", Truncate("#descr \"long\"", 6))
	assert.Equal(t, `a\nb`, Truncate("a\nb", 10))
}

func TestHash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Hash(nil))
	assert.Len(t, Hash([]byte("#modname \"x\"")), 64)
}
