package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo(t *testing.T) {
	p := To(int64(42))
	assert.Equal(t, int64(42), *p)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, "", Deref[string](nil))
	assert.Equal(t, "x", Deref(To("x")))
}

func TestNonBlank(t *testing.T) {
	assert.Nil(t, NonBlank(""))
	assert.Nil(t, NonBlank("  \t"))
	assert.Equal(t, "중소벤처기업부", *NonBlank("  중소벤처기업부 "))
}
