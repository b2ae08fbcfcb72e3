package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTarget(t *testing.T) {
	col, ok := To("名前").Column()
	assert.True(t, ok)
	assert.Equal(t, "名前", col)
	assert.False(t, To("名前").IsDrop())
	assert.Equal(t, "名前", To("名前").String())

	col, ok = Drop().Column()
	assert.False(t, ok)
	assert.Empty(t, col)
	assert.True(t, Drop().IsDrop())
	assert.Equal(t, "-", Drop().String())

	var zero Target
	assert.Equal(t, Drop(), zero)
}
