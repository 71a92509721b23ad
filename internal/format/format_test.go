package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComma(t *testing.T) {
	assert.Equal(t, "0", Comma(0))
	assert.Equal(t, "999", Comma(999))
	assert.Equal(t, "1,540", Comma(1540))
	assert.Equal(t, "165,102", Comma(165102))
	assert.Equal(t, "-12,345", Comma(-12345))
}

func TestWon(t *testing.T) {
	assert.Equal(t, "1,200만원", Won(1200))
	assert.Equal(t, "1억 6,800만원", Won(16800))
	assert.Equal(t, "3억원", Won(30000))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "75.0%", Percent(75))
	assert.Equal(t, "0.0%", Percent(0))
}
