package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageEncoding(t *testing.T) {
	assert.Equal(t, `["a.jpg","b.jpg"]`, EncodeImages([]string{"a.jpg", "b.jpg"}))
	assert.Equal(t, `[]`, EncodeImages(nil))

	assert.Equal(t, []string{"a.jpg", "b.jpg"}, DecodeImages(`["a.jpg","b.jpg"]`))
	assert.Empty(t, DecodeImages(`[]`))
}

func TestDecodeImagesMalformed(t *testing.T) {
	assert.Equal(t, []string{}, DecodeImages("not json"))
	assert.Equal(t, []string{}, DecodeImages(""))
	assert.Equal(t, []string{}, DecodeImages("null"))
}
