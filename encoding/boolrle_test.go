package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoolRLEDecoder(t *testing.T) {
	// byte-rle run: header 0x00 -> 3 repeats of 0xAA (10101010), 24 bits total.
	src := bytes.NewReader([]byte{0x00, 0xAA})
	dec := NewBoolRLEDecoder(src)

	got := make([]bool, 24)
	assert.NoError(t, dec.NextN(got))

	want := make([]bool, 24)
	for i := range want {
		want[i] = i%2 == 0 // MSB-first: 1,0,1,0,...
	}
	assert.Equal(t, want, got)
}
