package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadWrite(t *testing.T) {
	b := &Bus{}
	assert.Equal(t, byte(0), b.Read(0x1234, false))

	b.Write(0x1234, 0x42)
	assert.Equal(t, byte(0x42), b.Read(0x1234, false))
	assert.Equal(t, byte(0), b.Read(0x1235, false))
}

func TestLoad(t *testing.T) {
	b := &Bus{}
	b.Load(0x8000, []byte{0xa9, 0x00, 0xea})
	assert.Equal(t, byte(0xa9), b.Read(0x8000, false))
	assert.Equal(t, byte(0x00), b.Read(0x8001, false))
	assert.Equal(t, byte(0xea), b.Read(0x8002, false))
}

func TestFullAddressSpaceIsValid(t *testing.T) {
	b := &Bus{}
	b.Write(0x0000, 1)
	b.Write(0xffff, 2)
	assert.Equal(t, byte(1), b.Read(0x0000, false))
	assert.Equal(t, byte(2), b.Read(0xffff, false))
}
