package bits

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testWord represents a single value to write and read from the bit buffer.
type testWord struct {
	bits int
	v    uint
}

// bytesToFit calculates the minimum number of bytes required to store a given number of bits.
func bytesToFit(bits int) int {
	if bits%8 == 0 {
		return bits / 8
	}
	return bits/8 + 1
}

// genTestWords generates a slice of random testWords for fuzz-like testing.
func genTestWords(r *rand.Rand, maxCount int, maxBits int) []testWord {
	count := r.Intn(maxCount)
	words := make([]testWord, count)
	for i := range words {
		if maxBits == 1 {
			words[i].bits = 1
		} else {
			words[i].bits = 1 + r.Intn(maxBits-1)
		}
		words[i].v = uint(r.Intn(1 << words[i].bits))
	}
	return words
}

// testBitBuffer writes all words, checks the produced buffer and reads every word back.
func testBitBuffer(t *testing.T, words []testWord, name string) {
	writer := NewWriter()

	totalBits := 0
	for _, w := range words {
		writer.Write(w.bits, w.v)
		totalBits += w.bits
	}
	assert.Equalf(t, totalBits, writer.Len(), "%s: written bit count mismatch", name)

	buf := writer.Buffer()
	assert.Equalf(t, totalBits, buf.Len(), "%s: bit count mismatch", name)
	assert.Equalf(t, bytesToFit(totalBits), len(buf.Bytes()), "%s: byte length mismatch", name)

	// padding must read as zero
	if pad := 8*len(buf.Bytes()) - totalBits; pad > 0 {
		assert.Zerof(t, buf.Bytes()[0]>>(8-pad), "%s: padding bits must be zero", name)
	}

	reader := NewReader(buf)
	read := 0
	for _, w := range words {
		assert.Equalf(t, totalBits-read, reader.NonReadBits(), "%s: NonReadBits mismatch", name)
		assert.EqualValuesf(t, w.v, reader.Read(w.bits), "%s: read value mismatch", name)
		read += w.bits
	}

	assert.Panicsf(t, func() {
		reader.Read(1)
	}, "%s: should panic when reading past the end", name)
	assert.Equalf(t, 0, reader.NonReadBits(), "%s: should have 0 bits left", name)
}

func TestBitBufferEmpty(t *testing.T) {
	testBitBuffer(t, []testWord{}, "empty")
}

func TestBitBufferSingleBits(t *testing.T) {
	testBitBuffer(t, []testWord{{1, 0b0}}, "b0")
	testBitBuffer(t, []testWord{{1, 0b1}}, "b1")
}

func TestBitBufferPatterns(t *testing.T) {
	testBitBuffer(t, []testWord{{9, 0b010101010}}, "b010101010")
	testBitBuffer(t, []testWord{{17, 0b01010101010101010}}, "b01010101010101010")
}

func TestBitBufferRand(t *testing.T) {
	for _, maxBits := range []int{1, 8, 17, 32} {
		r := rand.New(rand.NewSource(0))
		for i := 0; i < 50; i++ {
			testBitBuffer(t, genTestWords(r, 60, maxBits), fmt.Sprintf("%d bits, case#%d", maxBits, i))
		}
	}
}

func TestWriter_Text(t *testing.T) {
	w := NewWriter()
	w.Write(3, 5)
	w.Write(4, 0b0011)
	w.Write(2, 0b10)
	assert.Equal(t, "101001110", w.Buffer().String())
}

func TestReader_View(t *testing.T) {
	buf, err := FromText("1010101001010101")
	assert.NoError(t, err)
	reader := NewReader(buf)

	assert.EqualValues(t, 0xAA, reader.View(8))
	assert.Equal(t, 16, reader.NonReadBits(), "View() should not consume bits")
	assert.EqualValues(t, 0xAA, reader.Read(8))
	assert.Equal(t, 8, reader.Position())

	reader.Skip(4)
	assert.EqualValues(t, 0x5, reader.Read(4))
	assert.Panics(t, func() { reader.Skip(1) })
}

func TestBitBuffer_Boundaries(t *testing.T) {
	tests := []struct {
		name  string
		words []testWord
	}{
		{name: "Aligned Byte", words: []testWord{{8, 0xFF}}},
		{name: "Byte + 4 bits", words: []testWord{{8, 0xFF}, {4, 0xA}}},
		{name: "4 bits + Byte (Crossing boundary)", words: []testWord{{4, 0xA}, {8, 0xFF}}},
		{name: "Exact 16 bits", words: []testWord{{16, 0xFFFF}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			testBitBuffer(t, tc.words, tc.name)
		})
	}
}

func BenchmarkWriter_write(b *testing.B) {
	for bits := 1; bits <= 9; bits++ {
		b.Run(fmt.Sprintf("%d bits", bits), func(b *testing.B) {
			writer := NewWriter()
			for i := 0; i < b.N; i++ {
				writer.Write(bits, 0xff)
			}
		})
	}
}

func BenchmarkReader_read(b *testing.B) {
	for bits := 1; bits <= 9; bits++ {
		b.Run(fmt.Sprintf("%d bits", bits), func(b *testing.B) {
			reader := NewReader(FromBytes(make([]byte, bytesToFit(bits*b.N))))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = reader.Read(bits)
			}
		})
	}
}
