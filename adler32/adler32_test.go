package adler32

import (
	"hash"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/hashkit/testutil"
)

var _ hash.Hash32 = (*Digest)(nil)

// reference reduces after every byte.
func reference(p []byte) uint32 {
	s1, s2 := uint32(1), uint32(0)
	for _, c := range p {
		s1 = (s1 + uint32(c)) % Mod
		s2 = (s2 + s1) % Mod
	}
	return s2<<16 | s1
}

func TestVectors(t *testing.T) {
	tests := []struct {
		want  uint32
		input string
	}{
		{0x00000001, ""},
		{0x00620062, "a"},
		{0x012600c4, "ab"},
		{0x024d0127, "abc"},
		{0x03d8018b, "abcd"},
		{0x05c801f0, "abcde"},
		{0x081e0256, "abcdef"},
		{0x0adb02bd, "abcdefg"},
		{0x0e000325, "abcdefgh"},
		{0x118e038e, "abcdefghi"},
		{0x158603f8, "abcdefghij"},
		{0x3f090f02, "Discard medicine more than two years old."},
		{0x46d81477, "He who has a shady past knows that nice guys finish last."},
		{0x40ee0ee1, "I wouldn't marry him with a ten foot pole."},
		{0x16661315, "Free! Free!/A trip/to Mars/for 900/empty jars/Burma Shave"},
		{0x5b2e1480, "The days of the digital watch are numbered.  -Tom Stoppard"},
		{0x8c3c09ea, "Nepal premier won't resign."},
		{0x45ac18fd, "For every action there is an equal and opposite government program."},
		{0x53c61462, "His money is twice tainted: 'taint yours and 'taint mine."},
		{0x7e511e63, "There is no reason for any individual to have a computer in their home. -Ken Olsen, 1977"},
		{0xe4801a6a, "It's a tiny change to the code and not completely disgusting. - Bob Manchek"},
		{0x61b507df, "size:  a.out:  bad magic"},
		{0xb8631171, "The major problem is with sendmail.  -Mark Horton"},
		{0x8b5e1904, "Give me a rock, paper and scissors and I will move the world.  CCFestoon"},
		{0x7cc6102b, "If the enemy is within range, then so are you."},
		{0x700318e7, "It's well we cannot hear the screams/That we create in others' dreams."},
		{0x1e601747, "You remind me of a TV show, but that's all right: I watch it anyway."},
		{0xb55b0b09, "C is as portable as Stonehedge!!"},
		{0x39111dd0, "Even if I could be Shakespeare, I think I should still choose to be Faraday. - A. Huxley"},
		{0x91dd304f, "The fugacity of a constituent in a mixture of gases at a given temperature is proportional to its mole fraction.  Lewis-Randall Rule"},
		{0x2e5d1316, "How can you write a big system without C++?  -Paul Glick"},
		{0xd0201df6, "'Invariant assertions' is the most elegant programming technique!  -Tom Szymanski"},
	}

	for _, tt := range tests {
		d := New()
		d.Update([]byte(tt.input))
		assert.Equal(t, tt.want, d.Sum32(), "%q", tt.input)
		assert.Equal(t, tt.want, Checksum([]byte(tt.input)))
	}
}

func TestDeferredModulo(t *testing.T) {
	for _, n := range []int{NMax - 1, NMax, NMax + 1, 2 * NMax, 2*NMax + 3, 100000} {
		worst := testutil.Repeat("\xff", n)
		assert.Equal(t, reference(worst), Checksum(worst), "0xff x %d", n)

		random := testutil.NewRNG(int64(n)).Bytes(n)
		assert.Equal(t, reference(random), Checksum(random), "random x %d", n)
	}
}

func TestChunkInvariance(t *testing.T) {
	rng := testutil.NewRNG(42)
	data := rng.Bytes(3*NMax + 17)

	d := New()
	testutil.WriteChunked(d, data, rng)
	assert.Equal(t, reference(data), d.Sum32())

	d.Reset()
	assert.Equal(t, uint32(1), d.Sum32())
	assert.Equal(t, []byte{1, 0, 0, 0}, d.Finalize())
}

func TestSizes(t *testing.T) {
	assert.Equal(t, 4, New().Size())
	assert.Equal(t, 1, New().BlockSize())
}
