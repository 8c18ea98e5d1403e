/*
bitutil.go implements bit utilities which are used in move generation,
hashing, and evaluation.  A bitboard is a plain uint64: bit k set means
square k is in the set.
*/

package tempo

import "math/bits"

// SquareBB returns the bitboard holding only the given square.
func SquareBB(sq Square) uint64 { return 1 << sq }

// CountBits returns the number of bits set within the bitboard.
func CountBits(bitboard uint64) int {
	return bits.OnesCount64(bitboard)
}

/*
BitScan returns the index of the LSB within the bitboard.

NOTE: BitScan returns 64 for the empty bitboard.
*/
func BitScan(bitboard uint64) Square {
	return bits.TrailingZeros64(bitboard)
}

/*
PopLSB removes the LSB from the bitboard and returns its index.

NOTE: PopLSB returns 64 for the empty bitboard.
*/
func PopLSB(bitboard *uint64) Square {
	lsb := bits.TrailingZeros64(*bitboard)
	*bitboard &= *bitboard - 1
	return lsb
}
