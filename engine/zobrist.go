// zobrist.go contains magic numbers used for Zobrist hashing.
//
// More information on Zobrist hashing can be found in the paper:
// http://research.cs.wisc.edu/techreports/1970/TR88.pdf

package engine

import "math/rand"

var (
	zobristPiece     [PieceArraySize][SquareArraySize]uint64
	zobristEnpassant [SquareArraySize]uint64
	zobristCastle    [CastleArraySize]uint64
	zobristColor     [ColorArraySize]uint64
)

func rand64(r *rand.Rand) uint64 {
	return uint64(r.Int63())<<32 ^ uint64(r.Int63())
}

func init() {
	r := rand.New(rand.NewSource(1))

	for co := White; co <= Black; co++ {
		for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
			for sq := Square(0); sq < 64; sq++ {
				zobristPiece[ColorFigure(co, fig)][sq] = rand64(r)
			}
		}
	}
	for sq := Square(0); sq < 64; sq++ {
		zobristEnpassant[sq] = rand64(r)
	}
	for i := 0; i < CastleArraySize; i++ {
		zobristCastle[i] = rand64(r)
	}
	for co := White; co <= Black; co++ {
		zobristColor[co] = rand64(r)
	}
}
