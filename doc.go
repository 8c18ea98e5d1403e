/*
Package tempo implements the chess core: bitboard position representation,
precalculated attack and ray tables, strictly legal move generation, FEN and
long algebraic notation, and incremental Zobrist hashing.  The search built
on top of it lives in the engine subpackage.

All tables are initialized at package load; there is nothing to set up
before parsing a position and generating moves.
*/
package tempo
