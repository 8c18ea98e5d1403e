// Package main provides debugging and testing functions.
// It is excluded from the tempo package, as it is only used
// for testing purposes.  The tempo users won't be able to import this
// package.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"
	"sync/atomic"
	"time"

	"github.com/BelikovArtem/tempo"
	"github.com/BelikovArtem/tempo/cli"
	"github.com/BelikovArtem/tempo/engine"
)

// result information will be printed if the perft is executed with the
// verbose flag.
type result struct {
	nodes      int
	captures   int
	epCaptures int
	castles    int
	promotions int
	checks     int
}

// perft is a debugging function that walks through the move generation
// tree of strictly legal moves to a given depth and counts the number of
// visited leaf nodes.  The resulting count is then compared to
// predetermined values.
//
// See https://www.chessprogramming.org/Perft_Results
func perft(s tempo.State, depth int) int {
	l := tempo.MoveList{}
	nodes := 0

	tempo.GenLegalMoves(&s, &l)

	if depth == 1 {
		return int(l.LastMoveIndex)
	}

	for _, m := range l.Slice() {
		next := s.ApplyMove(m)
		nodes += perft(next, depth-1)
	}

	return nodes
}

// perftVerbose follows the same principle as the perft function, except it
// collects detailed move statistics and logs the per-move node counts of
// the root.  Use this function to debug and find invalid branches in the
// move generation tree, not to measure performance.
func perftVerbose(s tempo.State, depth int, r *result, isRoot bool) int {
	l := tempo.MoveList{}
	nodes := 0

	tempo.GenLegalMoves(&s, &l)

	if depth == 1 {
		return int(l.LastMoveIndex)
	}

	for _, m := range l.Slice() {
		if _, victim := s.Board.Get(m.To()); victim != tempo.PieceNone {
			r.captures++
		}

		_, piece := s.Board.Get(m.From())
		switch {
		case piece == tempo.PiecePawn && m.To() == s.EnPassant:
			r.epCaptures++
			r.captures++
		case piece == tempo.PieceKing && (m.To()-m.From() == 2 || m.From()-m.To() == 2):
			r.castles++
		case m.Promotion() != tempo.PieceNone:
			r.promotions++
		}

		next := s.ApplyMove(m)
		if next.InCheck() {
			r.checks++
		}

		cnt := perftVerbose(next, depth-1, r, false)
		if isRoot {
			log.Printf("%s %d", m, cnt)
		}
		nodes += cnt
	}

	return nodes
}

// main runs the perft and measures its execution time.
func main() {
	depth := flag.Int("depth", 2, "Performance test depth")
	fen := flag.String("fen", tempo.InitialPos, "Position to search from")
	verbose := flag.Bool("verbose", false, "Whether to print the debug info")
	search := flag.Bool("search", false, "Run a best-move search instead of perft")
	config := flag.String("config", "", "Path to a TOML engine options file")
	cpuprofile := flag.String("cpuprofile", "", "File to write a cpu profile")
	memprofile := flag.String("memprofile", "", "File to write a memory profile")

	flag.Parse()

	s, err := tempo.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("parse fen: %v", err)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			pprof.WriteHeapProfile(f)
			f.Close()
		}()
	}

	if *search {
		runSearch(s, *depth, *config)
		return
	}

	r := &result{}
	start := time.Now()

	if *verbose {
		r.nodes = perftVerbose(s, *depth, r, true)

		log.Printf("\nRoot position:\n%s\n\n\t%s\n\n", cli.FormatPosition(&s), *fen)
		log.Printf("depth %d: %d nodes, %d captures (%d ep), %d castles, "+
			"%d promotions, %d checks",
			*depth, r.nodes, r.captures, r.epCaptures, r.castles,
			r.promotions, r.checks)
	} else {
		r.nodes = perft(s, *depth)
		log.Printf("Nodes reached: %d", r.nodes)
	}

	log.Printf("Elapsed time: %d ns", time.Since(start).Nanoseconds())
}

// runSearch exercises the engine package: it searches the given position
// and logs the best move together with the perf records collected along
// the way.
func runSearch(s tempo.State, depth int, configPath string) {
	opts := engine.DefaultOptions()
	if configPath != "" {
		var err error
		if opts, err = engine.LoadOptions(configPath); err != nil {
			log.Fatalf("load options: %v", err)
		}
	}

	e := engine.New(opts)
	e.SetPosition(s)

	var stop atomic.Bool
	perf := make(chan engine.PerfInfo, 16)

	start := time.Now()
	best, err := e.SearchBestMove(
		engine.Limits{MaxDepth: depth},
		engine.Controls{Stop: &stop, PerfSink: perf},
	)
	if err != nil {
		log.Fatalf("search: %v", err)
	}

	close(perf)
	for info := range perf {
		log.Printf("nodes %d, %.0f nodes/s, tt load %.3f, tt hit rate %.3f",
			info.Nodes, info.NodesPerSecond, info.TranspositionLoad,
			info.TableHitRate)
	}

	log.Printf("bestmove %s", best)
	log.Printf("Elapsed time: %d ns", time.Since(start).Nanoseconds())
}
