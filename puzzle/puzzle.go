// puzzle tries to solve tactics puzzles read from an EPD file.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rookwood/corvid/engine"
	"github.com/rookwood/corvid/notation"
)

var (
	input      = flag.String("input", "", "file with EPD lines")
	output     = flag.String("output", "", "file to write EPD with solutions")
	deadline   = flag.Duration("deadline", 0, "how much time to spend on each move")
	maxDepth   = flag.Int("max_depth", 0, "search up to max_depth plies")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	quiet      = flag.Bool("quiet", false, "don't print individual tests")
	maxNodes   = flag.Uint64("max_nodes", 0, "maximum total nodes to search")
)

func main() {
	log.SetFlags(log.Lshortfile)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input not specified")
	}
	if *deadline == 0 && *maxDepth == 0 {
		log.Fatal("--deadline or --max_depth must be specified")
	}
	if *cpuprofile != "" {
		fin, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(fin)
		defer pprof.StopCPUProfile()
	}

	fin, err := os.Open(*input)
	if err != nil {
		log.Fatalf("cannot open %s for reading: %v", *input, err)
	}
	defer fin.Close()

	var fout *os.File
	if *output != "" {
		if fout, err = os.Create(*output); err != nil {
			log.Fatalf("cannot open %s for writing: %v", *output, err)
		}
		defer fout.Close()
	}

	limits := engine.Limits{MoveTime: *deadline, Depth: *maxDepth}
	ai, err := engine.NewEngine(nil, engine.NulLogger{}, engine.Options{})
	if err != nil {
		log.Fatal(err)
	}

	var stats engine.Stats
	solvedTests, numTests := 0, 0

	buf := bufio.NewReader(fin)
	for i, o := 0, 0; ; i++ {
		line, err := buf.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				log.Fatal(err)
			}
			break
		}

		line = strings.SplitN(line, "#", 2)[0]
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		epd, err := notation.ParseEPD(line)
		if err != nil {
			log.Println("error:", err)
			log.Println("skipping", line)
			continue
		}

		ai.SetPosition(epd.Position)
		start := time.Now()
		best, _, searchStats := ai.Go(limits)
		elapsed := time.Since(start)

		numTests++
		for _, expected := range epd.BestMove {
			if expected == best {
				solvedTests++
				break
			}
		}

		if !*quiet {
			if o%25 == 0 {
				fmt.Println()
				fmt.Println("line     bm actual  cache  nodes  correct epd")
				fmt.Println("----+------+------+------+------+--------+---")
			}
			var expectedStr string
			if len(epd.BestMove) > 0 {
				expectedStr = epd.BestMove[0].UCI()
			}
			fmt.Printf("%4d %6s %6s %5.2f%% %5dK %4d/%4d %s (%v)\n",
				i+1, expectedStr, best.UCI(),
				searchStats.CacheHitRatio()*100,
				searchStats.Nodes/1000, solvedTests, numTests, line, elapsed)
			o++
		}

		if fout != nil {
			epd.BestMove = []engine.Move{best}
			fmt.Fprintln(fout, epd.String())
		}

		stats.CacheHit += searchStats.CacheHit
		stats.CacheMiss += searchStats.CacheMiss
		stats.Nodes += searchStats.Nodes
		if *maxNodes != 0 && stats.Nodes > *maxNodes {
			break
		}
	}

	fmt.Printf("%s solved %d out of %d ; nodes %d ; cachehit %d out of %d (%.2f%%) ;\n",
		*input, solvedTests, numTests, stats.Nodes,
		stats.CacheHit, stats.CacheHit+stats.CacheMiss,
		stats.CacheHitRatio()*100)
}
