// emdcli - a command-line front end for the netsimplex min-cost-flow
// solver. Input and output default to os.Stdin/os.Stdout.
//
//	$ go build -o emdcli .
//	$ cat problem.min | emdcli          # read the problem from stdin
//	$ emdcli problem.min                # read a file, write to stdout
//	$ emdcli -o flows.out problem.min   # write results to a file
//
// The input is DIMACS-like min-cost-flow text, 1-based node ids:
//
//	c  this is a comment
//	p min <nodes> <arcs>
//	n  <id> <supply>
//	a  <from> <to> <lower> <capacity> <cost>
//
// Lower bounds must be 0; a negative capacity means uncapacitated.
// The output lists one "f <from> <to> <flow>" line per arc carrying
// flow and a final "s <total cost>" line.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nathanneike/POT/netsimplex"
)

func main() {
	var (
		output  string
		maxIter int
		quiet   bool
	)
	flag.StringVar(&output, "o", "", "write results to named file")
	flag.IntVar(&maxIter, "maxiter", 0, "pivot cap (0 = unbounded)")
	flag.BoolVar(&quiet, "q", false, "print the total cost only")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		args = []string{"stdin"}
	}

	out := os.Stdout
	if output != "" {
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "emdcli: unable to open output file %s: %s\n", output, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	for _, arg := range args {
		in := os.Stdin
		if arg != "stdin" {
			f, err := os.Open(arg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "emdcli: unable to open input file %s: %s\n", arg, err)
				os.Exit(1)
			}
			in = f
		}
		if err := run(in, out, maxIter, quiet); err != nil {
			fmt.Fprintf(os.Stderr, "emdcli: %s: %s\n", arg, err)
			os.Exit(1)
		}
		if in != os.Stdin {
			in.Close()
		}
	}
}

// run parses one problem from r, solves it and reports on w.
func run(r io.Reader, w io.Writer, maxIter int, quiet bool) error {
	prob, err := parse(r)
	if err != nil {
		return err
	}

	opts := netsimplex.DefaultOptions()
	opts.MaxIterations = maxIter
	s, err := netsimplex.NewSolver(prob.nodes, len(prob.arcs), opts)
	if err != nil {
		return err
	}
	for u, supply := range prob.supplies {
		if supply == 0 {
			continue
		}
		if err = s.SetSupply(u, supply); err != nil {
			return err
		}
	}
	for _, a := range prob.arcs {
		if _, err = s.AddArc(a.from, a.to, a.cost, a.capacity); err != nil {
			return err
		}
	}

	if _, err = s.Solve(); err != nil {
		return err
	}

	if !quiet {
		for e, a := range prob.arcs {
			if f := s.Flow(e); f != 0 {
				fmt.Fprintf(w, "f %d %d %g\n", a.from+1, a.to+1, f)
			}
		}
	}
	fmt.Fprintf(w, "s %g\n", s.TotalCost())

	return nil
}

type arc struct {
	from, to       int
	cost, capacity float64
}

type problem struct {
	nodes    int
	supplies []float64
	arcs     []arc
}

// parse reads the DIMACS-like min-cost-flow format described in the
// package comment. Node ids are converted to 0-based on the way in.
func parse(r io.Reader) (*problem, error) {
	var (
		prob    *problem
		scanner = bufio.NewScanner(r)
		lineNo  int
	)
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "c":
			// comment
		case "p":
			if prob != nil {
				return nil, fmt.Errorf("line %d: duplicate problem line", lineNo)
			}
			if len(fields) != 4 || fields[1] != "min" {
				return nil, fmt.Errorf("line %d: want \"p min <nodes> <arcs>\"", lineNo)
			}
			nodes, err := strconv.Atoi(fields[2])
			if err != nil || nodes <= 0 {
				return nil, fmt.Errorf("line %d: bad node count %q", lineNo, fields[2])
			}
			arcCount, err := strconv.Atoi(fields[3])
			if err != nil || arcCount < 0 {
				return nil, fmt.Errorf("line %d: bad arc count %q", lineNo, fields[3])
			}
			prob = &problem{
				nodes:    nodes,
				supplies: make([]float64, nodes),
				arcs:     make([]arc, 0, arcCount),
			}
		case "n":
			if prob == nil {
				return nil, fmt.Errorf("line %d: node line before problem line", lineNo)
			}
			if len(fields) != 3 {
				return nil, fmt.Errorf("line %d: want \"n <id> <supply>\"", lineNo)
			}
			id, err := strconv.Atoi(fields[1])
			if err != nil || id < 1 || id > prob.nodes {
				return nil, fmt.Errorf("line %d: node id %q out of range", lineNo, fields[1])
			}
			supply, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad supply %q", lineNo, fields[2])
			}
			prob.supplies[id-1] = supply
		case "a":
			if prob == nil {
				return nil, fmt.Errorf("line %d: arc line before problem line", lineNo)
			}
			if len(fields) != 6 {
				return nil, fmt.Errorf("line %d: want \"a <from> <to> <lower> <cap> <cost>\"", lineNo)
			}
			from, err1 := strconv.Atoi(fields[1])
			to, err2 := strconv.Atoi(fields[2])
			if err1 != nil || err2 != nil ||
				from < 1 || from > prob.nodes || to < 1 || to > prob.nodes {
				return nil, fmt.Errorf("line %d: arc endpoint out of range", lineNo)
			}
			if fields[3] != "0" {
				return nil, fmt.Errorf("line %d: nonzero lower bounds are not supported", lineNo)
			}
			capacity, err := strconv.ParseFloat(fields[4], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad capacity %q", lineNo, fields[4])
			}
			if capacity < 0 {
				capacity = netsimplex.Inf
			}
			cost, err := strconv.ParseFloat(fields[5], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad cost %q", lineNo, fields[5])
			}
			prob.arcs = append(prob.arcs, arc{from: from - 1, to: to - 1, cost: cost, capacity: capacity})
		default:
			return nil, fmt.Errorf("line %d: unknown directive %q", lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if prob == nil {
		return nil, fmt.Errorf("no problem line found")
	}

	return prob, nil
}
