// Binary holog analyzes a higher-order logic formula: it parses it, lowers
// it to a typed term, classifies it with the tableau prover, and prints the
// expression tree and proof tree.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/golang/glog"

	"codeberg.org/TauCeti/mangle-go/analyze"
	"codeberg.org/TauCeti/mangle-go/diag"
	"codeberg.org/TauCeti/mangle-go/internal/config"
)

var (
	version      = flag.Bool("version", false, "print version and exit")
	versionShort = flag.Bool("v", false, "print version and exit (shorthand)")
	explain      = flag.String("explain", "", "print an explanation of a logic concept and exit")
	explainShort = flag.String("e", "", "print an explanation of a logic concept and exit (shorthand)")
	opts         config.Options
)

func main() {
	opts.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: holog [flags] <formula>\n\n")
		fmt.Fprintf(os.Stderr, "Analyzes a formula of higher-order logic: parses it, lowers it to a\n")
		fmt.Fprintf(os.Stderr, "typed term, and classifies it as tautology, contradiction, or contingent\n")
		fmt.Fprintf(os.Stderr, "with a semantic tableau.\n\n")
		fmt.Fprintf(os.Stderr, "Example: holog '¬(P ∧ Q) ↔ (¬P ∨ ¬Q)'\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *version || *versionShort {
		fmt.Println(config.Version)
		os.Exit(0)
	}
	if concept := pick(*explain, *explainShort); concept != "" {
		fmt.Println(config.Explain(concept))
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(2)
	}

	writer, closeOut, err := opts.Output()
	if err != nil {
		log.Exit(err)
	}
	defer func() {
		if err := closeOut(); err != nil {
			log.Exit(err)
		}
	}()

	run(writer, args[0])
	os.Exit(0)
}

// run performs one analysis and prints the report. A parse failure is part
// of a completed analysis: it is printed as error text, not an exit status.
func run(w io.Writer, formula string) {
	o := analyze.New(diag.Glog())
	res, err := o.Analyze(formula)
	if err != nil {
		fmt.Fprintf(w, "Formula:  %s\nError:    %v\n", formula, err)
		return
	}

	fmt.Fprintf(w, "Formula:  %s\n", res.Expression)
	fmt.Fprintf(w, "Parsed:   %s\n", res.Parsed)
	fmt.Fprintf(w, "HOL form: %s\n", res.HOL)
	if res.Notices != nil {
		fmt.Fprintf(w, "Notes:    %v\n", res.Notices)
	}
	fmt.Fprintf(w, "\nExpression tree:\n%s", res.Visualization)
	fmt.Fprintf(w, "\nVerdict:  %s\n", res.Status)
	if len(res.Tree) > 0 {
		fmt.Fprintf(w, "\nProof tree:\n")
		for _, block := range res.Tree {
			fmt.Fprint(w, block)
		}
	}
	fmt.Fprintf(w, "\nSteps:\n")
	for _, s := range res.Steps {
		fmt.Fprintf(w, "  %2d. [%s] %s: %s\n", s.Num, s.Kind, s.Description, s.Formula)
	}
}

func pick(long, short string) string {
	if long != "" {
		return long
	}
	return short
}
