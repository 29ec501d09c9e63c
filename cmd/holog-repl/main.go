// Binary holog-repl is an interactive shell around the analysis pipeline:
// it reads formulas line by line and prints each one's classification and
// proof tree.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	log "github.com/golang/glog"

	"codeberg.org/TauCeti/mangle-go/analyze"
	"codeberg.org/TauCeti/mangle-go/diag"
	"codeberg.org/TauCeti/mangle-go/internal/config"
)

const prompt = "holog> "

var opts config.Options

func main() {
	opts.RegisterFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: holog-repl [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Interactive shell for analyzing higher-order logic formulas.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	writer, closeOut, err := opts.Output()
	if err != nil {
		log.Exit(err)
	}
	defer func() {
		if err := closeOut(); err != nil {
			log.Exit(err)
		}
	}()

	if err := loop(writer); err != io.EOF && err != readline.ErrInterrupt {
		log.Exit(err)
	}
	os.Exit(0)
}

func showHelp(w io.Writer) {
	fmt.Fprintln(w, `
<formula>            analyze a formula, e.g. ¬(P ∧ Q) ↔ (¬P ∨ ¬Q)
::explain <concept>  explain a logic concept (e.g. ::explain forall)
::help               display this help text
<Ctrl-D>             quit`)
}

func loop(w io.Writer) error {
	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	o := analyze.New(diag.Glog())
	showHelp(w)
	for {
		line, err := rl.Readline()
		if err != nil {
			return err
		}
		readline.AddHistory(line)
		line = strings.TrimSpace(line)
		switch {
		case line == "":

		case line == "::help":
			showHelp(w)

		case strings.HasPrefix(line, "::explain "):
			fmt.Fprintln(w, config.Explain(strings.TrimSpace(strings.TrimPrefix(line, "::explain "))))

		default:
			res, err := o.Analyze(line)
			if err != nil {
				fmt.Fprintf(w, "error: %v\n", err)
				continue
			}
			fmt.Fprintf(w, "%s is a %s\n", res.Parsed, res.Status)
			for _, block := range res.Tree {
				fmt.Fprint(w, block)
			}
		}
	}
}
