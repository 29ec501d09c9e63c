// Package config centralizes the flag handling and the fixed explanation
// texts shared by the holog and holog-repl binaries.
package config

import (
	"flag"
	"io"
	"os"
	"sort"
)

// Version is the version string both binaries report for -v/--version.
const Version = "holog 0.1.0"

// Options holds the flag values common to the CLI binaries.
type Options struct {
	// Out, if non-empty, redirects analysis output to a file.
	Out string
}

// RegisterFlags installs the shared flags on fs.
func (o *Options) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.Out, "out", "", "if non-empty, output to file")
}

// Output returns the writer analysis output should go to, plus a close
// function the caller must defer.
func (o Options) Output() (io.Writer, func() error, error) {
	if o.Out == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(o.Out)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

var explanations = map[string]string{
	"negation":      "Negation (¬A) is true exactly when A is false. In a tableau, ¬¬A collapses back to A.",
	"conjunction":   "Conjunction (A ∧ B) is true when both A and B are true. The tableau expands it on one branch: both conjuncts are added.",
	"disjunction":   "Disjunction (A ∨ B) is true when at least one side is true. The tableau splits into one branch per disjunct.",
	"implication":   "Implication (A → B) is false only when A is true and B is false. The tableau splits into ¬A and B branches.",
	"biconditional": "Biconditional (A ↔ B) is true when both sides have the same truth value. The tableau splits into (A ∧ B) and (¬A ∧ ¬B).",
	"equality":      "Equality (s = t) relates two individuals. The prover treats it as an atomic formula: it is never expanded.",
	"forall":        "Universal quantification (∀x. P x) states P holds of every individual. The tableau instantiates it once per branch, with every constant already on the branch, or with a fresh constant if there is none.",
	"exists":        "Existential quantification (∃x. P x) states P holds of some individual. The tableau replaces x with a fresh Skolem constant witnessing it.",
	"exists_unique": "Unique existence (∃!x. P x) states exactly one individual satisfies P. The tableau skolemizes it like an ordinary existential.",
	"lambda":        "A lambda (λx. body) is an anonymous function of x. Applied to an argument it beta-reduces: the argument replaces x in the body.",
	"composition":   "Composition (f ∘ g) is the function applying g first and f second: (f ∘ g)(x) = f(g(x)).",
	"addition":      "Addition (+) is a binary operation on individuals. Over Church numerals it is the combinator λm.λn.λf.λx. m f (n f x).",
	"multiplication": "Multiplication (×) is a binary operation on individuals. Over Church numerals it is the combinator λm.λn.λf. m (n f).",
}

const fallbackExplanation = "No explanation is available for that concept. Use one of: "

// Explain returns the fixed explanation text for concept, or a fallback
// listing the known concepts. It never fails.
func Explain(concept string) string {
	if text, ok := explanations[concept]; ok {
		return text
	}
	names := Concepts()
	out := fallbackExplanation
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out + "."
}

// Concepts lists the known explanation topics in sorted order.
func Concepts() []string {
	names := make([]string, 0, len(explanations))
	for n := range explanations {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
