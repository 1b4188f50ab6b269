// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"gopkg.microglot.org/peg.go/internal/compiler"
	"gopkg.microglot.org/peg.go/internal/exc"
	"gopkg.microglot.org/peg.go/internal/fs"
	"gopkg.microglot.org/peg.go/internal/idl"
)

type opts struct {
	Roots       []string
	Grammar     string
	Output      string
	Start       string
	DumpTree    bool
	DumpGrammar bool
	Verbose     int
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	op := &opts{}
	flags := pflag.NewFlagSet("pegc", pflag.PanicOnError)
	flags.StringSliceVar(&op.Roots, "root", []string{"."}, "Root search paths for grammars and inputs.")
	flags.StringVar(&op.Grammar, "grammar", "", "Grammar file (.peg, .yaml, .yml or .toml).")
	flags.StringVar(&op.Start, "start", "", "Start rule. Defaults to the grammar's own start or its first rule.")
	flags.StringVar(&op.Output, "out", "", "Output directory for dumps. Dumps go to STDOUT when empty.")
	flags.BoolVar(&op.DumpTree, "dump-tree", false, "Output the parse tree of each input")
	flags.BoolVar(&op.DumpGrammar, "dump-grammar", false, "Output the grammar in PEG notation after loading it")
	flags.CountVarP(&op.Verbose, "verbose", "v", "Log verbosity. Repeat for more detail.")
	_ = flags.Parse(os.Args[1:])
	targets := flags.Args()

	commonlog.Configure(op.Verbose, nil)

	f, err := compiler.NewDefaultFS(os.LookupEnv)
	if err != nil {
		panic(err)
	}

	mf := make(fs.FileSystemMulti, 0, len(op.Roots)+1)
	for _, root := range op.Roots {
		absRoot, errAbs := filepath.Abs(root)
		if errAbs != nil {
			panic(errAbs.Error())
		}
		rf, err := fs.NewFileSystemLocal(absRoot)
		if err != nil {
			panic(err.Error())
		}
		mf = append(mf, rf)
	}
	mf = append(mf, f)

	var out idl.FileSystem
	if op.Output != "" {
		absOut, errAbs := filepath.Abs(op.Output)
		if errAbs != nil {
			panic(errAbs.Error())
		}
		out, err = fs.NewFileSystemLocal(absOut)
		if err != nil {
			panic(err.Error())
		}
	}

	reporter := exc.NewReporter(nil)

	if op.DumpGrammar {
		grammar, err := compiler.LoadGrammar(ctx, mf, reporter, compiler.DefaultSubCompilers(), op.Grammar, op.Start)
		if err != nil {
			exit(reporter, err)
		}
		warn(reporter)
		if out != nil {
			if err := compiler.WriteGrammar(ctx, out, grammar); err != nil {
				exit(reporter, err)
			}
		} else {
			fmt.Print(grammar.String())
		}
		if len(targets) == 0 {
			return
		}
		reporter = exc.NewReporter(nil)
	}

	c, err := compiler.New(
		compiler.OptionWithLookupEnv(os.LookupEnv),
		compiler.OptionWithFS(mf),
		compiler.OptionWithExcReporter(reporter),
	)
	if err != nil {
		panic(err)
	}

	res, err := c.Compile(ctx, &idl.CompileRequest{
		Grammar: op.Grammar,
		Start:   op.Start,
		Files:   targets,
	})
	if err != nil {
		exit(reporter, err)
	}
	warn(reporter)

	if out != nil && op.DumpTree {
		if err := compiler.WriteTrees(ctx, out, res.Trees); err != nil {
			exit(reporter, err)
		}
	}
	for _, tree := range res.Trees {
		if !op.DumpTree || out != nil {
			fmt.Printf("%s: ok (%s, %d children)\n", tree.URI, tree.Root.Rule, len(tree.Root.Children))
			continue
		}
		fmt.Printf("# %s\n", tree.URI)
		if err := tree.Root.Dump(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}
}

// warn prints the non-fatal exceptions, such as unused rules.
func warn(r exc.Reporter) {
	fatal := make(map[exc.Exception]bool)
	for _, e := range r.Fatal() {
		fatal[e] = true
	}
	for _, e := range r.Reported() {
		if !fatal[e] {
			fmt.Fprintln(os.Stderr, "warning:", e.Error())
		}
	}
}

func exit(r exc.Reporter, err error) {
	var me compiler.MultiException
	if errors.As(err, &me) {
		for _, err := range me {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		os.Exit(1)
	}
	if caught := r.Fatal(); len(caught) > 0 {
		for _, err := range caught {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
