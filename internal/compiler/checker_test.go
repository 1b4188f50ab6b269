// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.microglot.org/peg.go/internal/exc"
	"gopkg.microglot.org/peg.go/internal/fs"
	"gopkg.microglot.org/peg.go/internal/idl"
)

type CheckerTestFile struct {
	kind     idl.FileKind
	uri      string
	contents string
}

func TestChecker(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name         string
		file         CheckerTestFile
		start        string
		expectUnused []string
	}{
		{
			name: "everything reachable",
			file: CheckerTestFile{
				kind:     idl.FileKindGrammarPEG,
				uri:      "/test.peg",
				contents: "A <- 'a' B?\nB <- '(' A ')' / C\nC <- 'c'\n",
			},
		},
		{
			name: "unused rule",
			file: CheckerTestFile{
				kind:     idl.FileKindGrammarPEG,
				uri:      "/test.peg",
				contents: "A <- 'a' C\nB <- 'b'\nC <- 'c'\n",
			},
			expectUnused: []string{"rule B is never used"},
		},
		{
			name: "unreachable cycle",
			file: CheckerTestFile{
				kind:     idl.FileKindGrammarPEG,
				uri:      "/test.peg",
				contents: "A <- 'a'\nX <- Y 'x'\nY <- X? 'y'\n",
			},
			expectUnused: []string{"rule X is never used", "rule Y is never used"},
		},
		{
			name: "start override",
			file: CheckerTestFile{
				kind:     idl.FileKindGrammarPEG,
				uri:      "/test.peg",
				contents: "A <- B\nB <- 'b'\n",
			},
			start:        "B",
			expectUnused: []string{"rule A is never used"},
		},
		{
			name: "lookahead counts as a use",
			file: CheckerTestFile{
				kind:     idl.FileKindGrammarYAML,
				uri:      "/test.yaml",
				contents: "rules:\n  - name: A\n    expr: \"!B .\"\n  - name: B\n    expr: \"'b'\"\n",
			},
		},
	}

	subcompilers := DefaultSubCompilers()
	ctx := context.Background()
	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			r := exc.NewReporter(nil)
			f := fs.NewFileString(testCase.file.uri, testCase.file.contents, testCase.file.kind)
			parsed, err := subcompilers[testCase.file.kind].ParseGrammar(ctx, r, f)
			require.NoError(t, err, r.Reported())

			start := testCase.start
			if start == "" {
				start = parsed.rules[0].name
			}
			check(parsed, start, r)

			require.Empty(t, r.Fatal())
			unused := make([]string, 0, len(r.Reported()))
			for _, e := range r.Reported() {
				require.Equal(t, exc.CodeUnusedRule, e.Code())
				require.Equal(t, testCase.file.uri, e.Location().URI)
				unused = append(unused, e.Message())
			}
			if len(testCase.expectUnused) == 0 {
				require.Empty(t, unused)
				return
			}
			require.Equal(t, testCase.expectUnused, unused)
		})
	}
}

func TestCheckerUnusedRuleLocation(t *testing.T) {
	t.Parallel()
	g, r, err := compileTestGrammar(t, "A <- 'a' C\nB <- 'b'\nC <- 'c'", "")
	require.NoError(t, err)
	require.NotNil(t, g)
	require.Empty(t, r.Fatal())
	reported := r.Reported()
	require.Len(t, reported, 1)
	require.Equal(t, "rule B is never used", reported[0].Message())
	require.Equal(t, 2, reported[0].Location().Line)
	require.Equal(t, 1, reported[0].Location().Column)
}
