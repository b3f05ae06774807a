// Package main contains Mage build targets for bindshift developer tooling.
package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binName = "bindshift"
	cmdPkg  = "./cmd/bindshift"

	sampleDir   = "testdata"
	samplePages = "8"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + version()
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests. The sqlite driver needs cgo.
func Test() error {
	return sh.RunWithV(map[string]string{"CGO_ENABLED": "1"}, "go", "test", "./...")
}

// Lint runs go vet over every package.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Sample builds the CLI and writes a numbered sample PDF plus its shifted
// copy into testdata/ for manual inspection.
func Sample() error {
	mg.Deps(Build)

	if err := os.MkdirAll(sampleDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", sampleDir, err)
	}
	bin := filepath.Join(binDir, binName)
	in := filepath.Join(sampleDir, "sample.pdf")
	out := filepath.Join(sampleDir, "sample(binding-layout).pdf")

	if err := sh.RunV(bin, "sample", in, "--pages", samplePages); err != nil {
		return err
	}
	if err := sh.RunV(bin, "shift", in, out); err != nil {
		return err
	}
	return sh.RunV(bin, "info", out, "--shifts")
}

// version returns the current git description, or "dev" outside a checkout.
func version() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || strings.TrimSpace(v) == "" {
		return "dev"
	}
	return strings.TrimSpace(v)
}

// Stats prints Go line counts for production and test code, the number of
// packages and the word count of the Markdown documents.
func Stats() error {
	st, err := collectStats(".")
	if err != nil {
		return err
	}

	fmt.Printf("Packages:                       %d\n", len(st.packages))
	fmt.Printf("Lines of code (Go, production): %d\n", st.prodLines)
	fmt.Printf("Lines of code (Go, tests):      %d\n", st.testLines)
	fmt.Printf("Words (documentation):          %d\n", st.docWords)
	return nil
}

type stats struct {
	prodLines int
	testLines int
	docWords  int
	packages  map[string]bool
}

// skipDir reports directories Stats does not descend into.
func skipDir(path string) bool {
	base := filepath.Base(path)
	return path != "." && (strings.HasPrefix(base, ".") || strings.HasPrefix(base, "_") || base == binDir || base == sampleDir)
}

// collectStats makes one pass over root. Go lines are non-blank lines;
// documentation is every .md file outside the skipped directories.
func collectStats(root string) (stats, error) {
	st := stats{packages: map[string]bool{}}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}

		switch filepath.Ext(path) {
		case ".go":
			n, err := scanFile(path, bufio.ScanLines, func(line string) bool {
				return strings.TrimSpace(line) != ""
			})
			if err != nil {
				return err
			}
			if strings.HasSuffix(path, "_test.go") {
				st.testLines += n
			} else {
				st.prodLines += n
			}
			st.packages[filepath.Dir(path)] = true
		case ".md":
			n, err := scanFile(path, bufio.ScanWords, func(string) bool { return true })
			if err != nil {
				return err
			}
			st.docWords += n
		}
		return nil
	})
	return st, err
}

// scanFile counts the tokens of path produced by split that keep accepts.
func scanFile(path string, split bufio.SplitFunc, keep func(string) bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	sc.Split(split)
	n := 0
	for sc.Scan() {
		if keep(sc.Text()) {
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return n, nil
}
