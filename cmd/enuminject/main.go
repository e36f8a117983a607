// Command enuminject scans Go packages for structs carrying the
// enuminject:model directive and generates their Inject methods.
//
// Usage:
//
//	enuminject [flags] [packages]
//
// Packages are named by go/packages patterns (./..., import paths); the
// default is the package in the current directory. One file per package is
// written, containing every generated method. Any malformed or inconsistent
// annotation aborts generation for its package with a non-zero exit.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"github.com/enuminject/enuminject/internal/codegen"
	"github.com/enuminject/enuminject/internal/descriptor"
)

var (
	output  = flag.String("output", "enuminject_gen.go", "name of the generated file, one per package")
	dryRun  = flag.Bool("dry-run", false, "print generated code to stdout instead of writing files")
	verbose = flag.Bool("v", false, "log scanned packages and written files")
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: enuminject [flags] [packages]")
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("enuminject: ")
	flag.Usage = usage
	flag.Parse()

	patterns := flag.Args()
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		log.Fatalf("loading packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		os.Exit(1)
	}

	failed := false
	for _, pkg := range pkgs {
		if err := generate(pkg); err != nil {
			log.Print(err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

// generate runs the scan -> validate -> render pipeline for one package and
// writes the generated file next to the package's sources.
func generate(pkg *packages.Package) error {
	var (
		descs []*descriptor.Descriptor
		dir   string
	)
	for _, file := range pkg.Syntax {
		filename := pkg.Fset.Position(file.Pos()).Filename
		if filepath.Base(filename) == *output {
			continue // never rescan our own output
		}
		if dir == "" {
			dir = filepath.Dir(filename)
		}
		fileDescs, err := descriptor.Scan(pkg.Fset, file)
		if err != nil {
			return err
		}
		descs = append(descs, fileDescs...)
	}

	if len(descs) == 0 {
		if *verbose {
			log.Printf("%s: no injectable types", pkg.PkgPath)
		}
		return nil
	}

	for _, d := range descs {
		if err := descriptor.Validate(d); err != nil {
			return err
		}
	}

	src, err := codegen.Render(pkg.Name, descs)
	if err != nil {
		return err
	}

	if *dryRun {
		_, err := os.Stdout.Write(src)
		return err
	}

	target := filepath.Join(dir, *output)
	if err := os.WriteFile(target, src, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	if *verbose {
		log.Printf("%s: wrote %s (%d types)", pkg.PkgPath, target, len(descs))
	}
	return nil
}
