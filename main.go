package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/devlights/gomy/output"

	"github.com/csql-dev/csql/catalog"
	"github.com/csql-dev/csql/diag"
	csqlexec "github.com/csql-dev/csql/exec"
	csqloutput "github.com/csql-dev/csql/output"
	"github.com/csql-dev/csql/plan"
	"github.com/csql-dev/csql/sql"
)

var (
	fExplain = flag.Bool("explain", false, "dump the planned operator tree to stderr before executing")
	fNoColor = flag.Bool("no-color", false, "disable colorized diagnostic output")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-explain] [-no-color] database_dir input_query_file output_file\n", os.Args[0])
	os.Exit(2)
}

func main() {
	flag.Parse()
	reporter := diag.NewReporter(os.Stderr, *fNoColor)

	args := flag.Args()
	if len(args) != 3 {
		usage()
	}
	dbDir, queryFile, outFile := args[0], args[1], args[2]

	cat, err := catalog.Load(dbDir)
	if err != nil {
		reporter.Fatal(err)
		os.Exit(1)
	}

	queryBytes, err := os.ReadFile(queryFile)
	if err != nil {
		reporter.Fatal(diag.Errorf(diag.IO, "read query", "cannot read %s: %s", queryFile, err))
		os.Exit(1)
	}

	stmt, err := sql.NewParser(string(queryBytes)).Parse()
	if err != nil {
		reporter.Fatal(err)
		os.Exit(1)
	}

	op, err := plan.Plan(stmt, cat)
	if err != nil {
		reporter.Fatal(err)
		os.Exit(1)
	}
	defer op.Close()

	if *fExplain {
		explainToStderr(op)
	}

	if err := csqloutput.Write(op, outFile); err != nil {
		reporter.Fatal(err)
		os.Exit(1)
	}
}

func explainToStderr(op csqlexec.Operator) {
	output.Stderrl("EXPLAIN", csqlexec.Explain(op))
}
