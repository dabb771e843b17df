package main

import (
	"context"
	"fmt"
	"os"

	"github.com/framespec/framespec/framework"
	"github.com/framespec/framespec/logging"
	"github.com/framespec/framespec/smoketests"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}

	mainDebugLogger := logging.NullLogger()
	if params.debugAll {
		mainDebugLogger = logging.NewWriterLogger(os.Stdout)
	}

	var sink framework.ResultSink
	if params.sinkURL != "" {
		sink = framework.NewHTTPSink(params.sinkURL, mainDebugLogger)
	}

	reporter := &ConsoleReporter{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	suite, err := framework.NewSuite(smoketests.AllSpecs(), framework.SuiteConfig{
		Query:       params.effectiveQuery(),
		Reporter:    reporter,
		Sink:        sink,
		Filter:      params.filters.AsFilter,
		DebugLogger: mainDebugLogger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
		os.Exit(1)
	}

	if params.filters.IsDefined() {
		fmt.Println("Some tests will be skipped based on the filter criteria for this test run:")
		if params.filters.MustMatch.IsDefined() {
			fmt.Printf("  skip any not matching %s\n", params.filters.MustMatch)
		}
		if params.filters.MustNotMatch.IsDefined() {
			fmt.Printf("  skip any matching %s\n", params.filters.MustNotMatch)
		}
		fmt.Println()
	}

	fmt.Println("Running test suite")

	results := suite.Run(context.Background())

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if !results.OK() {
		os.Exit(1)
	}
}
