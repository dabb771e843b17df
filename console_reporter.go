package main

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/framespec/framespec/framework"
	"github.com/framespec/framespec/logging"

	"github.com/fatih/color"
)

var (
	passedLabel   = color.New(color.FgGreen).Sprint("PASSED")
	failedLabel   = color.New(color.FgRed, color.Bold).Sprint("FAILED")
	isolatedBadge = color.New(color.FgYellow, color.Bold).Sprint("[isolated]")
)

// ConsoleReporter prints one human-readable line per test, with a distinct
// visual treatment for tests marked isolated, and a copy-pasteable rerun
// command for each failure.
type ConsoleReporter struct {
	DebugOutputOnFailure bool
	DebugOutputOnSuccess bool
}

func (c *ConsoleReporter) TestStarted(ref framework.TestRef) {
	if ref.Isolated {
		fmt.Printf("[%s] %s\n", ref.Description, isolatedBadge)
	} else {
		fmt.Printf("[%s]\n", ref.Description)
	}
}

func (c *ConsoleReporter) TestError(ref framework.TestRef, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Printf("  %s\n", line)
	}
}

func (c *ConsoleReporter) TestFinished(ref framework.TestRef, outcome *framework.Outcome, debugOutput logging.CapturedOutput) {
	if outcome.Passed {
		fmt.Printf("  %s\n", passedLabel)
	} else {
		fmt.Printf("  %s: %s\n", failedLabel, ref.Description)
		fmt.Printf("  rerun: %s\n", rerunCommand(ref.Address))
	}
	if len(debugOutput) > 0 &&
		((!outcome.Passed && c.DebugOutputOnFailure) || (outcome.Passed && c.DebugOutputOnSuccess)) {
		debugOutput.Dump(os.Stdout, "    DEBUG ")
	}
}

// rerunCommand builds a shell command that re-invokes exactly one test by
// its structural address.
func rerunCommand(address framework.Address) string {
	var b commandBuilder
	b.add(os.Args[0], "-params", framework.AddressParam+"="+url.QueryEscape(address.String()))
	return b.String()
}
