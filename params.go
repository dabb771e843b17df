package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/framespec/framespec/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	query    string
	sinkURL  string
	filters  framework.RegexFilters
	muted    bool
	debug    bool
	debugAll bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.query, "params", "", `query parameters from the hosting environment (e.g. 'address={"spec":0,"topic":[0],"test":1}')`)
	fs.StringVar(&c.sinkURL, "sink-url", "", "URL to post each test result to")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.BoolVar(&c.muted, "muted", false, "suppress console reporting (results are still posted to the sink)")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}

// effectiveQuery folds the -muted convenience flag into the query string so
// the suite sees a single source of ambient parameters.
func (c *commandParams) effectiveQuery() string {
	if !c.muted {
		return c.query
	}
	if c.query == "" {
		return framework.MutedParam
	}
	return c.query + "&" + framework.MutedParam
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
