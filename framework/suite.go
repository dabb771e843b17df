package framework

import (
	"context"
	"fmt"
	"net/url"

	"github.com/framespec/framespec/logging"

	"github.com/google/uuid"
)

// Query parameter names recognized by NewSuite. The address parameter
// selects a single-test run; the muted parameter (presence only, value
// irrelevant) suppresses the reporter without affecting the result sink.
const (
	AddressParam = "address"
	MutedParam   = "muted"
)

// SuiteConfig carries everything a Suite needs besides the specs themselves.
type SuiteConfig struct {
	// Query is the raw query string from the hosting environment, carrying
	// the address and muted parameters.
	Query string

	// Reporter receives human-readable progress. Nil, or any value when the
	// muted parameter is present, means no console reporting.
	Reporter TestReporter

	// Sink receives a cloneable-projected result message for every executed
	// test. Nil disables cross-boundary reporting.
	Sink ResultSink

	// Filter optionally excludes tests from full runs.
	Filter Filter

	// DebugLogger receives the suite's own trace output, such as sink
	// delivery failures. Nil discards it.
	DebugLogger logging.Logger
}

// Suite is an ordered composition of specs with two execution modes: a full
// sequential run of every tree, or a single-test run selected by an address
// query parameter. Specs are not owned by the suite and may be composed into
// other suites.
type Suite struct {
	specs       []*Spec
	params      url.Values
	target      *Address
	muted       bool
	runID       string
	reporter    TestReporter
	sink        ResultSink
	filter      Filter
	debugLogger logging.Logger
}

// NewSuite parses the ambient query parameters and builds a runnable suite.
// A query string or address parameter that does not parse is a fatal
// configuration error, the only loud failure in this package: everything
// that goes wrong during a run is captured into per-test results instead.
func NewSuite(specs []*Spec, config SuiteConfig) (*Suite, error) {
	params, err := url.ParseQuery(config.Query)
	if err != nil {
		return nil, fmt.Errorf("malformed query parameters: %w", err)
	}

	s := &Suite{
		specs:       specs,
		params:      params,
		muted:       params.Has(MutedParam),
		runID:       uuid.NewString(),
		reporter:    config.Reporter,
		sink:        config.Sink,
		filter:      config.Filter,
		debugLogger: config.DebugLogger,
	}
	if s.reporter == nil || s.muted {
		s.reporter = NullReporter()
	}
	if s.debugLogger == nil {
		s.debugLogger = logging.NullLogger()
	}

	if serialized := params.Get(AddressParam); serialized != "" {
		address, err := ParseAddress(serialized)
		if err != nil {
			return nil, err
		}
		s.target = &address
	}
	return s, nil
}

func (s *Suite) RunID() string { return s.runID }

// Target returns the address parsed from the query parameters, if any.
func (s *Suite) Target() *Address {
	if s.target == nil {
		return nil
	}
	copied := *s.target
	return &copied
}

// TestByAddress resolves an address against this suite's specs, returning
// nil when any component is out of range.
func (s *Suite) TestByAddress(address Address) *Test {
	if address.Spec < 0 || address.Spec >= len(s.specs) {
		return nil
	}
	return s.specs[address.Spec].TestByAddress(address)
}

// AddressForTest computes the structural address of a test: the test's index
// within its topic, each ancestor topic's index within its parent, and the
// spec whose root topic the chain terminates at, matched by identity. It is
// the exact left inverse of TestByAddress for any test reachable from this
// suite's specs; the second return is false for a test that is not.
func (s *Suite) AddressForTest(test *Test) (Address, bool) {
	testIndex := -1
	for i, candidate := range test.topic.tests {
		if candidate == test {
			testIndex = i
			break
		}
	}
	if testIndex < 0 {
		return Address{}, false
	}

	var path []int
	topic := test.topic
	for topic.parent != nil {
		parent := topic.parent
		topicIndex := -1
		for i, sub := range parent.subtopics {
			if sub == topic {
				topicIndex = i
				break
			}
		}
		if topicIndex < 0 {
			return Address{}, false
		}
		path = append([]int{topicIndex}, path...)
		topic = parent
	}

	for i, spec := range s.specs {
		if spec.root == topic {
			return Address{Spec: i, Topic: path, Test: testIndex}, true
		}
	}
	return Address{}, false
}

// Run executes the suite. When the query parameters carried an address,
// exactly that one test runs, and an address that resolves to no test is a
// no-op rather than an error. Otherwise every spec's tree is walked
// depth-first in definition order: a topic's own tests first, then its
// subtopics left to right. Each test is awaited to completion before the
// next begins; nothing ever runs concurrently within one suite.
func (s *Suite) Run(ctx context.Context) Results {
	var results Results
	if s.target != nil {
		if test := s.TestByAddress(*s.target); test != nil {
			s.runTest(ctx, test, &results)
		} else {
			s.debugLogger.Printf("No test found at address %s", *s.target)
		}
		return results
	}
	for _, spec := range s.specs {
		s.runTopic(ctx, spec.Root(), &results)
	}
	return results
}

func (s *Suite) runTopic(ctx context.Context, topic *Topic, results *Results) {
	for _, test := range topic.tests {
		s.runTest(ctx, test, results)
	}
	for _, sub := range topic.subtopics {
		s.runTopic(ctx, sub, results)
	}
}

func (s *Suite) runTest(ctx context.Context, test *Test, results *Results) {
	address, ok := s.AddressForTest(test)
	if !ok {
		s.debugLogger.Printf("Skipping test %q: not reachable from this suite", test.FullDescription())
		return
	}
	ref := TestRef{
		Address:     address,
		Description: test.FullDescription(),
		Isolated:    test.config.Isolated,
	}
	if s.filter != nil && s.target == nil && !s.filter(ref) {
		return
	}

	s.reporter.TestStarted(ref)
	debugLogger := &logging.CapturingLogger{}
	outcome := test.Run(WithDebugLogger(ctx, debugLogger))
	if outcome.Error != nil {
		s.reporter.TestError(ref, outcome.Error)
	}
	s.reporter.TestFinished(ref, outcome, debugLogger.Output())

	result := TestResult{Address: address, Description: ref.Description, Outcome: outcome}
	results.Tests = append(results.Tests, result)
	if !outcome.Passed {
		results.Failures = append(results.Failures, result)
	}

	if s.sink != nil {
		projected := CloneableOutcome(outcome)
		message := ResultMessage{
			RunID:       s.runID,
			Address:     address,
			Description: ref.Description,
			Passed:      projected.Passed,
			Error:       projected.Error,
			Params:      test.config.Params,
		}
		if err := s.sink.Post(message); err != nil {
			s.debugLogger.Printf("Failed to post result for %s: %s", ref.Description, err)
		}
	}
}
