package framework

// Spec is one self-contained suite of topics and tests, owning a single root
// topic. A spec's tree is fully built by its definition function before the
// spec is handed to any Suite; nothing mutates it afterward.
type Spec struct {
	root *Topic
}

// API is the definition-time vocabulary handed to a spec's definition
// function. The fields are plain closures over the spec's definition cursor,
// so authoring code can pass them around or hand them to helpers without
// carrying the Spec itself.
type API struct {
	// Describe creates a subtopic and enters it for the duration of body:
	// nested Describe/It/Before/Defer calls made inside body attach to the
	// new subtopic rather than to its caller's.
	Describe func(description string, body func())

	// It attaches a test to the currently-entered topic. An optional Config
	// supplies a timeout, isolation emphasis, or author-defined params.
	It func(description string, impl TestFunc, config ...Config)

	// Before registers a fixture on the currently-entered topic.
	Before func(f Fixture)

	// Defer registers a cleanup on the currently-entered topic.
	Defer func(c Cleanup)
}

// NewSpec runs the given definition function synchronously and returns the
// fully-built spec.
func NewSpec(define func(API)) *Spec {
	spec := &Spec{}
	cursor := spec.Root()
	define(API{
		Describe: func(description string, body func()) {
			parent := cursor
			cursor = parent.AddSubtopic(description)
			body()
			cursor = parent
		},
		It: func(description string, impl TestFunc, config ...Config) {
			var cfg Config
			if len(config) > 0 {
				cfg = config[0]
			}
			cursor.AddTest(description, impl, cfg)
		},
		Before: func(f Fixture) {
			cursor.AddFixture(f)
		},
		Defer: func(c Cleanup) {
			cursor.AddCleanup(c)
		},
	})
	return spec
}

// Root returns the spec's root topic, creating it on first use.
func (s *Spec) Root() *Topic {
	if s.root == nil {
		s.root = &Topic{}
	}
	return s.root
}

// TotalTestCount is the number of tests in the whole topic subtree.
func (s *Spec) TotalTestCount() int {
	if s.root == nil {
		return 0
	}
	return s.root.testCount()
}

// TestByAddress walks the root topic through the address's topic-index path
// and then indexes into that topic's direct tests. Any out-of-range index at
// any level resolves to nil rather than panicking.
func (s *Spec) TestByAddress(address Address) *Test {
	topic := s.Root()
	for _, index := range address.Topic {
		if index < 0 || index >= len(topic.subtopics) {
			return nil
		}
		topic = topic.subtopics[index]
	}
	if address.Test < 0 || address.Test >= len(topic.tests) {
		return nil
	}
	return topic.tests[address.Test]
}
