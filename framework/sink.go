package framework

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/framespec/framespec/logging"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ResultMessage is the structurally-cloneable payload posted to the hosting
// boundary after every executed test. The error field, when present, has
// already been through the cloneable projection and carries only stack text.
type ResultMessage struct {
	RunID       string        `json:"runId"`
	Address     Address       `json:"address"`
	Description string        `json:"description"`
	Passed      bool          `json:"passed"`
	Error       *Failure      `json:"error,omitempty"`
	Params      ldvalue.Value `json:"params"`
}

// ResultSink is the collaborator that carries results across the trust
// boundary. The concrete transport is up to the embedding: an HTTP POST to
// an orchestrating harness, an in-memory channel, or anything else. The
// suite posts to it after every test regardless of console muting.
type ResultSink interface {
	Post(message ResultMessage) error
}

// HTTPSink posts each result as a JSON body to a fixed boundary URL.
type HTTPSink struct {
	url    string
	client *http.Client
	logger logging.Logger
}

func NewHTTPSink(url string, logger logging.Logger) *HTTPSink {
	if logger == nil {
		logger = logging.NullLogger()
	}
	return &HTTPSink{url: url, client: http.DefaultClient, logger: logger}
}

func (s *HTTPSink) Post(message ResultMessage) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	s.logger.Printf("Posting result: %s", string(data))
	resp, err := s.client.Post(s.url, "application/json", bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	if resp.Body != nil {
		_ = resp.Body.Close()
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("result sink returned HTTP status %d", resp.StatusCode)
	}
	return nil
}

// ChannelSink delivers results on an in-process channel, for embeddings that
// aggregate results in the same process and for tests of the suite itself.
type ChannelSink struct {
	C chan ResultMessage
}

func NewChannelSink(size int) *ChannelSink {
	return &ChannelSink{C: make(chan ResultMessage, size)}
}

// Post pushes without blocking; a full channel is reported as an error
// rather than stalling the run.
func (s *ChannelSink) Post(message ResultMessage) error {
	select {
	case s.C <- message:
		return nil
	default:
		return fmt.Errorf("result channel was full, dropping result for %s", message.Description)
	}
}
