package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/arthur-debert/drip/pkg/runner"
)

// Invocation is one recorded call to MockRunner.Run
type Invocation struct {
	Name string
	Args []string
}

// String renders the invocation as a command line
func (i Invocation) String() string {
	return strings.Join(append([]string{i.Name}, i.Args...), " ")
}

type response struct {
	prefix string
	result runner.Result
	err    error
}

// MockRunner is a runner.Runner that records invocations instead of
// starting processes. Responses are matched by command-line prefix; the
// first match wins and unmatched calls succeed with empty output.
type MockRunner struct {
	mu        sync.Mutex
	calls     []Invocation
	responses []response

	// OnRun, when set, is called for every invocation before the response
	// is chosen. Tests use it to simulate side effects such as a fetch tool
	// writing its output file.
	OnRun func(inv Invocation)
}

// NewMockRunner creates a new mock runner
func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

// On registers the result returned for command lines starting with prefix
func (m *MockRunner) On(prefix string, result runner.Result, err error) *MockRunner {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, response{prefix: prefix, result: result, err: err})
	return m
}

// FailOn makes matching command lines exit 1 with the given stderr
func (m *MockRunner) FailOn(prefix, stderr string) *MockRunner {
	return m.On(prefix, runner.Result{Stderr: []byte(stderr), ExitCode: 1}, nil)
}

// SpawnErrorOn makes matching command lines fail to start
func (m *MockRunner) SpawnErrorOn(prefix string, err error) *MockRunner {
	return m.On(prefix, runner.Result{}, err)
}

// StdoutOn makes matching command lines succeed with the given stdout
func (m *MockRunner) StdoutOn(prefix, stdout string) *MockRunner {
	return m.On(prefix, runner.Result{Stdout: []byte(stdout)}, nil)
}

// Run records the invocation and returns the matching response
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (runner.Result, error) {
	inv := Invocation{Name: name, Args: append([]string(nil), args...)}

	m.mu.Lock()
	m.calls = append(m.calls, inv)
	onRun := m.OnRun
	responses := append([]response(nil), m.responses...)
	m.mu.Unlock()

	if onRun != nil {
		onRun(inv)
	}

	line := inv.String()
	for _, r := range responses {
		if strings.HasPrefix(line, r.prefix) {
			return r.result, r.err
		}
	}
	return runner.Result{}, nil
}

// Invocations returns every recorded invocation in call order
func (m *MockRunner) Invocations() []Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Invocation(nil), m.calls...)
}

// Calls returns every recorded invocation rendered as a command line
func (m *MockRunner) Calls() []string {
	invs := m.Invocations()
	calls := make([]string, 0, len(invs))
	for _, inv := range invs {
		calls = append(calls, inv.String())
	}
	return calls
}

// Verify interface compliance
var _ runner.Runner = (*MockRunner)(nil)
