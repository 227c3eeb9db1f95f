package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/viper"
	"go.uber.org/mock/gomock"

	"github.com/joescharf/lnr/internal/config"
	"github.com/joescharf/lnr/internal/linear"
	"github.com/joescharf/lnr/internal/output"
	"github.com/joescharf/lnr/internal/prompt/mocks"
)

var operationPattern = regexp.MustCompile(`^\s*(?:query|mutation)\s+(\w+)`)

type gqlCall struct {
	Operation string
	Variables map[string]any
}

// fakeLinear answers GraphQL requests by operation name. Each handler
// returns the JSON of the data object.
type fakeLinear struct {
	t        *testing.T
	mu       sync.Mutex
	calls    []gqlCall
	handlers map[string]func(vars map[string]any) string
	failures map[string]int
}

func newFakeLinear(t *testing.T) *fakeLinear {
	t.Helper()
	f := &fakeLinear{t: t, handlers: map[string]func(map[string]any) string{}, failures: map[string]int{}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	orig := apiEndpoint
	apiEndpoint = srv.URL
	t.Cleanup(func() { apiEndpoint = orig })
	return f
}

func (f *fakeLinear) on(operation, data string) *fakeLinear {
	f.handlers[operation] = func(map[string]any) string { return data }
	return f
}

func (f *fakeLinear) onFunc(operation string, h func(vars map[string]any) string) *fakeLinear {
	f.handlers[operation] = h
	return f
}

// fail makes operation answer with an HTTP error status.
func (f *fakeLinear) fail(operation string, status int) *fakeLinear {
	f.failures[operation] = status
	return f
}

func (f *fakeLinear) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	op := ""
	if m := operationPattern.FindStringSubmatch(body.Query); m != nil {
		op = m[1]
	}

	f.mu.Lock()
	f.calls = append(f.calls, gqlCall{Operation: op, Variables: body.Variables})
	h, ok := f.handlers[op]
	status, failed := f.failures[op]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if failed {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{}`))
		return
	}
	if !ok {
		f.t.Errorf("unexpected operation %q", op)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"message":"unexpected operation"}]}`))
		return
	}
	_, _ = w.Write([]byte(`{"data":` + h(body.Variables) + `}`))
}

// callsTo returns the recorded calls of one operation.
func (f *fakeLinear) callsTo(operation string) []gqlCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []gqlCall
	for _, c := range f.calls {
		if c.Operation == operation {
			out = append(out, c)
		}
	}
	return out
}

// connection wraps nodes in a single-page connection object.
func connection(nodes ...string) string {
	return `{"nodes":[` + strings.Join(nodes, ",") + `],"pageInfo":{"hasNextPage":false,"endCursor":null}}`
}

const viewerJSON = `{"viewer":{"id":"u1","name":"Ada Lovelace","displayName":"ada","organization":{"id":"o1","name":"Acme","urlKey":"acme"}}}`

// testEnv isolates the config dir, viper, flags and output for one test.
func testEnv(t *testing.T) (dir string, out *bytes.Buffer) {
	t.Helper()
	dir = t.TempDir()

	origFunc := configDirFunc
	configDirFunc = func() (string, error) { return dir, nil }
	t.Cleanup(func() { configDirFunc = origFunc })

	for _, k := range []string{config.EnvAPIKey, config.EnvEditor, "EDITOR", "VISUAL", "LNR_FORMAT"} {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}

	viper.Reset()
	viper.SetDefault("format", string(output.FormatTable))
	viper.SetDefault("endpoint", linear.DefaultEndpoint)

	origNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = origNoColor })

	out = &bytes.Buffer{}
	ui = &output.UI{Out: out, ErrOut: &bytes.Buffer{}}

	resetFlags()
	t.Cleanup(resetFlags)
	return dir, out
}

func resetFlags() {
	dryRun = false
	issueStatuses, issueAssignees, issueCreators = nil, nil, nil
	issueProjects, issueTeams, issueLabels = nil, nil, nil
	issueCycle, issueQuery, issueMilestone, issueFormat = "", "", "", ""
	issueTitle, issueDesc, issueAssignee, issueStatus = "", "", "", ""
	issuePriority, issueLabel, issueProject = "", "", ""
	issueWeb, issueConfirm = false, false
	issueAddMilestone, issueAddAssignee, issueAddLabel = "", "", ""
	projectAll, projectQuery, projectFormat, projectWeb = false, "", "", false
	milestoneProject, milestoneName, milestoneDate = "", "", ""
	milestoneNewName, milestoneDesc, milestoneFormat = "", "", ""
	milestoneConfirm = false
	authAPIKey = ""
}

// testApp returns an interactive app talking to fake through a mock prompter.
func testApp(t *testing.T, fake *fakeLinear) (*app, *mocks.MockPrompter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	p := mocks.NewMockPrompter(ctrl)
	return &app{
		cfg:         &config.Config{SchemaVersion: config.SchemaVersion, APIKey: "lin_api_test"},
		client:      newClient("lin_api_test"),
		ui:          ui,
		prompter:    p,
		interactive: true,
	}, p
}

func setDryRun() {
	dryRun = true
	ui.DryRun = true
}

func errOut() string {
	return ui.ErrOut.(*bytes.Buffer).String()
}
