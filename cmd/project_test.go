package cmd

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joescharf/lnr/internal/models"
	"github.com/joescharf/lnr/internal/resolve"
)

const (
	roadmapJSON  = `{"id":"p1","name":"Roadmap","slugId":"road-1","url":"https://linear.app/acme/project/road-1","status":{"name":"Started"}}`
	roadmap2JSON = `{"id":"p2","name":"Roadmap 2027","slugId":"road-2","url":"https://linear.app/acme/project/road-2","status":{"name":"Planned"}}`
)

func milestonesData(nodes ...string) string {
	return `{"project":{"projectMilestones":` + connection(nodes...) + `}}`
}

func TestProjectList_OwnByDefault(t *testing.T) {
	_, out := testEnv(t)
	fake := newFakeLinear(t).on("ListProjects", `{"projects":`+connection(roadmapJSON)+`}`)
	a, _ := testApp(t, fake)

	require.NoError(t, projectListRun(context.Background(), a))
	assert.Contains(t, out.String(), "Roadmap")
	assert.Contains(t, out.String(), "Started")

	f := fake.callsTo("ListProjects")[0].Variables["filter"].(map[string]any)
	assert.Contains(t, f, "members")
}

func TestProjectList_AllWithQueryAsYAML(t *testing.T) {
	_, out := testEnv(t)
	fake := newFakeLinear(t).on("ListProjects", `{"projects":`+connection(roadmapJSON, roadmap2JSON)+`}`)
	a, _ := testApp(t, fake)

	projectAll = true
	projectQuery = "road"
	projectFormat = "yaml"
	require.NoError(t, projectListRun(context.Background(), a))

	f := fake.callsTo("ListProjects")[0].Variables["filter"].(map[string]any)
	assert.NotContains(t, f, "members")
	assert.Contains(t, out.String(), "slugId: road-2")
}

func TestProjectList_JSONSummaries(t *testing.T) {
	_, out := testEnv(t)
	fake := newFakeLinear(t).on("ListProjects", `{"projects":`+connection(roadmapJSON)+`}`)
	a, _ := testApp(t, fake)

	projectFormat = "json"
	require.NoError(t, projectListRun(context.Background(), a))

	var got []models.ProjectSummary
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Started", got[0].Status)
}

func TestProjectView_DetailWithMilestones(t *testing.T) {
	_, out := testEnv(t)
	fake := newFakeLinear(t).
		on("Viewer", viewerJSON).
		on("ListProjects", `{"projects":`+connection(roadmapJSON)+`}`).
		on("ListMilestones", milestonesData(
			`{"id":"m2","name":"Beta","targetDate":null,"sortOrder":2,"description":null}`,
			`{"id":"m1","name":"Alpha","targetDate":null,"sortOrder":1,"description":"First cut"}`,
		))
	a, _ := testApp(t, fake)

	require.NoError(t, projectViewRun(context.Background(), a, "Roadmap"))
	s := out.String()
	assert.Contains(t, s, "https://linear.app/acme/project/road-1/overview")
	assert.Contains(t, s, "First cut")
	assert.Less(t, strings.Index(s, "Alpha"), strings.Index(s, "Beta"))
}

func TestProjectView_Web(t *testing.T) {
	testEnv(t)
	fake := newFakeLinear(t).
		on("Viewer", viewerJSON).
		on("ListProjects", `{"projects":`+connection(roadmapJSON)+`}`)
	a, _ := testApp(t, fake)

	var opened string
	orig := openBrowser
	openBrowser = func(url string) error { opened = url; return nil }
	t.Cleanup(func() { openBrowser = orig })

	projectWeb = true
	require.NoError(t, projectViewRun(context.Background(), a, "Roadmap"))
	assert.Equal(t, "https://linear.app/acme/project/road-1/overview", opened)
	assert.Empty(t, fake.callsTo("ListMilestones"))
}

func TestProjectView_AmbiguousNameFails(t *testing.T) {
	testEnv(t)
	fake := newFakeLinear(t).
		on("Viewer", viewerJSON).
		on("ListProjects", `{"projects":`+connection(roadmapJSON, roadmap2JSON)+`}`)
	a, _ := testApp(t, fake)

	err := projectViewRun(context.Background(), a, "Road")
	var amb *resolve.AmbiguousError
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, []string{"Roadmap", "Roadmap 2027"}, amb.Candidates)
}
