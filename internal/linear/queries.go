package linear

const pageInfoFields = `pageInfo { hasNextPage endCursor }`

const issueFields = `
	id
	identifier
	title
	description
	url
	priority
	state { id name type color }
	assignee { id name displayName }
	creator { id name displayName }
	project { id name }
	projectMilestone { id name }
	team { id name key }
	labels { nodes { id name isGroup } }
`

const listIssuesQuery = `query ListIssues($filter: IssueFilter, $after: String) {
	issues(filter: $filter, first: 250, after: $after) {
		nodes {` + issueFields + `}
		` + pageInfoFields + `
	}
}`

const getIssueQuery = `query GetIssue($id: String!) {
	issue(id: $id) {` + issueFields + `}
}`

const updateIssueMutation = `mutation UpdateIssue($id: String!, $input: IssueUpdateInput!) {
	issueUpdate(id: $id, input: $input) {
		success
		issue { id identifier url }
	}
}`

const batchUpdateIssuesMutation = `mutation BatchUpdateIssues($ids: [UUID!]!, $input: IssueUpdateInput!) {
	issueBatchUpdate(ids: $ids, input: $input) {
		success
	}
}`

const createIssueMutation = `mutation CreateIssue($input: IssueCreateInput!) {
	issueCreate(input: $input) {
		success
		issue { id identifier url }
	}
}`

const listProjectsQuery = `query ListProjects($filter: ProjectFilter, $after: String) {
	projects(filter: $filter, first: 250, after: $after) {
		nodes { id name slugId url status { name } }
		` + pageInfoFields + `
	}
}`

const listMilestonesQuery = `query ListMilestones($projectId: String!, $after: String) {
	project(id: $projectId) {
		projectMilestones(first: 250, after: $after) {
			nodes { id name targetDate sortOrder description }
			` + pageInfoFields + `
		}
	}
}`

const updateMilestoneMutation = `mutation UpdateMilestone($id: String!, $input: ProjectMilestoneUpdateInput!) {
	projectMilestoneUpdate(id: $id, input: $input) {
		success
		projectMilestone { id name targetDate sortOrder description }
	}
}`

const viewerQuery = `query Viewer {
	viewer {
		id
		name
		displayName
		organization { id name urlKey }
	}
}`

const viewerTeamsQuery = `query ViewerTeams($after: String) {
	viewer {
		teams(first: 250, after: $after) {
			nodes { id name key defaultIssueState { id name type color } }
			` + pageInfoFields + `
		}
	}
}`

const teamStatesQuery = `query TeamStates($teamId: String!, $after: String) {
	team(id: $teamId) {
		states(first: 250, after: $after) {
			nodes { id name type color }
			` + pageInfoFields + `
		}
	}
}`

const teamLabelsQuery = `query TeamLabels($teamId: String!, $filter: IssueLabelFilter, $after: String) {
	team(id: $teamId) {
		labels(filter: $filter, first: 250, after: $after) {
			nodes { id name isGroup }
			` + pageInfoFields + `
		}
	}
}`

const listLabelsQuery = `query ListLabels($filter: IssueLabelFilter, $after: String) {
	issueLabels(filter: $filter, first: 250, after: $after) {
		nodes { id name isGroup }
		` + pageInfoFields + `
	}
}`

const listUsersQuery = `query ListUsers($filter: UserFilter, $after: String) {
	users(filter: $filter, first: 250, after: $after) {
		nodes { id name displayName }
		` + pageInfoFields + `
	}
}`
