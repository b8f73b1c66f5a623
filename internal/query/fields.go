package query

// Supported-field tables, one per searchable entity type. The MCP tool
// schemas constrain what reaches the compiler, so values for names not
// listed here are simply ignored. Table order is clause order.

// StoryFields is the filter set for story search.
var StoryFields = []Field{
	{"id", Scalar},
	{"title", Text},
	{"description", Text},
	{"comment", Text},
	{"type", Scalar},
	{"state", Text},
	{"label", Text},
	{"epic", Text},
	{"iteration", Text},
	{"project", Text},
	{"team", Text},
	{"skill-set", Text},
	{"owner", Me},
	{"requester", Me},
	{"estimate", Scalar},
	{"is:archived", Flag},
	{"is:blocked", Flag},
	{"is:blocker", Flag},
	{"is:done", Flag},
	{"is:started", Flag},
	{"is:unstarted", Flag},
	{"is:unestimated", Flag},
	{"is:overdue", Flag},
	{"has:attachment", Flag},
	{"has:task", Flag},
	{"has:epic", Flag},
	{"has:owner", Flag},
	{"has:comment", Flag},
	{"has:deadline", Flag},
	{"has:label", Flag},
	{"created", Date},
	{"updated", Date},
	{"completed", Date},
	{"due", Date},
	{"moved", Date},
}

// EpicFields is the filter set for epic search.
var EpicFields = []Field{
	{"id", Scalar},
	{"title", Text},
	{"description", Text},
	{"state", Text},
	{"label", Text},
	{"team", Text},
	{"objective", Text},
	{"owner", Me},
	{"requester", Me},
	{"is:archived", Flag},
	{"is:overdue", Flag},
	{"has:attachment", Flag},
	{"has:comment", Flag},
	{"has:deadline", Flag},
	{"has:label", Flag},
	{"has:owner", Flag},
	{"created", Date},
	{"updated", Date},
	{"completed", Date},
	{"due", Date},
}

// IterationFields is the filter set for iteration search.
var IterationFields = []Field{
	{"id", Scalar},
	{"title", Text},
	{"description", Text},
	{"state", Scalar},
	{"team", Text},
	{"created", Date},
	{"updated", Date},
	{"start_date", Date},
	{"end_date", Date},
}

// MilestoneFields is the filter set for objective search.
var MilestoneFields = []Field{
	{"id", Scalar},
	{"title", Text},
	{"description", Text},
	{"state", Text},
	{"owner", Me},
	{"requester", Me},
	{"is:archived", Flag},
	{"has:owner", Flag},
	{"created", Date},
	{"updated", Date},
	{"completed", Date},
}
