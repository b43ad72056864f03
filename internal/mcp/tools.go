package mcp

import "github.com/modelcontextprotocol/go-sdk/mcp"

// FightStatsInput selects every pull of one encounter in a report.
type FightStatsInput struct {
	Report    string `json:"report" jsonschema:"FFLogs report code (16 characters) or fflogs.com report URL"`
	Encounter string `json:"encounter" jsonschema:"exact encounter name as shown on FFLogs, e.g. Dragonsong's Reprise"`
	Format    string `json:"format,omitempty" jsonschema:"text (default) or json"`
}

// FightPhasesInput selects a single fight of a report.
type FightPhasesInput struct {
	Report  string `json:"report" jsonschema:"FFLogs report code (16 characters) or fflogs.com report URL"`
	FightID int64  `json:"fight_id" jsonschema:"fight number within the report"`
}

// ListEncountersInput takes no arguments.
type ListEncountersInput struct{}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "fight_stats",
		Description: "Summarise phase progression for every pull of an encounter in an FFLogs report: " +
			"pull count, time spent, and per-phase seen and clear rates. " +
			"Only encounters listed by 'list_encounters' can be analysed.",
	}, s.handleFightStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fight_phases",
		Description: "Show when each phase of a single fight started and ended, and whether it was cleared.",
	}, s.handleFightPhases)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_encounters",
		Description: "List the encounters that have phase definitions, with their phases in order.",
	}, s.handleListEncounters)
}
