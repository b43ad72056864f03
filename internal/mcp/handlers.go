package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"fightprog/internal/analysis"
	"fightprog/internal/visuals"
)

func (s *Server) handleFightStats(ctx context.Context, _ *mcp.CallToolRequest, in FightStatsInput) (*mcp.CallToolResult, any, error) {
	defer s.running(ctx, "fight_stats")()

	a, err := s.analysis.AnalyseEncounter(ctx, in.Report, in.Encounter)
	if err != nil {
		log.Warn().Err(err).Str("report", in.Report).Str("encounter", in.Encounter).Msg("fight_stats failed")
		return nil, nil, err
	}
	summary := a.Summary

	switch strings.ToLower(in.Format) {
	case "json":
		return textResult(s.formatResult(summary)), nil, nil
	case "", "text":
	default:
		return nil, nil, fmt.Errorf("unknown format %q: use text or json", in.Format)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n\n", summary.Encounter, analysis.ReportURL(a.ReportCode))
	b.WriteString(summary.String())
	if s.enableMermaidCharts {
		for _, chart := range []string{
			visuals.GenerateClearRateChart(summary),
			visuals.GeneratePhaseDurationChart(summary),
			visuals.GenerateWipePie(a.Fights),
		} {
			if chart != "" {
				b.WriteString("\n")
				b.WriteString(chart)
				b.WriteString("\n")
			}
		}
	}
	return textResult(b.String()), nil, nil
}

func (s *Server) handleFightPhases(ctx context.Context, _ *mcp.CallToolRequest, in FightPhasesInput) (*mcp.CallToolResult, any, error) {
	defer s.running(ctx, "fight_phases")()

	fight, err := s.analysis.AnalyseFightByID(ctx, in.Report, in.FightID)
	if err != nil {
		log.Warn().Err(err).Int64("fight", in.FightID).Msg("fight_phases failed")
		return nil, nil, err
	}
	return textResult(s.formatResult(fight)), nil, nil
}

type encounterInfo struct {
	Name   string   `json:"name"`
	Phases []string `json:"phases"`
}

func (s *Server) handleListEncounters(_ context.Context, _ *mcp.CallToolRequest, _ ListEncountersInput) (*mcp.CallToolResult, any, error) {
	defs := s.analysis.Definitions()

	out := make([]encounterInfo, 0, defs.Len())
	for _, name := range defs.Names() {
		enc, _ := defs.Get(name)
		info := encounterInfo{Name: name, Phases: make([]string, 0, len(enc.Phases))}
		for _, p := range enc.Phases {
			info.Phases = append(info.Phases, p.Name)
		}
		out = append(out, info)
	}
	return textResult(s.formatResult(out)), nil, nil
}
