package tools

// RegisterAll wires every shipped tool into the registry.
func RegisterAll(r *Registry, deps Deps) {
	r.Register(NewPullCreditReportTool(deps))
	r.Register(NewSearchWebTool(deps))
	r.Register(NewScoreDealTool())
	r.Register(NewGetApplicationStatusTool(deps))
	r.Register(NewSaveLeadTool(deps))
}
