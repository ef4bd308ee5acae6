package enrich

var (
	BuildUserPrompt     = buildUserPrompt
	BuildResponseSchema = buildResponseSchema
)
