package usecase

var (
	BuildChatSystemPrompt = buildChatSystemPrompt
	ArchiveFileName       = archiveFileName
)
