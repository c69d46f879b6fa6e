package application

// Event names
const (
	EventSessionUpdated     = "session:updated"
	EventConversionStarted  = "conversion:started"
	EventConversionFinished = "conversion:finished"
	EventStatsUpdate        = "stats:update"
	EventImportFinished     = "import:finished"
)

// fallbackDatabasePath keeps preferences in memory when the database file
// cannot be opened.
const fallbackDatabasePath = ":memory:"
