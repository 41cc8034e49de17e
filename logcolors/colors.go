package logcolors

// ANSI color codes for log prefixes
const (
	Reset  = "\033[0m"
	Green  = "\033[32m"
	Blue   = "\033[34m"
	Purple = "\033[35m"
	Cyan   = "\033[36m"
	Red    = "\033[31m"
	Yellow = "\033[33m"
)

// Chain and provider log prefixes
const (
	LogChain   = Purple + "[Chain]" + Reset
	LogSearch  = Blue + "[Search]" + Reset
	LogLyrics  = Blue + "[Lyrics]" + Reset
	LogSuccess = Green + "[Success]" + Reset
	LogFailure = Red + "[Fail]" + Reset
	LogWarning = Red + "[Warning]" + Reset
)

// Infrastructure log prefixes
const (
	LogConfig    = Cyan + "[Config]" + Reset
	LogProxy     = Cyan + "[Proxy]" + Reset
	LogHTTP      = Cyan + "[HTTP]" + Reset
	LogRetry     = Yellow + "[Retry]" + Reset
	LogOutput    = Cyan + "[Output]" + Reset
	LogTranslate = Purple + "[Translate]" + Reset
)
