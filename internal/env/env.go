package env

const AppName = "fileinfo"

// Set at build time through -ldflags "-X".
var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)
