package version

// Version is the current version of the movers command.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/argo-movers/internal/version.Version=1.2.3"
var Version = "v0.1.0"

// GetVersion returns the current version of the command.
func GetVersion() string {
	return Version
}
