package version

// values are overwritten by the build pipeline via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	FullVersion = Version + " (" + GitCommit + ", " + BuildDate + ")"
)
