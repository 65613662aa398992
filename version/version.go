package version

// CurrentCommit is set by the build, e.g. "+git.abc1234".
var CurrentCommit string

const BuildVersion = "0.1.0"

func UserVersion() string {
	return BuildVersion + CurrentCommit
}
