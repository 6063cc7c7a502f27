// Package build holds build-time information set through linker flags:
//
//	go build -ldflags "-X go.trai.ch/wasmbuild/internal/build.Version=v1.2.0"
package build

// Version is the release version. It defaults to "dev".
var Version = "dev"

// Commit is the source revision the binary was built from.
var Commit = ""

// String returns the version, followed by the short commit when known.
func String() string {
	if Commit == "" {
		return Version
	}
	short := Commit
	if len(short) > 7 {
		short = short[:7]
	}
	return Version + " (" + short + ")"
}
