package version

import "fmt"

// VERSION and GITCOMMIT are injected at build time, e.g.
// go build -ldflags "-X github.com/buildbeaver/jenkins2gha/common/version.VERSION=1.0.0"

// VERSION indicates the major.minor.patch version the binary was built off of.
var VERSION string

// GITCOMMIT indicates which git hash (12char) the binary was built off of.
var GITCOMMIT string

func VersionToString() string {
	switch {
	case VERSION == "" && GITCOMMIT == "":
		return ""
	case GITCOMMIT == "":
		return VERSION
	case VERSION == "":
		return GITCOMMIT
	}
	return fmt.Sprintf("%s - %s", VERSION, GITCOMMIT)
}
