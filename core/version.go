package core

import (
	"fmt"

	"go.uber.org/zap"
)

// Version is resolved once at startup. The -ldflags build value wins
// over the configured one.
var Version string

const NoVersion = "no_version_info"

func SetVersion(c *Conf, versionByBuildFlag string) {
	switch {
	case versionByBuildFlag != "":
		Version = versionByBuildFlag
	case c.Version != "":
		Version = c.Version
	default:
		Version = NoVersion
	}
	zap.L().Info(fmt.Sprintf("engine version:%s", Version))
}
