package util

import (
	"os"
	"strings"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

type requiredFlag struct {
	value   *string
	cliName string
}

// registration order, so missing-flag output is stable
var requiredFlags []requiredFlag

/*
RequiredFlag registers a string flag that must be non-empty once flags
are parsed. The name may be given bare or with dashes; it is reported
double-dashed either way.
*/
func RequiredFlag(flagPointer *string, cliName string) {
	requiredFlags = append(requiredFlags, requiredFlag{
		value:   flagPointer,
		cliName: normalizeFlagName(cliName),
	})
}

func normalizeFlagName(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "--") {
		return s
	}
	if strings.HasPrefix(s, "-") {
		// single dash → double dash
		return "-" + s
	}
	return "--" + s
}

// EnsureFlags logs every missing required flag, then exits(1) if any were missing.
func EnsureFlags() {
	missing := false
	for _, required := range requiredFlags {
		if required.value == nil || strings.TrimSpace(*required.value) == "" {
			tl.Log(tl.Warning, palette.YellowBold, "%s parameter is %s", required.cliName, "required")
			missing = true
		}
	}
	if missing {
		os.Exit(1)
	}
}
