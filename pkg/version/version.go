package version

import (
	"fmt"
	"runtime"

	"github.com/NeuralTrust/TakeALook/pkg/rules"
)

var (
	Version   = "0.4.0"
	AppName   = "TakeALook"
	BuildDate = "unknown"
)

// Info contains versioning information
type Info struct {
	AppName     string `json:"app_name"`
	Version     string `json:"version"`
	RuleVersion string `json:"rule_version"`
	BuildDate   string `json:"build_date"`
	GoVersion   string `json:"go_version"`
	Platform    string `json:"platform"`
}

// GetInfo returns version information
func GetInfo() Info {
	return Info{
		AppName:     AppName,
		Version:     Version,
		RuleVersion: rules.Version,
		BuildDate:   BuildDate,
		GoVersion:   runtime.Version(),
		Platform:    fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
