package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Set with -ldflags at build time
var (
	GitTag    string
	GitBranch string
)

const (
	shortHash = 12
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the tag, branch or short commit hash of the build, or
// "dev" when none are known
func Version() string {
	switch {
	case GitTag != "":
		return GitTag
	case GitBranch != "":
		return GitBranch
	}
	if hash := setting("vcs.revision"); hash != "" {
		if len(hash) > shortHash {
			hash = hash[:shortHash]
		}
		return hash
	}
	return "dev"
}

// JSON returns build metadata for the named executable
func JSON(execName string) []byte {
	metadata := map[string]string{
		"name":     execName,
		"version":  Version(),
		"compiler": runtime.Version(),
		"platform": runtime.GOOS + "/" + runtime.GOARCH,
	}
	add := func(key, value string) {
		if value != "" {
			metadata[key] = value
		}
	}
	add("tag", GitTag)
	add("branch", GitBranch)
	add("hash", setting("vcs.revision"))
	add("build_time", setting("vcs.time"))
	if setting("vcs.modified") == "true" {
		metadata["modified"] = "true"
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		add("source", info.Main.Path)
	}

	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		panic(err)
	}
	return data
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func setting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
