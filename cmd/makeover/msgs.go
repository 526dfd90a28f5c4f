package makeover

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort = "Build targets from a declarative build file"
	MsgRootUse   = "makeover [flags] [targets...] [NAME=value...]"

	// Status messages
	MsgInstalled = "Installed %s\n"

	// Error messages
	MsgErrorFormat   = "Error: %v"
	MsgErrReport     = "failed to write build report"
	MsgErrNoExecPath = "cannot locate the running executable"

	// Flag descriptions
	MsgFlagFile        = "Path to the build file (default \"buildfile\")"
	MsgFlagList        = "List available targets grouped by category"
	MsgFlagDescribe    = "Show the documentation, dependencies and recipe of a target"
	MsgFlagSelfInstall = "Copy this binary into the configured install directory"
	MsgFlagPrintConfig = "Print the effective configuration as TOML"
	MsgFlagReport      = "Write an XML build report to `FILE`"
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagShell       = "Shell used to run recipe lines"
	MsgFlagEcho        = "Print each command before running it"
	MsgFlagColor       = "Color output: auto, always or never"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
