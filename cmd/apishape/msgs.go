package apishape

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort    = "Render the API shape of modules as declarations or lists"
	MsgVersionShort = "Print version information"

	MsgVersionFormat = "%s version %s\n  commit: %s\n  built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig     = "Read options from this TOML or YAML file"
	MsgFlagLibPath    = "Directories searched for referenced modules (repeatable, comma separated)"
	MsgFlagAPIList    = "Only include elements whose DocIds are listed (file or inline list)"
	MsgFlagExclude    = "Exclude elements whose DocIds are listed (file or inline list)"
	MsgFlagExcludeMem = "Also exclude members whose signatures use an excluded type"
	MsgFlagExcludeAtt = "Drop attributes whose type DocIds are listed (file or inline list)"
	MsgFlagOut        = "Output file, or an existing directory for one file per module"
	MsgFlagHeader     = "File whose content is written verbatim at the top of every output"
	MsgFlagWriter     = "Writer kind: declarations, docids, typeforwards, typelist"
	MsgFlagSyntax     = "Syntax for declarations and type lists: text, html, xml"
	MsgFlagDocIDKinds = "DocId kinds to list: letters A,N,T,F,P,M,E, names, or all"
	MsgFlagException  = "Throw PlatformNotSupportedException with this message in bodies"
	MsgFlagGlobal     = "Prefix type names with global::"
	MsgFlagFollow     = "Render the types behind type forwards"
	MsgFlagAPIOnly    = "Omit bodies and the partial keyword"
	MsgFlagAll        = "Include every element regardless of visibility"
	MsgFlagInternals  = "Treat internals as visible when a module grants them"
	MsgFlagCompGen    = "Exclude compiler-generated types and members"
	MsgFlagHeadings   = "Write a comment heading before each member group"
	MsgFlagHLBase     = "Highlight members that override a base member"
	MsgFlagHLIface    = "Highlight members that implement an interface member"
	MsgFlagAlwaysBase = "Keep base types even when the filter excludes them"
	MsgFlagExclFilt   = "Drop members of types the filter excluded from base lists"
	MsgFlagLang       = "Target language version: default, latest, preview or major[.minor]"

	MsgErrPrefix = "Error: "
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
