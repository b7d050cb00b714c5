package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Lint emissions from passes.
	LintEmitted Code = 1000

	// Conversion of host nodes.
	ConvNotImplemented  Code = 2001
	ConvLayoutMismatch  Code = 2002
	ConvSkippedNodes    Code = 2003
	ConvInvalidHostTree Code = 2004

	// Toolchain and driver handling.
	TcResolutionFailed   Code = 3001
	TcSubprocessFailed   Code = 3002
	TcIncompatibleDriver Code = 3003
	TcIO                 Code = 3004

	// Configuration.
	CfgInvalid      Code = 4001
	CfgUnknownLevel Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:          "unknown error",
	LintEmitted:          "lint",
	ConvNotImplemented:   "host node not yet supported",
	ConvLayoutMismatch:   "host id layout changed",
	ConvSkippedNodes:     "host nodes left out of the portable tree",
	ConvInvalidHostTree:  "inconsistent host tree",
	TcResolutionFailed:   "no usable driver found",
	TcSubprocessFailed:   "external command failed",
	TcIncompatibleDriver: "driver was built for another API version",
	TcIO:                 "file system error",
	CfgInvalid:           "invalid configuration",
	CfgUnknownLevel:      "unknown lint level",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LNT%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("CNV%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("TCH%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
