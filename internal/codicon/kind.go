package codicon

import "github.com/conneroisu/docsite/internal/modules"

var kindIcons = map[modules.SourceKind]string{
	modules.SourceKindVar:      "symbol-variable",
	modules.SourceKindConst:    "symbol-constant",
	modules.SourceKindFunction: "symbol-method",
	modules.SourceKindClass:    "symbol-class",
	modules.SourceKindEnum:     "symbol-enum",
	modules.SourceKindType:     "symbol-interface",
}

// KindIcon returns the codicon shown next to an export of the given kind.
func KindIcon(kind modules.SourceKind) string {
	if icon, ok := kindIcons[kind]; ok {
		return icon
	}
	return "question"
}
