package modules

import "github.com/conneroisu/docsite/internal/typedoc"

// SourceKind classifies an export for display.
type SourceKind int

const (
	SourceKindUnknown SourceKind = iota
	SourceKindVar
	SourceKindConst
	SourceKindFunction
	SourceKindClass
	SourceKindEnum
	SourceKindType
)

// String returns the string representation of the kind
func (k SourceKind) String() string {
	switch k {
	case SourceKindVar:
		return "var"
	case SourceKindConst:
		return "const"
	case SourceKindFunction:
		return "function"
	case SourceKindClass:
		return "class"
	case SourceKindEnum:
		return "enum"
	case SourceKindType:
		return "type"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k SourceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// GetSourceKind classifies the declaration behind source.
func GetSourceKind(source ExportSource) SourceKind {
	if source.Decl == nil {
		return SourceKindUnknown
	}

	switch source.Decl.Kind {
	case typedoc.KindVariable:
		if source.Decl.Flags.IsConst {
			return SourceKindConst
		}
		return SourceKindVar
	case typedoc.KindFunction, typedoc.KindFunctionOrMethod:
		return SourceKindFunction
	case typedoc.KindClass:
		return SourceKindClass
	case typedoc.KindEnum:
		return SourceKindEnum
	case typedoc.KindInterface, typedoc.KindTypeAlias:
		return SourceKindType
	default:
		return SourceKindUnknown
	}
}
