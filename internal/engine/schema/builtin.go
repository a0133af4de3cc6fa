package schema

import "github.com/dshills/paper/internal/engine/block"

// Built-in block types.
const (
	TypeParagraph  block.Type = "paragraph"
	TypeHeading    block.Type = "heading"
	TypeList       block.Type = "list"
	TypeTodo       block.Type = "todo"
	TypeBlockquote block.Type = "blockquote"
	TypeCode       block.Type = "code"
	TypeDivider    block.Type = "divider"
)

// BuiltinDefinitions returns the definitions of the built-in block types.
// Paragraph is the default type.
func BuiltinDefinitions() []Definition {
	return []Definition{
		{Type: TypeParagraph, Label: "Text", HasText: true, Default: true},
		{Type: TypeHeading, Marker: "#", HasText: true, Continuation: Bool(false), Attrs: block.Attrs{"level": 1}},
		{Type: TypeList, Marker: "•", HasText: true},
		{Type: TypeTodo, Marker: "☐", HasText: true, Attrs: block.Attrs{"checked": false}},
		{Type: TypeBlockquote, Label: "Quote", Marker: "│", HasText: true, Continuation: Bool(false)},
		{Type: TypeCode, Marker: "»", HasText: true, Attrs: block.Attrs{"language": ""}},
		{Type: TypeDivider, Marker: "───", HasText: false},
	}
}

// Builtin returns a registry of the built-in block types.
func Builtin() *Registry {
	return MustRegistry(BuiltinDefinitions()...)
}
