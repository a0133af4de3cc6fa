package schema

import "github.com/dshills/paper/internal/engine/block"

// Fields is a partial block used to seed a block factory. Zero-valued
// fields are treated as absent.
type Fields struct {
	ID     block.ID
	Indent *int
	Text   *string
	Attrs  block.Attrs
}

// FieldsOf projects an existing block onto Fields.
func FieldsOf(b block.Block) Fields {
	indent := b.Indent
	f := Fields{
		ID:     b.ID,
		Indent: &indent,
		Attrs:  b.Attrs.Clone(),
	}
	if b.Text != nil {
		f.Text = block.StringPtr(*b.Text)
	}
	return f
}

// Merge returns f with every field set in over replacing its counterpart.
// Attributes are merged key by key.
func (f Fields) Merge(over Fields) Fields {
	out := f
	if !over.ID.IsZero() {
		out.ID = over.ID
	}
	if over.Indent != nil {
		indent := *over.Indent
		out.Indent = &indent
	}
	if over.Text != nil {
		out.Text = block.StringPtr(*over.Text)
	}
	if len(over.Attrs) > 0 {
		attrs := f.Attrs.Clone()
		if attrs == nil {
			attrs = make(block.Attrs, len(over.Attrs))
		}
		for k, v := range over.Attrs {
			attrs[k] = v
		}
		out.Attrs = attrs
	}
	return out
}

// WithText returns fields carrying text.
func WithText(text string) Fields {
	return Fields{Text: block.StringPtr(text)}
}

// WithIndent returns fields carrying an indent.
func WithIndent(indent int) Fields {
	return Fields{Indent: &indent}
}

// TextAndIndent returns fields carrying both text and indent.
func TextAndIndent(text string, indent int) Fields {
	return Fields{Text: block.StringPtr(text), Indent: &indent}
}
