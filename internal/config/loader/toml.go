package loader

import (
	"bytes"
	"errors"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// TOMLDecoder decodes TOML. Unknown keys are rejected.
type TOMLDecoder struct{}

// Decode implements Decoder.
func (TOMLDecoder) Decode(source string, data []byte, into any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			pe.Line, pe.Column = derr.Position()
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) && len(serr.Errors) > 0 {
			pe.Line, pe.Column = serr.Errors[0].Position()
			pe.Message = "unknown key " + strings.Join(serr.Errors[0].Key(), ".")
		}
		return pe
	}
	return nil
}
