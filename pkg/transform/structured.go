package transform

import (
	"bytes"
	"encoding/json"
	stderrors "errors"

	"github.com/arthur-debert/assetwatch/pkg/errors"
)

const structuredIndent = "    "

// Reserialize validates JSON content and writes it back either compact or
// with four-space indentation. Key order and number text are preserved.
// Content that is empty after trimming yields empty output.
func Reserialize(content []byte, compact bool) ([]byte, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return []byte{}, nil
	}

	var out bytes.Buffer
	var err error
	if compact {
		err = json.Compact(&out, content)
	} else {
		err = json.Indent(&out, content, "", structuredIndent)
	}
	if err != nil {
		var syntaxErr *json.SyntaxError
		if stderrors.As(err, &syntaxErr) {
			return nil, errors.Wrapf(err, errors.ErrParseFailure,
				"invalid structured data at offset %d", syntaxErr.Offset).
				WithDetail("offset", syntaxErr.Offset)
		}
		return nil, errors.Wrap(err, errors.ErrParseFailure, "invalid structured data")
	}

	// json.Indent copies trailing whitespace through; normalize it
	return bytes.TrimSpace(out.Bytes()), nil
}
