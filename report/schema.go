package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/cxxdoc/docassoc"
)

// SchemaURI is the JSON Schema dialect of [Schema].
const SchemaURI = "https://json-schema.org/draft/2020-12/schema"

// Schema returns the JSON Schema of [Document].
func Schema() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[Document](nil)
	if err != nil {
		return nil, fmt.Errorf("inferring document schema: %w", err)
	}

	s.Schema = SchemaURI
	s.Title = "cxxdoc report"
	s.Description = "Documentation coverage of C++ declarations, as written by cxxdoc check."

	return s, nil
}

// WriteSchema writes the indented [Schema] to w.
func WriteSchema(w io.Writer) error {
	s, err := Schema()
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", docassoc.ErrWriteOutput, err)
	}

	out = append(out, '\n')

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("%w: %w", docassoc.ErrWriteOutput, err)
	}

	return nil
}
