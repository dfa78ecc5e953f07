package feeders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/GoCodeAlone/rtverify"
)

// opaqueDocumentKeys hold values the verifier never interprets.
var opaqueDocumentKeys = []string{"resources.init"}

// DocumentFeeder decodes a whole file into a typed target and into plain
// values for schema checks.
type DocumentFeeder interface {
	Feed(target interface{}) error
	Raw() (interface{}, error)
}

// FeederFor picks a feeder from the file extension.
func FeederFor(path string) (DocumentFeeder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYamlFeeder(path), nil
	case ".toml":
		return NewTomlFeeder(path).WithOpaqueKeys(opaqueDocumentKeys...), nil
	case ".json":
		return NewJSONFeeder(path), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedExtension, filepath.Ext(path))
	}
}

// LoadDocument reads path, checks it against the document schema and decodes it.
func LoadDocument(path string) (*Document, error) {
	f, err := FeederFor(path)
	if err != nil {
		return nil, err
	}
	return ReadDocument(f)
}

// ReadDocument schema-checks and decodes the document behind f.
func ReadDocument(f DocumentFeeder) (*Document, error) {
	raw, err := f.Raw()
	if err != nil {
		return nil, err
	}
	if err := SchemaCheck(raw); err != nil {
		return nil, err
	}

	doc := &Document{}
	if err := f.Feed(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadFile reads a specification document and assembles it into an App.
// The returned App has not been validated.
func LoadFile(path string) (*rtverify.App, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.Build(path)
}
