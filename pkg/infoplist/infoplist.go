// Package infoplist reads a workflow's bundle descriptor (info.plist).
package infoplist

import (
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/alfredwf/pkg/errors"
	"github.com/arthur-debert/alfredwf/pkg/types"
	"github.com/beevik/etree"
)

// Filename is the descriptor's name inside the workflow directory.
const Filename = "info.plist"

// Info is the subset of the descriptor the library reads, plus the full
// decoded dictionary in Raw.
type Info struct {
	BundleID    string
	Name        string
	Version     string
	CreatedBy   string
	Description string
	Readme      string
	WebAddress  string
	Disabled    bool
	Variables   map[string]string
	Raw         map[string]interface{}
}

// Load reads and parses the descriptor at path.
func Load(fsys types.FS, path string) (*Info, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInfoPlistRead, "failed to read %s", path)
	}
	info, err := ParseBytes(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInfoPlistParse, "failed to parse %s", path)
	}
	return info, nil
}

// Parse decodes a descriptor from r.
func Parse(r io.Reader) (*Info, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, errors.ErrInfoPlistParse, "invalid XML")
	}
	return fromDocument(doc)
}

// ParseBytes decodes a descriptor from data.
func ParseBytes(data []byte) (*Info, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrInfoPlistParse, "invalid XML")
	}
	return fromDocument(doc)
}

func fromDocument(doc *etree.Document) (*Info, error) {
	root := doc.SelectElement("plist")
	if root == nil {
		return nil, errors.New(errors.ErrInfoPlistParse, "missing <plist> root element")
	}
	dict := root.SelectElement("dict")
	if dict == nil {
		return nil, errors.New(errors.ErrInfoPlistParse, "missing top-level <dict>")
	}

	raw, err := decodeDict(dict)
	if err != nil {
		return nil, err
	}

	info := &Info{
		BundleID:    stringValue(raw, "bundleid"),
		Name:        stringValue(raw, "name"),
		Version:     stringValue(raw, "version"),
		CreatedBy:   stringValue(raw, "createdby"),
		Description: stringValue(raw, "description"),
		Readme:      stringValue(raw, "readme"),
		WebAddress:  stringValue(raw, "webaddress"),
		Variables:   map[string]string{},
		Raw:         raw,
	}
	if disabled, ok := raw["disabled"].(bool); ok {
		info.Disabled = disabled
	}
	if vars, ok := raw["variables"].(map[string]interface{}); ok {
		for k, v := range vars {
			if s, ok := v.(string); ok {
				info.Variables[k] = s
			}
		}
	}
	return info, nil
}

func stringValue(raw map[string]interface{}, key string) string {
	s, _ := raw[key].(string)
	return s
}

// decodeDict walks <key>/<value> pairs. Keys without a following value are
// reported as errors.
func decodeDict(el *etree.Element) (map[string]interface{}, error) {
	out := make(map[string]interface{})
	children := el.ChildElements()
	for i := 0; i < len(children); i++ {
		keyEl := children[i]
		if keyEl.Tag != "key" {
			return nil, errors.Newf(errors.ErrInfoPlistParse, "expected <key>, found <%s>", keyEl.Tag)
		}
		if i+1 >= len(children) {
			return nil, errors.Newf(errors.ErrInfoPlistParse, "key %q has no value", keyEl.Text())
		}
		i++
		value, err := decodeValue(children[i])
		if err != nil {
			return nil, err
		}
		out[keyEl.Text()] = value
	}
	return out, nil
}

func decodeValue(el *etree.Element) (interface{}, error) {
	switch el.Tag {
	case "string", "date", "data":
		return el.Text(), nil
	case "integer":
		n, err := strconv.ParseInt(strings.TrimSpace(el.Text()), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInfoPlistParse, "invalid integer %q", el.Text())
		}
		return n, nil
	case "real":
		f, err := strconv.ParseFloat(strings.TrimSpace(el.Text()), 64)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInfoPlistParse, "invalid real %q", el.Text())
		}
		return f, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "array":
		items := []interface{}{}
		for _, child := range el.ChildElements() {
			v, err := decodeValue(child)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case "dict":
		return decodeDict(el)
	default:
		return nil, errors.Newf(errors.ErrInfoPlistParse, "unsupported plist element <%s>", el.Tag)
	}
}
