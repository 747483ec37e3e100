/*
permits.go - Permit file loader

PURPOSE:
  Reads the YAML file holding the first entry date and the list of
  residence permits. The file is walked as a yaml.Node tree rather than
  decoded into a struct so unknown and missing keys can be reported with
  their line numbers.

FORMAT:

    first_entry: 2020-01-15        # alias: ireland_first_entry
    permits:                       # alias: irp
      - name: stamp1
        start: 2020-07-01
        end: 2021-07-01

  Each entry has exactly name, start and end. Dates are YYYY-MM-DD.

SEE ALSO:
  - travels.go: The CSV counterpart
  - validate.go: Field rules shared with the HTTP API
*/
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/warp/residence-engine/generic"
	"github.com/warp/residence-engine/residence"
)

// Top-level keys and the older names still accepted for them.
const (
	keyFirstEntry = "first_entry"
	keyPermits    = "permits"
)

var topLevelAliases = map[string]string{
	keyFirstEntry:         keyFirstEntry,
	"ireland_first_entry": keyFirstEntry,
	keyPermits:            keyPermits,
	"irp":                 keyPermits,
}

var permitKeys = []string{"name", "start", "end"}

// PermitFile is the parsed content of a permit file.
type PermitFile struct {
	FirstEntry generic.Date
	Permits    []residence.PermitEntry
}

// LoadPermits reads and validates the permit file at path.
func LoadPermits(path string) (PermitFile, error) {
	data, err := readFile(path)
	if err != nil {
		return PermitFile{}, err
	}
	return ParsePermits(path, data)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// ParsePermits validates permit YAML. source names the input in errors.
func ParsePermits(source string, data []byte) (PermitFile, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return PermitFile{}, &InputError{Source: source, Reason: "malformed YAML: " + err.Error(), Err: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return PermitFile{}, inputErr(source, doc.Line, "", "file must contain a YAML mapping at the top level")
	}
	root := doc.Content[0]

	values := map[string]*yaml.Node{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		canonical, ok := topLevelAliases[key.Value]
		if !ok {
			return PermitFile{}, inputErr(source, key.Line, key.Value,
				"unexpected key, allowed keys are %s and %s", keyFirstEntry, keyPermits)
		}
		if _, dup := values[canonical]; dup {
			return PermitFile{}, inputErr(source, key.Line, key.Value, "%s given more than once", canonical)
		}
		values[canonical] = val
	}

	firstNode, ok := values[keyFirstEntry]
	if !ok {
		return PermitFile{}, inputErr(source, 0, keyFirstEntry, "missing required key")
	}
	first, err := parseDateNode(firstNode)
	if err != nil {
		return PermitFile{}, &InputError{Source: source, Line: firstNode.Line, Field: keyFirstEntry, Reason: err.Error(), Err: err}
	}

	list, ok := values[keyPermits]
	if !ok {
		return PermitFile{}, inputErr(source, 0, keyPermits, "missing required key")
	}
	if list.Kind != yaml.SequenceNode {
		return PermitFile{}, inputErr(source, list.Line, keyPermits, "must be a list of entries")
	}
	if len(list.Content) == 0 {
		return PermitFile{}, inputErr(source, list.Line, keyPermits, "list must not be empty")
	}

	out := PermitFile{FirstEntry: first, Permits: make([]residence.PermitEntry, 0, len(list.Content))}
	for i, item := range list.Content {
		entry, err := parsePermitNode(source, i, item)
		if err != nil {
			return PermitFile{}, err
		}
		out.Permits = append(out.Permits, entry)
	}
	return out, nil
}

func parsePermitNode(source string, index int, node *yaml.Node) (residence.PermitEntry, error) {
	field := fmt.Sprintf("%s[%d]", keyPermits, index)
	if node.Kind != yaml.MappingNode {
		return residence.PermitEntry{}, inputErr(source, node.Line, field, "entry must be a mapping")
	}

	fields := map[string]*yaml.Node{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if !slices.Contains(permitKeys, key.Value) {
			return residence.PermitEntry{}, inputErr(source, key.Line, field+"."+key.Value,
				"unexpected key, allowed keys are %s", strings.Join(permitKeys, ", "))
		}
		if val.Kind != yaml.ScalarNode {
			return residence.PermitEntry{}, inputErr(source, val.Line, field+"."+key.Value, "must be a plain value")
		}
		fields[key.Value] = val
	}

	var missing []string
	for _, k := range permitKeys {
		if _, ok := fields[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return residence.PermitEntry{}, inputErr(source, node.Line, field, "missing %s", strings.Join(missing, ", "))
	}

	in := PermitInput{
		Name:  fields["name"].Value,
		Start: strings.TrimSpace(fields["start"].Value),
		End:   strings.TrimSpace(fields["end"].Value),
	}
	if f, msg, ok := Check(in); !ok {
		return residence.PermitEntry{}, inputErr(source, fields[f].Line, field+"."+f, "%s", msg)
	}
	entry, err := in.Entry()
	if err != nil {
		return residence.PermitEntry{}, &InputError{
			Source: source, Line: node.Line, Field: field,
			Reason: fmt.Sprintf("permit %q: %v", in.Name, err), Err: err,
		}
	}
	return entry, nil
}

func parseDateNode(node *yaml.Node) (generic.Date, error) {
	if node.Kind != yaml.ScalarNode {
		return generic.Date{}, fmt.Errorf("%w: expected YYYY-MM-DD", generic.ErrInvalidDate)
	}
	return generic.ParseDate(strings.TrimSpace(node.Value))
}
