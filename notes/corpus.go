package notes

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"hermannm.dev/devlog/log"
	"hermannm.dev/wrap"
)

// DirSource is a Source backed by a directory of markdown notes, loaded once at
// startup. It is a reference implementation of the indexing collaborator: hosts with
// their own incremental index can provide any other Source instead.
type DirSource struct {
	records []Record
}

func (source *DirSource) GetAll() []Record {
	return source.records
}

// LoadDir reads every .md file under dir into a Record. A record's path is the
// slash-separated path relative to dir, without the .md extension. Notes with
// malformed frontmatter are skipped with a warning rather than failing the whole load,
// matching the engine's policy of absorbing per-record data-quality issues.
func LoadDir(dir string) (*DirSource, error) {
	root := os.DirFS(dir)

	var records []Record
	err := fs.WalkDir(root, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			return nil
		}

		content, err := fs.ReadFile(root, path)
		if err != nil {
			return wrap.Errorf(err, "failed to read note '%s'", path)
		}

		properties, err := ParseFrontmatter(string(content))
		if err != nil {
			log.Warnf("Skipping note '%s': %v", path, err)
			return nil
		}

		records = append(records, Record{
			Path:       strings.TrimSuffix(filepath.ToSlash(path), ".md"),
			Properties: properties,
		})
		return nil
	})
	if err != nil {
		return nil, wrap.Errorf(err, "failed to walk notes directory '%s'", dir)
	}

	return &DirSource{records: records}, nil
}

// ParseFrontmatter extracts the properties from a markdown note's YAML frontmatter
// block. Frontmatter is only recognized when the note's first line is '---'; notes
// without frontmatter (or with an unclosed block) get an empty property map.
func ParseFrontmatter(content string) (map[string]any, error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return map[string]any{}, nil
	}

	endLine := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			endLine = i
			break
		}
	}
	if endLine == -1 {
		return map[string]any{}, nil
	}

	var properties map[string]any
	frontmatter := strings.Join(lines[1:endLine], "\n")
	if err := yaml.Unmarshal([]byte(frontmatter), &properties); err != nil {
		return nil, wrap.Error(err, "failed to parse frontmatter as YAML")
	}

	// YAML decodes an empty document (or one with only comments) to a nil map.
	if properties == nil {
		properties = map[string]any{}
	}
	return properties, nil
}
