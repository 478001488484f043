package docs

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	versionMetaFile  = "_version.yaml"
	categoryMetaFile = "_category.yaml"
	pageFileSuffix   = ".md"
)

// Frontmatter represents YAML frontmatter in a markdown page file.
type Frontmatter struct {
	// ID overrides the slug derived from the file name
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      Status `yaml:"status"`
	Hidden      bool   `yaml:"hidden"`

	// Weight is used for sorting (lower values appear first)
	Weight int `yaml:"weight"`
}

type categoryMeta struct {
	Title  string `yaml:"title"`
	Weight int    `yaml:"weight"`
}

type versionMeta struct {
	Latest bool `yaml:"latest"`
	Weight int  `yaml:"weight"`
}

// ParseFrontmatter splits a markdown file into its YAML frontmatter and body.
// Returns an empty Frontmatter and the whole content if no frontmatter is present.
func ParseFrontmatter(content []byte) (*Frontmatter, []byte, error) {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))

	if !bytes.HasPrefix(content, []byte("---\n")) {
		return &Frontmatter{}, content, nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(content[4:]))
	var yamlLines []string
	consumed := 4
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		consumed += len(line) + 1
		if line == "---" {
			closed = true
			break
		}
		yamlLines = append(yamlLines, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to scan frontmatter: %w", err)
	}
	if !closed {
		return nil, nil, fmt.Errorf("unterminated frontmatter")
	}

	body := []byte{}
	if consumed < len(content) {
		body = content[consumed:]
	}

	rawFrontmatter := strings.Join(yamlLines, "\n")

	var fm Frontmatter
	err := yaml.Unmarshal([]byte(rawFrontmatter), &fm)
	if err == nil {
		return &fm, body, nil
	}
	if !strings.Contains(err.Error(), "mapping key") {
		return nil, nil, fmt.Errorf("failed to parse frontmatter YAML: %w", err)
	}

	// Repeated keys: keep the last occurrence of each.
	sanitized := dedupeFrontmatter(rawFrontmatter)
	if sanitized == rawFrontmatter {
		return nil, nil, fmt.Errorf("failed to parse frontmatter YAML: %w", err)
	}

	fm = Frontmatter{}
	if err := yaml.Unmarshal([]byte(sanitized), &fm); err != nil {
		return nil, nil, fmt.Errorf("failed to parse frontmatter YAML: %w", err)
	}

	return &fm, body, nil
}

func dedupeFrontmatter(raw string) string {
	lines := strings.Split(raw, "\n")

	type block struct {
		key   string
		start int
		end   int
	}

	var blocks []block
	for i, line := range lines {
		key, ok := topLevelKey(line)
		if !ok {
			if len(blocks) == 0 {
				blocks = append(blocks, block{start: i, end: i})
			} else {
				blocks[len(blocks)-1].end = i
			}
			continue
		}
		blocks = append(blocks, block{key: key, start: i, end: i})
	}

	lastBlock := make(map[string]int, len(blocks))
	for i, b := range blocks {
		if b.key != "" {
			lastBlock[b.key] = i
		}
	}

	var output []string
	for i, b := range blocks {
		if b.key != "" && lastBlock[b.key] != i {
			continue
		}
		output = append(output, lines[b.start:b.end+1]...)
	}

	return strings.Join(output, "\n")
}

func topLevelKey(line string) (string, bool) {
	if line == "" || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
		return "", false
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") {
		return "", false
	}

	key, _, found := strings.Cut(trimmed, ":")
	key = strings.TrimSpace(key)
	if !found || key == "" || strings.ContainsAny(key, " \t") {
		return "", false
	}
	return key, true
}

// LoadDir builds a store from a directory tree laid out as
// <version>/<tab>/<category>/<page>.md. Optional _version.yaml and
// _category.yaml files carry version and category metadata.
func LoadDir(fsys fs.FS) (*Store, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read content root: %w", err)
	}

	type weighted struct {
		version Version
		weight  int
	}

	var versions []weighted
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		var meta versionMeta
		if err := readYAMLFile(fsys, path.Join(entry.Name(), versionMetaFile), &meta); err != nil {
			return nil, err
		}

		v, err := loadVersionDir(fsys, entry.Name())
		if err != nil {
			return nil, err
		}
		v.Latest = meta.Latest
		versions = append(versions, weighted{version: v, weight: meta.Weight})
	}

	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].weight < versions[j].weight
	})

	out := make([]Version, 0, len(versions))
	for _, v := range versions {
		out = append(out, v.version)
	}

	return NewStore(out)
}

func loadVersionDir(fsys fs.FS, name string) (Version, error) {
	v := Version{Version: name, Tabs: make(map[TabID][]Category)}

	entries, err := fs.ReadDir(fsys, name)
	if err != nil {
		return v, fmt.Errorf("failed to read version directory %s: %w", name, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		tab, ok := ParseTab(entry.Name())
		if !ok {
			return v, fmt.Errorf("%w: version %s has unknown tab directory %q", ErrInvalidContent, name, entry.Name())
		}

		categories, err := loadTabDir(fsys, path.Join(name, entry.Name()))
		if err != nil {
			return v, err
		}
		v.Tabs[tab] = categories
	}

	return v, nil
}

func loadTabDir(fsys fs.FS, dir string) ([]Category, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tab directory %s: %w", dir, err)
	}

	type weighted struct {
		category Category
		weight   int
	}

	var categories []weighted
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		catDir := path.Join(dir, entry.Name())

		meta := categoryMeta{Title: entry.Name()}
		if err := readYAMLFile(fsys, path.Join(catDir, categoryMetaFile), &meta); err != nil {
			return nil, err
		}

		pages, err := loadCategoryDir(fsys, catDir)
		if err != nil {
			return nil, err
		}
		categories = append(categories, weighted{
			category: Category{Title: meta.Title, Pages: pages},
			weight:   meta.Weight,
		})
	}

	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].weight != categories[j].weight {
			return categories[i].weight < categories[j].weight
		}
		return categories[i].category.Title < categories[j].category.Title
	})

	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.category)
	}
	return out, nil
}

func loadCategoryDir(fsys fs.FS, dir string) ([]Page, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read category directory %s: %w", dir, err)
	}

	type weighted struct {
		page   Page
		weight int
	}

	var pages []weighted
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), pageFileSuffix) {
			continue
		}

		filePath := path.Join(dir, entry.Name())
		page, weight, err := ExtractPage(fsys, filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
		}
		pages = append(pages, weighted{page: *page, weight: weight})
	}

	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].weight != pages[j].weight {
			return pages[i].weight < pages[j].weight
		}
		return pages[i].page.Title < pages[j].page.Title
	})

	out := make([]Page, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.page)
	}
	return out, nil
}

// ExtractPage creates a Page from a markdown file. The markdown body becomes
// a single text block. It also returns the frontmatter sort weight.
func ExtractPage(fsys fs.FS, filePath string) (*Page, int, error) {
	content, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read file: %w", err)
	}

	fm, body, err := ParseFrontmatter(content)
	if err != nil {
		return nil, 0, err
	}

	id := fm.ID
	if id == "" {
		id = strings.TrimSuffix(path.Base(filePath), pageFileSuffix)
	}

	status := fm.Status
	if status == "" {
		status = StatusProduction
	}

	title := fm.Title
	if title == "" {
		title = id
	}

	page := &Page{
		ID:          id,
		Title:       title,
		Description: fm.Description,
		Status:      status,
		Hidden:      fm.Hidden,
		Content:     []Block{},
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		page.Content = append(page.Content, Block{Kind: BlockText, Content: text})
	}

	return page, fm.Weight, nil
}

func readYAMLFile(fsys fs.FS, name string, out any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
