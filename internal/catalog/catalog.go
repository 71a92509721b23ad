package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Catalog holds the selectable region hierarchy (구 → 동 → 상권) and the
// business category list backing the idea form's dependent selects.
type Catalog struct {
	City       string
	gus        []Gu
	categories []Category
}

// Gu is an administrative district of the city.
type Gu struct {
	Name  string `yaml:"name"`
	Dongs []Dong `yaml:"dongs"`
}

// Dong is a neighborhood within a gu.
type Dong struct {
	Name  string `yaml:"name"`
	Zones []Zone `yaml:"zones"`
}

// Zone is a named commercial zone with its backend analysis code.
type Zone struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"`
}

// Category pairs a business category name with its backend code.
type Category struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"`
}

type regionsFile struct {
	City string `yaml:"city"`
	Gus  []Gu   `yaml:"gus"`
}

// Load reads regions.yaml and categories.yaml from dir.
func Load(dir string) (*Catalog, error) {
	var regions regionsFile
	if err := readYAML(filepath.Join(dir, "regions.yaml"), &regions); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	var categories []Category
	if err := readYAML(filepath.Join(dir, "categories.yaml"), &categories); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if regions.City == "" || len(regions.Gus) == 0 {
		return nil, fmt.Errorf("catalog: regions.yaml is empty")
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("catalog: categories.yaml is empty")
	}
	return &Catalog{City: regions.City, gus: regions.Gus, categories: categories}, nil
}

func readYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Categories returns the full business category list in file order.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

// CategoryByCode resolves a category code to its entry.
func (c *Catalog) CategoryByCode(code string) (Category, bool) {
	for _, cat := range c.categories {
		if cat.Code == code {
			return cat, true
		}
	}
	return Category{}, false
}

// GuNames lists the selectable gus.
func (c *Catalog) GuNames() []string {
	names := make([]string, 0, len(c.gus))
	for _, g := range c.gus {
		names = append(names, g.Name)
	}
	return names
}

// DongNames lists the dongs of a gu. Unknown gus yield an empty list, which
// the form renders as a disabled select.
func (c *Catalog) DongNames(gu string) []string {
	g, ok := c.gu(gu)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(g.Dongs))
	for _, d := range g.Dongs {
		names = append(names, d.Name)
	}
	return names
}

// Zones lists the commercial zones of a gu/dong pair.
func (c *Catalog) Zones(gu, dong string) []Zone {
	g, ok := c.gu(gu)
	if !ok {
		return nil
	}
	for _, d := range g.Dongs {
		if d.Name == dong {
			return append([]Zone(nil), d.Zones...)
		}
	}
	return nil
}

// ZoneByCode resolves a zone code within a gu/dong pair. A code belonging to
// a different dong does not resolve, so a stale selection left over from a
// previous higher-level choice is rejected.
func (c *Catalog) ZoneByCode(gu, dong, code string) (Zone, bool) {
	for _, z := range c.Zones(gu, dong) {
		if z.Code == code {
			return z, true
		}
	}
	return Zone{}, false
}

func (c *Catalog) gu(name string) (Gu, bool) {
	for _, g := range c.gus {
		if g.Name == name {
			return g, true
		}
	}
	return Gu{}, false
}
