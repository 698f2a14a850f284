package completions

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"

	"github.com/arthur-debert/spry/pkg/errors"
)

// CsprojFrameworks collects the target frameworks declared by the
// csproj files in dir. Project files declare either a single
// <TargetFramework> or a semicolon-separated <TargetFrameworks>.
func CsprojFrameworks(dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.csproj"))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to scan for project files")
	}

	seen := make(map[string]bool)
	for _, path := range matches {
		for _, fw := range projectFrameworks(path) {
			seen[fw] = true
		}
	}

	frameworks := make([]string, 0, len(seen))
	for fw := range seen {
		frameworks = append(frameworks, fw)
	}
	sort.Strings(frameworks)
	return frameworks, nil
}

// projectFrameworks parses one csproj. Unparseable files yield nothing;
// a broken project file must not break completion.
func projectFrameworks(path string) []string {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil
	}

	root := doc.SelectElement("Project")
	if root == nil {
		return nil
	}

	var frameworks []string
	for _, group := range root.SelectElements("PropertyGroup") {
		if el := group.SelectElement("TargetFramework"); el != nil {
			if fw := strings.TrimSpace(el.Text()); fw != "" {
				frameworks = append(frameworks, fw)
			}
		}
		if el := group.SelectElement("TargetFrameworks"); el != nil {
			for _, fw := range strings.Split(el.Text(), ";") {
				if fw = strings.TrimSpace(fw); fw != "" {
					frameworks = append(frameworks, fw)
				}
			}
		}
	}
	return frameworks
}
