package build

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// PageMeta is the YAML front matter of a source page.
type PageMeta struct {
	// Title is the rendered page title. Defaults to the route when empty.
	Title string `yaml:"title"`

	// Description feeds the meta description tag.
	Description string `yaml:"description"`

	// Draft pages are excluded from the build output.
	Draft bool `yaml:"draft"`
}

var frontMatterFence = []byte("---")

// splitFrontMatter separates the optional YAML front matter block from the
// page body. Pages without a leading fence are all body.
func splitFrontMatter(src []byte) (meta PageMeta, body []byte, err error) {
	trimmed := bytes.TrimLeft(src, "\r\n")
	if !bytes.HasPrefix(trimmed, frontMatterFence) {
		return PageMeta{}, src, nil
	}

	rest := trimmed[len(frontMatterFence):]
	end := bytes.Index(rest, append([]byte("\n"), frontMatterFence...))
	if end < 0 {
		return PageMeta{}, nil, fmt.Errorf("unterminated front matter block")
	}

	block := rest[:end]
	body = rest[end+1+len(frontMatterFence):]
	body = bytes.TrimLeft(body, "\r\n")

	if err := yaml.Unmarshal(block, &meta); err != nil {
		return PageMeta{}, nil, fmt.Errorf("parsing front matter: %w", err)
	}

	return meta, body, nil
}
