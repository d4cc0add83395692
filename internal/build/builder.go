// Package build renders a project's source tree into the static output
// directory. Pages under src/pages become HTML, assets under src/public are
// copied verbatim. All output files are written atomically so an interrupted
// build never leaves a half-written page behind.
package build

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/renameio/v2"

	"github.com/astrildev/cli/internal/output"
)

// Options configures one build run.
type Options struct {
	// SrcDir is the absolute source directory (contains pages/ and public/).
	SrcDir string

	// OutDir is the absolute output directory. Created if missing.
	OutDir string

	// Mode is the declared output mode. The static builder renders the same
	// tree for every mode; the mode's main consumer is the build metadata.
	Mode string

	// Site is the canonical site URL, available to page templates.
	Site string
}

// Stats summarizes a completed build run.
type Stats struct {
	Pages   int
	Assets  int
	Elapsed time.Duration
}

// Builder renders one project.
type Builder struct {
	opts   Options
	logger *log.Logger
}

// New creates a builder for the given options.
func New(opts Options, logger *log.Logger) *Builder {
	return &Builder{opts: opts, logger: logger}
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{- if .Description}}
<meta name="description" content="{{.Description}}">
{{- end}}
{{- if .Canonical}}
<link rel="canonical" href="{{.Canonical}}">
{{- end}}
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

type pageData struct {
	Title       string
	Description string
	Canonical   string
	Body        template.HTML
}

// Run renders all pages and copies all assets.
// The context is checked between files so watch-mode rebuilds can be
// abandoned promptly.
func (b *Builder) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()

	if b.opts.Mode != "" {
		b.logger.Debug("building", "mode", b.opts.Mode)
	}

	if err := os.MkdirAll(b.opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	stats := &Stats{}

	if err := b.renderPages(ctx, stats); err != nil {
		return nil, err
	}
	if err := b.copyAssets(ctx, stats); err != nil {
		return nil, err
	}

	stats.Elapsed = time.Since(start)
	return stats, nil
}

// renderPages walks src/pages and renders every markdown page.
func (b *Builder) renderPages(ctx context.Context, stats *Stats) error {
	pagesDir := filepath.Join(b.opts.SrcDir, "pages")
	if _, err := os.Stat(pagesDir); err != nil {
		return fmt.Errorf("pages directory %s: %w", pagesDir, err)
	}

	return filepath.WalkDir(pagesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(p, ".md") {
			b.logger.Debug("skipping non-page file", "path", p)
			return nil
		}

		rel, err := filepath.Rel(pagesDir, p)
		if err != nil {
			return err
		}

		written, err := b.renderPage(p, rel)
		if err != nil {
			b.logger.Error(output.FormatPageLine(routeFor(rel), output.StatusFailed))
			return fmt.Errorf("rendering %s: %w", rel, err)
		}
		if written {
			stats.Pages++
		}
		return nil
	})
}

// renderPage renders a single source page to its output route.
// Returns false for drafts, which produce no output.
func (b *Builder) renderPage(srcPath, rel string) (bool, error) {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return false, err
	}

	meta, body, err := splitFrontMatter(src)
	if err != nil {
		return false, err
	}

	route := routeFor(rel)
	if meta.Draft {
		b.logger.Debug("skipping draft page", "route", route)
		return false, nil
	}

	title := meta.Title
	if title == "" {
		title = route
	}

	var canonical string
	if b.opts.Site != "" {
		canonical = strings.TrimRight(b.opts.Site, "/") + route
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, pageData{
		Title:       title,
		Description: meta.Description,
		Canonical:   canonical,
		Body:        renderBody(body),
	})
	if err != nil {
		return false, err
	}

	dest := filepath.Join(b.opts.OutDir, filepath.FromSlash(outputPathFor(rel)))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return false, err
	}
	if err := renameio.WriteFile(dest, buf.Bytes(), 0o644); err != nil {
		return false, err
	}

	b.logger.Debug(output.FormatPageLine(route, output.StatusRendered))
	return true, nil
}

// copyAssets copies src/public verbatim into the output directory.
// A missing public directory is fine; not every project has assets.
func (b *Builder) copyAssets(ctx context.Context, stats *Stats) error {
	publicDir := filepath.Join(b.opts.SrcDir, "public")
	if _, err := os.Stat(publicDir); os.IsNotExist(err) {
		return nil
	}

	return filepath.WalkDir(publicDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(publicDir, p)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}

		dest := filepath.Join(b.opts.OutDir, rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := renameio.WriteFile(dest, data, 0o644); err != nil {
			return fmt.Errorf("copying %s: %w", rel, err)
		}

		b.logger.Debug(output.FormatPageLine("/"+filepath.ToSlash(rel), output.StatusCopied))
		stats.Assets++
		return nil
	})
}

// routeFor maps a source-relative page path to its site route.
// index.md -> /, about.md -> /about, blog/post.md -> /blog/post.
func routeFor(rel string) string {
	p := strings.TrimSuffix(filepath.ToSlash(rel), ".md")
	if p == "index" {
		return "/"
	}
	p = strings.TrimSuffix(p, "/index")
	return "/" + p
}

// outputPathFor maps a source-relative page path to its output file.
// index.md -> index.html, about.md -> about/index.html.
func outputPathFor(rel string) string {
	p := strings.TrimSuffix(filepath.ToSlash(rel), ".md")
	if p == "index" || strings.HasSuffix(p, "/index") {
		return p + ".html"
	}
	return path.Join(p, "index.html")
}

// renderBody turns the page body into minimal HTML: blank-line separated
// blocks become paragraphs, with all content escaped.
func renderBody(body []byte) template.HTML {
	var sb strings.Builder
	for _, block := range strings.Split(string(body), "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(template.HTMLEscapeString(block))
		sb.WriteString("</p>\n")
	}
	return template.HTML(sb.String())
}
