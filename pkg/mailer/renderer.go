package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown templates with YAML frontmatter to HTML and
// wraps the result in an html/template layout.
type Renderer struct {
	fs fs.FS
	md goldmark.Markdown

	// Caches hold parsed structure, never rendered output.
	templateCache   map[string]*cachedTemplate
	layoutCache     map[string]*template.Template
	textLayoutCache map[string]*texttemplate.Template // nil entry: no text layout
	templateDir     string
	layoutDir       string

	mu sync.RWMutex
}

type cachedTemplate struct {
	metadata map[string]any
	tmpl     *texttemplate.Template
}

// RendererConfig configures the renderer.
type RendererConfig struct {
	TemplateDir string // Default: "."
	LayoutDir   string // Default: "layouts"
}

// NewRenderer creates a new renderer with default config.
func NewRenderer(filesystem fs.FS) *Renderer {
	return NewRendererWithConfig(filesystem, RendererConfig{})
}

// NewRendererWithConfig creates a new renderer with custom config.
func NewRendererWithConfig(filesystem fs.FS, opts RendererConfig) *Renderer {
	if opts.TemplateDir == "" {
		opts.TemplateDir = "."
	}
	if opts.LayoutDir == "" {
		opts.LayoutDir = "layouts"
	}

	return &Renderer{
		fs:          filesystem,
		templateDir: opts.TemplateDir,
		layoutDir:   opts.LayoutDir,
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify),
			goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
		),
		templateCache:   make(map[string]*cachedTemplate),
		layoutCache:     make(map[string]*template.Template),
		textLayoutCache: make(map[string]*texttemplate.Template),
	}
}

// RenderParams selects what to render.
//
// Copy feeds the markdown template and must be trusted: it is executed with
// text/template and converted to HTML as is. Data is handed to the layouts,
// where html/template escapes it.
type RenderParams struct {
	Layout   string
	Template string
	Copy     any
	Data     any
}

// RenderResult contains the rendered HTML, plain text, and extracted metadata.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string
}

// Render executes the markdown template, converts it to HTML and wraps it in
// the layout. The plain text part comes from a sibling ".txt" layout when one
// exists, otherwise from the processed markdown.
func (r *Renderer) Render(p RenderParams) (*RenderResult, error) {
	cached, err := r.getTemplate(p.Template)
	if err != nil {
		return nil, err
	}

	var processedMarkdown bytes.Buffer
	if err := cached.tmpl.Execute(&processedMarkdown, p.Copy); err != nil {
		return nil, fmt.Errorf("%w: failed to execute template: %v", ErrRenderFailed, err)
	}

	var htmlContent bytes.Buffer
	if err := r.md.Convert(processedMarkdown.Bytes(), &htmlContent); err != nil {
		return nil, fmt.Errorf("%w: failed to convert markdown: %v", ErrRenderFailed, err)
	}

	layoutTmpl, err := r.getLayout(p.Layout)
	if err != nil {
		return nil, err
	}

	var finalHTML bytes.Buffer
	if err := layoutTmpl.Execute(&finalHTML, map[string]any{
		"Content":  template.HTML(htmlContent.String()),
		"Metadata": cached.metadata,
		"Data":     p.Data,
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to execute layout: %v", ErrRenderFailed, err)
	}

	text := processedMarkdown.String()
	textTmpl, err := r.getTextLayout(p.Layout)
	if err != nil {
		return nil, err
	}
	if textTmpl != nil {
		var buf bytes.Buffer
		if err := textTmpl.Execute(&buf, map[string]any{
			"Content":  text,
			"Metadata": cached.metadata,
			"Data":     p.Data,
		}); err != nil {
			return nil, fmt.Errorf("%w: failed to execute text layout: %v", ErrRenderFailed, err)
		}
		text = buf.String()
	}

	return &RenderResult{
		HTML:     finalHTML.String(),
		Text:     text,
		Metadata: cached.metadata,
	}, nil
}

func (r *Renderer) getTemplate(name string) (*cachedTemplate, error) {
	return loadCached(&r.mu, r.templateCache, name, func() (*cachedTemplate, error) {
		content, err := fs.ReadFile(r.fs, path.Join(r.templateDir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
		}

		parsed, err := ParseTemplate(content)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrRenderFailed, name, err)
		}

		tmpl, err := texttemplate.New(name).Parse(parsed.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse template body: %v", ErrRenderFailed, err)
		}

		return &cachedTemplate{metadata: parsed.Metadata, tmpl: tmpl}, nil
	})
}

func (r *Renderer) getLayout(name string) (*template.Template, error) {
	return loadCached(&r.mu, r.layoutCache, name, func() (*template.Template, error) {
		content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, name))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
		}

		tmpl, err := template.New(name).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse layout: %v", ErrRenderFailed, err)
		}
		return tmpl, nil
	})
}

func (r *Renderer) getTextLayout(name string) (*texttemplate.Template, error) {
	textName := strings.TrimSuffix(name, path.Ext(name)) + ".txt"
	return loadCached(&r.mu, r.textLayoutCache, textName, func() (*texttemplate.Template, error) {
		content, err := fs.ReadFile(r.fs, path.Join(r.layoutDir, textName))
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, textName, err)
		}

		tmpl, err := texttemplate.New(textName).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse text layout: %v", ErrRenderFailed, err)
		}
		return tmpl, nil
	})
}

// loadCached returns cache[name], parsing and storing it on first use.
func loadCached[T any](mu *sync.RWMutex, cache map[string]T, name string, parse func() (T, error)) (T, error) {
	mu.RLock()
	if cached, ok := cache[name]; ok {
		mu.RUnlock()
		return cached, nil
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// Double-check after acquiring write lock
	if cached, ok := cache[name]; ok {
		return cached, nil
	}

	v, err := parse()
	if err != nil {
		var zero T
		return zero, err
	}
	cache[name] = v
	return v, nil
}
