package testkit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	mdast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fence languages understood inside a case.
const (
	FenceSource = "momo"   // program under test
	FenceResult = "result" // expected i32 returned by main
	FenceError  = "error"  // expected diagnostic code id, e.g. GEN4003
	FenceMemory = "memory" // "offset: value" lines checked after execution
	FenceLog    = "log"    // substrings expected among info diagnostics
)

// Word is one expected memory cell.
type Word struct {
	Offset uint32
	Value  int32
}

// Case is one end-to-end scenario extracted from Markdown.
type Case struct {
	Name   string
	File   string
	Line   int
	Source string

	Result    *int32
	ErrorCode string
	Memory    []Word
	Logs      []string
}

// ExtractCases parses a Markdown document whose "Test: <name>" headings each
// open a case followed by fenced blocks.
func ExtractCases(name string, content []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(content))

	var (
		cases   []Case
		current *Case
	)
	flush := func() error {
		if current == nil {
			return nil
		}
		if err := current.validate(); err != nil {
			return err
		}
		cases = append(cases, *current)
		current = nil
		return nil
	}

	err := mdast.Walk(doc, func(node mdast.Node, entering bool) (mdast.WalkStatus, error) {
		if !entering {
			return mdast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *mdast.Heading:
			heading := nodeText(n, content)
			if !strings.HasPrefix(heading, "Test: ") {
				return mdast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return mdast.WalkStop, err
			}
			current = &Case{
				Name: strings.TrimPrefix(heading, "Test: "),
				File: name,
				Line: lineOf(n, content),
			}
		case *mdast.FencedCodeBlock:
			lang := string(n.Language(content))
			line := lineOf(n, content)
			if current == nil {
				if lang != "" {
					return mdast.WalkStop, fmt.Errorf("%s:%d: %s fence outside of a test", name, line, lang)
				}
				return mdast.WalkContinue, nil
			}
			if err := current.add(lang, blockText(n, content)); err != nil {
				return mdast.WalkStop, fmt.Errorf("%s:%d: test %q: %w", name, line, current.Name, err)
			}
		}
		return mdast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

// LoadCases reads every *.md file in dir, in name order.
func LoadCases(dir string) ([]Case, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	var all []Case
	for _, p := range paths {
		content, err := os.ReadFile(p) // #nosec G304 -- test data directory
		if err != nil {
			return nil, err
		}
		cases, err := ExtractCases(filepath.Base(p), content)
		if err != nil {
			return nil, err
		}
		all = append(all, cases...)
	}
	return all, nil
}

func (c *Case) add(lang, body string) error {
	body = strings.TrimRight(body, "\n")
	switch lang {
	case FenceSource:
		if c.Source != "" {
			return fmt.Errorf("multiple %s fences", FenceSource)
		}
		c.Source = body
	case FenceResult:
		v, err := strconv.ParseInt(strings.TrimSpace(body), 0, 32)
		if err != nil {
			return fmt.Errorf("bad result %q: %w", body, err)
		}
		r := int32(v)
		c.Result = &r
	case FenceError:
		c.ErrorCode = strings.TrimSpace(body)
	case FenceMemory:
		for _, ln := range strings.Split(body, "\n") {
			off, val, ok := strings.Cut(ln, ":")
			if !ok {
				return fmt.Errorf("memory line %q: want \"offset: value\"", ln)
			}
			o, err := strconv.ParseUint(strings.TrimSpace(off), 0, 32)
			if err != nil {
				return fmt.Errorf("memory offset %q: %w", off, err)
			}
			v, err := strconv.ParseInt(strings.TrimSpace(val), 0, 32)
			if err != nil {
				return fmt.Errorf("memory value %q: %w", val, err)
			}
			c.Memory = append(c.Memory, Word{Offset: uint32(o), Value: int32(v)})
		}
	case FenceLog:
		for _, ln := range strings.Split(body, "\n") {
			if ln = strings.TrimSpace(ln); ln != "" {
				c.Logs = append(c.Logs, ln)
			}
		}
	default:
		return fmt.Errorf("unknown fence language %q", lang)
	}
	return nil
}

func (c *Case) validate() error {
	if c.Source == "" {
		return fmt.Errorf("%s:%d: test %q has no %s fence", c.File, c.Line, c.Name, FenceSource)
	}
	if c.Result == nil && c.ErrorCode == "" && len(c.Memory) == 0 && len(c.Logs) == 0 {
		return fmt.Errorf("%s:%d: test %q has no expectations", c.File, c.Line, c.Name)
	}
	if c.ErrorCode != "" && (c.Result != nil || len(c.Memory) > 0) {
		return fmt.Errorf("%s:%d: test %q expects both an error and a run", c.File, c.Line, c.Name)
	}
	return nil
}

func nodeText(node mdast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = mdast.Walk(node, func(n mdast.Node, entering bool) (mdast.WalkStatus, error) {
		if t, ok := n.(*mdast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return mdast.WalkContinue, nil
	})
	return buf.String()
}

func blockText(block *mdast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// lineOf считает 1-based строку начала узла.
func lineOf(node mdast.Node, source []byte) int {
	var start int
	switch {
	case node.Lines().Len() > 0:
		start = node.Lines().At(0).Start
	case node.Type() == mdast.TypeBlock && node.HasChildren():
		if t, ok := node.FirstChild().(*mdast.Text); ok {
			start = t.Segment.Start
		}
	}
	return bytes.Count(source[:min(start, len(source))], []byte{'\n'}) + 1
}
