package worktree

import (
	"bufio"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// IgnoreFile is the per-tree ignore list, read from the tree root.
const IgnoreFile = ".gitletignore"

// metaDirs are always hidden from the working tree.
var metaDirs = []string{".gitlet", ".git"}

// IgnoreChecker decides whether a working-tree path is hidden from status,
// add and the untracked-file guard.
type IgnoreChecker struct {
	rules []ignoreRule
}

type ignoreRule struct {
	glob     string
	negate   bool
	dirOnly  bool
	anchored bool // rule contains a slash and matches against the full path
	re       *regexp.Regexp
}

// NewIgnoreChecker loads root/.gitletignore if present. A missing file yields
// a checker that only hides the metadata directories.
func NewIgnoreChecker(root string) *IgnoreChecker {
	f, err := os.Open(filepath.Join(root, IgnoreFile))
	if err != nil {
		return ParseIgnore(nil)
	}
	defer f.Close()
	return ParseIgnore(f)
}

// ParseIgnore builds a checker from gitignore-style lines. r may be nil.
func ParseIgnore(r io.Reader) *IgnoreChecker {
	ic := &IgnoreChecker{}
	if r == nil {
		return ic
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if rule, ok := parseIgnoreLine(sc.Text()); ok {
			ic.rules = append(ic.rules, rule)
		}
	}
	return ic
}

func parseIgnoreLine(line string) (ignoreRule, bool) {
	line = strings.TrimRight(line, " \t\r")
	if line == "" || strings.HasPrefix(line, "#") {
		return ignoreRule{}, false
	}
	var r ignoreRule
	if strings.HasPrefix(line, "!") {
		r.negate = true
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		r.dirOnly = true
		line = strings.TrimRight(line, "/")
	}
	line = strings.TrimPrefix(line, "/")
	if line == "" {
		return ignoreRule{}, false
	}
	r.anchored = strings.Contains(line, "/")
	r.glob = line
	if strings.Contains(line, "**") {
		re, err := regexp.Compile(globstarRegexp(line))
		if err != nil {
			return ignoreRule{}, false
		}
		r.re = re
	}
	return r, true
}

// IsIgnored reports whether the slash-separated relative path p is ignored.
// A rule that matches a parent directory hides everything beneath it. The
// last matching rule wins, so a later "!" rule re-includes a path.
func (ic *IgnoreChecker) IsIgnored(p string) bool {
	p = filepath.ToSlash(p)
	first := p
	if i := strings.IndexByte(p, '/'); i >= 0 {
		first = p[:i]
	}
	for _, d := range metaDirs {
		if first == d {
			return true
		}
	}

	ignored := false
	for _, r := range ic.rules {
		if r.matches(p) {
			ignored = !r.negate
		}
	}
	return ignored
}

func (r ignoreRule) matches(p string) bool {
	// Check p itself, then each ancestor directory. A dir-only rule can only
	// match an ancestor of p, never the leaf.
	for cand, leaf := p, true; cand != "." && cand != ""; cand, leaf = path.Dir(cand), false {
		if r.dirOnly && leaf {
			continue
		}
		target := cand
		if !r.anchored {
			target = path.Base(cand)
		}
		if r.match(target) {
			return true
		}
	}
	return false
}

func (r ignoreRule) match(target string) bool {
	if r.re != nil {
		return r.re.MatchString(target)
	}
	ok, _ := path.Match(r.glob, target)
	return ok
}

func globstarRegexp(glob string) string {
	var b strings.Builder
	b.WriteByte('^')
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch {
		case c == '*' && strings.HasPrefix(glob[i:], "**/"):
			b.WriteString("(?:.*/)?")
			i += 2
		case c == '*' && strings.HasPrefix(glob[i:], "**"):
			b.WriteString(".*")
			i++
		case c == '*':
			b.WriteString("[^/]*")
		case c == '?':
			b.WriteString("[^/]")
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	b.WriteByte('$')
	return b.String()
}
