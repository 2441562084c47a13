package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fwojciec/symdex"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	set, err := findSet(deps, c.Name)
	if err != nil {
		return err
	}

	idx, err := deps.Entries.LoadIndex(deps.Ctx, set.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	entry, ok := idx.Lookup(symdex.NormalizeKey(c.Key))
	if !ok {
		fmt.Fprintf(deps.Stderr, "error: symbol %q not found in %q. Use 'symdex query' to search by prefix.\n", c.Key, c.Name)
		return symdex.Errorf(symdex.ENOTFOUND, "symbol %q not found", c.Key)
	}
	if c.Ref < 0 || c.Ref >= len(entry.References) {
		fmt.Fprintf(deps.Stderr, "error: %s has %d references, --ref must be below that\n", entry.Label, len(entry.References))
		return symdex.Errorf(symdex.EINVALID, "reference %d out of range", c.Ref)
	}
	ref := entry.References[c.Ref]

	base := c.Base
	if base == "" {
		base = sourceDir(set.SourceURL)
	}
	pageURL, anchor, err := resolveRef(base, ref.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	page, err := deps.Fetcher.Fetch(deps.Ctx, pageURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	member, err := deps.Members.Extract(page, anchor)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	md, err := deps.NewConverter(pageURL).Convert(member.ContentHTML)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
		return err
	}

	title := member.Title
	if title == "" {
		title = ref.Label
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if owner := displayOwner(ref.Owner); owner != "" {
		fmt.Fprintf(&b, "%s  \n", owner)
	}
	fmt.Fprintf(&b, "<%s>\n\n%s\n", pageURL, md)

	out := b.String()
	if deps.Renderer != nil {
		if out, err = deps.Renderer.Render(out); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", symdex.ErrorMessage(err))
			return err
		}
	}
	fmt.Fprint(deps.Stdout, out)
	return nil
}

// sourceDir returns the directory relative references of a set resolve
// against: the set source itself when it is a directory, or the directory
// holding it when it names a file. Search data links are relative to the
// search directory ("../class_x.html"); tag file links to the
// documentation root the tag file was loaded with.
func sourceDir(source string) string {
	u, err := url.Parse(source)
	if err != nil || source == "" {
		return ""
	}

	p := u.Path
	last := p[strings.LastIndex(p, "/")+1:]
	switch {
	case strings.Contains(last, "."):
		p = strings.TrimSuffix(p, last)
	case last != "":
		p += "/"
	}
	if p == "" {
		return ""
	}

	u.Path = p
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// resolveRef joins a reference URL to base and splits off its anchor.
func resolveRef(base, refURL string) (page, anchor string, err error) {
	ref, err := url.Parse(refURL)
	if err != nil {
		return "", "", symdex.Errorf(symdex.EINVALID, "invalid reference URL %q", refURL)
	}
	anchor = ref.Fragment
	ref.Fragment = ""

	if ref.IsAbs() || base == "" {
		return ref.String(), anchor, nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", "", symdex.Errorf(symdex.EINVALID, "invalid base URL %q", base)
	}
	return b.ResolveReference(ref).String(), anchor, nil
}
