package registry

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleDoc = `# Sigma pin configuration
Some preamble text.

## LLM Endpoints ##:
- [A](http://a)
- [B](http://b)
`

func TestParseBasic(t *testing.T) {
	got := Parse(sampleDoc)
	want := Registry{
		{Name: "A", URL: "http://a"},
		{Name: "B", URL: "http://b"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse returned %v, want %v", got, want)
	}
}

func TestParseIdempotent(t *testing.T) {
	first := Parse(sampleDoc)
	second := Parse(sampleDoc)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parsing twice differed: %v vs %v", first, second)
	}
}

func TestParseMissingHeading(t *testing.T) {
	got := Parse("## Other Section\n- [A](http://a)\n")
	if len(got) != 0 {
		t.Errorf("expected empty registry, got %v", got)
	}
}

func TestParseEmpty(t *testing.T) {
	if got := Parse(""); len(got) != 0 {
		t.Errorf("expected empty registry, got %v", got)
	}
}

func TestParseHeadingTolerance(t *testing.T) {
	docs := []string{
		"## llm endpoints\n- [A](http://a)\n",
		"## LLM ENDPOINTS:\n- [A](http://a)\n",
		"##   LLM   Endpoints  # # :\n- [A](http://a)\n",
		"##LLM Endpoints\n- [A](http://a)\n",
	}
	for _, doc := range docs {
		got := Parse(doc)
		if len(got) != 1 || got[0].Name != "A" {
			t.Errorf("doc %q: got %v, want one endpoint A", doc, got)
		}
	}
}

func TestParseBalancedParens(t *testing.T) {
	doc := "## LLM Endpoints\n- [Proxy](https://example.com/path(v1))\n"
	got := Parse(doc)
	if len(got) != 1 {
		t.Fatalf("got %d endpoints, want 1", len(got))
	}
	if got[0].URL != "https://example.com/path(v1)" {
		t.Errorf("URL = %q, want nested parens preserved", got[0].URL)
	}
}

func TestParseURLWhitespacePreserved(t *testing.T) {
	doc := "## LLM Endpoints\n- [Pad](  https://pad.example  )\n"
	got := Parse(doc)
	if len(got) != 1 {
		t.Fatalf("got %d endpoints, want 1", len(got))
	}
	if got[0].URL != "  https://pad.example  " {
		t.Errorf("URL = %q, want interior whitespace verbatim", got[0].URL)
	}
}

func TestParseBulletVariants(t *testing.T) {
	doc := `## LLM Endpoints
- [Dash](http://dash)
* [Star](http://star)
+ [Plus](http://plus)
-[Tight](http://tight)
- no link here
- [Broken](http://unclosed
- [Scheme](ftp://nope)
- [Blank](   )
`
	got := Parse(doc)
	want := []string{"Dash", "Star", "Plus", "Tight"}
	if !reflect.DeepEqual(got.Names(), want) {
		t.Errorf("names = %v, want %v", got.Names(), want)
	}
}

func TestParseSectionTermination(t *testing.T) {
	doc := `# leading comment
## LLM Endpoints
### local models
- [A](http://a)
# closing note
- [B](http://b)
`
	got := Parse(doc)
	if !reflect.DeepEqual(got.Names(), []string{"A"}) {
		t.Errorf("names = %v, want [A]: single-# heading should end the section once entries exist", got.Names())
	}
}

func TestParseOtherSectionTerminates(t *testing.T) {
	doc := `## LLM Endpoints
- [A](http://a)
## Notes
- [B](http://b)
`
	got := Parse(doc)
	if !reflect.DeepEqual(got.Names(), []string{"A"}) {
		t.Errorf("names = %v, want [A]", got.Names())
	}
}

func TestParseDuplicateNamesKept(t *testing.T) {
	doc := `## LLM Endpoints
- [Dup](http://first)
- [dup](http://second)
`
	got := Parse(doc)
	if len(got) != 2 {
		t.Fatalf("got %d endpoints, want both duplicates", len(got))
	}
	ep, err := got.Resolve("DUP", "", false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ep.URL != "http://first" {
		t.Errorf("lookup returned %q, want first match", ep.URL)
	}
}

func TestResolveDefault(t *testing.T) {
	reg := Parse(sampleDoc)
	ep, err := reg.Resolve("", "", false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ep.Name != "A" || ep.URL != "http://a" {
		t.Errorf("got %v, want first entry A", ep)
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	reg := Parse(sampleDoc)
	ep, err := reg.Resolve("b", "", false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ep.Name != "B" || ep.URL != "http://b" {
		t.Errorf("got %v, want stored-case B", ep)
	}
}

func TestResolveTrimsName(t *testing.T) {
	reg := Parse(sampleDoc)
	ep, err := reg.Resolve("  b  ", "", false)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ep.Name != "B" {
		t.Errorf("got %v, want B", ep)
	}
}

func TestResolveWhitespaceName(t *testing.T) {
	reg := Parse(sampleDoc)
	if _, err := reg.Resolve("   ", "", false); !errors.Is(err, ErrEmptyName) {
		t.Errorf("err = %v, want ErrEmptyName", err)
	}
}

func TestResolveUnknownName(t *testing.T) {
	reg := Parse(sampleDoc)
	_, err := reg.Resolve("missing", "", false)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if nf.Name != "missing" || nf.Override {
		t.Errorf("unexpected NotFoundError fields: %+v", nf)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound should be true for unknown names")
	}
}

func TestResolveEmptyRegistry(t *testing.T) {
	var reg Registry
	if _, err := reg.Resolve("", "", false); !errors.Is(err, ErrNoEndpoints) {
		t.Errorf("err = %v, want ErrNoEndpoints", err)
	}
	if _, err := reg.Resolve("a", "", false); !IsNotFound(err) {
		t.Errorf("err = %v, want not-found class", err)
	}
}

func TestResolveOverride(t *testing.T) {
	reg := Parse(sampleDoc)

	ep, err := reg.Resolve("", "b", true)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ep.Name != "B" {
		t.Errorf("got %v, want B via override", ep)
	}

	if _, err := reg.Resolve("", "   ", true); !errors.Is(err, ErrEmptyOverride) {
		t.Errorf("err = %v, want ErrEmptyOverride", err)
	}

	_, err = reg.Resolve("", "ghost", true)
	var nf *NotFoundError
	if !errors.As(err, &nf) || !nf.Override {
		t.Errorf("err = %v, want override NotFoundError", err)
	}
}

func TestResolveNameBeatsOverride(t *testing.T) {
	reg := Parse(sampleDoc)
	ep, err := reg.Resolve("a", "b", true)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if ep.Name != "A" {
		t.Errorf("got %v, want explicit name to win", ep)
	}
}

func TestLoadMissingFile(t *testing.T) {
	reg, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	if err != nil {
		t.Fatalf("Load of missing file should not error, got %v", err)
	}
	if len(reg) != 0 {
		t.Errorf("expected empty registry, got %v", reg)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llms.txt")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	reg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(reg.Names(), []string{"A", "B"}) {
		t.Errorf("names = %v, want [A B]", reg.Names())
	}
}
