package codegen_test

import (
	"strings"
	"testing"

	"github.com/chazu/scfg/pkg/codegen"
	"github.com/chazu/scfg/pkg/scfg"
)

const sampleConfig = `hostname example.org
verbose
listen 0.0.0.0:6697 0.0.0.0:6698

upstream irc1
upstream irc2

tls {
	certificate /etc/ssl/cert.pem
	key /etc/ssl/key.pem
}

network freenode {
	nick goose
	channel '#go'
	channel '#scfg'
}

network oftc {
	nick gander
}
`

func generate(t *testing.T, src string, opts codegen.Options) *codegen.Result {
	t.Helper()
	doc, err := scfg.ParseString(src)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}
	result, err := codegen.Generate(doc, opts)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return result
}

// TestGenerate_Types tests the struct shapes inferred from a document.
func TestGenerate_Types(t *testing.T) {
	result := generate(t, sampleConfig, codegen.Options{})

	wantFragments := []string{
		"package config",
		"type Config struct",
		"Hostname string",
		"Verbose bool",
		"Listen []string",
		"Upstream []string",
		"Tls *ConfigTls",
		"Network []*ConfigNetwork",
		"type ConfigTls struct",
		"Certificate string",
		"Key string",
		"type ConfigNetwork struct",
		"Params []string",
		"Nick string",
		"Channel []string",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(result.Code, frag) {
			t.Errorf("generated code missing %q\n%s", frag, result.Code)
		}
	}

	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
}

// TestGenerate_Loaders tests the loader functions emitted alongside the
// types.
func TestGenerate_Loaders(t *testing.T) {
	result := generate(t, sampleConfig, codegen.Options{})

	wantFragments := []string{
		"func LoadConfig(doc *scfg.Document) (*Config, error)",
		"func loadConfig(doc *scfg.Document) (*Config, error)",
		"func loadConfigTls(doc *scfg.Document) (*Config",
		`doc.Contains("verbose")`,
		`doc.Get("hostname")`,
		`doc.GetAll("upstream")`,
		`doc.GetAll("network")`,
		"expected 1 parameter, got %d",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(result.Code, frag) {
			t.Errorf("generated code missing %q\n%s", frag, result.Code)
		}
	}
}

// TestGenerate_Options tests package and type name overrides.
func TestGenerate_Options(t *testing.T) {
	result := generate(t, "name value\n", codegen.Options{Package: "ircconf", TypeName: "Server"})

	for _, frag := range []string{
		"package ircconf",
		"type Server struct",
		"func LoadServer(doc *scfg.Document) (*Server, error)",
	} {
		if !strings.Contains(result.Code, frag) {
			t.Errorf("generated code missing %q\n%s", frag, result.Code)
		}
	}
}

// TestGenerate_Warnings tests schema shapes the generator cannot map
// onto fields.
func TestGenerate_Warnings(t *testing.T) {
	src := `{
	inner
}
mixed plain
mixed {
	inner
}
`
	result := generate(t, src, codegen.Options{})

	wantWarnings := []string{
		"anonymous block",
		"mixes blocks and plain directives",
	}
	for _, want := range wantWarnings {
		found := false
		for _, w := range result.Warnings {
			if strings.Contains(w, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing warning about %q, got %v", want, result.Warnings)
		}
	}
}

// TestGenerate_FieldNames tests kebab-case to CamelCase conversion.
func TestGenerate_FieldNames(t *testing.T) {
	src := "max-speed 320km/h\nlines-served a b\n2fa on\n"
	result := generate(t, src, codegen.Options{})

	for _, frag := range []string{
		"MaxSpeed string",
		"LinesServed []string",
		"N2fa string",
	} {
		if !strings.Contains(result.Code, frag) {
			t.Errorf("generated code missing %q\n%s", frag, result.Code)
		}
	}
}
