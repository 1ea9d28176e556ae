// Package codegen generates Go bindings from scfg documents.
//
// A parsed document is treated as a schema: every directive name becomes
// a struct field, child blocks become nested struct types, and repeated
// names become slices. The generated file also contains loader functions
// that populate the structs from a *scfg.Document at runtime, validating
// parameter counts as they go.
package codegen

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/dave/jennifer/jen"

	"github.com/chazu/scfg/pkg/scfg"
)

const scfgPkg = "github.com/chazu/scfg/pkg/scfg"

// Options controls code generation.
type Options struct {
	// Package is the package name of the generated file. Defaults to
	// "config".
	Package string
	// TypeName is the name of the root struct. Defaults to "Config".
	TypeName string
}

// Result contains the generated source and any warnings.
type Result struct {
	Code     string
	Warnings []string
}

// fieldKind classifies how a directive name maps onto a Go field.
type fieldKind int

const (
	kindFlag           fieldKind = iota // zero-param directive -> bool
	kindString                          // one occurrence, one param -> string
	kindStringList                      // one occurrence, several params -> []string
	kindRepeatedString                  // several occurrences, one param each -> []string
	kindParamsList                      // several occurrences, varying params -> [][]string
	kindBlock                           // child block -> nested struct
)

type field struct {
	name     string // scfg directive name
	goName   string
	kind     fieldKind
	repeated bool
	strct    *structType // set for kindBlock
}

type structType struct {
	goName    string
	hasParams bool // emit a Params []string field for the block line's own params
	fields    []*field
}

type generator struct {
	opts      Options
	warnings  []string
	structs   []*structType // emission order, root first
	typeNames map[string]bool
}

// Generate produces Go source from an scfg document schema.
func Generate(doc *scfg.Document, opts Options) (*Result, error) {
	if opts.Package == "" {
		opts.Package = "config"
	}
	if opts.TypeName == "" {
		opts.TypeName = "Config"
	}

	g := &generator{opts: opts, typeNames: map[string]bool{}}
	root := g.buildStruct(opts.TypeName, []*scfg.Document{doc})

	f := jen.NewFile(opts.Package)
	f.HeaderComment("Code generated by scfg gen. DO NOT EDIT.")

	for _, st := range g.structs {
		g.emitType(f, st)
	}
	g.emitRootLoader(f, root)
	for _, st := range g.structs {
		g.emitLoader(f, st)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("rendering generated code: %w", err)
	}
	return &Result{Code: buf.String(), Warnings: g.warnings}, nil
}

func (g *generator) warnf(format string, args ...interface{}) {
	g.warnings = append(g.warnings, fmt.Sprintf(format, args...))
}

// buildStruct infers a struct from one or more documents. Several
// documents appear when a repeated block's children are merged into a
// single schema.
func (g *generator) buildStruct(goName string, docs []*scfg.Document) *structType {
	st := &structType{goName: g.claimTypeName(goName)}
	g.structs = append(g.structs, st)

	// Merge the documents. A name counts as repeated only when a single
	// document holds it more than once; one occurrence per merged
	// document is still a singular field.
	var names []string
	seen := map[string]bool{}
	buckets := map[string][]*scfg.Directive{}
	repeated := map[string]bool{}
	for _, doc := range docs {
		for _, name := range doc.Names() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			bucket := doc.GetAll(name)
			if len(bucket) > 1 {
				repeated[name] = true
			}
			buckets[name] = append(buckets[name], bucket...)
		}
	}

	usedFields := map[string]bool{}
	for _, name := range names {
		if name == "" {
			g.warnf("skipping anonymous block: not representable as a struct field")
			continue
		}
		goField := goFieldName(name)
		if goField == "" {
			g.warnf("skipping directive %q: no usable field name", name)
			continue
		}
		if usedFields[goField] {
			g.warnf("skipping directive %q: field name %s already taken", name, goField)
			continue
		}
		usedFields[goField] = true

		st.fields = append(st.fields, g.buildField(st, name, goField, buckets[name], repeated[name]))
	}
	return st
}

func (g *generator) buildField(parent *structType, name, goField string, dirs []*scfg.Directive, repeated bool) *field {
	f := &field{name: name, goName: goField, repeated: repeated}

	var children []*scfg.Document
	plain := 0
	hasParams := false
	for _, dir := range dirs {
		if dir.Child() != nil {
			children = append(children, dir.Child())
			if len(dir.Params()) > 0 {
				hasParams = true
			}
		} else {
			plain++
		}
	}

	if len(children) > 0 {
		if plain > 0 {
			g.warnf("directive %q mixes blocks and plain directives; plain occurrences are ignored", name)
		}
		f.kind = kindBlock
		f.repeated = repeated || len(children) > 1
		f.strct = g.buildStruct(parent.goName+goField, children)
		f.strct.hasParams = hasParams
		return f
	}

	allZero, allOne := true, true
	for _, dir := range dirs {
		if len(dir.Params()) != 0 {
			allZero = false
		}
		if len(dir.Params()) != 1 {
			allOne = false
		}
	}

	switch {
	case allZero:
		f.kind = kindFlag
	case !f.repeated && allOne:
		f.kind = kindString
	case !f.repeated:
		f.kind = kindStringList
	case allOne:
		f.kind = kindRepeatedString
	default:
		f.kind = kindParamsList
	}
	return f
}

func (g *generator) claimTypeName(name string) string {
	claimed := name
	for i := 2; g.typeNames[claimed]; i++ {
		claimed = fmt.Sprintf("%s%d", name, i)
	}
	if claimed != name {
		g.warnf("type name %s already taken, using %s", name, claimed)
	}
	g.typeNames[claimed] = true
	return claimed
}

func (g *generator) emitType(f *jen.File, st *structType) {
	var fields []jen.Code
	if st.hasParams {
		fields = append(fields, jen.Id("Params").Index().String())
	}
	for _, fld := range st.fields {
		fields = append(fields, jen.Id(fld.goName).Add(fieldType(fld)))
	}
	f.Type().Id(st.goName).Struct(fields...)
}

func fieldType(fld *field) jen.Code {
	switch fld.kind {
	case kindFlag:
		return jen.Bool()
	case kindString:
		return jen.String()
	case kindStringList, kindRepeatedString:
		return jen.Index().String()
	case kindParamsList:
		return jen.Index().Index().String()
	case kindBlock:
		if fld.repeated {
			return jen.Index().Op("*").Id(fld.strct.goName)
		}
		return jen.Op("*").Id(fld.strct.goName)
	}
	panic("unreachable")
}

// emitRootLoader generates the exported entry point wrapping the root
// struct's loader.
func (g *generator) emitRootLoader(f *jen.File, root *structType) {
	f.Comment("Load" + root.goName + " populates a " + root.goName + " from a parsed scfg document.")
	f.Func().Id("Load"+root.goName).
		Params(jen.Id("doc").Op("*").Qual(scfgPkg, "Document")).
		Params(jen.Op("*").Id(root.goName), jen.Error()).
		Block(jen.Return(jen.Id("load" + root.goName).Call(jen.Id("doc"))))
}

func (g *generator) emitLoader(f *jen.File, st *structType) {
	stmts := []jen.Code{
		jen.Id("out").Op(":=").Op("&").Id(st.goName).Values(),
	}
	for _, fld := range st.fields {
		stmts = append(stmts, loaderStmt(fld))
	}
	stmts = append(stmts, jen.Return(jen.Id("out"), jen.Nil()))

	f.Func().Id("load"+st.goName).
		Params(jen.Id("doc").Op("*").Qual(scfgPkg, "Document")).
		Params(jen.Op("*").Id(st.goName), jen.Error()).
		Block(stmts...)
}

// paramCountCheck guards a directive that must carry exactly one
// parameter.
func paramCountCheck(name string) jen.Code {
	return jen.If(jen.Len(jen.Id("dir").Dot("Params").Call()).Op("!=").Lit(1)).Block(
		jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(
			jen.Lit(name+": expected 1 parameter, got %d"),
			jen.Len(jen.Id("dir").Dot("Params").Call()),
		)),
	)
}

func copiedParams() *jen.Statement {
	return jen.Append(jen.Index().String().Parens(jen.Nil()), jen.Id("dir").Dot("Params").Call().Op("..."))
}

func loaderStmt(fld *field) jen.Code {
	out := func() *jen.Statement { return jen.Id("out").Dot(fld.goName) }

	switch fld.kind {
	case kindFlag:
		return out().Op("=").Id("doc").Dot("Contains").Call(jen.Lit(fld.name))

	case kindString:
		return jen.If(
			jen.Id("dir").Op(":=").Id("doc").Dot("Get").Call(jen.Lit(fld.name)),
			jen.Id("dir").Op("!=").Nil(),
		).Block(
			paramCountCheck(fld.name),
			out().Op("=").Id("dir").Dot("Params").Call().Index(jen.Lit(0)),
		)

	case kindStringList:
		return jen.If(
			jen.Id("dir").Op(":=").Id("doc").Dot("Get").Call(jen.Lit(fld.name)),
			jen.Id("dir").Op("!=").Nil(),
		).Block(
			out().Op("=").Add(copiedParams()),
		)

	case kindRepeatedString:
		return jen.For(
			jen.List(jen.Id("_"), jen.Id("dir")).Op(":=").Range().Id("doc").Dot("GetAll").Call(jen.Lit(fld.name)),
		).Block(
			paramCountCheck(fld.name),
			out().Op("=").Append(out(), jen.Id("dir").Dot("Params").Call().Index(jen.Lit(0))),
		)

	case kindParamsList:
		return jen.For(
			jen.List(jen.Id("_"), jen.Id("dir")).Op(":=").Range().Id("doc").Dot("GetAll").Call(jen.Lit(fld.name)),
		).Block(
			out().Op("=").Append(out(), copiedParams()),
		)

	case kindBlock:
		loadChild := []jen.Code{
			jen.List(jen.Id("v"), jen.Err()).Op(":=").Id("load" + fld.strct.goName).Call(jen.Id("dir").Dot("Child").Call()),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Nil(), jen.Err())),
		}
		if fld.strct.hasParams {
			loadChild = append(loadChild,
				jen.Id("v").Dot("Params").Op("=").Add(copiedParams()),
			)
		}
		if fld.repeated {
			loadChild = append(loadChild,
				out().Op("=").Append(out(), jen.Id("v")),
			)
			return jen.For(
				jen.List(jen.Id("_"), jen.Id("dir")).Op(":=").Range().Id("doc").Dot("GetAll").Call(jen.Lit(fld.name)),
			).Block(append([]jen.Code{
				jen.If(jen.Id("dir").Dot("Child").Call().Op("==").Nil()).Block(jen.Continue()),
			}, loadChild...)...)
		}
		loadChild = append(loadChild, out().Op("=").Id("v"))
		return jen.If(
			jen.Id("dir").Op(":=").Id("doc").Dot("Get").Call(jen.Lit(fld.name)),
			jen.Id("dir").Op("!=").Nil().Op("&&").Id("dir").Dot("Child").Call().Op("!=").Nil(),
		).Block(loadChild...)
	}
	panic("unreachable")
}

// goFieldName converts an scfg directive name into an exported Go
// identifier: kebab-case and dotted names become CamelCase, anything
// that is not a letter or digit acts as a word separator.
func goFieldName(name string) string {
	var sb strings.Builder
	upperNext := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upperNext = true
			continue
		}
		if upperNext {
			sb.WriteRune(unicode.ToUpper(r))
			upperNext = false
		} else {
			sb.WriteRune(r)
		}
	}
	s := sb.String()
	if s == "" {
		return ""
	}
	if unicode.IsDigit(rune(s[0])) {
		s = "N" + s
	}
	return s
}
