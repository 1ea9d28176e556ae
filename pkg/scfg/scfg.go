// Package scfg parses and serializes simple line-oriented configuration
// documents. Every line holds at most one directive: a name, optional
// whitespace-separated parameters, and an optional child block delimited
// by { and }. Leading whitespace is insignificant and lines beginning
// with # are comments.
//
// A Document is an ordered multimap from directive name to the directives
// sharing that name. Directives under one name always keep insertion
// order; iteration order of the names themselves is chosen when the
// document is created, either sorted lexically (the default) or in order
// of first insertion.
//
// Documents come from Parse or from the builder API:
//
//	doc := scfg.NewDocument()
//	train := doc.Add("train").AppendParam("Shinkansen").GetOrCreateChild()
//	train.Add("max-speed").AppendParam("320km/h")
//
// Neither Add nor AppendParam validates its argument; a name or parameter
// containing control characters or newlines produces a document that
// serializes but cannot be parsed back.
package scfg

import (
	"sort"
	"strings"
)

// Ordering selects how a Document iterates its directive names.
type Ordering int

const (
	// SortKeys iterates names in lexical order.
	SortKeys Ordering = iota
	// PreserveOrder iterates names in order of first insertion.
	PreserveOrder
)

// Option configures a Document at construction time.
type Option func(*Document)

// WithOrdering selects the name iteration order for the document and for
// every child document created under it.
func WithOrdering(o Ordering) Option {
	return func(d *Document) {
		d.ordering = o
	}
}

// Document is an ordered multimap of directive name to directives.
// It is not safe for concurrent mutation; callers needing that must
// synchronize externally.
type Document struct {
	ordering Ordering
	names    []string
	buckets  map[string][]*Directive
}

// NewDocument creates an empty document.
func NewDocument(opts ...Option) *Document {
	d := &Document{buckets: make(map[string][]*Directive)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Get retrieves the first directive with the given name, or nil if the
// name is absent.
func (d *Document) Get(name string) *Directive {
	bucket := d.buckets[name]
	if len(bucket) == 0 {
		return nil
	}
	return bucket[0]
}

// GetAll retrieves every directive with the given name, in insertion
// order, or nil if the name is absent. The returned slice is the live
// bucket: mutating the directives through it mutates the document.
func (d *Document) GetAll(name string) []*Directive {
	return d.buckets[name]
}

// Contains reports whether the document has a directive with the given
// name.
func (d *Document) Contains(name string) bool {
	_, ok := d.buckets[name]
	return ok
}

// Add appends a new empty directive under name, creating the bucket if
// needed, and returns it for chained mutation.
//
// Add does not validate that name is a legal scfg word. It is possible
// to create unparsable documents should name contain control characters
// or newlines.
func (d *Document) Add(name string) *Directive {
	dir := &Directive{ordering: d.ordering}
	d.addDirective(name, dir)
	return dir
}

func (d *Document) addDirective(name string, dir *Directive) {
	if _, ok := d.buckets[name]; !ok {
		d.insertName(name)
	}
	d.buckets[name] = append(d.buckets[name], dir)
}

func (d *Document) insertName(name string) {
	if d.ordering == PreserveOrder {
		d.names = append(d.names, name)
		return
	}
	i := sort.SearchStrings(d.names, name)
	d.names = append(d.names, "")
	copy(d.names[i+1:], d.names[i:])
	d.names[i] = name
}

// Remove deletes every directive with the given name, returning the
// removed bucket, or nil if the name is absent.
func (d *Document) Remove(name string) []*Directive {
	bucket, ok := d.buckets[name]
	if !ok {
		return nil
	}
	delete(d.buckets, name)
	for i, n := range d.names {
		if n == name {
			d.names = append(d.names[:i], d.names[i+1:]...)
			break
		}
	}
	return bucket
}

// Names returns the directive names in the document's iteration order.
func (d *Document) Names() []string {
	names := make([]string, len(d.names))
	copy(names, d.names)
	return names
}

// Len returns the total number of directives in the document, counting
// every entry of every bucket.
func (d *Document) Len() int {
	n := 0
	for _, bucket := range d.buckets {
		n += len(bucket)
	}
	return n
}

// Equal reports whether two documents hold the same directives. Buckets
// are compared element-wise in insertion order; the iteration order of
// the names themselves does not participate, so a sorted and an
// insertion-ordered document with the same contents are equal.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	if len(d.buckets) != len(other.buckets) {
		return false
	}
	for name, bucket := range d.buckets {
		theirs, ok := other.buckets[name]
		if !ok || len(bucket) != len(theirs) {
			return false
		}
		for i, dir := range bucket {
			if !dir.Equal(theirs[i]) {
				return false
			}
		}
	}
	return true
}

// String returns the serialized document text.
func (d *Document) String() string {
	var sb strings.Builder
	// writes to a strings.Builder cannot fail
	_ = d.Write(&sb)
	return sb.String()
}

// Directive is a single named entry: ordered parameters plus an optional
// child document. A directive exclusively owns its child.
type Directive struct {
	params   []string
	child    *Document
	ordering Ordering
}

// NewDirective creates a new empty directive.
func NewDirective() *Directive {
	return &Directive{}
}

// Params returns the directive's parameters. The returned slice is the
// directive's own storage; callers must not append to it.
func (dir *Directive) Params() []string {
	return dir.params
}

// AppendParam appends a parameter and returns the directive for chained
// mutation.
//
// AppendParam does not validate that param is a legal scfg word. It is
// possible to create unparsable documents should param contain control
// characters or newlines.
func (dir *Directive) AppendParam(param string) *Directive {
	dir.params = append(dir.params, param)
	return dir
}

// ClearParams removes all parameters from the directive.
func (dir *Directive) ClearParams() {
	dir.params = nil
}

// Child returns the directive's child document, or nil if it has none.
func (dir *Directive) Child() *Document {
	return dir.child
}

// TakeChild detaches and returns the child document, leaving the
// directive childless. Returns nil if there was no child.
func (dir *Directive) TakeChild() *Document {
	child := dir.child
	dir.child = nil
	return child
}

// GetOrCreateChild returns the child document, creating an empty one
// with the directive's ordering mode on first call. Subsequent calls
// return the same child.
func (dir *Directive) GetOrCreateChild() *Document {
	if dir.child == nil {
		dir.child = NewDocument(WithOrdering(dir.ordering))
	}
	return dir.child
}

// Equal reports whether two directives have the same parameters in the
// same order and equal children.
func (dir *Directive) Equal(other *Directive) bool {
	if dir == nil || other == nil {
		return dir == other
	}
	if len(dir.params) != len(other.params) {
		return false
	}
	for i, p := range dir.params {
		if p != other.params[i] {
			return false
		}
	}
	if (dir.child == nil) != (other.child == nil) {
		return false
	}
	if dir.child != nil {
		return dir.child.Equal(other.child)
	}
	return true
}
