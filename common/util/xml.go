package util

import (
	"regexp"

	"github.com/beevik/etree"
)

// xml11DeclarationRegex matches an XML 1.1 declaration, which Jenkins writes at the top of every
// config.xml but encoding/xml refuses to read.
var xml11DeclarationRegex = regexp.MustCompile(`^(\s*<\?xml\s[^>]*?version\s*=\s*["'])1\.1(["'])`)

// ReadXMLDocument parses data into an element tree. XML 1.1 documents are read as XML 1.0; nothing
// Jenkins writes depends on the difference.
func ReadXMLDocument(data []byte) (*etree.Document, error) {
	data = xml11DeclarationRegex.ReplaceAll(data, []byte("${1}1.0${2}"))
	doc := etree.NewDocument()
	err := doc.ReadFromBytes(data)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// FirstDescendant returns the first element below el (el itself excluded) tagged tag, in document
// order, or nil if there is none.
func FirstDescendant(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.FullTag() == tag {
			return child
		}
		if found := FirstDescendant(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// Descendants returns every element below el (el itself excluded) tagged tag, in document order.
func Descendants(el *etree.Element, tag string) []*etree.Element {
	var found []*etree.Element
	var walk func(parent *etree.Element)
	walk = func(parent *etree.Element) {
		for _, child := range parent.ChildElements() {
			if child.FullTag() == tag {
				found = append(found, child)
			}
			walk(child)
		}
	}
	walk(el)
	return found
}

// NestedDescendants returns every element tagged tag that sits somewhere below an element tagged
// ancestor, which in turn sits below el. Each element is returned once, in document order, even when
// ancestor elements are nested inside one another.
func NestedDescendants(el *etree.Element, ancestor string, tag string) []*etree.Element {
	var found []*etree.Element
	var walk func(parent *etree.Element, inside bool)
	walk = func(parent *etree.Element, inside bool) {
		for _, child := range parent.ChildElements() {
			if inside && child.FullTag() == tag {
				found = append(found, child)
			}
			walk(child, inside || child.FullTag() == ancestor)
		}
	}
	walk(el, false)
	return found
}

// ChildText returns the text of the first direct child of el tagged tag, and false if el has no
// such child.
func ChildText(el *etree.Element, tag string) (string, bool) {
	child := el.SelectElement(tag)
	if child == nil {
		return "", false
	}
	return child.Text(), true
}
