// Package feedback builds the XML a script filter prints for the launcher.
package feedback

import (
	"io"

	"github.com/beevik/etree"
)

// Icon types understood by the launcher.
const (
	IconTypeFile     = "fileicon"
	IconTypeFileType = "filetype"
)

// Modifier keys for alternate subtitles.
const (
	ModCmd   = "cmd"
	ModAlt   = "alt"
	ModCtrl  = "ctrl"
	ModShift = "shift"
	ModFn    = "fn"
)

// Item is one result row.
type Item struct {
	title        string
	subtitle     string
	modSubtitles map[string]string
	uid          string
	arg          string
	autocomplete string
	valid        bool
	itemType     string
	icon         string
	iconType     string
	copyText     string
	largeText    string
}

// Title sets the item title.
func (it *Item) Title(s string) *Item { it.title = s; return it }

// Subtitle sets the item subtitle.
func (it *Item) Subtitle(s string) *Item { it.subtitle = s; return it }

// ModSubtitle sets the subtitle shown while mod is held.
func (it *Item) ModSubtitle(mod, s string) *Item {
	if it.modSubtitles == nil {
		it.modSubtitles = map[string]string{}
	}
	it.modSubtitles[mod] = s
	return it
}

// UID lets the launcher learn the user's preferred results.
func (it *Item) UID(s string) *Item { it.uid = s; return it }

// Arg is passed to the next action when the item is actioned.
func (it *Item) Arg(s string) *Item { it.arg = s; return it }

// Autocomplete replaces the query when the item is tabbed.
func (it *Item) Autocomplete(s string) *Item { it.autocomplete = s; return it }

// Valid marks the item as actionable.
func (it *Item) Valid(b bool) *Item { it.valid = b; return it }

// Type sets the item type, e.g. "file".
func (it *Item) Type(s string) *Item { it.itemType = s; return it }

// Icon sets the icon path and its type ("" for an image file).
func (it *Item) Icon(path, iconType string) *Item {
	it.icon = path
	it.iconType = iconType
	return it
}

// Copytext is copied by cmd+c.
func (it *Item) Copytext(s string) *Item { it.copyText = s; return it }

// Largetext is shown by cmd+l.
func (it *Item) Largetext(s string) *Item { it.largeText = s; return it }

// Feedback is an ordered list of items.
type Feedback struct {
	items []*Item
}

// New returns empty feedback.
func New() *Feedback {
	return &Feedback{}
}

// NewItem appends an item titled title and returns it.
func (f *Feedback) NewItem(title string) *Item {
	it := &Item{title: title}
	f.items = append(f.items, it)
	return it
}

// Len returns the number of items.
func (f *Feedback) Len() int {
	return len(f.items)
}

// Clear drops all items.
func (f *Feedback) Clear() {
	f.items = nil
}

// Document renders the items as an etree document.
func (f *Feedback) Document() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement("items")

	for _, it := range f.items {
		el := root.CreateElement("item")
		if it.uid != "" {
			el.CreateAttr("uid", it.uid)
		}
		if it.arg != "" {
			el.CreateAttr("arg", it.arg)
		}
		if it.valid {
			el.CreateAttr("valid", "yes")
		} else {
			el.CreateAttr("valid", "no")
		}
		if it.autocomplete != "" {
			el.CreateAttr("autocomplete", it.autocomplete)
		}
		if it.itemType != "" {
			el.CreateAttr("type", it.itemType)
		}

		el.CreateElement("title").SetText(it.title)
		el.CreateElement("subtitle").SetText(it.subtitle)
		for _, mod := range []string{ModCmd, ModAlt, ModCtrl, ModShift, ModFn} {
			if s, ok := it.modSubtitles[mod]; ok {
				sub := el.CreateElement("subtitle")
				sub.CreateAttr("mod", mod)
				sub.SetText(s)
			}
		}
		if it.icon != "" {
			icon := el.CreateElement("icon")
			if it.iconType != "" {
				icon.CreateAttr("type", it.iconType)
			}
			icon.SetText(it.icon)
		}
		if it.copyText != "" {
			text := el.CreateElement("text")
			text.CreateAttr("type", "copy")
			text.SetText(it.copyText)
		}
		if it.largeText != "" {
			text := el.CreateElement("text")
			text.CreateAttr("type", "largetype")
			text.SetText(it.largeText)
		}
	}
	return doc
}

// WriteTo writes the XML document to w.
func (f *Feedback) WriteTo(w io.Writer) (int64, error) {
	doc := f.Document()
	doc.Indent(2)
	return doc.WriteTo(w)
}
