package contenttype

import "strings"

// Label source strings
const (
	msgAddNew           = "Add New %s"
	msgEditItem         = "Edit %s"
	msgNewItem          = "New %s"
	msgAllItems         = "All %s"
	msgViewItem         = "View %s"
	msgSearchItems      = "Search %s"
	msgNotFound         = "No %s"
	msgNotFoundInTrash  = "No %s found in Trash"
	msgParentItemColon  = "Parent %s:"
	msgInsertIntoItem   = "Insert into %s"
	msgUploadedToItem   = "Uploaded to this %s"
	msgItemsList        = "%s list"
	msgItemsListNav     = "%s list navigation"
	msgFilterItemsList  = "Filter %s list"
	msgTitlePlaceholder = "%s Title"
)

// Labels derives the full label set from the singular and plural names,
// before any caller-supplied labels are applied.
func (f *Factory) Labels() Labels {
	return f.deriveLabels()
}

func (f *Factory) deriveLabels() Labels {
	t := f.translator
	singular, plural := f.singular, f.plural

	var parent any
	if f.Hierarchical() {
		parent = t.Sprintf(msgParentItemColon, singular)
	}

	return Labels{
		LabelName:               plural,
		LabelSingularName:       singular,
		LabelAddNew:             t.Sprintf(msgAddNew, singular),
		LabelAddNewItem:         t.Sprintf(msgAddNew, singular),
		LabelEditItem:           t.Sprintf(msgEditItem, singular),
		LabelNewItem:            t.Sprintf(msgNewItem, singular),
		LabelAllItems:           t.Sprintf(msgAllItems, plural),
		LabelViewItem:           t.Sprintf(msgViewItem, singular),
		LabelSearchItems:        t.Sprintf(msgSearchItems, plural),
		LabelNotFound:           t.Sprintf(msgNotFound, plural),
		LabelNotFoundInTrash:    t.Sprintf(msgNotFoundInTrash, plural),
		LabelParentItemColon:    parent,
		LabelMenuName:           plural,
		LabelInsertIntoItem:     t.Sprintf(msgInsertIntoItem, strings.ToLower(singular)),
		LabelUploadedToThisItem: t.Sprintf(msgUploadedToItem, strings.ToLower(singular)),
		LabelItemsList:          t.Sprintf(msgItemsList, plural),
		LabelItemsListNav:       t.Sprintf(msgItemsListNav, plural),
		LabelFilterItemsList:    t.Sprintf(msgFilterItemsList, strings.ToLower(plural)),
	}
}
