package contenttype

import (
	"html"
	"net/url"
	"strconv"
)

// Single-action message source strings
const (
	msgFieldUpdated      = "Custom field updated."
	msgFieldDeleted      = "Custom field deleted."
	msgUpdated           = "%s updated."
	msgRestored          = "%[1]s restored to revision from %[2]s"
	msgSaved             = "%s saved."
	msgUpdatedLink       = `%[1]s updated. <a href="%[2]s">View %[1]s</a>`
	msgPublishedLink     = `%[1]s published. <a href="%[2]s">View %[1]s</a>`
	msgSubmittedLink     = `%[1]s submitted. <a target="_blank" href="%[2]s">Preview %[1]s</a>`
	msgScheduledLink     = `%[1]s scheduled for: <strong>%[2]s</strong>. <a target="_blank" href="%[3]s">Preview %[1]s</a>`
	msgDraftUpdatedLink  = `%[1]s draft updated. <a target="_blank" href="%[2]s">Preview %[1]s</a>`
	msgPublished         = "%s published."
	msgSubmitted         = "%s submitted."
	msgScheduled         = "%[1]s scheduled for: <strong>%[2]s</strong>."
	msgDraftUpdated      = "%s draft updated."
	msgPublishDateLayout = "Jan 2, 2006 @ 15:04"
)

// Bulk-action message source strings, singular then plural. Arguments are
// the count, the singular label and the plural label. The count is passed
// pre-formatted so the printer does not group its digits.
const (
	msgBulkUpdatedOne    = "%[1]s %[2]s updated."
	msgBulkUpdatedMany   = "%[1]s %[3]s updated."
	msgBulkLockedOne     = "%[1]s %[2]s not updated, somebody is editing it."
	msgBulkLockedMany    = "%[1]s %[3]s not updated, somebody is editing them."
	msgBulkDeletedOne    = "%[1]s %[2]s permanently deleted."
	msgBulkDeletedMany   = "%[1]s %[3]s permanently deleted."
	msgBulkTrashedOne    = "%[1]s %[2]s moved to the Trash."
	msgBulkTrashedMany   = "%[1]s %[3]s moved to the Trash."
	msgBulkUntrashedOne  = "%[1]s %[2]s restored from the Trash."
	msgBulkUntrashedMany = "%[1]s %[3]s restored from the Trash."
)

var bulkForms = map[BulkOutcome][2]string{
	BulkUpdated:   {msgBulkUpdatedOne, msgBulkUpdatedMany},
	BulkLocked:    {msgBulkLockedOne, msgBulkLockedMany},
	BulkDeleted:   {msgBulkDeletedOne, msgBulkDeletedMany},
	BulkTrashed:   {msgBulkTrashedOne, msgBulkTrashedMany},
	BulkUntrashed: {msgBulkUntrashedOne, msgBulkUntrashedMany},
}

// TranslatableStrings returns every source string the factory passes through
// its Translator, for building catalogs.
func TranslatableStrings() []string {
	out := []string{
		msgAddNew, msgEditItem, msgNewItem, msgAllItems, msgViewItem,
		msgSearchItems, msgNotFound, msgNotFoundInTrash, msgParentItemColon,
		msgInsertIntoItem, msgUploadedToItem, msgItemsList, msgItemsListNav,
		msgFilterItemsList, msgTitlePlaceholder,
		msgFieldUpdated, msgFieldDeleted, msgUpdated, msgRestored, msgSaved,
		msgUpdatedLink, msgPublishedLink, msgSubmittedLink, msgScheduledLink,
		msgDraftUpdatedLink, msgPublished, msgSubmitted, msgScheduled,
		msgDraftUpdated, msgPublishDateLayout,
	}
	for _, outcome := range BulkOutcomes {
		forms := bulkForms[outcome]
		out = append(out, forms[0], forms[1])
	}
	return out
}

// SingleActionMessages writes this content type's notices into tables under
// its slug and returns tables. Entries for other slugs are left untouched.
//
// Slots 2, 3, 4, 5 and 7 are always present; slot 5 is NoMessage unless a
// revision is being restored. Slots 1, 6, 8, 9 and 10 link to the item only
// when the content type is public. Labels are interpolated as given, like
// every other label-derived string; URLs, the revision and the date are
// HTML-escaped.
func (f *Factory) SingleActionMessages(tables MessageTables, mc MessageContext) MessageTables {
	if tables == nil {
		tables = MessageTables{}
	}

	t := f.translator
	singular := f.singular

	table := MessageTable{
		0: Text(""),
		2: Text(t.Sprintf(msgFieldUpdated)),
		3: Text(t.Sprintf(msgFieldDeleted)),
		4: Text(t.Sprintf(msgUpdated, singular)),
		5: NoMessage,
		7: Text(t.Sprintf(msgSaved, singular)),
	}
	if mc.Revision != "" {
		table[5] = Text(t.Sprintf(msgRestored, singular, html.EscapeString(mc.Revision)))
	}

	date := html.EscapeString(f.dateFormatter.FormatDate(t.Sprintf(msgPublishDateLayout), mc.PublishedAt))

	if f.ResolveArguments().Bool(ArgPublic) {
		permalink := f.permalink(mc)
		preview := html.EscapeString(previewURL(permalink))
		link := html.EscapeString(permalink)

		table[1] = Text(t.Sprintf(msgUpdatedLink, singular, link))
		table[6] = Text(t.Sprintf(msgPublishedLink, singular, link))
		table[8] = Text(t.Sprintf(msgSubmittedLink, singular, preview))
		table[9] = Text(t.Sprintf(msgScheduledLink, singular, date, link))
		table[10] = Text(t.Sprintf(msgDraftUpdatedLink, singular, preview))
	} else {
		table[1] = Text(t.Sprintf(msgUpdated, singular))
		table[6] = Text(t.Sprintf(msgPublished, singular))
		table[8] = Text(t.Sprintf(msgSubmitted, singular))
		table[9] = Text(t.Sprintf(msgScheduled, singular, date))
		table[10] = Text(t.Sprintf(msgDraftUpdated, singular))
	}

	tables[f.slug] = table
	return tables
}

// BulkActionMessages writes this content type's bulk notices into tables
// under its slug and returns tables. Missing counts are treated as zero.
func (f *Factory) BulkActionMessages(tables BulkMessageTables, counts BulkCounts) BulkMessageTables {
	if tables == nil {
		tables = BulkMessageTables{}
	}

	messages := make(BulkMessages, len(BulkOutcomes))
	for _, outcome := range BulkOutcomes {
		forms := bulkForms[outcome]
		count := counts[outcome]
		messages[outcome] = f.translator.Plural(count, forms[0], forms[1], strconv.Itoa(count), f.singular, f.plural)
	}

	tables[f.slug] = messages
	return tables
}

// TitlePlaceholder returns "<Singular> Title" when screen belongs to this
// content type and defaultText otherwise.
func (f *Factory) TitlePlaceholder(defaultText string, screen Screen) string {
	if screen.ContentType != f.slug {
		return defaultText
	}
	return f.translator.Sprintf(msgTitlePlaceholder, f.singular)
}

func (f *Factory) permalink(mc MessageContext) string {
	if mc.Permalinks == nil {
		return ""
	}
	return mc.Permalinks.Permalink(mc.ItemID)
}

func previewURL(permalink string) string {
	u, err := url.Parse(permalink)
	if err != nil {
		return permalink
	}
	q := u.Query()
	q.Set("preview", "true")
	u.RawQuery = q.Encode()
	return u.String()
}
