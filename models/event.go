package models

// Event is one entry of a session's append-only event log. Events arrive as
// loosely-typed maps with short keys ("e" type tag, "t" millisecond timestamp
// relative to session start, plus type-specific fields). The accessors coerce
// defensively: a missing or malformed field reads as its zero value, never as
// an error.
type Event map[string]any

// Recognized event type tags.
const (
	EventViewPage       = "view_page"
	EventView           = "view"
	EventARStart        = "ar_start"
	EventAREnd          = "ar_end"
	EventCartAddDetail  = "cart_add_detail"
	EventCartAddGallery = "cart_add_gallery"
	EventCartRemove     = "cart_remove"
	EventScrollToBottom = "scroll_to_bottom"
	EventGroupAssigned  = "group_assigned"
)

func (e Event) Type() string {
	s, _ := AsString(e["e"])
	return s
}

// Timestamp returns the event's millisecond offset from session start.
func (e Event) Timestamp() float64 {
	f, _ := AsFloat(e["t"])
	return f
}

// Page returns the page name of a view_page event ("gallery", "detail", ...).
func (e Event) Page() string {
	s, _ := AsString(e["p"])
	return s
}

// ProductID returns the integer product id carried in "p". The second return
// is false when the field is absent or fails integer coercion.
func (e Event) ProductID() (int, bool) { return AsInt(e["p"]) }

// DurationMs returns the "d" field of an ar_end event, in milliseconds.
func (e Event) DurationMs() float64 {
	f, _ := AsFloat(e["d"])
	return f
}

func (e Event) Rotations() int {
	n, _ := AsInt(e["rotations"])
	return n
}

func (e Event) Zooms() int {
	n, _ := AsInt(e["zooms"])
	return n
}

// GroupValue returns the "v" field of a group_assigned event.
func (e Event) GroupValue() (int, bool) { return AsInt(e["v"]) }
