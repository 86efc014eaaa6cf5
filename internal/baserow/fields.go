package baserow

import (
	"encoding/json"
	"log"
	"math"
	"strconv"
	"strings"
)

// number reads a Baserow number field, which arrives as a JSON number, a
// decimal string, or null. Anything unparseable is treated as missing.
type number struct {
	Value float64
	Valid bool
}

func (n *number) UnmarshalJSON(data []byte) error {
	*n = number{}
	if string(data) == "null" {
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		n.Value, n.Valid = f, true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil && !math.IsNaN(parsed) && !math.IsInf(parsed, 0) {
			n.Value, n.Valid = parsed, true
		}
	}
	return nil
}

// orZero returns the value, or 0 when the field was missing.
func (n number) orZero() float64 {
	if !n.Valid {
		return 0
	}
	return n.Value
}

// nonNegative is orZero for amounts that may not go below zero. A negative
// value typed into the table is logged and read as 0.
func (n number) nonNegative(rowID int64, field string) float64 {
	v := n.orZero()
	if v < 0 {
		log.Printf("Baserow row %d has a negative %q (%v); using 0", rowID, field, v)
		return 0
	}
	return v
}

// positiveInt returns the value as a whole number when it is one and above zero.
func (n number) positiveInt() *int {
	if !n.Valid || n.Value <= 0 || n.Value != math.Trunc(n.Value) {
		return nil
	}
	v := int(n.Value)
	return &v
}

// text reads a text field or a single-select field ({"id":..,"value":".."}).
type text string

func (t *text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = text(strings.TrimSpace(s))
		return nil
	}

	var option struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &option); err == nil {
		*t = text(strings.TrimSpace(option.Value))
		return nil
	}

	*t = ""
	return nil
}

// link is one entry of a "link to table" field.
type link struct {
	ID    int64  `json:"id"`
	Value string `json:"value"`
}

// firstLink returns the first linked row, if any.
func firstLink(links []link) (link, bool) {
	if len(links) == 0 {
		return link{}, false
	}
	return links[0], true
}

// linkIDs turns a record ID into the list Baserow expects for a link field.
// IDs that are not Baserow row numbers are dropped.
func linkIDs(id string) []int64 {
	parsed, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil {
		return []int64{}
	}
	return []int64{parsed}
}
