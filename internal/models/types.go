package models

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// StringList is a []string stored as JSON text.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decode string list: %w", err)
	}
	*l = out
	return nil
}

// GormDataType stores the list in a text column on every dialect.
func (StringList) GormDataType() string {
	return "text"
}

// Compact returns the list without blank entries, trimmed.
func (l StringList) Compact() StringList {
	out := make(StringList, 0, len(l))
	for _, s := range l {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func newID() string {
	return uuid.NewString()
}
