// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
)

// timestamp scans a column into a time.Time no matter whether the driver
// already converted it. go-sqlite3 only converts columns with a declared
// time type and hands RETURNING columns over as text.
type timestamp struct {
	dest *time.Time
}

func (t timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t.dest = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		*t.dest = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (t timestamp) parse(s string) error {
	s = strings.TrimSuffix(s, "Z")
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*t.dest = parsed
			return nil
		}
	}

	return fmt.Errorf("cannot parse %q as timestamp", s)
}
