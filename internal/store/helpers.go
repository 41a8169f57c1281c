package store

import (
	"database/sql"
	"encoding/json"
	"time"
)

func marshalStrings(values []string) (any, error) {
	if len(values) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}

func parseNullableTime(value sql.NullString) *time.Time {
	if !value.Valid || value.String == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, value.String); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", value.String); err == nil {
		return &t
	}
	return nil
}
