package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// AnswerMap maps question ID -> selected option index. Stored as JSONB.
type AnswerMap map[string]int

func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *AnswerMap) Scan(value interface{}) error {
	if value == nil {
		*m = AnswerMap{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("unsupported type %T for AnswerMap", value)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, m)
}

// StringList is a JSONB-backed ordered list of strings (question IDs, instruction lines).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("unsupported type %T for StringList", value)
		}
		b = []byte(s)
	}
	return json.Unmarshal(b, l)
}
