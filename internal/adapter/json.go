package adapter

import (
	"encoding/json"
)

// JSON abstracts JSON encoding behind an interface so asset event
// serialization can be made to fail in publisher tests
//
//go:generate mockgen -source=json.go -destination=../mocks/json.go -package=mocks -mock_names=JSON=MockJSON
type JSON interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

// RealJSON backs the JSON interface with the standard library encoder
type RealJSON struct{}

// NewJSON returns the encoding/json-backed implementation used outside of
// tests
func NewJSON() JSON {
	return &RealJSON{}
}

func (j *RealJSON) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (j *RealJSON) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
