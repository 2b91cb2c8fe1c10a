package v1

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// Request field names.
const (
	FieldDataset = "dataset"
	FieldCode    = "code"
	FieldQuery   = "query"
)

// NewRequest builds a request Struct for dataset with optional extra string
// fields given as key/value pairs.
func NewRequest(dataset string, kv ...string) *structpb.Struct {
	fields := map[string]*structpb.Value{
		FieldDataset: structpb.NewStringValue(dataset),
	}
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i]] = structpb.NewStringValue(kv[i+1])
	}
	return &structpb.Struct{Fields: fields}
}

// StringField returns the string value of key, or "" when the field is
// missing or not a string.
func StringField(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	v, ok := s.GetFields()[key]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}
