package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestNewRequest(t *testing.T) {
	req := NewRequest("kuesioner", FieldCode, "STS", FieldQuery)

	assert.Equal(t, "kuesioner", StringField(req, FieldDataset))
	assert.Equal(t, "STS", StringField(req, FieldCode))
	assert.Equal(t, "", StringField(req, FieldQuery), "dangling key is ignored")
}

func TestStringField(t *testing.T) {
	assert.Equal(t, "", StringField(nil, FieldDataset))

	s := &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldDataset: structpb.NewNumberValue(3),
	}}
	assert.Equal(t, "", StringField(s, FieldDataset))
}
