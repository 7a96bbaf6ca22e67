package v1

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Request field names.
const (
	FieldCycleID  = "cycle_id"
	FieldPersonID = "person_id"
)

// NewRequest builds a request struct. Empty ids are left out.
func NewRequest(cycleID, personID string) *structpb.Struct {
	fields := make(map[string]*structpb.Value, 2)
	if cycleID != "" {
		fields[FieldCycleID] = structpb.NewStringValue(cycleID)
	}
	if personID != "" {
		fields[FieldPersonID] = structpb.NewStringValue(personID)
	}
	return &structpb.Struct{Fields: fields}
}

// StringField returns the string value of a request field, or "" when it is
// missing or not a string.
func StringField(req *structpb.Struct, name string) string {
	return req.GetFields()[name].GetStringValue()
}

// Encode converts any JSON-marshalable value into a Struct. v must marshal
// to a JSON object.
func Encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("convert response: %w", err)
	}
	return out, nil
}

// Decode fills dest from a response Struct.
func Decode(s *structpb.Struct, dest any) error {
	data, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal struct: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode struct: %w", err)
	}
	return nil
}
