package api

import "encoding/json"

// jsonCodec marshals requests and responses with encoding/json so the
// wire types can be plain Go structs. Registering it under the name
// "json" makes Connect speak application/json for these procedures;
// no generated code is involved.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}
