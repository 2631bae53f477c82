package codec

import jsoniter "github.com/json-iterator/go"

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// JSON serializes values as JSON via json-iterator. The zero value is ready
// to use. Field mapping follows encoding/json struct tags.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return jsonAPI.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := jsonAPI.Unmarshal(b, &v)
	return v, err
}
