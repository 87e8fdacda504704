/**
 * Copyright 2025 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package tool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
	vschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Descriptor is static metadata for discovery and documentation.
type Descriptor struct {
	Name        Name                 `json:"name"`
	Description string               `json:"description"`
	Parameters  map[string]ParamSpec `json:"parameters"`
}

type ParamSpec struct {
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

var reflector = &jsonschema.Reflector{
	DoNotReference:            true,
	ExpandedStruct:            true,
	AllowAdditionalProperties: false,
}

// GetJSONSchema reflects the JSON schema of a request struct.
func GetJSONSchema(v any) json.RawMessage {
	s := reflector.Reflect(v)
	bs, err := json.Marshal(s)
	if err != nil {
		panic(fmt.Sprintf("marshal schema of %T: %v", v, err))
	}
	return bs
}

func paramSpecs(v any) map[string]ParamSpec {
	s := reflector.Reflect(v)
	required := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		required[r] = true
	}
	ret := map[string]ParamSpec{}
	if s.Properties == nil {
		return ret
	}
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		ret[pair.Key] = ParamSpec{
			Type:        typeTag(pair.Value),
			Required:    required[pair.Key],
			Description: pair.Value.Description,
		}
	}
	return ret
}

func typeTag(s *jsonschema.Schema) string {
	if s == nil {
		return "any"
	}
	if s.Type == "string" && s.ContentEncoding == "base64" {
		return "bytes"
	}
	if s.Type == "" {
		return "any"
	}
	return s.Type
}

func compileSchema(name Name, raw json.RawMessage) *vschema.Schema {
	url := "mem://tools/" + string(name) + ".json"
	c := vschema.NewCompiler()
	if err := c.AddResource(url, bytes.NewReader(raw)); err != nil {
		panic(fmt.Sprintf("load schema of %s: %v", name, err))
	}
	s, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("compile schema of %s: %v", name, err))
	}
	return s
}

// encodeParams drops nil values, which count as absent optional parameters,
// and serializes the rest.
func encodeParams(params Params) ([]byte, error) {
	clean := make(map[string]any, len(params))
	for k, v := range params {
		if isNil(v) {
			continue
		}
		clean[k] = v
	}
	return json.Marshal(clean)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func validateRaw(s *vschema.Schema, raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	return s.Validate(doc)
}
