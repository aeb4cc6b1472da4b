// Copyright 2021 The xhr Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"io/ioutil"
	"time"

	"github.com/gogama/xhr/request"
	"gopkg.in/yaml.v3"
)

// Config is a request profile loaded from a YAML file with --config.
// Command line flags are applied on top of it.
//
//	baseURL: https://api.example.com/v1/
//	headers:
//	  Accept: application/json
//	query:
//	  page: 2
//	  tag: [a, b]
//	compress: true
//	timeout: 10s
type Config struct {
	BaseURL  string            `yaml:"baseURL"`
	Headers  map[string]string `yaml:"headers"`
	Query    Query             `yaml:"query"`
	Compress bool              `yaml:"compress"`
	Timeout  time.Duration     `yaml:"timeout"`
}

// Query is a query string mapping that keeps the order of its keys as
// written in the document. A key whose value is a sequence contributes
// one parameter per item.
type Query request.Query

// UnmarshalYAML implements yaml.Unmarshaler.
func (q *Query) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("xhr/cli: query must be a mapping, line %d", node.Line)
	}
	var out Query
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch value.Kind {
		case yaml.ScalarNode:
			out = append(out, request.Param{Key: key.Value, Value: scalar(value)})
		case yaml.SequenceNode:
			for _, item := range value.Content {
				if item.Kind != yaml.ScalarNode {
					return fmt.Errorf("xhr/cli: query %q must hold scalars, line %d", key.Value, item.Line)
				}
				out = append(out, request.Param{Key: key.Value, Value: scalar(item)})
			}
		default:
			return fmt.Errorf("xhr/cli: query %q must be a scalar or sequence, line %d", key.Value, value.Line)
		}
	}
	*q = out
	return nil
}

func scalar(node *yaml.Node) interface{} {
	if node.ShortTag() == "!!null" {
		return nil
	}
	return node.Value
}

// LoadConfig reads and parses the YAML profile at path.
func LoadConfig(path string) (*Config, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("xhr/cli: invalid config %s: %w", path, err)
	}
	return &cfg, nil
}
