package structure

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownType is returned for a layout field with an unsupported type.
var ErrUnknownType = errors.New("structure: unknown field type")

// Layout is a declarative record description, usually loaded from YAML:
//
//	name: xref
//	fields:
//	  - {name: offset, type: digits, width: 10}
//	  - {type: expect, values: [" "]}
//	  - {name: generation, type: digits, width: 5}
//	  - {type: expect, values: [" "]}
//	  - {name: state, type: oneof, choices: {n: used, f: free}}
//	  - {type: expect, values: ["\r\n", " \n", " \r"]}
type Layout struct {
	Name   string      `yaml:"name"`
	Count  int         `yaml:"count,omitempty"`
	Fields []FieldSpec `yaml:"fields"`
}

// FieldSpec is one field of a Layout. Which attributes apply depends on Type.
type FieldSpec struct {
	Name    string            `yaml:"name,omitempty"`
	Type    string            `yaml:"type"`
	Width   int               `yaml:"width,omitempty"`
	Values  []string          `yaml:"values,omitempty"`
	Choices map[string]string `yaml:"choices,omitempty"`
	Default interface{}       `yaml:"default,omitempty"`
}

// ParseLayout reads a layout from YAML.
func ParseLayout(b []byte) (*Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(b, &l); err != nil {
		return nil, fmt.Errorf("structure: parse layout: %w", err)
	}
	return &l, nil
}

// LoadLayout reads a layout from a YAML file.
func LoadLayout(path string) (*Layout, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLayout(b)
}

// Build turns the layout into fields for Decode.
func (l *Layout) Build() ([]Field, error) {
	fields := make([]Field, 0, len(l.Fields))
	for i, s := range l.Fields {
		f, err := s.build()
		if err != nil {
			return nil, fmt.Errorf("%s field %d: %w", l.Name, i, err)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func (s FieldSpec) build() (Field, error) {
	switch s.Type {
	case "bytes", "text", "digits", "signed", "until":
		if s.Width <= 0 {
			return Field{}, fmt.Errorf("%w: %s field %q needs a positive width", ErrInvalidField, s.Type, s.Name)
		}
	}
	switch s.Type {
	case "uint8":
		return Uint8(s.Name), nil
	case "uint16":
		return Uint16(s.Name), nil
	case "uint24":
		return Uint24(s.Name), nil
	case "uint32":
		return Uint32(s.Name), nil
	case "bytes":
		return Bytes(s.Name, s.Width), nil
	case "text":
		return Text(s.Name, s.Width), nil
	case "digits":
		return Digits(s.Name, s.Width), nil
	case "signed":
		return SignedDigits(s.Name, s.Width), nil
	case "expect":
		f := Expect(s.Values...)
		f.Name = s.Name
		return f, nil
	case "until":
		return Until(s.Name, s.Width, s.Values...), nil
	case "skip":
		f := Skip(s.Width, s.Values...)
		f.Name = s.Name
		return f, nil
	case "oneof":
		values := make(map[byte]interface{}, len(s.Choices))
		for k, v := range s.Choices {
			if len(k) != 1 {
				return Field{}, fmt.Errorf("%w: choice key %q is not a single byte", ErrInvalidField, k)
			}
			values[k[0]] = v
		}
		return OneOf(s.Name, values), nil
	case "default":
		return Default(s.Name, s.Default), nil
	default:
		return Field{}, fmt.Errorf("%w: %q", ErrUnknownType, s.Type)
	}
}
