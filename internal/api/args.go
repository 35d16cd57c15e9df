package api

import (
	"fmt"
	"time"

	"github.com/mconstantine/cooler-sub002/internal/apperr"
)

// Argument coercion helpers. graphql-go hands resolvers untyped maps;
// these convert to the store's input types. graphql-go drops explicit
// nulls during coercion, so the update inputs carry clearXxx boolean
// fields to tell "clear this" apart from "leave this alone".

func uintArg(args map[string]interface{}, key string) (uint, error) {
	v, ok := args[key].(int)
	if !ok || v < 1 {
		return 0, apperr.BadRequest(fmt.Sprintf("%s must be a positive integer", key))
	}
	return uint(v), nil
}

func inputArg(args map[string]interface{}, key string) (map[string]interface{}, error) {
	v, ok := args[key].(map[string]interface{})
	if !ok {
		return nil, apperr.BadRequest(fmt.Sprintf("%s must be provided", key))
	}
	return v, nil
}

func stringField(input map[string]interface{}, key string) string {
	v, _ := input[key].(string)
	return v
}

func floatField(input map[string]interface{}, key string) float64 {
	switch v := input[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func timeField(input map[string]interface{}, key string) time.Time {
	v, _ := input[key].(time.Time)
	return v
}

func optString(input map[string]interface{}, key string) *string {
	if v, ok := input[key].(string); ok {
		return &v
	}
	return nil
}

func optFloat(input map[string]interface{}, key string) *float64 {
	switch v := input[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	}
	return nil
}

func optUint(input map[string]interface{}, key string) *uint {
	if v, ok := input[key].(int); ok && v >= 1 {
		u := uint(v)
		return &u
	}
	return nil
}

func optTime(input map[string]interface{}, key string) *time.Time {
	if v, ok := input[key].(time.Time); ok {
		return &v
	}
	return nil
}

func boolField(input map[string]interface{}, key string) bool {
	v, _ := input[key].(bool)
	return v
}
