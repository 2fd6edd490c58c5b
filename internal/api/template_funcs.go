package api

import (
	"encoding/json"
	"html/template"
)

func newTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"t":      templateTranslate,
		"toJSON": templateToJSON,
	}
}

func templateTranslate(messages map[string]string, key string) string {
	if value, ok := messages[key]; ok && value != "" {
		return value
	}
	return key
}

func templateToJSON(value any) template.JS {
	serialized, err := json.Marshal(value)
	if err != nil {
		return template.JS("null")
	}
	return template.JS(serialized)
}
