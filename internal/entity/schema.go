package entity

import (
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const recordProps = `
	"id":          {"type": "string"},
	"title":       {"type": "string"},
	"dueDate":     {"type": "string"},
	"type":        {"type": "string"},
	"progress":    {"type": "string"},
	"description": {"type": "string"},
	"completed":   {"type": "boolean"},
	"completedDate": {"type": ["string", "null"]}`

var (
	taskSchema = jsonschema.MustCompileString("https://lockin.local/schema/tasks.json", `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["title"],
		"properties": {`+recordProps+`}
	}
}`)

	noteSchema = jsonschema.MustCompileString("https://lockin.local/schema/notes.json", `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["title"],
		"properties": {`+recordProps+`}
	}
}`)

	goalsSchema = jsonschema.MustCompileString("https://lockin.local/schema/goals.json", `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"annual":    {"$ref": "#/$defs/tier"},
		"quarterly": {"$ref": "#/$defs/tier"},
		"monthly":   {"$ref": "#/$defs/tier"},
		"weekly":    {"$ref": "#/$defs/tier"},
		"daily":     {"$ref": "#/$defs/tier"}
	},
	"$defs": {
		"tier": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["text"],
				"properties": {
					"id":        {"type": "string"},
					"text":      {"type": "string"},
					"completed": {"type": "boolean"}
				}
			}
		}
	}
}`)

	habitsSchema = jsonschema.MustCompileString("https://lockin.local/schema/habits.json", `{
	"type": "array",
	"items": {"type": "string"}
}`)
)
