package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"nutriguide/tools/storage"
)

type PreferenceLog struct{ log storage.PreferenceLog }

func NewPreferenceLog(log storage.PreferenceLog) *PreferenceLog { return &PreferenceLog{log: log} }

func (t *PreferenceLog) Name() string  { return "log_user_preference" }
func (t *PreferenceLog) Title() string { return "Log User Preference" }
func (t *PreferenceLog) Description() string {
	return "Records a food preference such as like, dislike, avoid or allergy."
}
func (t *PreferenceLog) Usage() string {
	return usage(t.Name(), "item:str", "preference_type:str", "notes?:str")
}

func (t *PreferenceLog) InputSchema() *jsonschema.Schema {
	return objectSchema(map[string]*jsonschema.Schema{
		"item":            {Type: "string"},
		"preference_type": {Type: "string"},
		"notes":           optional("string"),
	}, "item", "preference_type")
}

func (t *PreferenceLog) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	item, err := stringArg(input, "item")
	if err != nil {
		return nil, err
	}
	kind, err := stringArg(input, "preference_type")
	if err != nil {
		return nil, err
	}
	notes, err := optionalString(input, "notes")
	if err != nil {
		return nil, err
	}

	record := storage.Preference{Item: item, PreferenceType: kind}
	if notes != nil {
		record.Notes = *notes
	}
	location, err := t.log.Append(ctx, record)
	if err != nil {
		return nil, err
	}

	rec, err := toMap(record)
	if err != nil {
		return nil, err
	}
	return map[string]any{"ok": true, "saved_to": location, "record": rec}, nil
}
