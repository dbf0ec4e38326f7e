package repositoryconfig

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/medicalhub/mrunner/pkg/mrunner/application/model"
)

var ErrRepositoryFileNotFound = errors.New("repository file not found")

type CustomSegment struct {
	Name  json.RawMessage `json:"name"`
	Color json.RawMessage `json:"color"`
}

type Output struct {
	File   json.RawMessage `json:"file"`
	Labels json.RawMessage `json:"labels"`
}

// Model keeps scalar fields raw, they are converted by the model accessors so a
// badly typed field only fails the model it belongs to.
type Model struct {
	Name       json.RawMessage `json:"name"`
	Dockerfile json.RawMessage `json:"dockerfile"`
	Tag        json.RawMessage `json:"tag"`
	Type       json.RawMessage `json:"type"`
	Output     json.RawMessage `json:"output"`
}

type Config struct {
	Models json.RawMessage `json:"models"`
}

func Load(path string) (*model.Repository, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrRepositoryFileNotFound, "%v", path)
		}
		return nil, errors.Wrapf(err, "failed to stat repository file: %v", path)
	}
	if info.IsDir() {
		return nil, errors.Wrapf(ErrRepositoryFileNotFound, "%v is a directory", path)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read repository file: %v", path)
	}
	var config Config
	err = json.Unmarshal(body, &config)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal repository file: %v", path)
	}
	document, err := mapInfraConfigToDocument(config)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal repository file: %v", path)
	}
	return model.NewRepository(path, document), nil
}

func mapInfraConfigToDocument(config Config) (model.Document, error) {
	var document model.Document
	items, jsonType, err := splitArray(config.Models)
	if err != nil || jsonType != "" {
		document.ModelsType = jsonType
		return document, err
	}
	if items == nil {
		return document, nil
	}
	document.Models = make([]model.ModelRecord, 0, len(items))
	for _, item := range items {
		record, err := mapModel(item)
		if err != nil {
			return model.Document{}, err
		}
		document.Models = append(document.Models, record)
	}
	return document, nil
}

func mapModel(raw json.RawMessage) (model.ModelRecord, error) {
	if jsonType := model.JSONType(raw); jsonType != "object" {
		return model.ModelRecord{JSONType: jsonType}, nil
	}
	var m Model
	err := json.Unmarshal(raw, &m)
	if err != nil {
		return model.ModelRecord{}, err
	}
	record := model.ModelRecord{
		Name:       m.Name,
		Dockerfile: m.Dockerfile,
		Tag:        m.Tag,
		Type:       m.Type,
	}
	items, jsonType, err := splitArray(m.Output)
	if err != nil || jsonType != "" {
		record.OutputType = jsonType
		return record, err
	}
	if items == nil {
		return record, nil
	}
	record.Output = make([]model.OutputRecord, 0, len(items))
	for _, item := range items {
		output, err := mapOutput(item)
		if err != nil {
			return model.ModelRecord{}, err
		}
		record.Output = append(record.Output, output)
	}
	return record, nil
}

func mapOutput(raw json.RawMessage) (model.OutputRecord, error) {
	if jsonType := model.JSONType(raw); jsonType != "object" {
		return model.OutputRecord{JSONType: jsonType}, nil
	}
	var output Output
	err := json.Unmarshal(raw, &output)
	if err != nil {
		return model.OutputRecord{}, err
	}
	record := model.OutputRecord{File: output.File}
	if output.Labels == nil {
		return record, nil
	}
	if jsonType := model.JSONType(output.Labels); jsonType != "object" {
		record.LabelsType = jsonType
		return record, nil
	}
	var labels Labels
	err = json.Unmarshal(output.Labels, &labels)
	if err != nil {
		return model.OutputRecord{}, err
	}
	record.Labels = mapLabels(labels)
	return record, nil
}

// splitArray returns the elements of a JSON array, nil items for an absent value,
// or the JSON type of a value that is not an array.
func splitArray(raw json.RawMessage) ([]json.RawMessage, string, error) {
	if raw == nil {
		return nil, "", nil
	}
	if jsonType := model.JSONType(raw); jsonType != "array" {
		return nil, jsonType, nil
	}
	items := []json.RawMessage{}
	err := json.Unmarshal(raw, &items)
	return items, "", err
}

func mapLabels(labels Labels) []model.LabelEntry {
	entries := make([]model.LabelEntry, 0, len(labels))
	for _, label := range labels {
		entries = append(entries, model.LabelEntry{
			Key:   label.Key,
			Value: mapSegmentValue(label.Value),
		})
	}
	return entries
}

func mapSegmentValue(value SegmentValue) model.SegmentValue {
	switch {
	case value.ID != nil:
		return model.ReferenceValue(*value.ID)
	case value.Custom != nil:
		return model.CustomValue(model.CustomSegmentRecord{
			Name:  value.Custom.Name,
			Color: value.Custom.Color,
		})
	default:
		return model.InvalidValue(value.JSONType)
	}
}
