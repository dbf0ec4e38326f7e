package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/pkg/errors"
)

func NewRepository(path string, document Document) *Repository {
	return &Repository{
		path:     path,
		document: document,
	}
}

// Repository is the read-only catalog of models loaded from one repository file.
type Repository struct {
	path     string
	document Document
}

func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) records() ([]ModelRecord, error) {
	if r.document.ModelsType != "" {
		return nil, invalidField("models", "an array", r.document.ModelsType)
	}
	if r.document.Models == nil {
		return nil, missingField("models")
	}
	return r.document.Models, nil
}

func (r *Repository) Models() ([]RepositoryModel, error) {
	records, err := r.records()
	if err != nil {
		return nil, err
	}
	models := make([]RepositoryModel, 0, len(records))
	for _, record := range records {
		models = append(models, newRepositoryModel(r, record))
	}
	return models, nil
}

// ModelNames returns "<name> (<tag>)" for every model in file order.
func (r *Repository) ModelNames() ([]string, error) {
	models, err := r.Models()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(models))
	for _, m := range models {
		modelName, err := m.Name()
		if err != nil {
			return nil, err
		}
		tag, err := m.DockerTag()
		if err != nil {
			return nil, err
		}
		names = append(names, fmt.Sprintf("%v (%v)", modelName, tag))
	}
	return names, nil
}

// ModelByTag returns the first model with the tag, or nil when none matches.
func (r *Repository) ModelByTag(tag string) (*RepositoryModel, error) {
	return r.find(tag, RepositoryModel.DockerTag)
}

// ModelByName returns the first model with the name, or nil when none matches.
func (r *Repository) ModelByName(modelName string) (*RepositoryModel, error) {
	return r.find(modelName, RepositoryModel.Name)
}

func (r *Repository) find(value string, get func(RepositoryModel) (string, error)) (*RepositoryModel, error) {
	models, err := r.Models()
	if err != nil {
		return nil, err
	}
	for i := range models {
		v, err := get(models[i])
		if err != nil {
			return nil, err
		}
		if v == value {
			return &models[i], nil
		}
	}
	return nil, nil
}

type RepositoryModelType string

const (
	RepositoryModelTypeSegmentation   RepositoryModelType = "segmentation"
	RepositoryModelTypeClassification RepositoryModelType = "classification"
)

func ParseRepositoryModelType(s string) (RepositoryModelType, error) {
	switch t := RepositoryModelType(s); t {
	case RepositoryModelTypeSegmentation, RepositoryModelTypeClassification:
		return t, nil
	default:
		return "", errors.Wrapf(ErrInvalidModelType, "%q is not a valid model type", s)
	}
}

func newRepositoryModel(repository *Repository, record ModelRecord) RepositoryModel {
	return RepositoryModel{
		repository: repository,
		record:     record,
	}
}

type RepositoryModel struct {
	repository *Repository
	record     ModelRecord
}

func (m RepositoryModel) Repository() *Repository {
	return m.repository
}

func (m RepositoryModel) Name() (string, error) {
	return m.record.stringField(m.record.Name, "name")
}

func (m RepositoryModel) Type() (RepositoryModelType, error) {
	if m.record.JSONType != "" {
		return "", invalidField("models[]", "an object", m.record.JSONType)
	}
	if m.record.Type == nil {
		return "", missingField("type")
	}
	var t string
	if err := json.Unmarshal(m.record.Type, &t); err != nil {
		return "", errors.Wrapf(ErrInvalidModelType, "%s is not a valid model type", m.record.Type)
	}
	return ParseRepositoryModelType(t)
}

// Dockerfile is the docker build context of the model, relative to the repository file.
func (m RepositoryModel) Dockerfile() (string, error) {
	return m.record.stringField(m.record.Dockerfile, "dockerfile")
}

func (m RepositoryModel) DockerTag() (string, error) {
	return m.record.stringField(m.record.Tag, "tag")
}

func (m RepositoryModel) ImageReference() (name.Reference, error) {
	tag, err := m.DockerTag()
	if err != nil {
		return nil, err
	}
	ref, err := name.ParseReference(tag)
	return ref, errors.Wrapf(err, "failed to parse docker tag %v", tag)
}

// Config is not supported yet, models always run without configuration.
func (m RepositoryModel) Config() map[string]any {
	return nil
}

func (m RepositoryModel) OutputFiles() ([]ExpectedOutputFile, error) {
	switch {
	case m.record.JSONType != "":
		return nil, invalidField("models[]", "an object", m.record.JSONType)
	case m.record.OutputType != "":
		return nil, invalidField("output", "an array", m.record.OutputType)
	case m.record.Output == nil:
		return nil, missingField("output")
	}
	files := make([]ExpectedOutputFile, 0, len(m.record.Output))
	for _, record := range m.record.Output {
		files = append(files, ExpectedOutputFile{record: record})
	}
	return files, nil
}
