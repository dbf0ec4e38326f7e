package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicalhub/mrunner/pkg/mrunner/application/model/segdb"
)

func str(v string) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func testModelRecord(modelName, tag string) ModelRecord {
	return ModelRecord{
		Name:       str(modelName),
		Dockerfile: str(modelName + "/"),
		Tag:        str(tag),
		Type:       str("segmentation"),
		Output: []OutputRecord{
			{
				File: str("output.nrrd"),
				Labels: []LabelEntry{
					{Key: "1", Value: ReferenceValue("Threshold")},
				},
			},
		},
	}
}

func testRepository() *Repository {
	return NewRepository("repository.json", Document{
		Models: []ModelRecord{
			testModelRecord("Thresholder", "aimi/thresholder:latest"),
			testModelRecord("Lungs", "aimi/lungs:1.0"),
			testModelRecord("Thresholder", "aimi/thresholder:2.0"),
		},
	})
}

func TestRepository_Models(t *testing.T) {
	repository := testRepository()

	models, err := repository.Models()
	require.NoError(t, err)
	require.Len(t, models, 3)
	for i, want := range []string{"aimi/thresholder:latest", "aimi/lungs:1.0", "aimi/thresholder:2.0"} {
		tag, err := models[i].DockerTag()
		require.NoError(t, err)
		assert.Equal(t, want, tag)
		assert.Same(t, repository, models[i].Repository())
	}
}

func TestRepository_ModelNames(t *testing.T) {
	names, err := testRepository().ModelNames()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Thresholder (aimi/thresholder:latest)",
		"Lungs (aimi/lungs:1.0)",
		"Thresholder (aimi/thresholder:2.0)",
	}, names)

	empty := NewRepository("empty.json", Document{Models: []ModelRecord{}})
	names, err = empty.ModelNames()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestRepository_ModelNames_MissingTag(t *testing.T) {
	record := testModelRecord("Thresholder", "")
	record.Tag = nil
	repository := NewRepository("repository.json", Document{Models: []ModelRecord{record}})

	_, err := repository.ModelNames()
	assert.ErrorIs(t, err, ErrFieldMissing)
}

func TestRepository_ModelsKey(t *testing.T) {
	tests := []struct {
		name     string
		document Document
		wantErr  error
	}{
		{name: "missing models", document: Document{}, wantErr: ErrFieldMissing},
		{name: "models is an object", document: Document{ModelsType: "object"}, wantErr: ErrInvalidField},
		{name: "models is null", document: Document{ModelsType: "null"}, wantErr: ErrInvalidField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := NewRepository("repository.json", tt.document)

			_, err := repository.Models()
			assert.ErrorIs(t, err, tt.wantErr)
			_, err = repository.ModelNames()
			assert.ErrorIs(t, err, tt.wantErr)
			_, err = repository.ModelByName("Thresholder")
			assert.ErrorIs(t, err, tt.wantErr)
			_, err = repository.ModelByTag("aimi/thresholder:latest")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRepository_ModelByTag(t *testing.T) {
	repository := testRepository()

	tests := []struct {
		name     string
		tag      string
		wantName string
		wantNil  bool
	}{
		{name: "existing tag", tag: "aimi/lungs:1.0", wantName: "Lungs"},
		{name: "unknown tag", tag: "aimi/unknown:latest", wantNil: true},
		{name: "empty tag", tag: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := repository.ModelByTag(tt.tag)
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, m)
				return
			}
			require.NotNil(t, m)
			modelName, err := m.Name()
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, modelName)
		})
	}
}

func TestRepository_ModelByTag_Duplicate(t *testing.T) {
	repository := NewRepository("repository.json", Document{
		Models: []ModelRecord{
			testModelRecord("First", "aimi/same:latest"),
			testModelRecord("Second", "aimi/same:latest"),
		},
	})

	m, err := repository.ModelByTag("aimi/same:latest")
	require.NoError(t, err)
	require.NotNil(t, m)
	modelName, err := m.Name()
	require.NoError(t, err)
	assert.Equal(t, "First", modelName)
}

func TestRepository_ModelByName(t *testing.T) {
	repository := testRepository()

	m, err := repository.ModelByName("Thresholder")
	require.NoError(t, err)
	require.NotNil(t, m)
	tag, err := m.DockerTag()
	require.NoError(t, err)
	assert.Equal(t, "aimi/thresholder:latest", tag)

	m, err = repository.ModelByName("Unknown")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestRepositoryModel_Type(t *testing.T) {
	tests := []struct {
		name    string
		value   json.RawMessage
		want    RepositoryModelType
		wantErr error
		wantMsg string
	}{
		{name: "segmentation", value: str("segmentation"), want: RepositoryModelTypeSegmentation},
		{name: "classification", value: str("classification"), want: RepositoryModelTypeClassification},
		{name: "unknown", value: str("unknown"), wantErr: ErrInvalidModelType, wantMsg: `"unknown"`},
		{name: "wrong case", value: str("Segmentation"), wantErr: ErrInvalidModelType},
		{name: "number", value: json.RawMessage(`5`), wantErr: ErrInvalidModelType, wantMsg: "5 is not a valid model type"},
		{name: "object", value: json.RawMessage(`{"kind": "segmentation"}`), wantErr: ErrInvalidModelType},
		{name: "missing", value: nil, wantErr: ErrFieldMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := testModelRecord("Thresholder", "aimi/thresholder:latest")
			record.Type = tt.value
			m := newRepositoryModel(nil, record)

			got, err := m.Type()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.wantMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepositoryModel_Fields(t *testing.T) {
	m := newRepositoryModel(nil, testModelRecord("Thresholder", "aimi/thresholder:latest"))

	dockerfile, err := m.Dockerfile()
	require.NoError(t, err)
	assert.Equal(t, "Thresholder/", dockerfile)
	assert.Nil(t, m.Config())

	empty := newRepositoryModel(nil, ModelRecord{})
	_, err = empty.Name()
	assert.ErrorIs(t, err, ErrFieldMissing)
	_, err = empty.Dockerfile()
	assert.ErrorIs(t, err, ErrFieldMissing)
	_, err = empty.DockerTag()
	assert.ErrorIs(t, err, ErrFieldMissing)
	_, err = empty.OutputFiles()
	assert.ErrorIs(t, err, ErrFieldMissing)
}

func TestRepositoryModel_BadlyTypedFields(t *testing.T) {
	record := ModelRecord{
		Name:       json.RawMessage(`7`),
		Dockerfile: json.RawMessage(`["Thresholder/"]`),
		Tag:        json.RawMessage(`true`),
		OutputType: "object",
	}
	m := newRepositoryModel(nil, record)

	modelName, err := m.Name()
	require.NoError(t, err)
	assert.Equal(t, "7", modelName)
	_, err = m.Dockerfile()
	assert.ErrorIs(t, err, ErrInvalidField)
	_, err = m.DockerTag()
	assert.ErrorIs(t, err, ErrInvalidField)
	_, err = m.OutputFiles()
	assert.ErrorIs(t, err, ErrInvalidField)

	notObject := newRepositoryModel(nil, ModelRecord{JSONType: "string"})
	_, err = notObject.Name()
	assert.ErrorIs(t, err, ErrInvalidField)
	_, err = notObject.Type()
	assert.ErrorIs(t, err, ErrInvalidField)
	_, err = notObject.OutputFiles()
	assert.ErrorIs(t, err, ErrInvalidField)
}

func TestRepositoryModel_ImageReference(t *testing.T) {
	m := newRepositoryModel(nil, testModelRecord("Thresholder", "aimi/thresholder:latest"))
	ref, err := m.ImageReference()
	require.NoError(t, err)
	assert.Equal(t, "aimi/thresholder", ref.Context().RepositoryStr())
	assert.Equal(t, "latest", ref.Identifier())

	invalid := newRepositoryModel(nil, testModelRecord("Broken", "Not A Tag"))
	_, err = invalid.ImageReference()
	assert.Error(t, err)
}

func TestRepositoryModel_OutputFiles(t *testing.T) {
	m := newRepositoryModel(nil, testModelRecord("Thresholder", "aimi/thresholder:latest"))

	files, err := m.OutputFiles()
	require.NoError(t, err)
	require.Len(t, files, 1)
	fileName, err := files[0].FileName()
	require.NoError(t, err)
	assert.Equal(t, "output.nrrd", fileName)

	labels, err := files[0].Labels()
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, 1, labels[0].ID())
	assert.Equal(t, files[0], *labels[0].File())

	segment, err := labels[0].Segment()
	require.NoError(t, err)
	assert.Equal(t, segdb.Ref("Threshold"), segment)
	assert.Equal(t, "Threshold", segment.ID())
}

func TestRepositoryModel_OutputFilesIdempotent(t *testing.T) {
	m := newRepositoryModel(nil, testModelRecord("Thresholder", "aimi/thresholder:latest"))

	first, err := m.OutputFiles()
	require.NoError(t, err)
	second, err := m.OutputFiles()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	firstLabels, err := first[0].Labels()
	require.NoError(t, err)
	secondLabels, err := first[0].Labels()
	require.NoError(t, err)
	assert.Equal(t, firstLabels, secondLabels)
}
