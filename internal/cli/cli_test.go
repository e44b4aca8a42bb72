package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filearray/internal/config"
	"filearray/internal/model"
	"filearray/internal/upload"
)

func TestFieldConfig(t *testing.T) {
	fields := model.Fields("path/to/files/")

	t.Run("image field via upload", func(t *testing.T) {
		fc := fieldConfig(config.UploadConfig{MaxNameLength: 100}, fields[model.KindImages])

		assert.Equal(t, upload.SourceUpload, fc.Source)
		assert.Equal(t, model.ElementImage, fc.Kind)
		assert.Equal(t, 100, fc.MaxNameLength)
		assert.Equal(t, "files", fc.Name)
	})

	t.Run("generic field via links", func(t *testing.T) {
		fc := fieldConfig(config.UploadConfig{UseURL: true, Required: true}, fields[model.KindFiles])

		assert.Equal(t, upload.SourceURL, fc.Source)
		assert.Equal(t, model.ElementGeneric, fc.Kind)
		assert.True(t, fc.Required)
	})

	t.Run("size caps", func(t *testing.T) {
		fc := fieldConfig(config.UploadConfig{MaxImagePixels: 1000, MaxFetchMB: 2}, fields[model.KindImages])

		assert.Equal(t, int64(1000), fc.MaxImagePixels)
		assert.Equal(t, int64(2<<20), fc.MaxFetchBytes)
	})
}

func TestBuildAdmins(t *testing.T) {
	fields := model.Fields("path/to/files/")

	admins := buildAdmins(config.UploadConfig{}, fields, adminDeps{})

	require.Len(t, admins, len(fields))
	for kind, a := range admins {
		assert.Equal(t, kind, a.Service.Field().Kind)
		assert.Equal(t, fields[kind].Element.String(), a.Adapter.Descriptor().Kind)
	}
}

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["worker"])
	assert.True(t, names["migrate"])
}
