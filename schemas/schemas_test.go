package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestResumeSchema_ValidJSON(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(Resume), &v), "schema file should be valid JSON")

	_, hasSchema := v["$schema"]
	_, hasProps := v["properties"]
	assert.True(t, hasSchema && hasProps, "schema should declare $schema and properties")
}

func TestResumeSchema_Compiles(t *testing.T) {
	_, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(Resume))
	assert.NoError(t, err, "all $ref pointers should resolve")
}

func TestResumeSchema_RequiresTopLevelFields(t *testing.T) {
	var v struct {
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal([]byte(Resume), &v))
	assert.ElementsMatch(t, []string{"personalInfo", "summary", "experience", "education", "skills"}, v.Required)
}
