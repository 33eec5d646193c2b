package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocument(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		Swagger  string                    `json:"swagger"`
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
		Defs     map[string]any            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "/api", doc.BasePath)
	assert.ElementsMatch(t, []string{"get", "post"}, keys(doc.Paths["/users"]))
	assert.ElementsMatch(t, []string{"get", "patch", "delete"}, keys(doc.Paths["/users/{id}"]))
	for _, name := range []string{"model.User", "model.UserList", "model.DeleteResult", "errors.ErrorResponse"} {
		assert.Contains(t, doc.Defs, name)
	}
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
