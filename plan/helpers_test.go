package plan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTestDB(t *testing.T, schema string, tables map[string]string) string {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "schema.txt"), []byte(schema), 0644))
	dataDir := filepath.Join(dir, "data")
	assert.NoError(t, os.MkdirAll(dataDir, 0755))
	for name, contents := range tables {
		assert.NoError(t, os.WriteFile(filepath.Join(dataDir, name+".csv"), []byte(contents), 0644))
	}
	return dir
}
