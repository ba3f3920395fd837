package seed

import (
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSeed = `category,name,description,stock,price
Tools,Hammer,Claw hammer,4,24.50
Widgets,Widget,"A widget, blue",10,9.99
Tools,Wrench,,12,15.75
`

// gzipBytes compresses content the way seed files are stored.
func gzipBytes(t *testing.T, content string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	_, err := gzipWriter.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gzipWriter.Close())

	return buf.Bytes()
}

// createTestSeedFile writes a gzipped seed file into a temporary directory.
func createTestSeedFile(t *testing.T, filename, content string) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), filename)
	require.NoError(t, os.WriteFile(filePath, gzipBytes(t, content), 0o600))

	return filePath
}

func TestParse_Success(t *testing.T) {
	catalog, err := Parse(context.Background(), bytes.NewReader(gzipBytes(t, validSeed)))

	require.NoError(t, err)
	assert.Equal(t, []Row{
		{Category: "Tools", Name: "Hammer", Description: "Claw hammer", Stock: 4, Price: 24.5},
		{Category: "Widgets", Name: "Widget", Description: "A widget, blue", Stock: 10, Price: 9.99},
		{Category: "Tools", Name: "Wrench", Description: "", Stock: 12, Price: 15.75},
	}, catalog.Rows)
	assert.Equal(t, []string{"Tools", "Widgets"}, catalog.CategoryNames())
}

func TestParse_HeaderOnly(t *testing.T) {
	catalog, err := Parse(context.Background(), bytes.NewReader(gzipBytes(t, "category,name,description,stock,price\n")))

	require.NoError(t, err)
	assert.Empty(t, catalog.Rows)
	assert.Empty(t, catalog.CategoryNames())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		expectedMatch string
	}{
		{
			name:          "Empty document",
			content:       "",
			expectedMatch: "missing header",
		},
		{
			name:          "Wrong header",
			content:       "category,title,description,stock,price\n",
			expectedMatch: `header column 2 is "title"`,
		},
		{
			name:          "Missing column",
			content:       "category,name,description,stock,price\nTools,Hammer,4,24.5\n",
			expectedMatch: "wrong number of fields",
		},
		{
			name:          "Non-integer stock",
			content:       "category,name,description,stock,price\nTools,Hammer,,four,24.5\n",
			expectedMatch: "line 2: stock",
		},
		{
			name:          "Negative stock",
			content:       "category,name,description,stock,price\nTools,Hammer,,-1,24.5\n",
			expectedMatch: "must not be negative",
		},
		{
			name:          "Non-numeric price",
			content:       "category,name,description,stock,price\nTools,Hammer,,1,cheap\n",
			expectedMatch: "price",
		},
		{
			name:          "Negative price",
			content:       "category,name,description,stock,price\nTools,Hammer,,1,-2\n",
			expectedMatch: "must not be negative",
		},
		{
			name:          "Missing name",
			content:       "category,name,description,stock,price\nTools, ,,1,2\n",
			expectedMatch: "name is required",
		},
		{
			name:          "Missing category",
			content:       "category,name,description,stock,price\n,Hammer,,1,2\n",
			expectedMatch: "category is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := Parse(context.Background(), bytes.NewReader(gzipBytes(t, tt.content)))

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSeed)
			assert.Contains(t, err.Error(), tt.expectedMatch)
			assert.Nil(t, catalog)
		})
	}
}

func TestParse_NotGzipped(t *testing.T) {
	catalog, err := Parse(context.Background(), strings.NewReader(validSeed))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "gzip")
	assert.Nil(t, catalog)
}

func TestParse_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	catalog, err := Parse(ctx, bytes.NewReader(gzipBytes(t, validSeed)))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, catalog)
}
