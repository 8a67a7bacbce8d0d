package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleEdmx = `<?xml version="1.0" encoding="utf-8"?>
<edmx:Edmx Version="1.0" xmlns:edmx="http://schemas.microsoft.com/ado/2007/06/edmx"
           xmlns:sap="http://www.sap.com/Protocols/SAPData">
  <edmx:DataServices>
    <Schema Namespace="NorthwindModel" xmlns="http://schemas.microsoft.com/ado/2008/09/edm">
      <EntityType Name="Customer">
        <Property Name="CustomerID" Type="Edm.Int32"/>
        <Property Name="CompanyName" Type="Edm.String" MaxLength="40"/>
      </EntityType>
      <EntityContainer Name="NorthwindEntities">
        <EntitySet Name="Customers" EntityType="NorthwindModel.Customer"/>
      </EntityContainer>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`

func writeMetadata(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "service.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleEdmx), 0o600))
	return path
}

func chdirTemp(t *testing.T) {
	t.Helper()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
}

func TestRootHasSubcommands(t *testing.T) {
	root := NewRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["generate"])
	assert.True(t, names["inspect"])
}

func TestGenerateRequiresMetadata(t *testing.T) {
	chdirTemp(t)
	root := NewRootCmd()
	root.SetArgs([]string{"generate"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metadata")
}

func TestGenerateWritesCorpus(t *testing.T) {
	chdirTemp(t)
	metadataPath := writeMetadata(t)
	outPath := filepath.Join(t.TempDir(), "corpus.txt")

	root := NewRootCmd()
	root.SetArgs([]string{
		"generate",
		"--metadata", metadataPath,
		"--output", outPath,
		"--count", "20",
		"--seed", "7",
		"--no-color",
	})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "Customers"), "unexpected line %q", line)
	}
}

func TestInspectParsesDocument(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"inspect", writeMetadata(t), "--no-color"})
	assert.NoError(t, root.Execute())
}

func TestInspectFailsOnMissingFile(t *testing.T) {
	root := NewRootCmd()
	root.SetArgs([]string{"inspect", "does-not-exist.xml", "--no-color"})
	assert.Error(t, root.Execute())
}
