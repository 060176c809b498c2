package gestalt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polyloc/polyloc/internal/gestalt"
)

func TestFactsSingleMarker(t *testing.T) {
	facts := gestalt.Facts([]string{"go.mod", "main.go"})
	assert.Equal(t, []string{"go-module"}, facts)
}

func TestFactsMultipleMarkers(t *testing.T) {
	facts := gestalt.Facts([]string{"go.mod", "package.json", "README.md"})
	assert.Equal(t, []string{"go-module", "node-package"}, facts)
}

func TestFactsNoMarkers(t *testing.T) {
	facts := gestalt.Facts([]string{"main.c", "README.md"})
	assert.Empty(t, facts)
}

func TestFactsAlternateBasenames(t *testing.T) {
	facts := gestalt.Facts([]string{"configure.in"})
	assert.Equal(t, []string{"autotools-project"}, facts)
}

func TestFactsForPathUsesBasenameOnly(t *testing.T) {
	facts := gestalt.FactsForPath("/some/deep/path/Cargo.toml")
	assert.Equal(t, []string{"cargo-crate"}, facts)
}

func TestFactsForPathNoMatch(t *testing.T) {
	facts := gestalt.FactsForPath("/some/deep/path/main.rs")
	assert.Empty(t, facts)
}
