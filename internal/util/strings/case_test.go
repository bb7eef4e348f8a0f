package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Widgets", Capitalize("widgets"))
	assert.Equal(t, "Widgets", Capitalize("Widgets"))
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Élan", Capitalize("élan"))
}

func TestUncapitalize(t *testing.T) {
	assert.Equal(t, "virtualMachines", Uncapitalize("VirtualMachines"))
	assert.Equal(t, "widgets", Uncapitalize("widgets"))
	assert.Equal(t, "", Uncapitalize(""))
}

func TestSingularize(t *testing.T) {
	tests := map[string]string{
		"Widgets":  "Widget",
		"Policies": "Policy",
		"Access":   "Access",
		"Compute":  "Compute",
		"s":        "s",
	}
	for in, want := range tests {
		assert.Equal(t, want, Singularize(in), in)
	}
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "Widgets", LastSegment("Contoso.Widgets"))
	assert.Equal(t, "Compute", LastSegment("Compute"))
}
