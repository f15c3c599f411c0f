package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs_SeparateValueForm(t *testing.T) {
	args := []string{"-a", "localhost:8080", "-x", "junk", "-d", "vetdesk.db"}
	got := FilterArgs(args, []string{"-a", "-d"})
	assert.Equal(t, []string{"-a", "localhost:8080", "-d", "vetdesk.db"}, got)
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	args := []string{"--config=conf.json", "-other=1"}
	got := FilterArgs(args, []string{"--config"})
	assert.Equal(t, []string{"--config=conf.json"}, got)
}

func TestFilterArgs_FlagWithoutValue(t *testing.T) {
	args := []string{"-a", "-d", "vetdesk.db"}
	got := FilterArgs(args, []string{"-a", "-d"})
	// -a has no value here, the next token is another flag
	assert.Equal(t, []string{"-a", "-d", "vetdesk.db"}, got)
}

func TestFilterArgs_EmptyResultIsNotNil(t *testing.T) {
	got := FilterArgs([]string{"-x", "1"}, []string{"-a"})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-c", "client.json"}
	assert.Equal(t, "client.json", JsonConfigFlags())

	os.Args = []string{"testbin", "-config", "full.json"}
	assert.Equal(t, "full.json", JsonConfigFlags())

	os.Args = []string{"testbin"}
	assert.Equal(t, "", JsonConfigFlags())
}
