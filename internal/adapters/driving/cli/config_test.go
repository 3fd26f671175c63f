package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
)

func TestConfigInitCmd_DefaultPath(t *testing.T) {
	env := setupTest(t)

	out, err := execute("config", "init")

	require.NoError(t, err)
	assert.Equal(t, DefaultConfigPath, env.config.savedPath)
	require.NotNil(t, env.config.saved)
	assert.Equal(t, domain.DefaultCrawlConfig(), env.config.saved.Crawl)
	assert.Empty(t, env.config.saved.Clone.TargetPath)
	assert.Contains(t, out, "Wrote repoqa.toml")
}

func TestConfigInitCmd_Path(t *testing.T) {
	env := setupTest(t)

	_, err := execute("config", "init", "custom.toml")

	require.NoError(t, err)
	assert.Equal(t, "custom.toml", env.config.savedPath)
}

func TestConfigInitCmd_Exists(t *testing.T) {
	env := setupTest(t)
	env.config.saveErr = os.ErrExist

	_, err := execute("config", "init")

	require.ErrorIs(t, err, os.ErrExist)
}
