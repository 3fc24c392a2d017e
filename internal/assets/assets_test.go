package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout(t *testing.T) Layout {
	t.Helper()
	return Layout{Root: t.TempDir()}
}

func TestParseFrontmatter(t *testing.T) {
	t.Run("full block", func(t *testing.T) {
		fm := ParseFrontmatter("---\ndescription: Reviews a PR\nargument-hint: \"<pr-number>\"\n---\n\nbody")
		require.NotNil(t, fm)
		assert.Equal(t, "Reviews a PR", fm.String("description"))
		assert.Equal(t, "<pr-number>", fm.String("argument-hint"))
		assert.Empty(t, fm.String("missing"))
	})

	t.Run("no frontmatter", func(t *testing.T) {
		assert.Nil(t, ParseFrontmatter("# just markdown"))
	})

	t.Run("unterminated block", func(t *testing.T) {
		assert.Nil(t, ParseFrontmatter("---\ndescription: x\n\nbody"))
	})

	t.Run("invalid yaml degrades to nil", func(t *testing.T) {
		assert.Nil(t, ParseFrontmatter("---\n: [broken\n---\nbody"))
	})

	t.Run("non-string value renders as string", func(t *testing.T) {
		fm := ParseFrontmatter("---\npriority: 3\n---\nbody")
		require.NotNil(t, fm)
		assert.Equal(t, "3", fm.String("priority"))
	})
}

func TestScanPrompts(t *testing.T) {
	l := testLayout(t)

	t.Run("missing dir is empty", func(t *testing.T) {
		prompts, err := l.ScanPrompts()
		require.NoError(t, err)
		assert.Empty(t, prompts)
	})

	require.NoError(t, os.MkdirAll(filepath.Join(l.PromptsDir(), "nested"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(l.PromptsDir(), "review.md"),
		[]byte("---\ndescription: Reviews code\n---\n\nReview this."), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(l.PromptsDir(), "nested", "deploy.md"),
		[]byte("No frontmatter here."), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(l.PromptsDir(), "notes.txt"), []byte("skip"), 0o644))

	prompts, err := l.ScanPrompts()
	require.NoError(t, err)
	require.Len(t, prompts, 2)

	byName := map[string]Prompt{}
	for _, p := range prompts {
		byName[p.Name] = p
	}
	assert.Equal(t, "Reviews code", byName["review"].Description)
	assert.Contains(t, byName["review"].Content, "Review this.")
	assert.Empty(t, byName["deploy"].Description)
}

func TestCreatePrompt(t *testing.T) {
	l := testLayout(t)

	path, err := l.CreatePrompt("greet", "Greets the user", "Say hello.")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "---\ndescription: Greets the user\n---\n\nSay hello.", string(data))

	_, err = l.CreatePrompt("greet", "x", "y")
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, l.DeletePrompt(path))
	assert.NoFileExists(t, path)
}

func TestScanSkills(t *testing.T) {
	l := testLayout(t)

	writeSkill := func(dir, content string) {
		t.Helper()
		full := filepath.Join(l.SkillsDir(), dir)
		require.NoError(t, os.MkdirAll(full, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(full, "SKILL.md"), []byte(content), 0o644))
	}

	writeSkill("pdf-tools", "---\nname: PDF Tools\ndescription: Works with PDFs\ncompatibility: linux\n---\n\n# PDF Tools")
	writeSkill("bare", "No frontmatter.")
	writeSkill(".system", "---\nname: hidden\n---")
	writeSkill("dist", "---\nname: built\n---")
	require.NoError(t, os.MkdirAll(filepath.Join(l.SkillsDir(), "no-manifest"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(l.SkillsDir(), "pdf-tools", "scripts"), 0o755))

	skills, err := l.ScanSkills()
	require.NoError(t, err)
	require.Len(t, skills, 2)

	byDir := map[string]Skill{}
	for _, s := range skills {
		byDir[filepath.Base(s.Dir)] = s
	}
	pdf := byDir["pdf-tools"]
	assert.Equal(t, "PDF Tools", pdf.Name)
	assert.Equal(t, "Works with PDFs", pdf.Description)
	assert.Equal(t, "linux", pdf.Compatibility)
	assert.True(t, pdf.HasScripts)
	assert.False(t, pdf.HasAssets)

	// directory name stands in when frontmatter has no name
	assert.Equal(t, "bare", byDir["bare"].Name)
}

func TestCreateReadSaveDeleteSkill(t *testing.T) {
	l := testLayout(t)

	dir, err := l.CreateSkill("deploy", "Deploys the app")
	require.NoError(t, err)

	content, err := l.ReadSkill(dir)
	require.NoError(t, err)
	assert.Contains(t, content, "name: deploy")
	assert.Contains(t, content, "description: Deploys the app")

	require.NoError(t, l.SaveSkill(dir, "updated"))
	content, err = l.ReadSkill(dir)
	require.NoError(t, err)
	assert.Equal(t, "updated", content)

	_, err = l.CreateSkill("deploy", "x")
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, l.DeleteSkill(dir))
	assert.NoDirExists(t, dir)
}

func TestStandaloneFiles(t *testing.T) {
	l := testLayout(t)

	content, err := l.ReadAgents()
	require.NoError(t, err)
	assert.Empty(t, content)

	require.NoError(t, l.SaveAgents("Always run the linter."))
	content, err = l.ReadAgents()
	require.NoError(t, err)
	assert.Equal(t, "Always run the linter.", content)

	require.NoError(t, l.SaveConfigTOML("model = \"gpt-5\"\n"))
	content, err = l.ReadConfigTOML()
	require.NoError(t, err)
	assert.Equal(t, "model = \"gpt-5\"\n", content)
}

func TestSyncPaths(t *testing.T) {
	l := Layout{Root: "/home/u/.codex"}
	paths := l.SyncPaths()
	assert.Equal(t, "/home/u/.codex", paths.Root)
	assert.Equal(t, filepath.Join("/home/u/.codex", "prompts"), paths.PromptsDir)
	assert.Equal(t, filepath.Join("/home/u/.codex", "skills"), paths.SkillsDir)
	assert.Equal(t, filepath.Join("/home/u/.codex", "AGENTS.MD"), paths.AgentsFile)
	assert.Equal(t, filepath.Join("/home/u/.codex", "config.toml"), paths.ConfigFile)
}
