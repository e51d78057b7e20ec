package instances

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"jobShop/internal/jobshop"
)

const aaa1 = `# Example 1 from the lecture notes
2 3 # num-jobs num-tasks
0 3 1 3 2 2
1 2 0 2 2 4
`

func TestParseText(t *testing.T) {
	inst, err := ParseText(strings.NewReader(aaa1))

	require.NoError(t, err)
	assert.Equal(t, 2, inst.Jobs)
	assert.Equal(t, 3, inst.Machines)
	assert.Equal(t, 3, inst.Tasks)
	assert.Equal(t, 3, inst.Duration(0, 1))
	assert.Equal(t, 1, inst.Machine(0, 1))
	assert.Equal(t, 4, inst.Duration(1, 2))
	assert.Equal(t, 0, inst.Machine(1, 1))
}

func TestParseTextErrors(t *testing.T) {
	cases := map[string]string{
		"empty":       "# nothing\n",
		"short":       "2\n",
		"missing job": "2 2\n0 1 1 1\n",
		"odd fields":  "1 2\n0 1 1\n",
		"not number":  "1 1\n0 x\n",
		"bad machine": "1 1\n3 1\n",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseText(strings.NewReader(text))
			assert.Error(t, err)
		})
	}
}

func TestTextRoundTrip(t *testing.T) {
	inst := jobshop.RandomInstance(5, 4, 1, 99, rand.New(rand.NewSource(4)))
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, inst))

	back, err := ParseText(&buf)

	require.NoError(t, err)
	assert.Equal(t, inst, back)
}

func TestLoadFileYAML(t *testing.T) {
	inst := jobshop.RandomInstance(3, 3, 1, 9, rand.New(rand.NewSource(4)))
	data, err := yaml.Marshal(FromInstance("small", inst))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "small.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	back, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, inst, back)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
