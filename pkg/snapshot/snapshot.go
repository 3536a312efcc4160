// Package snapshot compares test output against golden JSON files under testdata/.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// UpdateEnv rewrites every snapshot when set to a non-empty value
const UpdateEnv = "BJS_UPDATE_SNAPSHOTS"

var (
	lock  sync.Mutex
	calls = make(map[string]int)
)

// Validate compares obj, encoded as indented JSON, with the test's next snapshot file
// A missing snapshot is written and the check passes.
func Validate(t *testing.T, obj interface{}, msgAndArgs ...interface{}) bool {
	t.Helper()

	filename := nextFilename(t)
	actual, err := json.MarshalIndent(obj, "", "  ")
	require.NoError(t, err)

	expects, err := os.ReadFile(filename)
	if os.IsNotExist(err) || os.Getenv(UpdateEnv) != "" {
		write(t, filename, actual)
		return true
	}
	require.NoError(t, err)

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(actual), "\n"), msgAndArgs...) {
		t.Logf("snapshot %s", filename)
		return false
	}

	return true
}

func nextFilename(t *testing.T) string {
	lock.Lock()
	defer lock.Unlock()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	call := calls[name]
	calls[name] = call + 1

	return filepath.Join("testdata", fmt.Sprintf("%s-%d.json", name, call))
}

func write(t *testing.T, filename string, data []byte) {
	t.Helper()

	logrus.WithField("filename", filename).Info("writing snapshot file")
	require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0755))
	require.NoError(t, os.WriteFile(filename, append(data, '\n'), 0644))
}
