package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstructWindowsPath(t *testing.T) {
	tests := []struct {
		name    string
		mangled string
		want    string
	}{
		{"basic mangled path", "C:UserswW.PoundThisHine.c0mDownloadsmEq.txt", `C:\Users\wW.PoundThisHine.c0m\Downloads\mEq.txt`},
		{"simple mangled path", "C:UsersjohnDownloadsfile.txt", `C:\Users\john\Downloads\file.txt`},
		{"documents folder", "C:UsersAdminDocumentstest.txt", `C:\Users\Admin\Documents\test.txt`},
		{"desktop folder", "C:UsersjaneDesktopproject.txt", `C:\Users\jane\Desktop\project.txt`},
		{"not a windows path", "/home/user/file.txt", "/home/user/file.txt"},
		{"already correct", `C:\Users\test\file.txt`, `C:\Users\test\file.txt`},
		{"no known folder", "C:NonExistentPathdoesnotexist.txt", "C:NonExistentPathdoesnotexist.txt"},
		{"relative path", "example1.txt", "example1.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReconstructWindowsPath(tt.mangled))
		})
	}
}

func TestResolve_ExistingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	assert.Equal(t, path, Resolve(path))
}

func TestResolve_ReturnsOriginalWhenNothingExists(t *testing.T) {
	path := "C:NonExistentPathdoesnotexist.txt"
	assert.Equal(t, path, Resolve(path))

	mangled := "C:UsersnobodyDownloadsmissing.txt"
	assert.Equal(t, mangled, Resolve(mangled))
}
