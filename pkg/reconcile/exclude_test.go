package reconcile

import "testing"

func TestShouldExclude(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		isDir    bool
		patterns []string
		want     bool
	}{
		{"NoPatterns", "a.txt", false, nil, false},
		{"Extension", "docs/draft.tmp", false, []string{"*.tmp"}, true},
		{"ExtensionMiss", "docs/draft.txt", false, []string{"*.tmp"}, false},
		{"OfficeLock", "~$report.docx", false, []string{"~$*"}, true},
		{"DirectoryPattern", ".git", true, []string{".git/"}, true},
		{"NestedDirectoryPattern", "src/node_modules", true, []string{"node_modules/"}, true},
		{"DirectoryPatternSkipsFiles", ".git", false, []string{".git/"}, false},
		{"PathPattern", "build/out.bin", false, []string{"build/*"}, true},
		{"DoubleStar", "a/b/cache", true, []string{"**/cache"}, true},
		{"EmptyPatternIgnored", "a.txt", false, []string{""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldExclude(tt.path, tt.isDir, tt.patterns); got != tt.want {
				t.Errorf("shouldExclude(%q, %v, %v) = %v, want %v", tt.path, tt.isDir, tt.patterns, got, tt.want)
			}
		})
	}
}
