// ABOUTME: Remembers recently classified well spreadsheets for the TUI file picker
// ABOUTME: Stores path, last batch ID and time in the XDG config directory

package recentfiles

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// MaxRecentFiles is the maximum number of recent files to keep
const MaxRecentFiles = 5

// Entry is one recently classified spreadsheet
type Entry struct {
	Path         string    `json:"path"`
	BatchID      string    `json:"batch_id,omitempty"`
	ClassifiedAt time.Time `json:"classified_at"`
}

// RecentFiles manages the recent spreadsheet list
type RecentFiles struct {
	configDir string
	entries   []Entry
	now       func() time.Time
}

type recentData struct {
	Entries []Entry `json:"entries"`
}

// New creates a new RecentFiles manager with the given config directory
func New(configDir string) *RecentFiles {
	return &RecentFiles{configDir: configDir, now: time.Now}
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "separator-sizer")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "separator-sizer")
}

func (rf *RecentFiles) configFile() string {
	return filepath.Join(rf.configDir, "recent.json")
}

// Load reads the list from disk, dropping spreadsheets that no longer exist
func (rf *RecentFiles) Load() ([]Entry, error) {
	data, err := os.ReadFile(rf.configFile())
	if os.IsNotExist(err) {
		rf.entries = []Entry{}
		return rf.entries, nil
	}
	if err != nil {
		return nil, err
	}

	var recent recentData
	if err := json.Unmarshal(data, &recent); err != nil {
		// Corrupt list, start fresh
		rf.entries = []Entry{}
		return rf.entries, nil
	}

	rf.entries = make([]Entry, 0, len(recent.Entries))
	for _, e := range recent.Entries {
		if _, err := os.Stat(e.Path); err == nil {
			rf.entries = append(rf.entries, e)
		}
	}
	return rf.entries, nil
}

// Record moves path to the front of the list with the batch it produced
func (rf *RecentFiles) Record(path, batchID string) error {
	if rf.entries == nil {
		if _, err := rf.Load(); err != nil {
			rf.entries = []Entry{}
		}
	}

	entries := make([]Entry, 0, len(rf.entries)+1)
	entries = append(entries, Entry{Path: path, BatchID: batchID, ClassifiedAt: rf.now().UTC()})
	for _, e := range rf.entries {
		if e.Path != path {
			entries = append(entries, e)
		}
	}
	if len(entries) > MaxRecentFiles {
		entries = entries[:MaxRecentFiles]
	}

	if err := os.MkdirAll(rf.configDir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(recentData{Entries: entries}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(rf.configFile(), data, 0644); err != nil {
		return err
	}

	rf.entries = entries
	return nil
}

// Paths returns the recent spreadsheet paths, most recent first
func (rf *RecentFiles) Paths() []string {
	if rf.entries == nil {
		rf.Load()
	}
	paths := make([]string, len(rf.entries))
	for i, e := range rf.entries {
		paths[i] = e.Path
	}
	return paths
}

// LastBatch returns the batch ID most recently produced from path
func (rf *RecentFiles) LastBatch(path string) (string, bool) {
	if rf.entries == nil {
		rf.Load()
	}
	for _, e := range rf.entries {
		if e.Path == path && e.BatchID != "" {
			return e.BatchID, true
		}
	}
	return "", false
}
