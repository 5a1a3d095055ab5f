package source

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sfeldkamp/quadrant/pkg/errors"
)

const jsonItems = `[
  {"name": "Go", "category": "Languages & Frameworks", "level": "Adopt", "score": 0.9},
  {"name": "Kafka", "category": "Platforms", "level": "Trial"},
  {"name": "Pair Programming", "category": "Techniques", "level": "Adopt"}
]`

const csvItems = `name,category,level,score,description,link
Go,Languages & Frameworks,Adopt,0.9,,
Kafka,Platforms,Trial,0,,
Pair Programming,Techniques,Adopt,0,,
`

func TestReadJSON(t *testing.T) {
	items, err := ReadJSON(strings.NewReader(jsonItems))
	if err != nil {
		t.Fatalf("ReadJSON() failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	// Order is preserved
	if items[0].Name != "Go" || items[1].Name != "Kafka" || items[2].Name != "Pair Programming" {
		t.Errorf("item order not preserved: %v", items)
	}
	if items[0].Category != "Languages & Frameworks" || items[0].Level != "Adopt" {
		t.Errorf("classification not carried: %+v", items[0])
	}
	if items[0].Score != 0.9 {
		t.Errorf("got score %v, want 0.9", items[0].Score)
	}
}

func TestReadJSON_Malformed(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"not": "an array"}`))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("got %v, want INVALID_FORMAT", err)
	}
}

func TestReadJSON_EmptyName(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`[{"name": "", "category": "Tools", "level": "Adopt"}]`))
	if !errors.Is(err, errors.ErrCodeInvalidItem) {
		t.Errorf("got %v, want INVALID_ITEM", err)
	}
}

func TestReadCSV(t *testing.T) {
	items, err := ReadCSV(strings.NewReader(csvItems))
	if err != nil {
		t.Fatalf("ReadCSV() failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].Name != "Go" || items[2].Name != "Pair Programming" {
		t.Errorf("row order not preserved: %v", items)
	}
	if items[0].Category != "Languages & Frameworks" {
		t.Errorf("got category %q", items[0].Category)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "items.json")
	if err := os.WriteFile(jsonPath, []byte(jsonItems), 0o644); err != nil {
		t.Fatal(err)
	}
	csvPath := filepath.Join(dir, "items.csv")
	if err := os.WriteFile(csvPath, []byte(csvItems), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantN   int
		wantErr errors.Code
	}{
		{"json", jsonPath, 3, ""},
		{"csv", csvPath, 3, ""},
		{"missing", filepath.Join(dir, "nope.json"), 0, errors.ErrCodeFileNotFound},
		{"unsupportedExt", filepath.Join(dir, "items.yaml"), 0, errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := LoadFile(tt.path)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got %v, want code %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFile() failed: %v", err)
			}
			if len(items) != tt.wantN {
				t.Errorf("got %d items, want %d", len(items), tt.wantN)
			}
		})
	}
}

func TestLoadFile_UnsupportedExtensionMessage(t *testing.T) {
	// Extensions pass through as message arguments, so printf verbs in a
	// path must survive verbatim.
	_, err := LoadFile(filepath.Join(t.TempDir(), "items.%sv"))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Fatalf("got %v, want code %s", err, errors.ErrCodeUnsupported)
	}
	if !strings.Contains(err.Error(), ".%sv") {
		t.Errorf("message should carry the literal extension: %v", err)
	}
}

func TestClient_FetchItems(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(jsonItems))
	}))
	defer srv.Close()

	c, err := NewClient(Options{CacheDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewClient() failed: %v", err)
	}

	items, err := c.FetchItems(t.Context(), srv.URL, false)
	if err != nil {
		t.Fatalf("FetchItems() failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}

	// Second call should hit the cache, not the server
	if _, err := c.FetchItems(t.Context(), srv.URL, false); err != nil {
		t.Fatalf("cached FetchItems() failed: %v", err)
	}
	if hits != 1 {
		t.Errorf("got %d server hits, want 1 (second call should be cached)", hits)
	}

	// refresh=true bypasses the cache
	if _, err := c.FetchItems(t.Context(), srv.URL, true); err != nil {
		t.Fatalf("refresh FetchItems() failed: %v", err)
	}
	if hits != 2 {
		t.Errorf("got %d server hits, want 2 after refresh", hits)
	}
}

func TestClient_FetchItems_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c, err := NewClient(Options{CacheDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.FetchItems(t.Context(), srv.URL, false)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("got %v, want NOT_FOUND", err)
	}
}

func TestClient_FetchItems_RetriesServerErrors(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(jsonItems))
	}))
	defer srv.Close()

	c, err := NewClient(Options{CacheDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	items, err := c.FetchItems(t.Context(), srv.URL, false)
	if err != nil {
		t.Fatalf("FetchItems() failed after retry: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("got %d items, want 3", len(items))
	}
	if hits != 2 {
		t.Errorf("got %d server hits, want 2 (one failure, one retry)", hits)
	}
}

func TestClient_Headers(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c, err := NewClient(Options{
		CacheDir: t.TempDir(),
		Headers:  map[string]string{"Authorization": "Bearer token"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.FetchItems(t.Context(), srv.URL, false); err != nil {
		t.Fatalf("FetchItems() failed: %v", err)
	}
	if gotAuth != "Bearer token" {
		t.Errorf("got Authorization %q, want %q", gotAuth, "Bearer token")
	}
}

func TestLoad_DispatchesFileVsURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(jsonItems))
	}))
	defer srv.Close()

	c, err := NewClient(Options{CacheDir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}

	urlItems, err := Load(t.Context(), c, srv.URL)
	if err != nil {
		t.Fatalf("Load(url) failed: %v", err)
	}
	if len(urlItems) != 3 {
		t.Errorf("got %d items from URL, want 3", len(urlItems))
	}

	path := filepath.Join(t.TempDir(), "items.json")
	if err := os.WriteFile(path, []byte(jsonItems), 0o644); err != nil {
		t.Fatal(err)
	}
	fileItems, err := Load(t.Context(), c, path)
	if err != nil {
		t.Fatalf("Load(file) failed: %v", err)
	}
	if len(fileItems) != 3 {
		t.Errorf("got %d items from file, want 3", len(fileItems))
	}
}
