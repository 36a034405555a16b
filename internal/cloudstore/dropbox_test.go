package cloudstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newDropboxServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/files/list_folder", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["recursive"] != true {
			t.Errorf("list_folder recursive = %v, want true", req["recursive"])
		}
		_, _ = w.Write([]byte(`{"entries":[
			{".tag":"folder","name":"drafts","path_lower":"/drafts"},
			{".tag":"file","id":"id:1","name":"Dimov-2020.pdf","path_display":"/Dimov-2020.pdf","path_lower":"/dimov-2020.pdf","size":10},
			{".tag":"file","id":"id:2","name":"notes.txt","path_lower":"/notes.txt"}
		],"cursor":"c1","has_more":true}`))
	})
	mux.HandleFunc("/files/list_folder/continue", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["cursor"] != "c1" {
			t.Errorf("continue cursor = %q, want c1", req["cursor"])
		}
		_, _ = w.Write([]byte(`{"entries":[
			{".tag":"file","id":"id:3","name":"Design.PDF","path_display":"/drafts/Design.PDF","path_lower":"/drafts/design.pdf"}
		],"cursor":"c2","has_more":false}`))
	})
	mux.HandleFunc("/files/download", func(w http.ResponseWriter, r *http.Request) {
		var arg map[string]string
		_ = json.Unmarshal([]byte(r.Header.Get("Dropbox-API-Arg")), &arg)
		for _, c := range []byte(r.Header.Get("Dropbox-API-Arg")) {
			if c >= 0x7F {
				t.Errorf("Dropbox-API-Arg has non-ASCII byte %#x", c)
				break
			}
		}
		if arg["path"] == "/missing.pdf" {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error_summary":"path/not_found/.."}`))
			return
		}
		_, _ = w.Write([]byte("%PDF-1.4"))
	})
	mux.HandleFunc("/files/get_temporary_link", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"link":"https://dl.example/abc"}`))
	})
	mux.HandleFunc("/files/move_v2", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["to_path"] == "/exists.pdf" {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"error_summary":"to/conflict/file/..."}`))
			return
		}
		_, _ = w.Write([]byte(`{"metadata":{".tag":"file","id":"id:1","name":"New.pdf","path_display":"/New.pdf","path_lower":"/new.pdf"}}`))
	})
	return httptest.NewServer(mux)
}

func TestDropbox_ListPDFs(t *testing.T) {
	server := newDropboxServer(t)
	defer server.Close()

	d := NewDropbox("token", WithEndpoints(server.URL, server.URL))
	files, err := d.ListPDFs(context.Background())
	if err != nil {
		t.Fatalf("ListPDFs() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("ListPDFs() returned %d files, want 2", len(files))
	}
	if files[0].ID != "id:1" || files[1].PathLower != "/drafts/design.pdf" {
		t.Errorf("ListPDFs() = %+v", files)
	}
}

func TestDropbox_DownloadAndLink(t *testing.T) {
	server := newDropboxServer(t)
	defer server.Close()
	d := NewDropbox("token", WithEndpoints(server.URL, server.URL))

	data, err := d.Download(context.Background(), "/dimov-2020.pdf")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if string(data) != "%PDF-1.4" {
		t.Errorf("Download() = %q", data)
	}

	if _, err := d.Download(context.Background(), "/Schumpéter-1934.pdf"); err != nil {
		t.Errorf("Download() accented path error = %v", err)
	}

	_, err = d.Download(context.Background(), "/missing.pdf")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Download() error = %v, want ErrNotFound", err)
	}

	link, err := d.TemporaryLink(context.Background(), "/dimov-2020.pdf")
	if err != nil {
		t.Fatalf("TemporaryLink() error = %v", err)
	}
	if link != "https://dl.example/abc" {
		t.Errorf("TemporaryLink() = %q", link)
	}
}

func TestDropbox_Move(t *testing.T) {
	server := newDropboxServer(t)
	defer server.Close()
	d := NewDropbox("token", WithEndpoints(server.URL, server.URL))

	got, err := d.Move(context.Background(), "/old.pdf", "/New.pdf")
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if got.PathLower != "/new.pdf" || got.ID != "id:1" {
		t.Errorf("Move() = %+v", got)
	}

	_, err = d.Move(context.Background(), "/old.pdf", "/exists.pdf")
	if !errors.Is(err, ErrConflict) {
		t.Errorf("Move() error = %v, want ErrConflict", err)
	}
}

func TestAPIArg(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"ascii", "/Dimov-2020.pdf", `{"path":"/Dimov-2020.pdf"}`},
		{"accented", "/Schumpéter-1934.pdf", `{"path":"/Schump\u00e9ter-1934.pdf"}`},
		{"outside the basic plane", "/𝛼-notes.pdf", `{"path":"/\ud835\udefc-notes.pdf"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := apiArg(map[string]string{"path": tt.path})
			if err != nil {
				t.Fatalf("apiArg() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("apiArg() = %s, want %s", got, tt.want)
			}
			var back map[string]string
			if err := json.Unmarshal([]byte(got), &back); err != nil || back["path"] != tt.path {
				t.Errorf("apiArg() decodes to %q (err %v), want %q", back["path"], err, tt.path)
			}
		})
	}
}

func TestRenameTarget(t *testing.T) {
	tests := []struct {
		from, name, want string
	}{
		{"/old.pdf", "Dimov-2020-Design", "/Dimov-2020-Design.pdf"},
		{"/papers/old.pdf", "New.pdf", "/papers/New.pdf"},
		{"old.pdf", " spaced ", "/spaced.pdf"},
	}
	for _, tt := range tests {
		if got := RenameTarget(tt.from, tt.name); got != tt.want {
			t.Errorf("RenameTarget(%q, %q) = %q, want %q", tt.from, tt.name, got, tt.want)
		}
	}
}

func TestConfig_Configured(t *testing.T) {
	tests := []struct {
		cfg  Config
		want bool
	}{
		{Config{Kind: "dropbox"}, false},
		{Config{Kind: "dropbox", DropboxToken: "t"}, true},
		{Config{Kind: "s3", S3Endpoint: "localhost:9000"}, false},
		{Config{Kind: "local", LocalDir: "/tmp"}, true},
		{Config{Kind: "ftp"}, false},
	}
	for _, tt := range tests {
		if got := tt.cfg.Configured(); got != tt.want {
			t.Errorf("Configured(%+v) = %v, want %v", tt.cfg, got, tt.want)
		}
	}

	store, err := Open(Config{Kind: "dropbox"})
	if err != nil || store != nil {
		t.Errorf("Open(unconfigured) = %v, %v; want nil, nil", store, err)
	}
}
