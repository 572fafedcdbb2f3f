package netx

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDownload(t *testing.T) {
	file := []byte("hello, s3")

	t.Run("success 200 OK", func(t *testing.T) {
		var gotMethod, gotQuery string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotQuery = r.URL.RawQuery
			_, _ = w.Write(file)
		}))
		defer ts.Close()

		got, err := Download(context.Background(), ts.Client(), ts.URL+"/docs/a.pdf?X-Amz-Signature=abc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodGet {
			t.Fatalf("method = %q, want GET", gotMethod)
		}
		if gotQuery != "X-Amz-Signature=abc" {
			t.Fatalf("query = %q", gotQuery)
		}
		if !bytes.Equal(got, file) {
			t.Fatalf("body = %q, want %q", string(got), string(file))
		}
	})

	t.Run("non-200 -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("SignatureDoesNotMatch"))
		}))
		defer ts.Close()

		_, err := Download(context.Background(), nil, ts.URL)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "download failed: 403") || !strings.Contains(err.Error(), "SignatureDoesNotMatch") {
			t.Fatalf("error = %q", err.Error())
		}
	})

	t.Run("bad url -> error", func(t *testing.T) {
		if _, err := Download(context.Background(), nil, "://bad"); err == nil {
			t.Fatal("expected error for malformed URL")
		}
	})

	t.Run("canceled context -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(file)
		}))
		defer ts.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := Download(ctx, ts.Client(), ts.URL); err == nil {
			t.Fatal("expected error for canceled context")
		}
	})
}
