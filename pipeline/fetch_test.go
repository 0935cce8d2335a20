package pipeline

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBaixar(t *testing.T) {
	conteudo := []byte("conteúdo da planilha")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(conteudo)
	}))
	defer srv.Close()

	f := NovoFetcher(time.Second)
	got, err := f.Baixar(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Baixar: %v", err)
	}
	if !bytes.Equal(got, conteudo) {
		t.Errorf("conteúdo baixado não bate: %q", got)
	}
}

func TestBaixarErroHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "não achei", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NovoFetcher(time.Second)
	_, err := f.Baixar(context.Background(), srv.URL)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("esperado *FetchError, veio %v", err)
	}
	if fetchErr.URL != srv.URL {
		t.Errorf("erro deveria carregar a URL, veio %q", fetchErr.URL)
	}
}

func TestBaixarURLVazia(t *testing.T) {
	f := NovoFetcher(time.Second)
	_, err := f.Baixar(context.Background(), "")

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("esperado *FetchError, veio %v", err)
	}
}

func TestBaixarTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	f := NovoFetcher(50 * time.Millisecond)
	_, err := f.Baixar(context.Background(), srv.URL)

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("timeout deveria virar *FetchError, veio %v", err)
	}
}
