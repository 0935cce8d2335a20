package pipeline

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/carlmjohnson/requests"
)

// TimeoutPadrao limita o download da planilha. Uma única tentativa; quem
// quiser repetir recarrega a página.
const TimeoutPadrao = 10 * time.Second

// Fetcher baixa planilhas dos endpoints de exportação do Drive/Sheets.
type Fetcher struct {
	Timeout time.Duration
	client  *http.Client
}

func NovoFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = TimeoutPadrao
	}
	return &Fetcher{
		Timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// Baixar faz um GET na URL e retorna os bytes do documento. Status fora de
// 2xx, timeout ou erro de rede viram *FetchError.
func (f *Fetcher) Baixar(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, &FetchError{URL: url, Err: errURLVazia}
	}

	var buf bytes.Buffer
	err := requests.
		URL(url).
		Client(f.client).
		ToBytesBuffer(&buf).
		Fetch(ctx)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return buf.Bytes(), nil
}

var errURLVazia = errors.New("url da planilha não configurada")
